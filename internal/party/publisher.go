package party

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// Publisher is the API-process side of the seed bridge: it pushes playback
// events into Redis for the party server to replay.
type Publisher struct {
	redisClient *redis.Client
}

func NewPublisher(redisClient *redis.Client) *Publisher {
	return &Publisher{redisClient: redisClient}
}

func (p *Publisher) Publish(ctx context.Context, data SyncVideoData) error {
	if data.RoomID == "" {
		return fmt.Errorf("party publish: roomId required")
	}
	if p.redisClient == nil {
		return fmt.Errorf("party publish: redis client not initialised")
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("party publish: marshal payload: %w", err)
	}

	if err := p.redisClient.Publish(ctx, SeedChannel, payload).Err(); err != nil {
		return fmt.Errorf("party publish: redis publish: %w", err)
	}
	return nil
}

// SeedURLChange loads a video into a room, creating it if needed. This is how
// a host's "open movie into a party" call reaches connected viewers.
func (p *Publisher) SeedURLChange(ctx context.Context, roomID, url string) error {
	return p.Publish(ctx, SyncVideoData{
		RoomID:  roomID,
		Action:  ActionURLChange,
		Payload: &SyncPayload{URL: url},
	})
}
