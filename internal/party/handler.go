package party

import (
	"context"
	"encoding/json"
	"net/http"

	"watch-party-backend/internal/logger"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// SeedChannel is the Redis channel the API process publishes seed sync events
// on; the party server replays them into its hub.
const SeedChannel = "watch-party:seed"

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Handler struct {
	hub         *Hub
	redisClient *redis.Client
}

// NewHandler wires the hub to HTTP. redisClient may be nil, in which case the
// seed bridge is disabled (tests, single-binary setups).
func NewHandler(hub *Hub, redisClient *redis.Client) *Handler {
	return &Handler{
		hub:         hub,
		redisClient: redisClient,
	}
}

func (h *Handler) Hub() *Hub {
	return h.hub
}

// ServeWS upgrades the request and hands the connection to the hub. Room
// membership is negotiated over the socket via join_room, not the URL, so one
// connection can follow several rooms.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		return nil
	}

	cl := newClient(uuid.NewString(), conn)
	h.hub.Register <- cl

	go cl.keepAlive()
	go cl.writeMessages()
	go cl.readMessages(h.hub)
	return nil
}

// SubscribeSeeds consumes seed events published by the API process until ctx
// is cancelled. No-op without a Redis client.
func (h *Handler) SubscribeSeeds(ctx context.Context) {
	if h.redisClient == nil {
		return
	}

	go func() {
		subscriber := h.redisClient.Subscribe(ctx, SeedChannel)
		defer subscriber.Close()

		logger.L().Info().Str("channel", SeedChannel).Msg("subscribed to seed channel")

		for msg := range subscriber.Channel() {
			var data SyncVideoData
			if err := json.Unmarshal([]byte(msg.Payload), &data); err != nil || data.RoomID == "" {
				logger.L().Warn().Str("payload", msg.Payload).Msg("dropping malformed seed event")
				continue
			}
			h.hub.InjectSync(data)
		}

		logger.L().Info().Str("channel", SeedChannel).Msg("seed subscription closed")
	}()
}
