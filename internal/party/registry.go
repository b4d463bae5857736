package party

import (
	"fmt"
	"time"
)

// Room holds the last known playback state of a watch party. PlaybackPosition
// is a last-seek checkpoint, not a live clock; it only moves when a member
// seeks.
type Room struct {
	VideoURL         string
	IsPlaying        bool
	PlaybackPosition float64
	LastUpdated      time.Time
}

func (r *Room) snapshot() RoomStateData {
	return RoomStateData{
		VideoURL:    r.VideoURL,
		IsPlaying:   r.IsPlaying,
		Timestamp:   r.PlaybackPosition,
		LastUpdated: r.LastUpdated.UnixMilli(),
	}
}

// Registry is the in-memory source of truth for room playback state. It is
// owned by the hub goroutine: every read and write happens on the single
// event-processing path, so the map needs no locking. Nothing outside the hub
// may touch it directly.
type Registry struct {
	rooms map[string]*Room
	now   func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[string]*Room),
		now:   time.Now,
	}
}

func (reg *Registry) Get(roomID string) (*Room, bool) {
	room, ok := reg.rooms[roomID]
	return room, ok
}

func (reg *Registry) Len() int {
	return len(reg.rooms)
}

func (reg *Registry) Delete(roomID string) {
	delete(reg.rooms, roomID)
}

func (reg *Registry) RoomIDs() []string {
	ids := make([]string, 0, len(reg.rooms))
	for id := range reg.rooms {
		ids = append(ids, id)
	}
	return ids
}

// Upsert creates the room with default state if it does not exist, applies
// mutate to it, and stamps LastUpdated.
func (reg *Registry) Upsert(roomID string, mutate func(*Room)) *Room {
	room, ok := reg.rooms[roomID]
	if !ok {
		room = &Room{}
		reg.rooms[roomID] = room
	}
	if mutate != nil {
		mutate(room)
	}
	room.LastUpdated = reg.now()
	return room
}

// Apply mutates exactly the field named by the action: url_change only touches
// VideoURL, play/pause only IsPlaying, seek only PlaybackPosition. The room is
// created lazily on the first action that references it.
func (reg *Registry) Apply(roomID string, data SyncVideoData) (*Room, error) {
	switch data.Action {
	case ActionURLChange:
		if data.Payload == nil || data.Payload.URL == "" {
			return nil, fmt.Errorf("url_change requires payload.url")
		}
		return reg.Upsert(roomID, func(r *Room) {
			r.VideoURL = data.Payload.URL
		}), nil
	case ActionPlay:
		return reg.Upsert(roomID, func(r *Room) {
			r.IsPlaying = true
		}), nil
	case ActionPause:
		return reg.Upsert(roomID, func(r *Room) {
			r.IsPlaying = false
		}), nil
	case ActionSeek:
		if data.Payload == nil || data.Payload.Timestamp == nil {
			return nil, fmt.Errorf("seek requires payload.timestamp")
		}
		return reg.Upsert(roomID, func(r *Room) {
			r.PlaybackPosition = *data.Payload.Timestamp
		}), nil
	default:
		return nil, fmt.Errorf("unknown sync action %q", data.Action)
	}
}
