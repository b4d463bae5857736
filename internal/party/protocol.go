package party

import "encoding/json"

// Client to server events.
const (
	EventJoinRoom    = "join_room"
	EventLeaveRoom   = "leave_room"
	EventSendMessage = "send_message"
	EventSyncVideo   = "sync_video"
)

// Server to client events.
const (
	EventCurrentRoomState = "current_room_state"
	EventUserJoined       = "user_joined"
	EventUserLeft         = "user_left"
	EventReceiveMessage   = "receive_message"
	EventReceiveSync      = "receive_sync"
	EventError            = "error"
)

// Playback control actions carried by sync_video / receive_sync.
const (
	ActionURLChange = "url_change"
	ActionPlay      = "play"
	ActionPause     = "pause"
	ActionSeek      = "seek"
)

// Envelope is the wire frame for every event in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type JoinRoomData struct {
	RoomID   string `json:"roomId"`
	Username string `json:"username"`
}

type LeaveRoomData struct {
	RoomID   string `json:"roomId"`
	Username string `json:"username"`
}

type SendMessageData struct {
	RoomID    string `json:"roomId"`
	Message   string `json:"message"`
	Username  string `json:"username"`
	Timestamp string `json:"timestamp"`
}

// SyncPayload carries the action-specific arguments: url for url_change,
// timestamp (seconds) for seek. play and pause carry no payload.
type SyncPayload struct {
	URL       string   `json:"url,omitempty"`
	Timestamp *float64 `json:"timestamp,omitempty"`
}

type SyncVideoData struct {
	RoomID  string       `json:"roomId"`
	Action  string       `json:"action"`
	Payload *SyncPayload `json:"payload,omitempty"`
}

// ReceiveSyncData is rebroadcast to every room member except the sender.
// Receivers must apply the operation to their player without re-emitting the
// user-gesture event that normally fires from it, or every sync turns into a
// rebroadcast loop.
type ReceiveSyncData struct {
	Action  string       `json:"action"`
	Payload *SyncPayload `json:"payload,omitempty"`
}

// RoomStateData is unicast to a late joiner so it converges to the room's
// current video, play state and last seek checkpoint.
type RoomStateData struct {
	VideoURL    string  `json:"videoUrl"`
	IsPlaying   bool    `json:"isPlaying"`
	Timestamp   float64 `json:"timestamp"`
	LastUpdated int64   `json:"lastUpdated"`
}

type PresenceData struct {
	Username string `json:"username"`
	Message  string `json:"message"`
}

type ReceiveMessageData struct {
	Username  string `json:"username"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type ErrorData struct {
	Message string `json:"message"`
}

func mustEnvelope(event string, data interface{}) []byte {
	raw, err := json.Marshal(data)
	if err != nil {
		// All server-side payload types marshal cleanly; this only fires on a
		// programming error.
		panic("party: marshal envelope data: " + err.Error())
	}
	out, err := json.Marshal(Envelope{Event: event, Data: raw})
	if err != nil {
		panic("party: marshal envelope: " + err.Error())
	}
	return out
}
