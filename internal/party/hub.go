package party

import (
	"encoding/json"
	"time"

	"watch-party-backend/internal/logger"
)

type inbound struct {
	client    *Client
	env       Envelope
	malformed bool
}

type RoomSummary struct {
	RoomID    string `json:"roomId"`
	Members   int    `json:"members"`
	VideoURL  string `json:"videoUrl"`
	IsPlaying bool   `json:"isPlaying"`
}

type roomsQuery struct {
	reply chan []RoomSummary
}

// Hub runs the whole party protocol on one goroutine: membership changes,
// playback sync, chat relay and the registry all mutate on the same
// event-processing path, so none of it needs locking. Anything outside that
// goroutine talks to the hub through its channels.
type Hub struct {
	registry *Registry
	members  map[string]map[string]*Client
	clients  map[string]*Client

	Register   chan *Client
	Unregister chan *Client
	Events     chan inbound
	queries    chan roomsQuery

	// Rooms with no members and no mutation for idleRoomTTL are swept; zero
	// disables the sweep and rooms then live for the life of the process.
	idleRoomTTL time.Duration
}

func NewHub() *Hub {
	return &Hub{
		registry:   NewRegistry(),
		members:    make(map[string]map[string]*Client),
		clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Events:     make(chan inbound, 64),
		queries:    make(chan roomsQuery),
	}
}

// SetIdleRoomTTL must be called before Run.
func (h *Hub) SetIdleRoomTTL(ttl time.Duration) {
	h.idleRoomTTL = ttl
}

func (h *Hub) Run() {
	var sweep <-chan time.Time
	if h.idleRoomTTL > 0 {
		ticker := time.NewTicker(h.idleRoomTTL)
		defer ticker.Stop()
		sweep = ticker.C
	}

	for {
		select {
		case client := <-h.Register:
			h.clients[client.ID] = client
			incConnections()
			logger.L().Debug().Str("client_id", client.ID).Msg("client connected")

		case client := <-h.Unregister:
			h.disconnect(client)

		case in := <-h.Events:
			h.dispatch(in)

		case q := <-h.queries:
			q.reply <- h.roomSummaries()

		case <-sweep:
			h.sweepIdleRooms()
		}
	}
}

// InjectSync feeds a server-originated playback event (the API's seed
// url_change) into the event loop. It has no sender, so it fans out to every
// member of the room.
func (h *Hub) InjectSync(data SyncVideoData) {
	raw, err := json.Marshal(data)
	if err != nil {
		logger.L().Error().Err(err).Msg("marshal injected sync")
		return
	}
	h.Events <- inbound{env: Envelope{Event: EventSyncVideo, Data: raw}}
}

// Rooms returns a snapshot of known rooms, served from the hub goroutine.
func (h *Hub) Rooms() []RoomSummary {
	reply := make(chan []RoomSummary, 1)
	h.queries <- roomsQuery{reply: reply}
	return <-reply
}

func (h *Hub) dispatch(in inbound) {
	// Events and Unregister are separate channels, so a frame a client queued
	// before disconnecting can arrive here after disconnect already ran. Such
	// a client is no longer in h.clients; acting on its events would re-add it
	// to room membership with nothing left to clean it up.
	if in.client != nil {
		if _, ok := h.clients[in.client.ID]; !ok {
			return
		}
	}

	if in.malformed {
		h.sendError(in.client, "malformed event")
		return
	}

	switch in.env.Event {
	case EventJoinRoom:
		var d JoinRoomData
		if err := json.Unmarshal(in.env.Data, &d); err != nil || d.RoomID == "" {
			h.sendError(in.client, "join_room requires roomId")
			return
		}
		h.handleJoin(in.client, d)

	case EventLeaveRoom:
		var d LeaveRoomData
		if err := json.Unmarshal(in.env.Data, &d); err != nil || d.RoomID == "" {
			h.sendError(in.client, "leave_room requires roomId")
			return
		}
		h.handleLeave(in.client, d)

	case EventSendMessage:
		var d SendMessageData
		if err := json.Unmarshal(in.env.Data, &d); err != nil || d.RoomID == "" {
			h.sendError(in.client, "send_message requires roomId")
			return
		}
		h.handleChat(d)

	case EventSyncVideo:
		var d SyncVideoData
		if err := json.Unmarshal(in.env.Data, &d); err != nil || d.RoomID == "" {
			h.sendError(in.client, "sync_video requires roomId")
			return
		}
		h.handleSync(in.client, d)

	default:
		h.sendError(in.client, "unknown event "+in.env.Event)
	}
}

func (h *Hub) handleJoin(c *Client, d JoinRoomData) {
	if c == nil {
		return
	}

	if _, ok := h.members[d.RoomID]; !ok {
		h.members[d.RoomID] = make(map[string]*Client)
	}
	if _, joined := h.members[d.RoomID][c.ID]; joined {
		return
	}
	h.members[d.RoomID][c.ID] = c
	c.rooms[d.RoomID] = d.Username

	h.broadcastRoom(d.RoomID, c.ID, mustEnvelope(EventUserJoined, PresenceData{
		Username: d.Username,
		Message:  d.Username + " joined the party",
	}))

	// A late joiner converges from this one unicast; it is queued before any
	// later sync for the room since both go through this loop in order.
	if room, ok := h.registry.Get(d.RoomID); ok {
		h.send(c, mustEnvelope(EventCurrentRoomState, room.snapshot()))
	}

	logger.L().Info().Str("client_id", c.ID).Str("room_id", d.RoomID).Str("username", d.Username).Msg("joined room")
}

func (h *Hub) handleLeave(c *Client, d LeaveRoomData) {
	if c == nil {
		return
	}

	username := d.Username
	if username == "" {
		username = c.rooms[d.RoomID]
	}
	if !h.removeMember(d.RoomID, c) {
		return
	}

	h.broadcastRoom(d.RoomID, "", mustEnvelope(EventUserLeft, PresenceData{
		Username: username,
		Message:  username + " left the party",
	}))

	logger.L().Info().Str("client_id", c.ID).Str("room_id", d.RoomID).Msg("left room")
}

func (h *Hub) handleChat(d SendMessageData) {
	// Chat goes to every member, sender included; clients that echo
	// optimistically suppress the relayed copy themselves. A room with no
	// members is a no-op, not an error.
	h.broadcastRoom(d.RoomID, "", mustEnvelope(EventReceiveMessage, ReceiveMessageData{
		Username:  d.Username,
		Message:   d.Message,
		Timestamp: d.Timestamp,
	}))
}

func (h *Hub) handleSync(c *Client, d SyncVideoData) {
	if _, err := h.registry.Apply(d.RoomID, d); err != nil {
		logger.L().Warn().Str("room_id", d.RoomID).Err(err).Msg("dropping sync event")
		h.sendError(c, err.Error())
		return
	}
	incSync(d.Action)
	setRooms(h.registry.Len())

	out := ReceiveSyncData{Action: d.Action}
	switch d.Action {
	case ActionURLChange:
		out.Payload = &SyncPayload{URL: d.Payload.URL}
	case ActionSeek:
		out.Payload = &SyncPayload{Timestamp: d.Payload.Timestamp}
	}

	// Everyone but the sender: echoing an action back to its originator would
	// re-trigger the player event that produced it.
	exclude := ""
	if c != nil {
		exclude = c.ID
	}
	h.broadcastRoom(d.RoomID, exclude, mustEnvelope(EventReceiveSync, out))
}

// disconnect removes a client from every room it was joined to, announcing
// user_left for each. The source system stayed silent on ungraceful
// disconnects; membership is explicit here, so remaining members are told
// either way.
func (h *Hub) disconnect(c *Client) {
	if _, ok := h.clients[c.ID]; !ok {
		return
	}
	delete(h.clients, c.ID)

	for roomID, username := range c.rooms {
		if h.removeMember(roomID, c) {
			h.broadcastRoom(roomID, "", mustEnvelope(EventUserLeft, PresenceData{
				Username: username,
				Message:  username + " left the party",
			}))
		}
	}

	c.gone = true
	close(c.Send)
	decConnections()
	logger.L().Debug().Str("client_id", c.ID).Msg("client disconnected")
}

func (h *Hub) removeMember(roomID string, c *Client) bool {
	set, ok := h.members[roomID]
	if !ok {
		return false
	}
	if _, member := set[c.ID]; !member {
		return false
	}
	delete(set, c.ID)
	delete(c.rooms, roomID)
	if len(set) == 0 {
		delete(h.members, roomID)
	}
	return true
}

// send queues a message for one client; a client that cannot keep up is
// dropped so it never stalls the loop.
func (h *Hub) send(c *Client, msg []byte) bool {
	if c == nil || c.gone {
		return false
	}
	select {
	case c.Send <- msg:
		return true
	default:
		logger.L().Warn().Str("client_id", c.ID).Msg("send buffer full, evicting client")
		h.disconnect(c)
		return false
	}
}

func (h *Hub) sendError(c *Client, message string) {
	logger.L().Warn().Str("message", message).Msg("dropping client event")
	if c != nil {
		h.send(c, mustEnvelope(EventError, ErrorData{Message: message}))
	}
}

func (h *Hub) broadcastRoom(roomID, excludeID string, msg []byte) {
	delivered := 0
	for id, c := range h.members[roomID] {
		if id == excludeID {
			continue
		}
		if h.send(c, msg) {
			delivered++
		}
	}
	if delivered > 0 {
		addDelivered(delivered)
	}
}

func (h *Hub) roomSummaries() []RoomSummary {
	summaries := make([]RoomSummary, 0, h.registry.Len())
	seen := make(map[string]bool)

	for _, roomID := range h.registry.RoomIDs() {
		room, _ := h.registry.Get(roomID)
		summaries = append(summaries, RoomSummary{
			RoomID:    roomID,
			Members:   len(h.members[roomID]),
			VideoURL:  room.VideoURL,
			IsPlaying: room.IsPlaying,
		})
		seen[roomID] = true
	}

	// Rooms that have members but no playback state yet.
	for roomID, set := range h.members {
		if !seen[roomID] {
			summaries = append(summaries, RoomSummary{RoomID: roomID, Members: len(set)})
		}
	}

	return summaries
}

func (h *Hub) sweepIdleRooms() {
	cutoff := h.registry.now().Add(-h.idleRoomTTL)
	for _, roomID := range h.registry.RoomIDs() {
		if len(h.members[roomID]) > 0 {
			continue
		}
		if room, ok := h.registry.Get(roomID); ok && room.LastUpdated.Before(cutoff) {
			h.registry.Delete(roomID)
			logger.L().Info().Str("room_id", roomID).Msg("swept idle room")
		}
	}
	setRooms(h.registry.Len())
}
