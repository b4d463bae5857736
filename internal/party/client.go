package party

import (
	"encoding/json"
	"sync"
	"time"

	"watch-party-backend/internal/logger"

	"github.com/gorilla/websocket"
)

const (
	sendBufferSize = 32
	pingInterval   = 30 * time.Second
	maxMessageSize = 64 * 1024
)

// Client is one websocket connection. The rooms map (roomID -> username used
// in that room) is touched only by the hub goroutine.
type Client struct {
	ID   string
	Conn *websocket.Conn
	Send chan []byte

	rooms map[string]string
	gone  bool // set by the hub once Send is closed; hub goroutine only

	done     chan struct{}
	mu       sync.Mutex
	isClosed bool
}

func newClient(id string, conn *websocket.Conn) *Client {
	return &Client{
		ID:    id,
		Conn:  conn,
		Send:  make(chan []byte, sendBufferSize),
		rooms: make(map[string]string),
		done:  make(chan struct{}),
	}
}

func (cl *Client) keepAlive() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-cl.done:
			return
		case <-ticker.C:
			cl.mu.Lock()
			if cl.isClosed {
				cl.mu.Unlock()
				return
			}
			err := cl.Conn.WriteMessage(websocket.PingMessage, nil)
			cl.mu.Unlock()

			if err != nil {
				logger.L().Debug().Str("client_id", cl.ID).Err(err).Msg("ping failed")
				return
			}
		}
	}
}

func (cl *Client) writeMessages() {
	defer func() {
		cl.mu.Lock()
		cl.isClosed = true
		cl.Conn.Close()
		cl.mu.Unlock()
	}()

	for {
		select {
		case <-cl.done:
			return
		case msg, ok := <-cl.Send:
			if !ok {
				return
			}

			cl.mu.Lock()
			if cl.isClosed {
				cl.mu.Unlock()
				return
			}
			err := cl.Conn.WriteMessage(websocket.TextMessage, msg)
			cl.mu.Unlock()

			if err != nil {
				logger.L().Debug().Str("client_id", cl.ID).Err(err).Msg("write failed")
				return
			}
		}
	}
}

func (cl *Client) readMessages(hub *Hub) {
	defer func() {
		if r := recover(); r != nil {
			logger.L().Error().Interface("panic", r).Msg("recovered in readMessages")
		}

		close(cl.done)
		hub.Unregister <- cl
	}()

	cl.Conn.SetReadLimit(maxMessageSize)

	for {
		_, message, err := cl.Conn.ReadMessage()
		if err != nil {
			if closeErr, ok := err.(*websocket.CloseError); ok {
				if closeErr.Code == websocket.CloseNormalClosure ||
					closeErr.Code == websocket.CloseGoingAway ||
					closeErr.Code == websocket.CloseNoStatusReceived {
					break
				}
			}
			logger.L().Debug().Str("client_id", cl.ID).Err(err).Msg("read failed")
			break
		}

		var env Envelope
		if err := json.Unmarshal(message, &env); err != nil || env.Event == "" {
			// Routed through the hub so the error unicast happens on the one
			// goroutine allowed to touch Send.
			hub.Events <- inbound{client: cl, malformed: true}
			continue
		}

		hub.Events <- inbound{client: cl, env: env}
	}
}
