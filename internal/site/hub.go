package site

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const writeWait = 5 * time.Second

var upgrader = websocket.Upgrader{}

// clickEvent is pushed to a client's open tabs after one of them clicks.
type clickEvent struct {
	Type string `json:"type"` // always "click"
	ID   string `json:"id"`
}

type conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *conn) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteJSON(v)
}

// Hub fans click events out to every open tab of the same client.
type Hub struct {
	mu    sync.Mutex
	conns map[string]map[*conn]struct{}
	log   logrus.FieldLogger
}

// NewHub returns an empty Hub.
func NewHub(log logrus.FieldLogger) *Hub {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Hub{conns: make(map[string]map[*conn]struct{}), log: log}
}

// Serve upgrades the request and keeps the connection registered for
// clientID until the peer goes away. Incoming messages are ignored.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, clientID string) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Debug("site: websocket upgrade")
		return
	}
	c := &conn{ws: ws}
	h.add(clientID, c)
	defer func() {
		h.remove(clientID, c)
		ws.Close()
	}()

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.WithError(err).Debug("site: websocket read")
			}
			return
		}
	}
}

// BroadcastClick tells every tab of clientID that itemID was clicked.
func (h *Hub) BroadcastClick(clientID, itemID string) {
	h.mu.Lock()
	targets := make([]*conn, 0, len(h.conns[clientID]))
	for c := range h.conns[clientID] {
		targets = append(targets, c)
	}
	h.mu.Unlock()

	ev := clickEvent{Type: "click", ID: itemID}
	for _, c := range targets {
		if err := c.writeJSON(ev); err != nil {
			h.log.WithError(err).WithField("client", clientID).Debug("site: websocket write")
		}
	}
}

// Count returns the number of open connections for clientID.
func (h *Hub) Count(clientID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns[clientID])
}

func (h *Hub) add(clientID string, c *conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.conns[clientID]
	if !ok {
		set = make(map[*conn]struct{})
		h.conns[clientID] = set
	}
	set[c] = struct{}{}
}

func (h *Hub) remove(clientID string, c *conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set := h.conns[clientID]
	delete(set, c)
	if len(set) == 0 {
		delete(h.conns, clientID)
	}
}
