package services

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/vikashchaurasiya2005/cab-booking-portal/pkg/logger"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// Client represents a connected vendor session. A session that presented
// no valid credential at handshake time stays connected but is subscribed
// to neither the private nor the broadcast channel.
type Client struct {
	VendorID   uint
	Subscribed bool
	Conn       *websocket.Conn
	Send       chan []byte
	Hub        *Hub
}

// Hub maintains the set of active sessions and routes events to the
// per-vendor private channels and the shared broadcast channel.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	log        logger.ILogger
}

// NewHub creates a new WebSocket hub
func NewHub(log logger.ILogger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		log:        log,
	}
}

// Run starts the hub
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()
			h.log.Info("session connected", logger.Uint("vendorId", client.VendorID), logger.Any("subscribed", client.Subscribed))

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mutex.Unlock()
			h.log.Info("session disconnected", logger.Uint("vendorId", client.VendorID))
		}
	}
}

// NotifyVendor publishes an event on a vendor's private channel. Delivery
// is best-effort: sessions whose send buffer is full are skipped.
func (h *Hub) NotifyVendor(vendorID uint, event string, payload interface{}) {
	data, err := json.Marshal(Envelope{Event: event, Data: payload})
	if err != nil {
		h.log.Error("marshal event", logger.String("event", event), logger.Error(err))
		return
	}

	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for client := range h.clients {
		if client.Subscribed && client.VendorID == vendorID {
			select {
			case client.Send <- data:
			default:
				h.log.Warning("send buffer full, dropping event", logger.Uint("vendorId", client.VendorID), logger.String("event", event))
			}
		}
	}
}

// NotifyAllVendors publishes an event on the shared broadcast channel.
func (h *Hub) NotifyAllVendors(event string, payload interface{}) {
	data, err := json.Marshal(Envelope{Event: event, Data: payload})
	if err != nil {
		h.log.Error("marshal event", logger.String("event", event), logger.Error(err))
		return
	}

	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for client := range h.clients {
		if client.Subscribed {
			select {
			case client.Send <- data:
			default:
				h.log.Warning("send buffer full, dropping event", logger.Uint("vendorId", client.VendorID), logger.String("event", event))
			}
		}
	}
}

// ConnectedClients returns the number of connected sessions
func (h *Hub) ConnectedClients() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// HandleWebSocket upgrades the request and registers the session.
// Unauthenticated sessions are accepted but channel-less; they can still
// use the REST read path.
func HandleWebSocket(hub *Hub, w http.ResponseWriter, r *http.Request, vendorID uint, subscribed bool) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		hub.log.Error("websocket upgrade", logger.Error(err))
		return
	}

	client := &Client{
		VendorID:   vendorID,
		Subscribed: subscribed,
		Conn:       conn,
		Send:       make(chan []byte, 256),
		Hub:        hub,
	}

	client.Hub.register <- client

	go client.writePump()
	go client.readPump()
}

// readPump drains the connection until it closes. No client-to-server
// message types are defined on this transport; inbound frames are ignored.
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.log.Warning("websocket read", logger.Error(err))
			}
			break
		}
	}
}

// writePump pumps events from the hub to the websocket connection
func (c *Client) writePump() {
	defer c.Conn.Close()

	for message := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			c.Hub.log.Warning("websocket write", logger.Error(err))
			return
		}
	}
	c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}
