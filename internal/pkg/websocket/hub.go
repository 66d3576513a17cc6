package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Hub maintains the set of connected clients keyed by member id and
// delivers direct-message events to them. Messages are created over the
// REST API; the hub is delivery-only.
type Hub struct {
	// Connected clients organized by member ID. One member may hold
	// several connections (multiple tabs or devices).
	clients map[int64]map[*Client]bool

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Outbound events waiting for delivery
	deliver chan *Event

	mu sync.RWMutex

	logger zerolog.Logger
}

// Event is a payload pushed to a connected member
type Event struct {
	// Type of event, currently only "message"
	Type string `json:"type"`

	// Member the event is addressed to, never serialized
	RecipientID int64 `json:"-"`

	// Conversation the message belongs to
	ConversationID int64 `json:"conversationId"`

	// Member who sent the message
	SenderID int64 `json:"senderId"`

	// Message content
	Content string `json:"content"`

	// Message ID from the database
	ID int64 `json:"id,omitempty"`

	// Timestamp when the message was created
	Timestamp time.Time `json:"timestamp"`
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[int64]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		deliver:    make(chan *Event, 64),
		logger:     logger,
	}
}

// Run starts the hub, handling client registrations and deliveries
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case event := <-h.deliver:
			h.deliverEvent(event)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.userID]; !ok {
		h.clients[client.userID] = make(map[*Client]bool)
	}
	h.clients[client.userID][client] = true

	h.logger.Info().
		Int64("userID", client.userID).
		Str("addr", client.conn.RemoteAddr().String()).
		Msg("Client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.clients[client.userID]; ok {
		if _, ok := conns[client]; ok {
			delete(conns, client)
			close(client.send)

			if len(conns) == 0 {
				delete(h.clients, client.userID)
			}

			h.logger.Info().
				Int64("userID", client.userID).
				Msg("Client unregistered")
		}
	}
}

func (h *Hub) deliverEvent(event *Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	conns, ok := h.clients[event.RecipientID]
	if !ok {
		h.logger.Debug().
			Int64("recipientID", event.RecipientID).
			Msg("Recipient not connected, skipping delivery")
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("recipientID", event.RecipientID).
			Msg("Failed to marshal event for delivery")
		return
	}

	for client := range conns {
		select {
		case client.send <- data:
		default:
			// Client's send buffer is full, they might be slow or
			// disconnected. Unregister and close their connection.
			h.mu.RUnlock()
			h.unregister <- client
			h.mu.RLock()
		}
	}
}

// SendToUser queues an event for delivery to one member's connections.
// Delivery is best effort; disconnected members read the message over
// the REST API later.
func (h *Hub) SendToUser(event *Event) {
	select {
	case h.deliver <- event:
	default:
		h.logger.Warn().
			Int64("recipientID", event.RecipientID).
			Msg("Delivery queue full, dropping event")
	}
}

// GetClientsCount returns the number of active connections for a member
func (h *Hub) GetClientsCount(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if conns, ok := h.clients[userID]; ok {
		return len(conns)
	}
	return 0
}
