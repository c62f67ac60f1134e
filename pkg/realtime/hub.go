package realtime

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

// Event is one entity change pushed to every subscribed client of a
// couple. Entity carries the full authoritative record so subscribers
// can upsert by id without a refetch.
type Event struct {
	Type     string      `json:"type"`
	CoupleID string      `json:"couple_id"`
	Entity   interface{} `json:"entity"`
}

const (
	EventTransactionCreated = "transaction.created"
	EventTransactionUpdated = "transaction.updated"
	EventTransactionDeleted = "transaction.deleted"
	EventBudgetUpdated      = "budget.updated"
	EventGoalUpdated        = "goal.updated"
	EventPostCreated        = "post.created"
	EventPostUpdated        = "post.updated"
	EventPostDeleted        = "post.deleted"
	EventMoodUpdated        = "mood.updated"
)

// Broadcaster is what the domain services see; they publish after every
// successful mutation and never block on slow clients.
type Broadcaster interface {
	Broadcast(event Event)
}

type Hub struct {
	mu           sync.Mutex
	rooms        map[string]map[*websocket.Conn]bool
	log          *logrus.Logger
	writeTimeout time.Duration
}

func NewHub(log *logrus.Logger) *Hub {
	return &Hub{
		rooms:        make(map[string]map[*websocket.Conn]bool),
		log:          log,
		writeTimeout: 5 * time.Second,
	}
}

// UpgradeRequired gates the realtime route so plain HTTP requests get a
// clear 426 instead of a handshake failure.
func UpgradeRequired(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Handler upgrades the connection and parks it in the couple's room
// until the client goes away.
func (h *Hub) Handler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		coupleID := conn.Params("coupleId")
		if coupleID == "" {
			conn.Close()
			return
		}

		h.register(coupleID, conn)
		defer h.unregister(coupleID, conn)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
}

func (h *Hub) register(coupleID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[coupleID] == nil {
		h.rooms[coupleID] = make(map[*websocket.Conn]bool)
	}
	h.rooms[coupleID][conn] = true

	h.log.WithFields(logrus.Fields{
		"couple_id":   coupleID,
		"subscribers": len(h.rooms[coupleID]),
	}).Debug("Realtime subscriber joined")
}

func (h *Hub) unregister(coupleID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if room, ok := h.rooms[coupleID]; ok {
		delete(room, conn)
		if len(room) == 0 {
			delete(h.rooms, coupleID)
		}
	}
	conn.Close()
}

// Broadcast fans an event out to the couple's room, dropping dead
// connections as it finds them.
func (h *Hub) Broadcast(event Event) {
	payload, err := jsoniter.Marshal(event)
	if err != nil {
		h.log.WithFields(logrus.Fields{
			"type":  event.Type,
			"error": err.Error(),
		}).Error("Failed to marshal realtime event")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	room := h.rooms[event.CoupleID]
	for conn := range room {
		conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.log.WithFields(logrus.Fields{
				"couple_id": event.CoupleID,
				"error":     err.Error(),
			}).Warn("Dropping dead realtime subscriber")
			delete(room, conn)
			conn.Close()
		}
	}
}
