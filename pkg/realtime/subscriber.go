package realtime

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// RawEvent mirrors Event with the entity payload left undecoded so each
// cache layer can unmarshal into its own type.
type RawEvent struct {
	Type     string          `json:"type"`
	CoupleID string          `json:"couple_id"`
	Entity   json.RawMessage `json:"entity"`
}

// Subscriber is the client half of the realtime channel: it dials the
// hub and pipes every decoded event into the apply callback, which must
// upsert by entity id so deliveries racing a mutation response stay
// idempotent.
type Subscriber struct {
	url   string
	apply func(RawEvent)
	log   *logrus.Logger

	mu   sync.Mutex
	conn *websocket.Conn
}

func NewSubscriber(url string, apply func(RawEvent), log *logrus.Logger) *Subscriber {
	return &Subscriber{
		url:   url,
		apply: apply,
		log:   log,
	}
}

func (s *Subscriber) Connect() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
	}

	dialer := websocket.DefaultDialer
	dialer.HandshakeTimeout = 10 * time.Second

	conn, _, err := dialer.Dial(s.url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", s.url, err)
	}

	conn.SetPingHandler(func(appData string) error {
		return conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(5*time.Second))
	})

	s.conn = conn
	return nil
}

// Listen reads events until the context is cancelled or the connection
// drops. There is no automatic reconnect; the owner decides when a
// session is worth reviving.
func (s *Subscriber) Listen(ctx context.Context) error {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()

	if conn == nil {
		return fmt.Errorf("subscriber is not connected")
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		_, payload, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		var event RawEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			s.log.WithFields(logrus.Fields{
				"error": err.Error(),
			}).Warn("Dropping malformed realtime event")
			continue
		}

		s.apply(event)
	}
}

func (s *Subscriber) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
	}
}
