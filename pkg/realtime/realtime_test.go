package realtime

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"ourlittleworld/pkg/optimistic"
)

type testNote struct {
	ID   string `json:"id"`
	Body string `json:"body"`
}

func (n testNote) EntityID() string { return n.ID }

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// startHub serves a Hub on an ephemeral port the way the server mounts
// it and returns the address to dial.
func startHub(t *testing.T) (*Hub, string) {
	t.Helper()

	hub := NewHub(newTestLogger())

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use("/realtime/:coupleId", UpgradeRequired)
	app.Get("/realtime/:coupleId", hub.Handler())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}

	go func() {
		_ = app.Listener(ln)
	}()
	t.Cleanup(func() { _ = app.Shutdown() })

	return hub, ln.Addr().String()
}

func connectSubscriber(t *testing.T, sub *Subscriber) {
	t.Helper()

	var err error
	for i := 0; i < 50; i++ {
		if err = sub.Connect(); err == nil {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("subscriber never connected: %v", err)
}

func waitForSubscribers(t *testing.T, hub *Hub, coupleID string, want int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		hub.mu.Lock()
		got := len(hub.rooms[coupleID])
		hub.mu.Unlock()
		if got >= want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("subscriber never registered with the hub")
}

func waitForEntry(t *testing.T, cache *optimistic.Cache[testNote], id string) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, ok := cache.View().Get(id); ok {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("entry %s never reached the cache", id)
}

func TestSubscriberAppliesBroadcastsIdempotently(t *testing.T) {
	hub, addr := startHub(t)

	cache := optimistic.NewCache(optimistic.NewSnapshot[testNote]())

	sub := NewSubscriber(fmt.Sprintf("ws://%s/realtime/couple-1", addr), func(event RawEvent) {
		var n testNote
		if err := json.Unmarshal(event.Entity, &n); err != nil {
			return
		}
		cache.Swap(func(s optimistic.Snapshot[testNote]) optimistic.Snapshot[testNote] {
			return s.Upsert(n)
		})
	}, newTestLogger())

	connectSubscriber(t, sub)
	defer sub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = sub.Listen(ctx) }()

	waitForSubscribers(t, hub, "couple-1", 1)

	// The same mutation arrives twice: once as the response-side
	// broadcast, once as an echo. Upsert by id keeps a single entry.
	event := Event{
		Type:     EventPostCreated,
		CoupleID: "couple-1",
		Entity:   testNote{ID: "srv-1", Body: "hello"},
	}
	hub.Broadcast(event)
	hub.Broadcast(event)

	// A broadcast for another couple's room must not reach this client.
	hub.Broadcast(Event{
		Type:     EventPostCreated,
		CoupleID: "couple-2",
		Entity:   testNote{ID: "srv-other", Body: "private"},
	})

	// The sentinel is ordered behind both duplicates on the same
	// connection; once it lands the duplicates have been applied.
	hub.Broadcast(Event{
		Type:     EventPostUpdated,
		CoupleID: "couple-1",
		Entity:   testNote{ID: "srv-2", Body: "done"},
	})
	waitForEntry(t, cache, "srv-2")

	final := cache.View()
	if final.Len() != 2 {
		t.Fatalf("cache len = %d, want 2 (duplicate delivery must not duplicate entries)", final.Len())
	}
	if got, ok := final.Get("srv-1"); !ok || got.Body != "hello" {
		t.Errorf("srv-1 = %+v, ok = %v; want body %q", got, ok, "hello")
	}
	if _, ok := final.Get("srv-other"); ok {
		t.Error("event for another couple leaked into the cache")
	}
}

func TestRealtimeRouteRejectsPlainHTTP(t *testing.T) {
	_, addr := startHub(t)

	var (
		resp *http.Response
		err  error
	)
	for i := 0; i < 50; i++ {
		resp, err = http.Get(fmt.Sprintf("http://%s/realtime/couple-1", addr))
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUpgradeRequired {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusUpgradeRequired)
	}
}
