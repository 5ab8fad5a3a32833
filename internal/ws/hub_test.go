package ws

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublish_QueuesEncodedEvent(t *testing.T) {
	hub := NewHub(nil)

	hub.Publish(map[string]interface{}{"type": "stock_update", "action": "stock_created"})

	select {
	case msg := <-hub.Broadcast:
		assert.JSONEq(t, `{"type":"stock_update","action":"stock_created"}`, string(msg))
	default:
		t.Fatal("expected a queued message")
	}
}

func TestPublish_DropsWhenQueueFull(t *testing.T) {
	hub := NewHub(nil)
	for i := 0; i < cap(hub.Broadcast); i++ {
		hub.Publish(i)
	}

	done := make(chan struct{})
	go func() {
		hub.Publish("overflow")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a full queue")
	}
	assert.Len(t, hub.Broadcast, cap(hub.Broadcast))
}

func TestRun_StopsAndDrainsBroadcasts(t *testing.T) {
	hub := NewHub(nil)
	stopped := make(chan struct{})
	go func() {
		hub.Run()
		close(stopped)
	}()

	hub.Publish("no clients")
	hub.Stop()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Stop")
	}
	assert.Zero(t, hub.Count())

	// publishing after stop must not block
	hub.Publish("late")
}

func TestJoin_AfterStopReturns(t *testing.T) {
	hub := NewHub(nil)
	hub.Stop()

	joined := make(chan bool)
	go func() { joined <- hub.join(nil) }()

	select {
	case ok := <-joined:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("join blocked on a stopped hub")
	}
}

func TestUpgrade_RejectsPlainHTTP(t *testing.T) {
	app := fiber.New()
	app.Use("/ws", Upgrade)
	app.Get("/ws", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	resp, err := app.Test(httptest.NewRequest("GET", "/ws", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}
