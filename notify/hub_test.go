package notify

import (
	"encoding/json"
	"testing"
	"time"

	"reidossalgados/models"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{Send: make(chan []byte, 10)}
	hub.register <- client

	hub.OrderCreated(models.Order{
		OrderID: "12345678",
		Status:  models.StatusPending,
		Total:   3200,
	})

	select {
	case got := <-client.Send:
		var ev Event
		if err := json.Unmarshal(got, &ev); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if ev.Action != "order-created" || ev.OrderID != "12345678" {
			t.Fatalf("unexpected event: %+v", ev)
		}
		if ev.Total != 32.00 {
			t.Errorf("total = %v, want 32.00", ev.Total)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for event")
	}

	hub.unregister <- client
}

func TestHubDropsSlowConsumer(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	slow := &Client{Send: make(chan []byte)} // unbuffered, never read
	hub.register <- slow

	hub.OrderUpdated(models.Order{OrderID: "1", Status: models.StatusReady})

	select {
	case _, ok := <-slow.Send:
		if ok {
			t.Fatal("expected the slow client's channel to be closed")
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for channel close")
	}
}
