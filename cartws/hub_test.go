package cartws

import (
	"encoding/json"
	"testing"
	"time"

	"neonpet/cart"
	"neonpet/models"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	// create fake client
	client := &Client{
		Send:   make(chan []byte, 10),
		UserID: "u1",
	}

	// register client
	hub.register <- client

	// broadcast a test message
	msg := cartPayload{Action: "cart", TotalItems: 2, Total: 160}
	data, _ := json.Marshal(msg)
	hub.broadcast <- broadcastMsg{UserID: "u1", Data: data}

	select {
	case got := <-client.Send:
		if string(got) != string(data) {
			t.Fatalf("expected %s, got %s", data, got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	// unregister client
	hub.unregister <- client
}

func TestNotifyOnChangePushesAfterMutation(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		Send:   make(chan []byte, 10),
		UserID: "u1",
	}
	hub.register <- client

	store := cart.NewStore()
	hub.NotifyOnChange("u1", store)

	store.AddItem(models.CartItem{ProductID: "p1", Name: "Dog Food", Price: 80, OriginalPrice: 100, Discount: 20})

	select {
	case got := <-client.Send:
		var payload cartPayload
		if err := json.Unmarshal(got, &payload); err != nil {
			t.Fatalf("bad payload: %v", err)
		}
		if payload.TotalItems != 1 || payload.Total != 80 {
			t.Fatalf("unexpected payload %+v", payload)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for cart notification")
	}
}

func TestNotifyOnChangeResubscribesFreshStore(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{Send: make(chan []byte, 10), UserID: "u1"}
	hub.register <- client

	reg := cart.NewRegistry()
	hub.NotifyOnChange("u1", reg.Get("u1"))

	// logout discards the store; the next session gets a fresh one
	reg.Drop("u1")
	fresh := reg.Get("u1")
	hub.NotifyOnChange("u1", fresh)

	fresh.AddItem(models.CartItem{ProductID: "p1", Name: "Bird Seed", Price: 5, OriginalPrice: 5})

	select {
	case <-client.Send:
	case <-time.After(1 * time.Second):
		t.Fatal("fresh store after Drop was not subscribed")
	}
}

func TestDropDoesNotBlockAfterStop(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{Send: make(chan []byte, 10), UserID: "u1"}
	hub.register <- client

	hub.Stop()

	returned := make(chan struct{})
	go func() {
		hub.drop(client)
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(1 * time.Second):
		t.Fatal("drop blocked after hub stop")
	}
}

func TestBroadcastDoesNotLeakAcrossUsers(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	c1 := &Client{Send: make(chan []byte, 10), UserID: "u1"}
	c2 := &Client{Send: make(chan []byte, 10), UserID: "u2"}
	hub.register <- c1
	hub.register <- c2

	hub.broadcast <- broadcastMsg{UserID: "u1", Data: []byte(`{"action":"cart"}`)}

	select {
	case <-c1.Send:
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for u1 message")
	}

	select {
	case got := <-c2.Send:
		t.Fatalf("u2 received u1's message: %s", got)
	case <-time.After(100 * time.Millisecond):
	}
}
