package realtime

import (
	"encoding/json"
	"testing"
	"time"

	"ukulima/models"
)

func TestHubRegisterDeliverUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		Send:   make(chan []byte, 10),
		Room:   "uB",
		UserID: "uB",
	}
	hub.register <- client

	event := chatEvent{
		Event:   "receive_message",
		To:      "uB",
		Message: models.Message{Sender: "uA", Receiver: "uB", Content: "habari"},
	}
	data, _ := json.Marshal(event)
	hub.Deliver("uB", data)

	select {
	case got := <-client.Send:
		if string(got) != string(data) {
			t.Fatalf("expected %s, got %s", data, got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	hub.Unregister(client)
}

func TestHubUnregisterAfterStop(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{Send: make(chan []byte, 1), Room: "uC", UserID: "uC"}
	hub.register <- client
	hub.Stop()

	// a connection closing after shutdown must not block on the drained
	// unregister channel
	released := make(chan struct{})
	go func() {
		hub.Unregister(client)
		close(released)
	}()

	select {
	case <-released:
	case <-time.After(1 * time.Second):
		t.Fatal("unregister blocked after hub stop")
	}
}

func TestHubDeliverToEmptyRoom(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	// nobody connected: the event is dropped, not queued
	hub.Deliver("nobody", []byte("x"))

	client := &Client{Send: make(chan []byte, 1), Room: "nobody", UserID: "nobody"}
	hub.register <- client

	select {
	case msg := <-client.Send:
		t.Fatalf("expected no replay, got %s", msg)
	case <-time.After(100 * time.Millisecond):
	}
}
