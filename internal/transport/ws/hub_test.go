package ws

import (
	"encoding/json"
	"testing"
	"time"

	"feudlive/internal/model"
)

func receive(t *testing.T, conn *Connection) []byte {
	t.Helper()
	select {
	case data := <-conn.Send:
		return data
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a snapshot")
		return nil
	}
}

func expectSilence(t *testing.T, conn *Connection) {
	t.Helper()
	select {
	case data := <-conn.Send:
		t.Fatalf("expected no message, got %s", data)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestBroadcastReachesViewersOfThatGameOnly(t *testing.T) {
	hub := NewHub()

	viewer := &Connection{GameCode: "AAAAAA", Send: make(chan []byte, 8), Hub: hub}
	other := &Connection{GameCode: "BBBBBB", Send: make(chan []byte, 8), Hub: hub}
	hub.Register(viewer)
	hub.Register(other)

	game := &model.Game{Code: "AAAAAA", Status: model.GameInProgress, RedScore: 40}
	hub.BroadcastGameState("AAAAAA", game)

	data := receive(t, viewer)

	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("bad envelope: %v", err)
	}
	if msg.Type != MsgGameState {
		t.Fatalf("type = %s, want %s", msg.Type, MsgGameState)
	}

	var snapshot model.Game
	if err := json.Unmarshal(msg.Payload, &snapshot); err != nil {
		t.Fatalf("bad payload: %v", err)
	}
	if snapshot.Code != "AAAAAA" || snapshot.RedScore != 40 {
		t.Fatalf("unexpected snapshot %+v", snapshot)
	}

	expectSilence(t, other)
}

func TestUnregisterClosesSendChannel(t *testing.T) {
	hub := NewHub()

	viewer := &Connection{GameCode: "AAAAAA", Send: make(chan []byte, 8), Hub: hub}
	hub.Register(viewer)
	hub.Unregister(viewer)

	select {
	case _, ok := <-viewer.Send:
		if ok {
			t.Fatal("expected the send channel to be closed, got a message")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the send channel to close")
	}

	// A snapshot after disconnect must not panic on the closed channel.
	hub.BroadcastGameState("AAAAAA", &model.Game{Code: "AAAAAA"})
	time.Sleep(50 * time.Millisecond)
}
