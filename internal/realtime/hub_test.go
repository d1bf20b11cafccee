package realtime

import (
	"testing"

	"github.com/gorilla/websocket"
)

func TestAttachReplacesExistingSession(t *testing.T) {
	hub := NewHub()

	first := NewConnection(1, newTestSocket(t))
	hub.Attach(first)
	hub.Subscribe(PairTopic(1, 2), first)

	second := NewConnection(1, newTestSocket(t))
	hub.Attach(second)
	hub.Subscribe(PairTopic(1, 2), second)

	if !hub.HasUser(1) {
		t.Fatal("user must stay attached through the swap")
	}

	// The replaced session is closed; sending through it fails cleanly
	if err := first.Send([]byte("stale")); err == nil {
		t.Fatal("replaced session must reject sends")
	}

	// Fan-out reaches only the live session
	if delivered := hub.Fanout(PairTopic(1, 2), []byte("hello")); delivered != 1 {
		t.Fatalf("expected delivery to 1 session, got %d", delivered)
	}
}

func TestDetachRemovesSubscriptions(t *testing.T) {
	hub := NewHub()

	conn := NewConnection(1, newTestSocket(t))
	hub.Attach(conn)
	hub.Subscribe(PairTopic(1, 2), conn)

	hub.Detach(conn)

	if hub.HasUser(1) {
		t.Fatal("detached user must not be tracked")
	}
	if delivered := hub.Fanout(PairTopic(1, 2), []byte("hello")); delivered != 0 {
		t.Fatalf("expected no deliveries after detach, got %d", delivered)
	}
}

func TestNotifyUserTargetsCurrentSession(t *testing.T) {
	hub := NewHub()

	conn := NewConnection(7, newTestSocket(t))
	hub.Attach(conn)

	if !hub.NotifyUser(7, []byte("ping")) {
		t.Fatal("notify must reach the attached session")
	}
	if hub.NotifyUser(8, []byte("ping")) {
		t.Fatal("notify for an absent user must report failure")
	}

	hub.Detach(conn)
	conn.Close(websocket.CloseNormalClosure, "bye")

	if hub.NotifyUser(7, []byte("ping")) {
		t.Fatal("notify after detach must report failure")
	}
}
