package core

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/nahidmursaline/Real-time-chat-server/internal/store"
)

func TestRelayPublishBroadcastsToAllMembers(t *testing.T) {
	st := newMemStore()
	registry := NewRegistry()
	relay := NewRelay(st, registry, nopLogger())

	sender := NewSession("a", registry)
	peer := NewSession("b", registry)
	outsider := NewSession("c", registry)

	registry.Join(sender, "general")
	registry.Join(peer, "general")
	registry.Join(outsider, "random")

	msg, err := relay.Publish(context.Background(), "general", "alice", "hi")
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if msg.ID == 0 {
		t.Fatal("expected persistence-assigned id")
	}
	if msg.CreatedAt.IsZero() {
		t.Fatal("expected server-assigned timestamp")
	}

	// Sender receives its own message back; no self-exclusion.
	for _, s := range []*Session{sender, peer} {
		ev := mustEvent(t, s.Events, EventNewMessage)
		if ev.Message.ID != msg.ID || ev.Message.Author != "alice" || ev.Message.Body != "hi" {
			t.Fatalf("unexpected broadcast payload: %+v", ev.Message)
		}
	}

	mustNoEvent(t, outsider.Events)

	// Exactly one copy each.
	mustNoEvent(t, sender.Events)
	mustNoEvent(t, peer.Events)
}

func TestRelayPublishFailureSkipsBroadcast(t *testing.T) {
	st := newMemStore()
	st.setFail(true)
	registry := NewRegistry()
	relay := NewRelay(st, registry, nopLogger())

	member := NewSession("a", registry)
	registry.Join(member, "general")

	_, err := relay.Publish(context.Background(), "general", "alice", "hi")
	if err == nil {
		t.Fatal("expected error from failed persist")
	}
	if !store.IsStorageError(err) {
		t.Fatalf("expected storage error, got %v", err)
	}

	mustNoEvent(t, member.Events)
	if st.count() != 0 {
		t.Fatalf("failed publish stored %d messages", st.count())
	}
}

func TestRelayPublishValidation(t *testing.T) {
	st := newMemStore()
	registry := NewRegistry()
	relay := NewRelay(st, registry, nopLogger())

	tests := []struct {
		name   string
		roomID string
		body   string
	}{
		{name: "missing room", roomID: "", body: "hi"},
		{name: "empty body", roomID: "general", body: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := relay.Publish(context.Background(), tt.roomID, "alice", tt.body)
			var ce *CoreError
			if !errors.As(err, &ce) || ce.Code != ErrCodeBadRequest {
				t.Fatalf("expected bad_request, got %v", err)
			}
			if st.count() != 0 {
				t.Fatal("validation failure must not persist")
			}
		})
	}
}

func TestRelayPublishOrderPerRoom(t *testing.T) {
	st := newMemStore()
	registry := NewRegistry()
	relay := NewRelay(st, registry, nopLogger())

	// Large buffer so nothing is dropped while we publish.
	member := NewSession("a", registry)
	member.Events = make(chan *Event, 64)
	registry.Join(member, "general")

	const n = 20
	for i := range n {
		if _, err := relay.Publish(context.Background(), "general", "alice", fmt.Sprintf("m%d", i)); err != nil {
			t.Fatalf("publish %d: %v", i, err)
		}
	}

	var lastID int64
	for range n {
		ev := mustEvent(t, member.Events, EventNewMessage)
		if ev.Message.ID <= lastID {
			t.Fatalf("out of order delivery: %d after %d", ev.Message.ID, lastID)
		}
		lastID = ev.Message.ID
	}
}

func TestRelayPublishAfterPurgeDeliversNothing(t *testing.T) {
	st := newMemStore()
	registry := NewRegistry()
	relay := NewRelay(st, registry, nopLogger())

	gone := NewSession("a", registry)
	registry.Join(gone, "general")
	gone.Disconnect()

	if _, err := relay.Publish(context.Background(), "general", "bob", "anyone there"); err != nil {
		t.Fatalf("publish: %v", err)
	}

	mustNoEvent(t, gone.Events)
	// The message is still persisted; broadcast is gated on membership only.
	if st.count() != 1 {
		t.Fatalf("expected 1 stored message, got %d", st.count())
	}
}

func TestRelaySaveMatchesPublishShape(t *testing.T) {
	st := newMemStore()
	registry := NewRegistry()
	relay := NewRelay(st, registry, nopLogger())

	saved, err := relay.Save(context.Background(), "general", "alice", "via rest")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	published, err := relay.Publish(context.Background(), "general", "alice", "via ws")
	if err != nil {
		t.Fatalf("publish: %v", err)
	}

	msgs, err := st.ListMessages(context.Background(), "general")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 stored messages, got %d", len(msgs))
	}
	if msgs[0].ID != saved.ID || msgs[0].Body != "via rest" {
		t.Fatalf("unexpected stored rest message: %+v", msgs[0])
	}
	if msgs[1].ID != published.ID || msgs[1].Body != "via ws" {
		t.Fatalf("unexpected stored ws message: %+v", msgs[1])
	}
}
