package core

import "github.com/nahidmursaline/Real-time-chat-server/internal/store"

// EventKind is a notification the core emits to sessions.
type EventKind int

const (
	// EventNewMessage carries a persisted chat message to room members.
	EventNewMessage EventKind = iota
	// EventError notifies the originating session about a domain error.
	EventError
)

// Event is sent to sessions to describe what happened in the system.
type Event struct {
	Kind    EventKind
	Message *store.Message // non-nil for EventNewMessage
	Error   *CoreError     // non-nil for EventError
}
