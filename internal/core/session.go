package core

import "sync"

// Session is one live transport connection as seen by the core layer.
// The transport pushes typed commands onto Commands and drains Events
// back to the wire; neither channel is ever closed by the core.
type Session struct {
	ID       string
	Commands chan *Command
	Events   chan *Event

	registry *Registry
	once     sync.Once
}

// NewSession constructs a session with initialized channels.
func NewSession(id string, registry *Registry) *Session {
	return &Session{
		ID:       id,
		Commands: make(chan *Command, 8),
		Events:   make(chan *Event, 16),
		registry: registry,
	}
}

// JoinRoom subscribes the session to a room. Idempotent.
func (s *Session) JoinRoom(roomID string) {
	s.registry.Join(s, roomID)
}

// LeaveRoom unsubscribes the session from a room. No-op if not a member.
func (s *Session) LeaveRoom(roomID string) {
	s.registry.Leave(s, roomID)
}

// Disconnect purges the session from every room it joined. Safe to call
// multiple times; the purge runs exactly once. The Events channel stays
// open so a broadcast snapshot taken just before the purge can still
// complete its delivery.
func (s *Session) Disconnect() {
	s.once.Do(func() {
		s.registry.Purge(s)
	})
}

// send enqueues an event without blocking. Slow consumers are dropped.
func (s *Session) send(ev *Event) {
	select {
	case s.Events <- ev:
	default:
	}
}
