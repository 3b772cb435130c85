package core

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/nahidmursaline/Real-time-chat-server/internal/store"
)

// Hub owns the registry and relay and dispatches session commands. Each
// registered session gets its own dispatch goroutine, so commands from one
// connection are applied in order while different connections, and
// publishes to different rooms, proceed in parallel.
type Hub struct {
	registry *Registry
	relay    *Relay
	log      *zerolog.Logger
}

// NewHub creates a hub over the given message store.
func NewHub(st store.MessageStore, logger *zerolog.Logger) *Hub {
	registry := NewRegistry()
	return &Hub{
		registry: registry,
		relay:    NewRelay(st, registry, logger),
		log:      logger,
	}
}

// Relay exposes the publish path for non-realtime callers.
func (h *Hub) Relay() *Relay {
	return h.relay
}

// NewSession constructs a session bound to this hub's registry.
func (h *Hub) NewSession(id string) *Session {
	return NewSession(id, h.registry)
}

// RegisterSession starts dispatching the session's commands until ctx is
// done or the Commands channel is closed.
func (h *Hub) RegisterSession(ctx context.Context, s *Session) {
	go h.dispatchLoop(ctx, s)
}

// UnregisterSession purges the session from every room. Called exactly once
// per connection by the transport, on any kind of teardown.
func (h *Hub) UnregisterSession(s *Session) {
	s.Disconnect()
	h.log.Debug().Str("session_id", s.ID).Msg("session purged")
}

func (h *Hub) dispatchLoop(ctx context.Context, s *Session) {
	for {
		select {
		case cmd, ok := <-s.Commands:
			if !ok {
				return
			}
			h.dispatch(ctx, s, cmd)
		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) dispatch(ctx context.Context, s *Session, cmd *Command) {
	switch cmd.Kind {
	case CommandJoinRoom:
		s.JoinRoom(cmd.Room)
		h.log.Debug().Str("session_id", s.ID).Str("room_id", cmd.Room).Msg("joined room")
	case CommandLeaveRoom:
		s.LeaveRoom(cmd.Room)
		h.log.Debug().Str("session_id", s.ID).Str("room_id", cmd.Room).Msg("left room")
	case CommandSendMessage:
		if _, err := h.relay.Publish(ctx, cmd.Room, cmd.Author, cmd.Body); err != nil {
			// Reported to the originating session only; other members
			// never see a failed publish.
			s.send(&Event{Kind: EventError, Error: asCoreError(err)})
		}
	}
}

func asCoreError(err error) *CoreError {
	var ce *CoreError
	if errors.As(err, &ce) {
		return ce
	}
	if store.IsStorageError(err) {
		return coreError(ErrCodeStorage, "message could not be stored")
	}
	return coreError(ErrCodeStorage, err.Error())
}
