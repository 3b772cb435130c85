package core

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/nahidmursaline/Real-time-chat-server/internal/store"
)

// Relay orchestrates the publish path: validate, persist, then fan out to
// the room's current members. Publishes to the same room are serialized so
// members observe messages in persistence order; publishes to different
// rooms run in parallel.
type Relay struct {
	store    store.MessageStore
	registry *Registry
	log      *zerolog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewRelay constructs a relay over the given message store and registry.
func NewRelay(st store.MessageStore, registry *Registry, logger *zerolog.Logger) *Relay {
	return &Relay{
		store:    st,
		registry: registry,
		log:      logger,
		locks:    make(map[string]*sync.Mutex),
	}
}

// Publish validates and persists a message, then broadcasts it to every
// session currently joined to the room, sender included. A persistence
// failure aborts before any broadcast and is reported to the caller only.
func (r *Relay) Publish(ctx context.Context, roomID, author, body string) (*store.Message, error) {
	if err := validate(roomID, body); err != nil {
		return nil, err
	}

	// Hold the per-room publish lock across persist and fan-out so the
	// delivery order matches persistence order. The registry mutex is
	// only taken inside MembersOf, never across the store call.
	lock := r.roomLock(roomID)
	lock.Lock()
	defer lock.Unlock()

	msg := &store.Message{
		RoomID:    roomID,
		Author:    author,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.store.SaveMessage(ctx, msg); err != nil {
		r.log.Error().Err(err).Str("room_id", roomID).Msg("persist message failed")
		return nil, err
	}

	members := r.registry.MembersOf(roomID)
	for _, s := range members {
		s.send(&Event{Kind: EventNewMessage, Message: msg})
	}

	r.log.Debug().
		Str("room_id", roomID).
		Int64("message_id", msg.ID).
		Int("recipients", len(members)).
		Msg("message broadcast")
	return msg, nil
}

// Save validates and persists a message without broadcasting. This is the
// request/response publish path; it writes through the same persistence
// contract as Publish and produces structurally identical rows.
func (r *Relay) Save(ctx context.Context, roomID, author, body string) (*store.Message, error) {
	if err := validate(roomID, body); err != nil {
		return nil, err
	}

	msg := &store.Message{
		RoomID:    roomID,
		Author:    author,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.store.SaveMessage(ctx, msg); err != nil {
		r.log.Error().Err(err).Str("room_id", roomID).Msg("persist message failed")
		return nil, err
	}
	return msg, nil
}

func (r *Relay) roomLock(roomID string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()

	lock, ok := r.locks[roomID]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[roomID] = lock
	}
	return lock
}

func validate(roomID, body string) error {
	if roomID == "" {
		return coreError(ErrCodeBadRequest, ErrRoomRequired.Error())
	}
	if body == "" {
		return coreError(ErrCodeBadRequest, ErrBodyRequired.Error())
	}
	return nil
}
