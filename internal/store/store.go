package store

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Room is a named channel grouping messages and joined connections.
type Room struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
}

// Message is a persisted chat message. RoomID references a room by
// identifier only; referential integrity is not enforced, so a message
// may reference a room that has not been created.
type Message struct {
	ID        int64
	RoomID    string
	Author    string
	Body      string
	CreatedAt time.Time
}

// StorageError reports a persistence failure (connectivity or rejected
// write). Op names the failed operation.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsStorageError reports whether err is (or wraps) a StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// RoomStore handles room persistence.
type RoomStore interface {
	// CreateRoom persists a new room, assigning its id and timestamp.
	CreateRoom(ctx context.Context, name, description string) (*Room, error)

	// ListRooms returns all rooms in creation order.
	ListRooms(ctx context.Context) ([]*Room, error)
}

// MessageStore handles message persistence.
type MessageStore interface {
	// SaveMessage persists a message and assigns its id on success.
	SaveMessage(ctx context.Context, msg *Message) error

	// ListMessages returns all messages for the room in insertion order.
	ListMessages(ctx context.Context, roomID string) ([]*Message, error)
}

// Store aggregates all storage interfaces.
type Store interface {
	RoomStore
	MessageStore

	// Close closes the underlying database connection.
	Close() error
}
