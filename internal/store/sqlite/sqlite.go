package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/nahidmursaline/Real-time-chat-server/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS rooms (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	created_at  DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS messages (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	room_id    TEXT NOT NULL,
	author     TEXT NOT NULL,
	body       TEXT NOT NULL,
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_messages_room ON messages(room_id, id);
`

// SQLiteStore implements store.Store for SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database at dbPath and applies the
// schema. Use ":memory:" for tests.
func New(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// SQLite works best with a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateRoom persists a new room, assigning its id and timestamp.
func (s *SQLiteStore) CreateRoom(ctx context.Context, name, description string) (*store.Room, error) {
	room := &store.Room{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}

	query := `
		INSERT INTO rooms (id, name, description, created_at)
		VALUES (?, ?, ?, ?)
	`
	if _, err := s.db.ExecContext(ctx, query, room.ID, room.Name, room.Description, room.CreatedAt); err != nil {
		return nil, &store.StorageError{Op: "insert room", Err: err}
	}

	return room, nil
}

// ListRooms returns all rooms in creation order. created_at has second
// granularity, so ordering goes by rowid to keep rooms created within
// the same second in insertion order.
func (s *SQLiteStore) ListRooms(ctx context.Context) ([]*store.Room, error) {
	query := `
		SELECT id, name, description, created_at
		FROM rooms
		ORDER BY rowid
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, &store.StorageError{Op: "query rooms", Err: err}
	}
	defer rows.Close()

	var rooms []*store.Room
	for rows.Next() {
		var room store.Room
		if err := rows.Scan(&room.ID, &room.Name, &room.Description, &room.CreatedAt); err != nil {
			return nil, &store.StorageError{Op: "scan room", Err: err}
		}
		rooms = append(rooms, &room)
	}

	if err := rows.Err(); err != nil {
		return nil, &store.StorageError{Op: "iterate rooms", Err: err}
	}
	return rooms, nil
}

// SaveMessage persists a message and assigns its id.
func (s *SQLiteStore) SaveMessage(ctx context.Context, msg *store.Message) error {
	query := `
		INSERT INTO messages (room_id, author, body, created_at)
		VALUES (?, ?, ?, ?)
	`
	result, err := s.db.ExecContext(ctx, query, msg.RoomID, msg.Author, msg.Body, msg.CreatedAt)
	if err != nil {
		return &store.StorageError{Op: "insert message", Err: err}
	}

	id, err := result.LastInsertId()
	if err != nil {
		return &store.StorageError{Op: "get last insert id", Err: err}
	}

	msg.ID = id
	return nil
}

// ListMessages returns all messages for the room in insertion order.
func (s *SQLiteStore) ListMessages(ctx context.Context, roomID string) ([]*store.Message, error) {
	query := `
		SELECT id, room_id, author, body, created_at
		FROM messages
		WHERE room_id = ?
		ORDER BY id
	`
	rows, err := s.db.QueryContext(ctx, query, roomID)
	if err != nil {
		return nil, &store.StorageError{Op: "query messages", Err: err}
	}
	defer rows.Close()

	var messages []*store.Message
	for rows.Next() {
		var msg store.Message
		if err := rows.Scan(&msg.ID, &msg.RoomID, &msg.Author, &msg.Body, &msg.CreatedAt); err != nil {
			return nil, &store.StorageError{Op: "scan message", Err: err}
		}
		messages = append(messages, &msg)
	}

	if err := rows.Err(); err != nil {
		return nil, &store.StorageError{Op: "iterate messages", Err: err}
	}
	return messages, nil
}
