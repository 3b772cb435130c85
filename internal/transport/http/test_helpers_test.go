package http

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/nahidmursaline/Real-time-chat-server/internal/config"
	"github.com/nahidmursaline/Real-time-chat-server/internal/core"
	"github.com/nahidmursaline/Real-time-chat-server/internal/store"
	"github.com/nahidmursaline/Real-time-chat-server/internal/store/sqlite"
)

// createTestStore creates an in-memory SQLite store.
func createTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

// startTestServer wires a hub and store behind an httptest server.
func startTestServer(t *testing.T, st store.Store) (*httptest.Server, *core.Hub) {
	t.Helper()

	disabledLogger := zerolog.Nop()
	hub := core.NewHub(st, &disabledLogger)

	cfg := config.Config{
		Addr:              ":0",
		ReadHeaderTimeout: time.Second,
		ShutdownTimeout:   time.Second,
		MaxMessageBytes:   1 << 20,
	}

	server := NewServer(hub, st, &cfg, &disabledLogger)
	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)

	return ts, hub
}
