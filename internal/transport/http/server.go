package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nahidmursaline/Real-time-chat-server/internal/config"
	"github.com/nahidmursaline/Real-time-chat-server/internal/core"
	"github.com/nahidmursaline/Real-time-chat-server/internal/store"
)

// NewServer builds the HTTP server: REST endpoints for rooms and message
// history plus the WebSocket endpoint for the realtime relay.
func NewServer(hub *core.Hub, st store.Store, cfg *config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware())

	roomHandlers := NewRoomHandlers(st, logger)
	messageHandlers := NewMessageHandlers(hub.Relay(), st, logger)

	router.GET("/", func(c *gin.Context) {
		c.String(stdhttp.StatusOK, "Real Time Chat is Running")
	})
	router.GET("/health", func(c *gin.Context) {
		c.String(stdhttp.StatusOK, "ok")
	})

	router.POST("/rooms", roomHandlers.CreateRoom)
	router.GET("/rooms", roomHandlers.ListRooms)
	router.GET("/rooms/:id/messages", messageHandlers.ListMessages)
	router.POST("/rooms/:id/messages", messageHandlers.PostMessage)

	// The websocket upgrade hijacks the underlying connection, which gin's
	// ResponseWriter wrapper does not allow. /ws is served from the root
	// mux directly; everything else falls through to gin.
	mux := stdhttp.NewServeMux()
	mux.Handle("/ws", NewWSHandler(hub, cfg, logger))
	mux.Handle("/", router)

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}
