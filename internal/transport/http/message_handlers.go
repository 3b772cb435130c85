package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nahidmursaline/Real-time-chat-server/internal/core"
	"github.com/nahidmursaline/Real-time-chat-server/internal/store"
)

// MessageHandlers provides HTTP handlers for message history and the
// persist-only publish path. Posting here does not broadcast; the
// realtime fan-out only happens over the WebSocket relay.
type MessageHandlers struct {
	relay *core.Relay
	store store.MessageStore
	log   *zerolog.Logger
}

// NewMessageHandlers creates a new message handlers instance.
func NewMessageHandlers(relay *core.Relay, st store.MessageStore, logger *zerolog.Logger) *MessageHandlers {
	return &MessageHandlers{
		relay: relay,
		store: st,
		log:   logger,
	}
}

// PostMessageRequest represents the post message request body.
type PostMessageRequest struct {
	Message string `json:"message" binding:"required"`
	User    string `json:"user" binding:"required"`
}

// MessageResponse represents a message in API responses.
type MessageResponse struct {
	ID        int64  `json:"id"`
	RoomID    string `json:"roomId"`
	Message   string `json:"message"`
	User      string `json:"user"`
	Timestamp string `json:"timestamp"`
}

// ListMessages returns all stored messages for a room, oldest first.
// GET /rooms/:id/messages
func (h *MessageHandlers) ListMessages(c *gin.Context) {
	roomID := c.Param("id")

	messages, err := h.store.ListMessages(c.Request.Context(), roomID)
	if err != nil {
		h.log.Error().Err(err).Str("room_id", roomID).Msg("failed to list messages")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	response := make([]MessageResponse, 0, len(messages))
	for _, msg := range messages {
		response = append(response, messageResponse(msg))
	}

	c.JSON(http.StatusOK, response)
}

// PostMessage persists a message without broadcasting it.
// POST /rooms/:id/messages
func (h *MessageHandlers) PostMessage(c *gin.Context) {
	roomID := c.Param("id")

	var req PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Str("room_id", roomID).Msg("invalid post message request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	msg, err := h.relay.Save(c.Request.Context(), roomID, req.User, req.Message)
	if err != nil {
		var ce *core.CoreError
		if errors.As(err, &ce) && ce.Code == core.ErrCodeBadRequest {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: ce.Message})
			return
		}
		h.log.Error().Err(err).Str("room_id", roomID).Msg("failed to store message")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, messageResponse(msg))
}

func messageResponse(msg *store.Message) MessageResponse {
	return MessageResponse{
		ID:        msg.ID,
		RoomID:    msg.RoomID,
		Message:   msg.Body,
		User:      msg.Author,
		Timestamp: msg.CreatedAt.Format(timestampFormat),
	}
}
