package core

import "errors"

// Error codes for domain errors surfaced to clients.
const (
	ErrCodeBadRequest = "bad_request"
	ErrCodeStorage    = "storage_error"
)

var (
	// ErrRoomRequired is returned when a command carries no room id.
	ErrRoomRequired = errors.New("room id is required")
	// ErrBodyRequired is returned when a message has an empty body.
	ErrBodyRequired = errors.New("message body is required")
)

// CoreError wraps a code and human-readable message.
type CoreError struct {
	Code    string
	Message string
}

func (e *CoreError) Error() string {
	return e.Message
}

func coreError(code, msg string) *CoreError {
	return &CoreError{Code: code, Message: msg}
}
