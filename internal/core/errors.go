package core

// Error codes for domain errors.
const (
	ErrCodeNotJoined     = "not_joined"
	ErrCodeAlreadyJoined = "already_joined"
	ErrCodeSameRoom      = "same_room"
	ErrCodeBadRequest    = "bad_request"
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
