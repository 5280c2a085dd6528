package webhook

import (
	"errors"
	"fmt"

	"github.com/DarshanCode2005/gitmesh/internal/model"
	"github.com/DarshanCode2005/gitmesh/internal/workspace"
)

var (
	ErrWorkspaceNotFound   = workspace.ErrWorkspaceNotFound
	ErrIntegrationNotFound = workspace.ErrIntegrationNotFound
	ErrInvalidSignature    = errors.New("invalid webhook signature")
	ErrLogNotFound         = errors.New("webhook log not found")
)

// HandlerError is a failure inside an event handler, including payloads that do
// not decode or validate. The delivery is recorded as error with its message.
type HandlerError struct {
	Event  model.EventType
	Action string
	Err    error
}

// NewHandlerError wraps err as a HandlerError for event/action.
func NewHandlerError(event model.EventType, action string, err error) *HandlerError {
	return &HandlerError{Event: event, Action: action, Err: err}
}

func (e *HandlerError) Error() string {
	if e.Action == "" {
		return fmt.Sprintf("%s handler: %v", e.Event, e.Err)
	}
	return fmt.Sprintf("%s.%s handler: %v", e.Event, e.Action, e.Err)
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}

// IsHandlerError reports whether err is or wraps a *HandlerError.
func IsHandlerError(err error) bool {
	var he *HandlerError
	return errors.As(err, &he)
}
