package wizard

import (
	"errors"
	"fmt"
)

var (
	// ErrInFlight is returned when an AI or creation call is already pending.
	ErrInFlight = errors.New("another request is already in progress")

	// ErrSessionClosed is returned for operations on a closed session and
	// for results that settle after teardown.
	ErrSessionClosed = errors.New("wizard session is closed")

	// ErrInvalidTransition is returned when an operation is not allowed
	// from the current step.
	ErrInvalidTransition = errors.New("invalid wizard transition")
)

// ValidationError is missing or malformed user input. No state changes
// and no network call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// AIUnavailableError wraps a failed or timed-out AI call.
type AIUnavailableError struct {
	Err error
}

func (e *AIUnavailableError) Error() string {
	return fmt.Sprintf("AI assistant unavailable: %v", e.Err)
}

func (e *AIUnavailableError) Unwrap() error { return e.Err }

// CreationFailedError wraps a failed creation call. Message is what the
// user is shown.
type CreationFailedError struct {
	Message string
	Err     error
}

func (e *CreationFailedError) Error() string { return e.Message }

func (e *CreationFailedError) Unwrap() error { return e.Err }

func invalidTransition(op string, from Step) error {
	return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, op, from)
}
