package llm

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
)

var (
	// ErrAIUnavailable indicates the text generation endpoint could not
	// produce a completion: unreachable, non-2xx, or an undecodable body.
	ErrAIUnavailable = errors.New("ai service unavailable")

	// ErrTimeout indicates the generation request exceeded the configured timeout.
	ErrTimeout = errors.New("ai request timed out")

	// ErrInvalidOutput indicates the completion could not be parsed
	// into the expected structured format.
	ErrInvalidOutput = errors.New("invalid ai output format")

	// ErrUnknownBackend is returned by New for an unrecognized backend name.
	ErrUnknownBackend = errors.New("unknown ai backend")
)

// statusError is a non-2xx reply from a generation endpoint.
type statusError struct {
	Service string
	Status  int
	Body    string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.Service, e.Status, truncate(e.Body, 200))
}

// retryable reports whether another attempt could succeed. Only transport
// failures, 429 and 5xx replies qualify; credential, 4xx and decode
// failures are returned on the first attempt.
func retryable(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.Status == http.StatusTooManyRequests || se.Status >= 500
	}
	var ue *url.Error
	if errors.As(err, &ue) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne)
}
