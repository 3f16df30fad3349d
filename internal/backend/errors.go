package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnreachable indicates the request never produced an HTTP response.
var ErrUnreachable = errors.New("backend unreachable")

// ErrMissingID indicates a 2xx create response without an id. The entity
// most likely exists on the server.
var ErrMissingID = errors.New("created but the response carried no id")

// APIError is a non-2xx response from the backend. Message holds the
// server's human-readable explanation when the body carried one.
type APIError struct {
	Status  int
	Message string
	Body    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend returned status %d", e.Status)
}

// messageFromBody pulls a human-readable message out of an error body.
// It understands {"detail": ...}, {"message": ...}, {"error": ...} and
// field-error maps such as {"name": ["This field is required."]}.
func messageFromBody(body []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}

	for _, key := range []string{"detail", "message", "error"} {
		if msg := flattenMessage(payload[key]); msg != "" {
			return msg
		}
	}

	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if msg := flattenMessage(payload[k]); msg != "" {
			return k + ": " + msg
		}
	}
	return ""
}

func flattenMessage(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case []any:
		for _, item := range val {
			if msg := flattenMessage(item); msg != "" {
				return msg
			}
		}
	case map[string]any:
		for _, key := range []string{"detail", "message"} {
			if msg := flattenMessage(val[key]); msg != "" {
				return msg
			}
		}
	}
	return ""
}
