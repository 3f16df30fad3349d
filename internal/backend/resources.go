package backend

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// Resource collections exposed by the backend.
const (
	ResourcePrograms    = "programs"
	ResourceProjects    = "projects"
	ResourceTimeEntries = "time-entries"
)

// Resource is a created entity as returned by the backend. ID is the
// server-assigned identifier in its textual form.
type Resource struct {
	ID     string
	Fields map[string]any
}

// Create posts payload to the resource collection and returns the
// created entity.
func (c *Client) Create(ctx context.Context, resource string, payload any) (*Resource, error) {
	var fields map[string]any
	if err := c.PostJSON(ctx, collectionPath(resource), payload, &fields); err != nil {
		return nil, fmt.Errorf("creating %s: %w", resource, err)
	}
	id := idString(fields["id"])
	if id == "" {
		c.logger.Warn("backend_create_missing_id",
			zap.String("resource", resource),
			zap.Any("response", fields))
		return nil, fmt.Errorf("creating %s: %w", resource, ErrMissingID)
	}
	return &Resource{ID: id, Fields: fields}, nil
}

func collectionPath(resource string) string {
	return APIPrefix + "/" + resource + "/"
}

func idString(v any) string {
	switch id := v.(type) {
	case json.Number:
		return id.String()
	case string:
		return id
	case float64:
		return fmt.Sprintf("%.0f", id)
	default:
		return ""
	}
}
