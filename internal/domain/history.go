// Package domain holds the records kept in the local state store.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// CreationRecord is one successful creation, kept so `recent` can list
// what this machine created and where to open it.
type CreationRecord struct {
	ID         string
	Entity     string
	RemoteID   string
	Name       string
	Category   string
	Path       string
	Source     string
	Confidence *int
	CreatedAt  time.Time
}

// NewCreationRecord stamps a record with a fresh id and the given time.
func NewCreationRecord(entity, remoteID, name, category, path string, now time.Time) *CreationRecord {
	return &CreationRecord{
		ID:        uuid.NewString(),
		Entity:    entity,
		RemoteID:  remoteID,
		Name:      name,
		Category:  category,
		Path:      path,
		CreatedAt: now.UTC(),
	}
}
