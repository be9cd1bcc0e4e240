package interfaces

import (
	"context"

	"coinbot/domain/entities"
	"coinbot/events"
)

// SnapshotRepository persists the entity store as a whole
type SnapshotRepository interface {
	// Load returns the last saved snapshot, or an empty one when nothing was saved yet
	Load(ctx context.Context) (*entities.Snapshot, error)

	// Save replaces the persisted state with the snapshot
	Save(ctx context.Context, snapshot *entities.Snapshot) error
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event) error
}
