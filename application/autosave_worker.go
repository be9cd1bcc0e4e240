package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"coinbot/domain/interfaces"
	"coinbot/domain/store"
	"coinbot/infrastructure/observability"

	log "github.com/sirupsen/logrus"
)

// AutosaveWorker moves the store to and from a snapshot repository
type AutosaveWorker struct {
	store   *store.Store
	repo    interfaces.SnapshotRepository
	backend string
	metrics *observability.MetricsProvider

	mu        sync.Mutex // Serializes saves so an older snapshot never lands last
	lastSaved time.Time
}

// NewAutosaveWorker creates a worker for the given store and repository.
// metrics may be nil.
func NewAutosaveWorker(s *store.Store, repo interfaces.SnapshotRepository, backend string, metrics *observability.MetricsProvider) *AutosaveWorker {
	return &AutosaveWorker{
		store:   s,
		repo:    repo,
		backend: backend,
		metrics: metrics,
	}
}

// Load replaces the store contents with the persisted snapshot
func (w *AutosaveWorker) Load(ctx context.Context) error {
	snapshot, err := w.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}
	w.store.Restore(snapshot)

	log.WithFields(log.Fields{
		"backend":  w.backend,
		"users":    len(snapshot.Users),
		"items":    len(snapshot.Items),
		"listings": len(snapshot.Listings),
		"invites":  len(snapshot.Invites),
	}).Info("Loaded economy snapshot")
	return nil
}

// Save writes a deep copy of the store
func (w *AutosaveWorker) Save(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	start := time.Now()
	snapshot := w.store.Snapshot()
	err := w.repo.Save(ctx, snapshot)
	w.metrics.RecordSnapshotSave(w.backend, time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	w.lastSaved = start
	return nil
}

// LastSaved returns when the most recent successful save started
func (w *AutosaveWorker) LastSaved() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastSaved
}

// Run is the scheduled job body; failures are logged and retried next tick
func (w *AutosaveWorker) Run(ctx context.Context) {
	if err := w.Save(ctx); err != nil {
		log.WithError(err).WithField("backend", w.backend).Error("Autosave failed")
		return
	}
	log.WithField("backend", w.backend).Debug("Autosave complete")
}
