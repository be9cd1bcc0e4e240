package store

import (
	"sort"
	"sync"
	"time"

	"coinbot/domain/entities"
	"coinbot/domain/interfaces"
	"coinbot/events"

	log "github.com/sirupsen/logrus"
)

// Store owns every economy collection in memory. All reads and writes go
// through View and Update so a single operation observes and mutates a
// consistent state.
type Store struct {
	mu        sync.RWMutex
	publisher interfaces.EventPublisher
	now       func() time.Time

	users    map[string]*entities.UserAccount
	items    map[string]*entities.CatalogItem
	listings map[string]*entities.Listing
	invites  map[string]*entities.InviteRegistration
	claimed  map[string]struct{}
	configs  map[string]*entities.GuildConfig
	warnings map[string]map[string][]*entities.Warning
	modLogs  map[string][]*entities.ModLogEntry
}

// New creates an empty store. A nil publisher drops events.
func New(publisher interfaces.EventPublisher) *Store {
	s := &Store{
		publisher: publisher,
		now:       time.Now,
	}
	s.reset(entities.NewSnapshot())
	return s
}

// SetClock overrides the time source, for tests
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Now returns the store's current time
func (s *Store) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.now()
}

// Update runs fn with exclusive access. Events staged by fn are published
// after the lock is released, and only when fn returns nil. fn must check
// its preconditions before mutating; a returned error does not undo writes.
func (s *Store) Update(fn func(tx *Tx) error) error {
	tx, err := s.runLocked(fn)
	if err != nil {
		return err
	}
	s.publish(tx.pending)
	return nil
}

func (s *Store) runLocked(fn func(tx *Tx) error) (*Tx, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx := &Tx{s: s, writable: true, now: s.now()}
	return tx, fn(tx)
}

// View runs fn with shared read access
func (s *Store) View(fn func(tx *Tx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&Tx{s: s, now: s.now()})
}

func (s *Store) publish(pending []events.Event) {
	if s.publisher == nil {
		return
	}
	for _, event := range pending {
		if err := s.publisher.Publish(event); err != nil {
			log.WithFields(log.Fields{
				"event_type": event.Type(),
				"error":      err,
			}).Warn("Failed to publish store event")
		}
	}
}

// Snapshot deep-copies every persisted collection under the read lock
func (s *Store) Snapshot() *entities.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := entities.NewSnapshot()
	for id, u := range s.users {
		snap.Users[id] = u.Clone()
	}
	for key, item := range s.items {
		snap.Items[key] = item.Clone()
	}
	for id, l := range s.listings {
		snap.Listings[id] = l.Clone()
	}
	for code, inv := range s.invites {
		snap.Invites[code] = inv.Clone()
	}
	for id := range s.claimed {
		snap.Claimed = append(snap.Claimed, id)
	}
	sort.Strings(snap.Claimed)
	for id, cfg := range s.configs {
		snap.GuildConfigs[id] = cfg.Clone()
	}
	for guildID, byUser := range s.warnings {
		copied := make(map[string][]*entities.Warning, len(byUser))
		for userID, list := range byUser {
			copied[userID] = cloneWarnings(list)
		}
		snap.Warnings[guildID] = copied
	}
	for guildID, list := range s.modLogs {
		snap.ModLogs[guildID] = cloneModLogs(list)
	}
	return snap
}

// Restore replaces the store contents with a copy of the snapshot
func (s *Store) Restore(snap *entities.Snapshot) {
	if snap == nil {
		snap = entities.NewSnapshot()
	}
	snap.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset(snap)
}

func (s *Store) reset(snap *entities.Snapshot) {
	s.users = make(map[string]*entities.UserAccount, len(snap.Users))
	for id, u := range snap.Users {
		s.users[id] = u.Clone()
	}
	s.items = make(map[string]*entities.CatalogItem, len(snap.Items))
	for key, item := range snap.Items {
		s.items[key] = item.Clone()
	}
	s.listings = make(map[string]*entities.Listing, len(snap.Listings))
	for id, l := range snap.Listings {
		s.listings[id] = l.Clone()
	}
	s.invites = make(map[string]*entities.InviteRegistration, len(snap.Invites))
	for code, inv := range snap.Invites {
		s.invites[code] = inv.Clone()
	}
	s.claimed = make(map[string]struct{}, len(snap.Claimed))
	for _, id := range snap.Claimed {
		s.claimed[id] = struct{}{}
	}
	s.configs = make(map[string]*entities.GuildConfig, len(snap.GuildConfigs))
	for id, cfg := range snap.GuildConfigs {
		s.configs[id] = cfg.Clone()
	}
	s.warnings = make(map[string]map[string][]*entities.Warning, len(snap.Warnings))
	for guildID, byUser := range snap.Warnings {
		copied := make(map[string][]*entities.Warning, len(byUser))
		for userID, list := range byUser {
			copied[userID] = cloneWarnings(list)
		}
		s.warnings[guildID] = copied
	}
	s.modLogs = make(map[string][]*entities.ModLogEntry, len(snap.ModLogs))
	for guildID, list := range snap.ModLogs {
		s.modLogs[guildID] = cloneModLogs(list)
	}
}

func cloneWarnings(list []*entities.Warning) []*entities.Warning {
	out := make([]*entities.Warning, 0, len(list))
	for _, w := range list {
		c := *w
		out = append(out, &c)
	}
	return out
}

func cloneModLogs(list []*entities.ModLogEntry) []*entities.ModLogEntry {
	out := make([]*entities.ModLogEntry, 0, len(list))
	for _, e := range list {
		c := *e
		out = append(out, &c)
	}
	return out
}
