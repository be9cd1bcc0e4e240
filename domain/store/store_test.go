package store

import (
	"errors"
	"sync"
	"testing"
	"time"

	"coinbot/domain/entities"
	"coinbot/events"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

func TestStore_UpdatePublishesOnlyOnSuccess(t *testing.T) {
	t.Parallel()

	pub := &recordingPublisher{}
	s := New(pub)

	err := s.Update(func(tx *Tx) error {
		tx.AccountOrCreate("u1").Balance = 10
		tx.Stage(events.BalanceChangeEvent{UserID: "u1", NewBalance: 10})
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, pub.count())

	failure := errors.New("precondition failed")
	err = s.Update(func(tx *Tx) error {
		tx.Stage(events.BalanceChangeEvent{UserID: "u1"})
		return failure
	})
	assert.ErrorIs(t, err, failure)
	assert.Equal(t, 1, pub.count(), "events from a failed update must be dropped")
}

func TestStore_UpdateReleasesLockOnPanic(t *testing.T) {
	t.Parallel()

	s := New(nil)

	assert.Panics(t, func() {
		_ = s.Update(func(tx *Tx) error {
			panic("boom")
		})
	})

	done := make(chan struct{})
	go func() {
		_ = s.Update(func(tx *Tx) error { return nil })
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("store stayed locked after a panicking update")
	}
}

func TestStore_ViewDoesNotCreate(t *testing.T) {
	t.Parallel()

	s := New(nil)

	err := s.View(func(tx *Tx) error {
		_, ok := tx.Account("ghost")
		assert.False(t, ok)
		cfg := tx.GuildConfig("g1")
		assert.Equal(t, entities.DefaultPrefix, cfg.Prefix)
		return nil
	})
	require.NoError(t, err)

	snap := s.Snapshot()
	assert.Empty(t, snap.Users)
	assert.Empty(t, snap.GuildConfigs, "View must not persist a default config")
}

func TestStore_DirectMessageConfigNotPersisted(t *testing.T) {
	t.Parallel()

	s := New(nil)

	err := s.Update(func(tx *Tx) error {
		cfg := tx.GuildConfig("")
		assert.Equal(t, entities.DefaultPrefix, cfg.Prefix)
		tx.GuildConfig("g1")
		return nil
	})
	require.NoError(t, err)

	snap := s.Snapshot()
	assert.NotContains(t, snap.GuildConfigs, "")
	assert.Contains(t, snap.GuildConfigs, "g1")
}

func TestStore_ViewPanicsOnWrite(t *testing.T) {
	t.Parallel()

	s := New(nil)
	assert.Panics(t, func() {
		_ = s.View(func(tx *Tx) error {
			tx.MarkClaimed("u1")
			return nil
		})
	})
}

func TestStore_SnapshotIsDeepCopy(t *testing.T) {
	t.Parallel()

	s := New(nil)
	require.NoError(t, s.Update(func(tx *Tx) error {
		u := tx.AccountOrCreate("u1")
		u.Balance = 100
		u.Inventory["sword"] = 2
		tx.MarkClaimed("u2")
		tx.SetWarnings("g1", "u1", []*entities.Warning{{ID: "w1", Reason: "spam"}})
		return nil
	}))

	snap := s.Snapshot()
	snap.Users["u1"].Balance = 0
	snap.Users["u1"].Inventory["sword"] = 0
	snap.Warnings["g1"]["u1"][0].Reason = "changed"

	require.NoError(t, s.View(func(tx *Tx) error {
		u, ok := tx.Account("u1")
		require.True(t, ok)
		assert.Equal(t, int64(100), u.Balance)
		assert.Equal(t, int64(2), u.Inventory["sword"])
		assert.Equal(t, "spam", tx.Warnings("g1", "u1")[0].Reason)
		return nil
	}))
}

func TestStore_RestoreRoundTrip(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	src := New(nil)
	src.SetClock(func() time.Time { return now })
	require.NoError(t, src.Update(func(tx *Tx) error {
		tx.AccountOrCreate("u1").Balance = 42
		tx.PutItem(&entities.CatalogItem{Key: "gem", Name: "Gem", Price: 5})
		tx.PutListing(&entities.Listing{ID: "l1", SellerID: "u1", GuildID: "g1", ItemKey: "gem", Quantity: 1, Price: 9, CreatedAt: now})
		tx.PutInvite(&entities.InviteRegistration{Code: "abc", InviterID: "u1", RegisteredAt: now})
		tx.MarkClaimed("u3")
		tx.MarkClaimed("u2")
		tx.GuildConfig("g1").Prefix = "$"
		tx.SetModLogs("g1", []*entities.ModLogEntry{{ID: "m1", Action: entities.ModActionKick}})
		return nil
	}))

	snap := src.Snapshot()
	assert.Equal(t, []string{"u2", "u3"}, snap.Claimed)

	dst := New(nil)
	dst.Restore(snap)

	if diff := cmp.Diff(snap, dst.Snapshot()); diff != "" {
		t.Errorf("restored snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_RestoreNilResets(t *testing.T) {
	t.Parallel()

	s := New(nil)
	require.NoError(t, s.Update(func(tx *Tx) error {
		tx.AccountOrCreate("u1")
		return nil
	}))

	s.Restore(nil)

	assert.Empty(t, s.Snapshot().Users)
}

func TestTx_ListingsNewestFirst(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := New(nil)
	require.NoError(t, s.Update(func(tx *Tx) error {
		tx.PutListing(&entities.Listing{ID: "old", CreatedAt: base})
		tx.PutListing(&entities.Listing{ID: "new", CreatedAt: base.Add(time.Hour)})
		tx.PutListing(&entities.Listing{ID: "mid", CreatedAt: base.Add(time.Minute)})
		return nil
	}))

	var ids []string
	require.NoError(t, s.View(func(tx *Tx) error {
		for _, l := range tx.Listings() {
			ids = append(ids, l.ID)
		}
		return nil
	}))
	assert.Equal(t, []string{"new", "mid", "old"}, ids)
}

func TestTx_SetWarningsEmptyRemovesEntry(t *testing.T) {
	t.Parallel()

	s := New(nil)
	require.NoError(t, s.Update(func(tx *Tx) error {
		tx.SetWarnings("g1", "u1", []*entities.Warning{{ID: "w1"}})
		tx.SetWarnings("g1", "u1", nil)
		return nil
	}))

	require.NoError(t, s.View(func(tx *Tx) error {
		assert.Empty(t, tx.GuildWarnings("g1"))
		return nil
	}))
}

func TestStore_ConcurrentUpdates(t *testing.T) {
	t.Parallel()

	s := New(nil)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Update(func(tx *Tx) error {
				tx.AccountOrCreate("u1").Balance++
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(50), s.Snapshot().Users["u1"].Balance)
}
