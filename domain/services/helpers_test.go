package services

import (
	"testing"
	"time"

	"coinbot/domain/entities"
	"coinbot/domain/store"
	"coinbot/domain/testhelpers"

	"github.com/stretchr/testify/require"
)

// Test constants for consistent test data
const (
	testGuildID    = "555555555"
	testOtherGuild = "666666666"
	testUser1      = "100"
	testUser2      = "200"
	testUser3      = "300"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// testEnv bundles a store with a controllable clock and a recording publisher
type testEnv struct {
	t         *testing.T
	store     *store.Store
	publisher *testhelpers.RecordingEventPublisher
	now       time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		t:         t,
		publisher: &testhelpers.RecordingEventPublisher{},
		now:       testNow,
	}
	env.store = store.New(env.publisher)
	env.store.SetClock(func() time.Time { return env.now })
	return env
}

func (e *testEnv) advance(d time.Duration) {
	e.now = e.now.Add(d)
}

// seedAccount writes an account with the given wallet and bank
func (e *testEnv) seedAccount(userID, guildID string, wallet, bank int64) {
	e.t.Helper()
	require.NoError(e.t, e.store.Update(func(tx *store.Tx) error {
		u := tx.AccountOrCreate(userID)
		u.GuildID = guildID
		u.Balance = wallet
		u.BankBalance = bank
		return nil
	}))
}

func (e *testEnv) seedItem(key string, price int64, guildID string) {
	e.t.Helper()
	require.NoError(e.t, e.store.Update(func(tx *store.Tx) error {
		tx.PutItem(&entities.CatalogItem{Key: key, Name: key, Price: price, GuildID: guildID})
		return nil
	}))
}

func (e *testEnv) seedInventory(userID, key string, qty int64) {
	e.t.Helper()
	require.NoError(e.t, e.store.Update(func(tx *store.Tx) error {
		tx.AccountOrCreate(userID).Inventory[key] = qty
		return nil
	}))
}

func (e *testEnv) account(userID string) *entities.UserAccount {
	e.t.Helper()
	var out *entities.UserAccount
	require.NoError(e.t, e.store.View(func(tx *store.Tx) error {
		u, ok := tx.Account(userID)
		require.True(e.t, ok, "account %s should exist", userID)
		out = u.Clone()
		return nil
	}))
	return out
}

// totalCoins sums wallet and bank across every account
func (e *testEnv) totalCoins() int64 {
	var total int64
	_ = e.store.View(func(tx *store.Tx) error {
		for _, u := range tx.Accounts() {
			total += u.NetWorth()
		}
		return nil
	})
	return total
}
