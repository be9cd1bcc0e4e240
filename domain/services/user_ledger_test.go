package services

import (
	"math"
	"sync"
	"testing"

	"coinbot/domain/entities"
	"coinbot/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserLedger_GetOrCreateAccount(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ledger := NewUserLedger(env.store)

	_, exists := ledger.GetAccount(testUser1)
	assert.False(t, exists)

	acc := ledger.GetOrCreateAccount(testUser1)
	assert.Equal(t, testUser1, acc.UserID)
	assert.Zero(t, acc.Balance)
	assert.Equal(t, testNow, acc.JoinedAt)

	// Mutating the returned copy must not leak into the store
	acc.Balance = 999
	stored, exists := ledger.GetAccount(testUser1)
	require.True(t, exists)
	assert.Zero(t, stored.Balance)
}

func TestUserLedger_EnsureMemberKeepsHomeGuild(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ledger := NewUserLedger(env.store)

	ledger.EnsureMember(testGuildID, testUser1)
	acc := ledger.EnsureMember(testOtherGuild, testUser1)

	assert.Equal(t, testGuildID, acc.GuildID)
}

func TestUserLedger_Credit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		amount      int64
		wantErr     error
		wantBalance int64
		wantEarned  int64
	}{
		{name: "positive amount", amount: 75, wantBalance: 175, wantEarned: 75},
		{name: "zero amount", amount: 0, wantErr: ErrInvalidAmount, wantBalance: 100},
		{name: "negative amount", amount: -5, wantErr: ErrInvalidAmount, wantBalance: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// Setup
			env := newTestEnv(t)
			env.seedAccount(testUser1, testGuildID, 100, 0)
			ledger := NewUserLedger(env.store)

			// Execute
			_, err := ledger.Credit(testUser1, tt.amount, entities.TransactionTypeEarn)

			// Assert
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			acc := env.account(testUser1)
			assert.Equal(t, tt.wantBalance, acc.Balance)
			assert.Equal(t, tt.wantEarned, acc.TotalEarned)
		})
	}
}

func TestUserLedger_CreditSaturatesAtMaxInt64(t *testing.T) {
	t.Parallel()

	// Setup
	env := newTestEnv(t)
	env.seedAccount(testUser1, testGuildID, math.MaxInt64-10, 0)
	ledger := NewUserLedger(env.store)

	// Execute
	_, err := ledger.Credit(testUser1, 75, entities.TransactionTypeEarn)

	// Assert
	require.NoError(t, err)
	acc := env.account(testUser1)
	assert.Equal(t, int64(math.MaxInt64), acc.Balance)
	assert.Positive(t, acc.TotalEarned)
}

func TestUserLedger_Debit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		amount      int64
		wantOK      bool
		wantErr     error
		wantBalance int64
	}{
		{name: "covered", amount: 40, wantOK: true, wantBalance: 60},
		{name: "exact balance", amount: 100, wantOK: true, wantBalance: 0},
		{name: "insufficient", amount: 101, wantOK: false, wantBalance: 100},
		{name: "invalid amount", amount: 0, wantErr: ErrInvalidAmount, wantBalance: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// Setup
			env := newTestEnv(t)
			env.seedAccount(testUser1, testGuildID, 100, 0)
			ledger := NewUserLedger(env.store)

			// Execute
			ok, err := ledger.Debit(testUser1, tt.amount, entities.TransactionTypeStorePurchase)

			// Assert
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantBalance, env.account(testUser1).Balance)
		})
	}
}

func TestUserLedger_SetBalanceClamps(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedAccount(testUser1, testGuildID, 100, 0)
	ledger := NewUserLedger(env.store)

	assert.Equal(t, int64(0), ledger.SetBalance(testUser1, -50))
	assert.Zero(t, env.account(testUser1).Balance)

	assert.Equal(t, int64(250), ledger.SetBalance(testUser1, 250))
	assert.Equal(t, int64(250), env.account(testUser1).Balance)
}

func TestUserLedger_Inventory(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedItem("sword", 10, "")
	ledger := NewUserLedger(env.store)

	assert.False(t, ledger.AddInventory(testUser1, "unknown", 1), "unknown items are rejected")
	assert.False(t, ledger.AddInventory(testUser1, "sword", 0), "quantity must be positive")
	assert.True(t, ledger.AddInventory(testUser1, "sword", 3))

	assert.False(t, ledger.RemoveInventory(testUser1, "sword", 4), "cannot remove more than held")
	assert.Equal(t, int64(3), env.account(testUser1).ItemCount("sword"))

	assert.True(t, ledger.RemoveInventory(testUser1, "sword", 3))
	_, held := env.account(testUser1).Inventory["sword"]
	assert.False(t, held, "a count reaching zero removes the key")
}

func TestUserLedger_Transfer(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedAccount(testUser1, testGuildID, 100, 0)
	env.seedAccount(testUser2, testGuildID, 5, 0)
	ledger := NewUserLedger(env.store)

	_, err := ledger.Transfer(testUser1, testUser1, 10)
	assert.ErrorIs(t, err, ErrSelfTransfer)

	ok, err := ledger.Transfer(testUser1, testUser2, 500)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = ledger.Transfer(testUser1, testUser2, 60)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(40), env.account(testUser1).Balance)
	assert.Equal(t, int64(65), env.account(testUser2).Balance)
	assert.Equal(t, int64(105), env.totalCoins())

	changes := env.publisher.OfType(events.EventTypeBalanceChange)
	require.Len(t, changes, 2)
	assert.Equal(t, entities.TransactionTypeTransferOut, changes[0].(events.BalanceChangeEvent).TransactionType)
	assert.Equal(t, entities.TransactionTypeTransferIn, changes[1].(events.BalanceChangeEvent).TransactionType)
}

func TestUserLedger_ConcurrentDebitsNeverOverdraw(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedAccount(testUser1, testGuildID, 100, 0)
	ledger := NewUserLedger(env.store)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, _ := ledger.Debit(testUser1, 7, entities.TransactionTypeGambleBet)
			if ok {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 14, succeeded)
	assert.Equal(t, int64(2), env.account(testUser1).Balance)
}

func TestUserLedger_Leaderboard(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedAccount(testUser1, testGuildID, 50, 0)
	env.seedAccount(testUser2, testGuildID, 300, 10)
	env.seedAccount(testUser3, testGuildID, 120, 0)
	env.seedAccount("400", testOtherGuild, 9999, 0)
	ledger := NewUserLedger(env.store)

	page1, totalPages := ledger.Leaderboard(testGuildID, 1, 2)
	assert.Equal(t, 2, totalPages)
	require.Len(t, page1, 2)
	assert.Equal(t, testUser2, page1[0].UserID)
	assert.Equal(t, int64(310), page1[0].Value)
	assert.Equal(t, testUser3, page1[1].UserID)

	page2, _ := ledger.Leaderboard(testGuildID, 2, 2)
	require.Len(t, page2, 1)
	assert.Equal(t, 3, page2[0].Rank)
	assert.Equal(t, testUser1, page2[0].UserID)

	page3, _ := ledger.Leaderboard(testGuildID, 3, 2)
	assert.Empty(t, page3)
}
