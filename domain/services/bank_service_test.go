package services

import (
	"testing"

	"coinbot/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBankService_Deposit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		amount      int64
		wantSuccess bool
		wantMessage string
		wantWallet  int64
		wantBank    int64
	}{
		{
			name:        "moves wallet to bank",
			amount:      60,
			wantSuccess: true,
			wantMessage: "Deposited 60 coins to bank",
			wantWallet:  40,
			wantBank:    70,
		},
		{
			name:        "non-positive amount",
			amount:      0,
			wantMessage: "Amount must be positive",
			wantWallet:  100,
			wantBank:    10,
		},
		{
			name:        "insufficient wallet",
			amount:      150,
			wantMessage: "Insufficient wallet balance. You have 100 coins.",
			wantWallet:  100,
			wantBank:    10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// Setup
			env := newTestEnv(t)
			env.seedAccount(testUser1, testGuildID, 100, 10)
			bank := NewBankService(env.store)

			// Execute
			result := bank.Deposit(testUser1, tt.amount)

			// Assert
			assert.Equal(t, tt.wantSuccess, result.Success)
			assert.Equal(t, tt.wantMessage, result.Message)
			acc := env.account(testUser1)
			assert.Equal(t, tt.wantWallet, acc.Balance)
			assert.Equal(t, tt.wantBank, acc.BankBalance)
			assert.Equal(t, int64(110), acc.NetWorth(), "deposits conserve wallet+bank")
			if tt.wantSuccess {
				assert.Equal(t, testNow, acc.LastBankActivity)
				assert.Equal(t, tt.wantWallet, result.NewWallet)
				assert.Equal(t, tt.wantBank, result.NewBank)
			}
		})
	}
}

func TestBankService_Withdraw(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		amount      int64
		wantSuccess bool
		wantMessage string
		wantWallet  int64
		wantBank    int64
	}{
		{
			name:        "moves bank to wallet",
			amount:      30,
			wantSuccess: true,
			wantMessage: "Withdrew 30 coins from bank",
			wantWallet:  35,
			wantBank:    20,
		},
		{
			name:        "negative amount",
			amount:      -1,
			wantMessage: "Amount must be positive",
			wantWallet:  5,
			wantBank:    50,
		},
		{
			name:        "insufficient bank",
			amount:      51,
			wantMessage: "Insufficient bank balance. You have 50 coins in bank.",
			wantWallet:  5,
			wantBank:    50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// Setup
			env := newTestEnv(t)
			env.seedAccount(testUser1, testGuildID, 5, 50)
			bank := NewBankService(env.store)

			// Execute
			result := bank.Withdraw(testUser1, tt.amount)

			// Assert
			assert.Equal(t, tt.wantSuccess, result.Success)
			assert.Equal(t, tt.wantMessage, result.Message)
			acc := env.account(testUser1)
			assert.Equal(t, tt.wantWallet, acc.Balance)
			assert.Equal(t, tt.wantBank, acc.BankBalance)
		})
	}
}

func TestBankService_ApplyInterest(t *testing.T) {
	t.Parallel()

	// Setup
	env := newTestEnv(t)
	env.seedAccount(testUser1, testGuildID, 0, 1000)
	env.seedAccount(testUser2, testGuildID, 0, 49) // floor(49*0.02) = 0
	env.seedAccount(testUser3, testOtherGuild, 0, 500)
	bank := NewBankService(env.store)

	// Execute
	result := bank.ApplyInterest(0.02, testGuildID)

	// Assert
	assert.Equal(t, int64(20), result.TotalInterest)
	assert.Equal(t, 1, result.AccountsTouched)

	acc := env.account(testUser1)
	assert.Equal(t, int64(1020), acc.BankBalance)
	assert.Equal(t, int64(20), acc.TotalEarned)
	assert.Equal(t, int64(49), env.account(testUser2).BankBalance)
	assert.Equal(t, int64(500), env.account(testUser3).BankBalance, "other guilds are filtered out")

	applied := env.publisher.OfType(events.EventTypeInterestApplied)
	require.Len(t, applied, 1)
	assert.Equal(t, int64(20), applied[0].(events.InterestAppliedEvent).TotalInterest)
}

func TestBankService_ApplyInterestAllGuilds(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedAccount(testUser1, testGuildID, 0, 1000)
	env.seedAccount(testUser3, testOtherGuild, 0, 500)
	bank := NewBankService(env.store)

	result := bank.ApplyInterest(0.1, "")

	assert.Equal(t, int64(150), result.TotalInterest)
	assert.Equal(t, 2, result.AccountsTouched)
}

func TestBankService_ApplyInterestNonPositiveRateIsNoop(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedAccount(testUser1, testGuildID, 0, 1000)
	bank := NewBankService(env.store)

	for _, rate := range []float64{0, -0.5} {
		result := bank.ApplyInterest(rate, "")
		assert.Zero(t, result.TotalInterest)
		assert.Zero(t, result.AccountsTouched)
	}
	assert.Equal(t, int64(1000), env.account(testUser1).BankBalance)
	assert.Empty(t, env.publisher.Events())
}

func TestBankService_InterestNeverDecreasesBank(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	balances := []int64{0, 1, 49, 50, 999, 123456}
	for i, b := range balances {
		env.seedAccount(string(rune('a'+i)), testGuildID, 0, b)
	}
	bank := NewBankService(env.store)

	bank.ApplyInterest(0.02, testGuildID)

	for i, b := range balances {
		assert.GreaterOrEqual(t, env.account(string(rune('a'+i))).BankBalance, b)
	}
}
