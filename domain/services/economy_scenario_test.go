package services

import (
	"testing"
	"time"

	"coinbot/domain/entities"
	"coinbot/domain/testhelpers"
	"coinbot/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEconomyScenario_EndToEnd drives two members through a day of play and
// checks that every wallet, bank and inventory adds up afterwards.
func TestEconomyScenario_EndToEnd(t *testing.T) {
	t.Parallel()

	// Setup
	env := newTestEnv(t)
	ledger := NewUserLedger(env.store)
	bank := NewBankService(env.store)
	catalog := NewCatalogService(env.store)
	market := NewMarketplaceService(env.store)
	referrals := NewReferralService(env.store, 50)
	economy := NewEconomyService(env.store, testhelpers.NewScriptedRand([]int{49}, nil))
	stats := NewStatisticsService(env.store)

	require.NoError(t, catalog.Seed([]*entities.CatalogItem{
		{Key: "fishing_rod", Name: "Fishing Rod", Emoji: "🎣", Price: 40},
	}))
	ledger.EnsureMember(testGuildID, testUser1)
	ledger.EnsureMember(testGuildID, testUser2)

	// Alice earns and banks some coins
	out, err := economy.Earn(testGuildID, testUser1)
	require.NoError(t, err)
	assert.Equal(t, int64(50), out.Amount)
	daily, err := economy.Daily(testGuildID, testUser1)
	require.NoError(t, err)
	assert.Equal(t, int64(99), daily.Amount)
	require.True(t, bank.Deposit(testUser1, 100).Success)

	// Bob joins through Alice's invite
	require.NoError(t, referrals.RegisterInvite("alice01", testUser1))
	claim := referrals.Claim("https://discord.gg/alice01", testUser2)
	assert.False(t, claim.Success, "claims take a bare code")
	claim = referrals.Claim("alice01", testUser2)
	require.True(t, claim.Success)

	// Alice buys rods and lists one for Bob
	buy := catalog.Buy(testGuildID, testUser1, "fishing_rod", 2)
	require.True(t, buy.Success, buy.Message)
	listing, ok := market.CreateListing(testUser1, testGuildID, "fishing_rod", 1, 30)
	require.True(t, ok)

	_, err = ledger.Credit(testUser2, 30, entities.TransactionTypeAdminSet)
	require.NoError(t, err)
	purchase := market.Purchase(testUser2, testGuildID, listing.ID, 1)
	require.True(t, purchase.Success, purchase.Message)

	// Interest accrues overnight
	env.advance(24 * time.Hour)
	interest := bank.ApplyInterest(0.02, testGuildID)

	// Assert
	alice := env.account(testUser1)
	bob := env.account(testUser2)

	// 50 earn + 99 daily + 50 referral + 30 sale - 80 rods - 100 deposited
	assert.Equal(t, int64(49), alice.Balance)
	assert.Equal(t, int64(102), alice.BankBalance)
	assert.Equal(t, int64(2), interest.TotalInterest)
	assert.Equal(t, int64(50+99+50+30+2), alice.TotalEarned)
	assert.Equal(t, int64(1), alice.ItemCount("fishing_rod"))
	assert.Equal(t, int64(1), alice.Referrals)

	assert.Equal(t, int64(0), bob.Balance)
	assert.Equal(t, int64(1), bob.ItemCount("fishing_rod"))

	summary := stats.Statistics(testGuildID)
	assert.Equal(t, 2, summary.Users)
	assert.Equal(t, alice.NetWorth()+bob.NetWorth(), summary.TotalBalance+summary.TotalBank)
	assert.Equal(t, 100, summary.ClaimRate)

	board, pages := ledger.Leaderboard(testGuildID, 1, 10)
	assert.Equal(t, 1, pages)
	require.Len(t, board, 2)
	assert.Equal(t, testUser1, board[0].UserID)

	assert.NotEmpty(t, env.publisher.OfType(events.EventTypeBalanceChange))
	assert.Len(t, env.publisher.OfType(events.EventTypeReferralClaimed), 1)
	assert.Len(t, env.publisher.OfType(events.EventTypeListingPurchased), 1)
	assert.Len(t, env.publisher.OfType(events.EventTypeInterestApplied), 1)
}
