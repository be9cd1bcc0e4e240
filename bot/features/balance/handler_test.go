package balance

import (
	"strings"
	"testing"

	"coinbot/bot/common"
	"coinbot/bot/dispatch/dispatchtest"
	"coinbot/domain/services"
	"coinbot/domain/store"
	"coinbot/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testGuildID = "555555555"
	testUserID  = "111111111"
	testOtherID = "222222222"
)

func newTestFeature(t *testing.T) (*Feature, *store.Store) {
	t.Helper()
	s := store.New(&testhelpers.RecordingEventPublisher{})
	return New(services.NewUserLedger(s), services.NewBankService(s)), s
}

func seedWallet(t *testing.T, s *store.Store, userID string, wallet, bank int64) {
	t.Helper()
	require.NoError(t, s.Update(func(tx *store.Tx) error {
		u := tx.AccountOrCreate(userID)
		u.GuildID = testGuildID
		u.Balance = wallet
		u.BankBalance = bank
		return nil
	}))
}

func TestHandleBalance(t *testing.T) {
	t.Parallel()

	// Setup
	f, s := newTestFeature(t)
	seedWallet(t, s, testUserID, 1500, 250)
	rec := &dispatchtest.Recorder{}

	// Execute
	err := f.handleBalance(dispatchtest.NewGuildContext(rec, testGuildID, testUserID))

	// Assert
	require.NoError(t, err)
	text := dispatchtest.EmbedText(rec.LastEmbed())
	assert.Contains(t, text, "Your Balance")
	assert.Contains(t, text, "1,500 coins")
	assert.Contains(t, text, "250 coins")
}

func TestHandleBalance_OtherUser(t *testing.T) {
	t.Parallel()

	f, s := newTestFeature(t)
	seedWallet(t, s, testOtherID, 42, 0)
	rec := &dispatchtest.Recorder{}

	err := f.handleBalance(dispatchtest.NewGuildContext(rec, testGuildID, testUserID, "<@"+testOtherID+">"))

	require.NoError(t, err)
	text := dispatchtest.EmbedText(rec.LastEmbed())
	assert.Contains(t, text, "Balance of <@"+testOtherID+">")
	assert.Contains(t, text, "42 coins")
}

func TestHandleDepositWithdraw(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		withdraw   bool
		arg        string
		wantErr    string
		wantText   string
		wantWallet int64
		wantBank   int64
	}{
		{name: "deposit amount", arg: "300", wantText: "You deposited **300 coins**", wantWallet: 700, wantBank: 400},
		{name: "deposit all", arg: "all", wantText: "You deposited **1,000 coins**", wantWallet: 0, wantBank: 1100},
		{name: "deposit too much", arg: "5000", wantErr: "Insufficient wallet balance. You have 1000 coins."},
		{name: "deposit garbage", arg: "abc", wantErr: "Please specify a valid positive amount to deposit."},
		{name: "withdraw amount", withdraw: true, arg: "50", wantText: "You withdrew **50 coins**", wantWallet: 1050, wantBank: 50},
		{name: "withdraw max", withdraw: true, arg: "max", wantText: "You withdrew **100 coins**", wantWallet: 1100, wantBank: 0},
		{name: "withdraw too much", withdraw: true, arg: "101", wantErr: "Insufficient bank balance. You have 100 coins in bank."},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// Setup
			f, s := newTestFeature(t)
			seedWallet(t, s, testUserID, 1000, 100)
			rec := &dispatchtest.Recorder{}
			ctx := dispatchtest.NewGuildContext(rec, testGuildID, testUserID, tt.arg)

			// Execute
			var err error
			if tt.withdraw {
				err = f.handleWithdraw(ctx)
			} else {
				err = f.handleDeposit(ctx)
			}

			// Assert
			if tt.wantErr != "" {
				var botErr *common.BotError
				require.ErrorAs(t, err, &botErr)
				assert.Equal(t, tt.wantErr, botErr.UserMessage)
				assert.Empty(t, rec.Embeds)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, dispatchtest.EmbedText(rec.LastEmbed()), tt.wantText)

			account, ok := f.ledger.GetAccount(testUserID)
			require.True(t, ok)
			assert.Equal(t, tt.wantWallet, account.Balance)
			assert.Equal(t, tt.wantBank, account.BankBalance)
		})
	}
}

func TestHandleLeaderboard(t *testing.T) {
	t.Parallel()

	t.Run("ranks members by wallet", func(t *testing.T) {
		t.Parallel()

		f, s := newTestFeature(t)
		seedWallet(t, s, testUserID, 10, 0)
		seedWallet(t, s, testOtherID, 500, 0)
		rec := &dispatchtest.Recorder{}

		err := f.handleLeaderboard(dispatchtest.NewGuildContext(rec, testGuildID, testUserID))

		require.NoError(t, err)
		embed := rec.LastEmbed()
		require.NotNil(t, embed)
		assert.Less(t, strings.Index(embed.Description, testOtherID), strings.Index(embed.Description, testUserID))
		assert.Contains(t, embed.Description, "🥇")
		assert.Equal(t, "Page 1 of 1", embed.Footer.Text)
	})

	t.Run("rejects a page past the end", func(t *testing.T) {
		t.Parallel()

		f, s := newTestFeature(t)
		seedWallet(t, s, testUserID, 10, 0)
		rec := &dispatchtest.Recorder{}

		err := f.handleLeaderboard(dispatchtest.NewGuildContext(rec, testGuildID, testUserID, "3"))

		var botErr *common.BotError
		require.ErrorAs(t, err, &botErr)
		assert.Equal(t, "Page 3 does not exist! There are only 1 pages.", botErr.UserMessage)
	})
}

func TestGetMedalForRank(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "🥇", getMedalForRank(1))
	assert.Equal(t, "🥈", getMedalForRank(2))
	assert.Equal(t, "🥉", getMedalForRank(3))
	assert.Equal(t, "**4.**", getMedalForRank(4))
}
