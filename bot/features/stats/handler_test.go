package stats

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

const testGuildID = "guild-1"

func newTestFeature(t *testing.T) (*Feature, *store.Store) {
	t.Helper()
	s := store.New(&testhelpers.RecordingEventPublisher{})
	return New(services.NewStatisticsService(s)), s
}

func seedAccount(t *testing.T, s *store.Store, userID string, balance, bank int64, referrals int64) {
	t.Helper()
	require.NoError(t, s.Update(func(tx *store.Tx) error {
		u := tx.AccountOrCreate(userID)
		u.GuildID = testGuildID
		u.Balance = balance
		u.BankBalance = bank
		u.Referrals = referrals
		return nil
	}))
}

func TestHandleStats_DefaultsToNetWorth(t *testing.T) {
	t.Parallel()

	// Setup
	f, s := newTestFeature(t)
	seedAccount(t, s, "poor", 10, 0, 0)
	seedAccount(t, s, "saver", 5, 500, 0)
	seedAccount(t, s, "spender", 300, 0, 0)
	rec := &dispatchtest.Recorder{}

	// Execute
	err := f.handleStats(dispatchtest.NewGuildContext(rec, testGuildID, "poor"))

	// Assert
	require.NoError(t, err)
	text := dispatchtest.EmbedText(rec.LastEmbed())
	assert.Contains(t, text, "📊 Economy Statistics")
	assert.Contains(t, text, "👥 Members: 3")
	assert.Contains(t, text, "🏆 Top by Net Worth")

	saver := strings.Index(text, "🥇 <@saver>")
	spender := strings.Index(text, "🥈 <@spender>")
	poor := strings.Index(text, "🥉 <@poor>")
	require.NotEqual(t, -1, saver)
	assert.Less(t, saver, spender)
	assert.Less(t, spender, poor)
}

func TestHandleStats_ReferralMetric(t *testing.T) {
	t.Parallel()

	// Setup
	f, s := newTestFeature(t)
	seedAccount(t, s, "recruiter", 0, 0, 4)
	rec := &dispatchtest.Recorder{}

	// Execute
	err := f.handleStats(dispatchtest.NewGuildContext(rec, testGuildID, "recruiter", "Referrals"))

	// Assert
	require.NoError(t, err)
	text := dispatchtest.EmbedText(rec.LastEmbed())
	assert.Contains(t, text, "🏆 Top by Referrals")
	assert.Contains(t, text, "🥇 <@recruiter> • 4")
}

func TestHandleStats_UnknownMetric(t *testing.T) {
	t.Parallel()

	f, _ := newTestFeature(t)
	rec := &dispatchtest.Recorder{}

	err := f.handleStats(dispatchtest.NewGuildContext(rec, testGuildID, "u1", "luck"))

	var botErr *common.BotError
	require.ErrorAs(t, err, &botErr)
	assert.Contains(t, botErr.UserMessage, "Unknown metric `luck`")
	assert.Empty(t, rec.Embeds)
}

func TestHandleStats_EmptyGuildHasNoTopField(t *testing.T) {
	t.Parallel()

	f, _ := newTestFeature(t)
	rec := &dispatchtest.Recorder{}

	require.NoError(t, f.handleStats(dispatchtest.NewGuildContext(rec, testGuildID, "u1")))

	assert.NotContains(t, dispatchtest.EmbedText(rec.LastEmbed()), "🏆")
}

func TestGetMedalForRank(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "🥇", getMedalForRank(1))
	assert.Equal(t, "🥉", getMedalForRank(3))
	assert.Equal(t, "4.", getMedalForRank(4))
}
