package earnings

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
)

func newTestFeature(t *testing.T, wallet int64, ints []int, floats []float64) *Feature {
	t.Helper()
	s := store.New(&testhelpers.RecordingEventPublisher{})
	require.NoError(t, s.Update(func(tx *store.Tx) error {
		tx.AccountOrCreate(testUserID).Balance = wallet
		return nil
	}))
	rng := testhelpers.NewScriptedRand(ints, floats)
	return New(services.NewEconomyService(s, rng), services.NewUserLedger(s))
}

func userMessage(t *testing.T, err error) string {
	t.Helper()
	var botErr *common.BotError
	require.ErrorAs(t, err, &botErr)
	return botErr.UserMessage
}

func TestHandleEarn(t *testing.T) {
	t.Parallel()

	// Setup
	f := newTestFeature(t, 0, []int{9}, nil)
	rec := &dispatchtest.Recorder{}

	// Execute
	first := f.handleEarn(dispatchtest.NewGuildContext(rec, testGuildID, testUserID))
	second := f.handleEarn(dispatchtest.NewGuildContext(rec, testGuildID, testUserID))

	// Assert
	require.NoError(t, first)
	assert.Contains(t, dispatchtest.EmbedText(rec.LastEmbed()), "You worked hard and earned 10 coins!")
	assert.True(t, strings.HasPrefix(userMessage(t, second), "You can earn again in "))
	assert.Len(t, rec.Embeds, 1)
}

func TestHandleDailyAndWeekly(t *testing.T) {
	t.Parallel()

	f := newTestFeature(t, 0, []int{0}, nil)
	rec := &dispatchtest.Recorder{}

	require.NoError(t, f.handleDaily(dispatchtest.NewGuildContext(rec, testGuildID, testUserID)))
	assert.Contains(t, dispatchtest.EmbedText(rec.LastEmbed()), "You earned **50** coins today!")
	assert.Contains(t, dispatchtest.EmbedText(rec.LastEmbed()), "1 day(s)")

	require.NoError(t, f.handleDaily(dispatchtest.NewGuildContext(rec, testGuildID, testUserID)))
	assert.True(t, strings.HasPrefix(rec.Last(), "🕒 You have already claimed your daily bonus."))

	require.NoError(t, f.handleWeekly(dispatchtest.NewGuildContext(rec, testGuildID, testUserID)))
	assert.Contains(t, dispatchtest.EmbedText(rec.LastEmbed()), "You earned **100** coins this week!")

	require.NoError(t, f.handleWeekly(dispatchtest.NewGuildContext(rec, testGuildID, testUserID)))
	assert.True(t, strings.HasPrefix(rec.Last(), "🕒 You have already claimed your weekly bonus. Next claim available in "))
}

func TestHandleCrime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		floats []float64
		ints   []int
		want   string
	}{
		{
			name:   "success",
			floats: []float64{0.1},
			ints:   []int{0},
			want:   "💰 **Crime successful!** You pulled it off and earned **10** coins!\n💳 **New balance:** 110 coins",
		},
		{
			name:   "caught",
			floats: []float64{0.9},
			ints:   []int{5},
			want:   "🚨 **You got caught!** You paid a fine of **15** coins.\n💳 **New balance:** 85 coins",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newTestFeature(t, 100, tt.ints, tt.floats)
			rec := &dispatchtest.Recorder{}

			require.NoError(t, f.handleCrime(dispatchtest.NewGuildContext(rec, testGuildID, testUserID)))
			assert.Equal(t, tt.want, rec.Last())
		})
	}
}

func TestHandleInvest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		arg     string
		floats  []float64
		want    string
		wantErr string
	}{
		{
			name:   "profit",
			arg:    "100",
			floats: []float64{0.9, 1.0},
			want:   "📈 **Investment succeeded!** Your 100 coin stake returned a profit of **+100** coins!\n💳 **New balance:** 300 coins",
		},
		{
			name:   "underperformed",
			arg:    "100",
			floats: []float64{0.9, 0.0},
			want:   "📉 **Investment underperformed.** Your 100 coin stake came back short by **50** coins.\n💳 **New balance:** 150 coins",
		},
		{
			name:   "failed",
			arg:    "100",
			floats: []float64{0.1, 0.0},
			want:   "📉 **Investment failed!** The market turned and you lost **50** coins.\n💳 **New balance:** 150 coins",
		},
		{name: "below minimum", arg: "5", wantErr: "Minimum investment is **10 coins**."},
		{name: "too much", arg: "500", wantErr: "You don't have enough coins! You have **200** coins but tried to invest **500**."},
		{name: "missing amount", arg: "", wantErr: "You must specify a positive amount to invest!\nUsage: `!invest <amount>`"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// Setup
			f := newTestFeature(t, 200, nil, tt.floats)
			rec := &dispatchtest.Recorder{}
			var args []string
			if tt.arg != "" {
				args = append(args, tt.arg)
			}

			// Execute
			err := f.handleInvest(dispatchtest.NewGuildContext(rec, testGuildID, testUserID, args...))

			// Assert
			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, userMessage(t, err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, rec.Last())
		})
	}
}
