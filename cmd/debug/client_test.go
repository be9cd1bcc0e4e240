package debug

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"coinbot/bot"
	"coinbot/domain/services"
	"coinbot/domain/store"
	"coinbot/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type guildList []bot.GuildInfo

func (g guildList) GetGuilds() []bot.GuildInfo { return g }

type saverFunc func(ctx context.Context) error

func (f saverFunc) Save(ctx context.Context) error { return f(ctx) }

func newTestClient(t *testing.T, saveErr error) (*Client, *store.Store) {
	t.Helper()
	s := store.New(&testhelpers.RecordingEventPublisher{})
	api := bot.NewDebugAPI(
		guildList{{ID: "guild-1", Name: "Coin Club"}},
		services.NewStatisticsService(s),
		saverFunc(func(ctx context.Context) error { return saveErr }),
	)
	server := httptest.NewServer(api.Router())
	t.Cleanup(server.Close)
	return NewClientWithURL(server.URL), s
}

func TestClient_CheckConnection(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, nil)
	assert.NoError(t, client.CheckConnection())

	unreachable := NewClientWithURL("http://127.0.0.1:1")
	assert.Error(t, unreachable.CheckConnection())
}

func TestClient_GetGuilds(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, nil)

	guilds, err := client.GetGuilds()

	require.NoError(t, err)
	assert.Equal(t, []GuildInfo{{ID: "guild-1", Name: "Coin Club"}}, guilds)
}

func TestClient_GetStats(t *testing.T) {
	t.Parallel()

	// Setup
	client, s := newTestClient(t, nil)
	require.NoError(t, s.Update(func(tx *store.Tx) error {
		for _, id := range []string{"a", "b"} {
			u := tx.AccountOrCreate(id)
			u.GuildID = "guild-1"
			u.Balance = 150
		}
		return nil
	}))

	// Execute
	stats, err := client.GetStats("guild-1")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Users)
	assert.Equal(t, int64(300), stats.TotalBalance)
	assert.Equal(t, int64(150), stats.AverageBalance)
}

func TestClient_Save(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, nil)
	msg, err := client.Save()
	require.NoError(t, err)
	assert.Equal(t, "Snapshot saved", msg)

	failing, _ := newTestClient(t, errors.New("disk full"))
	_, err = failing.Save()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestFormatNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-45000, "-45,000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatNumber(tt.in))
	}
}

func TestFormatTable(t *testing.T) {
	t.Parallel()

	out := formatTable([]string{"ID", "Name"}, [][]string{{"1", "Alpha"}})

	want := "+----+-------+\n" +
		"| ID | Name  |\n" +
		"+----+-------+\n" +
		"| 1  | Alpha |\n" +
		"+----+-------+"
	assert.Equal(t, want, out)
	assert.Empty(t, formatTable([]string{"ID"}, nil))
}
