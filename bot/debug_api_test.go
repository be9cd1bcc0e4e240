package bot

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"coinbot/domain/entities"
	"coinbot/domain/services"
	"coinbot/domain/store"
	"coinbot/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticGuildSource []GuildInfo

func (s staticGuildSource) GetGuilds() []GuildInfo { return s }

type fakeSaver struct {
	calls int
	err   error
}

func (f *fakeSaver) Save(ctx context.Context) error {
	f.calls++
	return f.err
}

func newTestDebugAPI(t *testing.T, saver *fakeSaver) (*httptest.Server, *store.Store) {
	t.Helper()
	s := store.New(&testhelpers.RecordingEventPublisher{})
	guilds := staticGuildSource{{ID: testGuildID, Name: "Test Guild"}}
	api := NewDebugAPI(guilds, services.NewStatisticsService(s), saver)

	server := httptest.NewServer(api.Router())
	t.Cleanup(server.Close)
	return server, s
}

func decodeResponse(t *testing.T, resp *http.Response, data any) DebugResponse {
	t.Helper()
	defer resp.Body.Close()

	var raw struct {
		DebugResponse
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	if data != nil {
		require.NoError(t, json.Unmarshal(raw.Data, data))
	}
	return raw.DebugResponse
}

func TestDebugAPI_Health(t *testing.T) {
	t.Parallel()

	server, _ := newTestDebugAPI(t, &fakeSaver{})

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDebugAPI_Guilds(t *testing.T) {
	t.Parallel()

	server, _ := newTestDebugAPI(t, &fakeSaver{})

	resp, err := http.Get(server.URL + "/debug/guilds")
	require.NoError(t, err)

	var guilds []GuildInfo
	body := decodeResponse(t, resp, &guilds)
	assert.True(t, body.Success)
	assert.Equal(t, []GuildInfo{{ID: testGuildID, Name: "Test Guild"}}, guilds)
}

func TestDebugAPI_Stats(t *testing.T) {
	t.Parallel()

	// Setup
	server, s := newTestDebugAPI(t, &fakeSaver{})
	require.NoError(t, s.Update(func(tx *store.Tx) error {
		u := tx.AccountOrCreate("user-1")
		u.GuildID = testGuildID
		u.Balance = 300
		u.BankBalance = 200
		return nil
	}))

	// Execute
	resp, err := http.Get(server.URL + "/debug/stats/" + testGuildID)
	require.NoError(t, err)

	// Assert
	var stats entities.EconomyStats
	body := decodeResponse(t, resp, &stats)
	assert.True(t, body.Success)
	assert.Equal(t, 1, stats.Users)
	assert.Equal(t, int64(300), stats.TotalBalance)
	assert.Equal(t, int64(200), stats.TotalBank)
}

func TestDebugAPI_Save(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		saveErr    error
		wantStatus int
		wantOK     bool
	}{
		{name: "success", wantStatus: http.StatusOK, wantOK: true},
		{name: "failure", saveErr: errors.New("disk full"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			saver := &fakeSaver{err: tt.saveErr}
			server, _ := newTestDebugAPI(t, saver)

			resp, err := http.Post(server.URL+"/debug/save", "application/json", nil)
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			body := decodeResponse(t, resp, nil)
			assert.Equal(t, tt.wantOK, body.Success)
			assert.Equal(t, 1, saver.calls)
		})
	}
}

func TestDebugAPI_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	server, _ := newTestDebugAPI(t, &fakeSaver{})

	resp, err := http.Get(server.URL + "/debug/save")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
