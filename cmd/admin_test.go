package cmd

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"coinbot/config"
	"coinbot/domain/entities"
	"coinbot/repository"
	"coinbot/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileBackedConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.NewTestConfig()
	cfg.DataDir = t.TempDir()

	repo := repository.NewFileSnapshotRepository(cfg.DataDir)
	require.NoError(t, repo.Save(context.Background(), testutil.CreateTestSnapshot()))
	return cfg
}

func TestUpdateBalance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		userID     string
		amount     int64
		wantBefore int64
		wantAfter  int64
	}{
		{name: "existing user", userID: "alice", amount: 900, wantBefore: 150, wantAfter: 900},
		{name: "new user", userID: "carol", amount: 25, wantBefore: 0, wantAfter: 25},
		{name: "negative clamps to zero", userID: "bob", amount: -10, wantBefore: 20, wantAfter: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// Setup
			ctx := context.Background()
			cfg := newFileBackedConfig(t)

			// Execute
			update, err := UpdateBalance(ctx, cfg, tt.userID, tt.amount)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.wantBefore, update.Before)
			assert.Equal(t, tt.wantAfter, update.After)

			saved, err := repository.NewFileSnapshotRepository(cfg.DataDir).Load(ctx)
			require.NoError(t, err)
			require.Contains(t, saved.Users, tt.userID)
			assert.Equal(t, tt.wantAfter, saved.Users[tt.userID].Balance)
		})
	}
}

func TestExportSnapshot(t *testing.T) {
	t.Parallel()

	// Setup
	cfg := newFileBackedConfig(t)
	out := filepath.Join(t.TempDir(), "export.json")

	// Execute
	err := ExportSnapshot(context.Background(), cfg, out)

	// Assert
	require.NoError(t, err)
	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var snapshot entities.Snapshot
	require.NoError(t, json.Unmarshal(data, &snapshot))
	assert.Len(t, snapshot.Users, 2)
	assert.Contains(t, snapshot.Listings, "listing-1")
	assert.Equal(t, []string{"bob"}, snapshot.Claimed)
	assert.Equal(t, "$", snapshot.GuildConfigs["guild-1"].Prefix)
}

func TestRun_RequiresToken(t *testing.T) {
	t.Parallel()

	cfg := config.NewTestConfig()
	cfg.DiscordToken = ""

	err := Run(context.Background(), cfg)

	assert.ErrorContains(t, err, "DISCORD_TOKEN")
}
