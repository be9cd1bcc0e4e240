package repository

import (
	"context"
	"testing"

	"coinbot/domain/entities"
	"coinbot/repository/testutil"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresSnapshotRepository_RoundTrip(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewPostgresSnapshotRepository(testDB.DB)
	ctx := context.Background()

	t.Run("empty database loads empty snapshot", func(t *testing.T) {
		got, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, got.Users)
		assert.Empty(t, got.Claimed)
	})

	t.Run("save then load", func(t *testing.T) {
		want := testutil.CreateTestSnapshot()
		require.NoError(t, repo.Save(ctx, want))

		got, err := repo.Load(ctx)
		require.NoError(t, err)

		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("save replaces previous contents", func(t *testing.T) {
		next := entities.NewSnapshot()
		next.Users["carol"] = testutil.CreateTestAccount("carol", "guild-3", 5)
		require.NoError(t, repo.Save(ctx, next))

		got, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Len(t, got.Users, 1)
		assert.Contains(t, got.Users, "carol")
		assert.Empty(t, got.Listings)
		assert.Empty(t, got.Warnings)
	})
}

func TestPostgresSnapshotRepository_KeepsLogOrder(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewPostgresSnapshotRepository(testDB.DB)
	ctx := context.Background()

	snapshot := entities.NewSnapshot()
	// Ids deliberately sort opposite to insertion order
	for _, id := range []string{"z", "m", "a"} {
		snapshot.ModLogs["g"] = append(snapshot.ModLogs["g"], &entities.ModLogEntry{
			ID: id, GuildID: "g", Action: entities.ModActionKick, UserID: "u", ModeratorID: "mod",
			Reason: "r", CreatedAt: testutil.FixedTime,
		})
	}
	require.NoError(t, repo.Save(ctx, snapshot))

	got, err := repo.Load(ctx)
	require.NoError(t, err)

	var ids []string
	for _, e := range got.ModLogs["g"] {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"z", "m", "a"}, ids)
}
