package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"coinbot/domain/entities"
	"coinbot/repository/testutil"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSnapshotRepository_RoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	repo := NewFileSnapshotRepository(dir)
	ctx := context.Background()

	want := testutil.CreateTestSnapshot()
	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.Load(ctx)
	require.NoError(t, err)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestFileSnapshotRepository_MissingDirectoryLoadsEmpty(t *testing.T) {
	t.Parallel()

	repo := NewFileSnapshotRepository(filepath.Join(t.TempDir(), "does-not-exist"))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)

	assert.Empty(t, got.Users)
	assert.NotNil(t, got.Users)
	assert.NotNil(t, got.Claimed)
	assert.NotNil(t, got.Warnings)
}

func TestFileSnapshotRepository_PartialFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "claimed.json"), []byte(`["u1","u2"]`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "users.json"),
		[]byte(`{"u1":{"userId":"u1","balance":10,"bankBalance":0,"totalEarned":10}}`), 0o644))

	got, err := NewFileSnapshotRepository(dir).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"u1", "u2"}, got.Claimed)
	require.Contains(t, got.Users, "u1")
	assert.Equal(t, int64(10), got.Users["u1"].Balance)
	assert.NotNil(t, got.Users["u1"].Inventory)
	assert.Empty(t, got.Listings)
}

func TestFileSnapshotRepository_CorruptFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "listings.json"), []byte(`{not json`), 0o644))

	_, err := NewFileSnapshotRepository(dir).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listings.json")
}

func TestFileSnapshotRepository_SaveOverwrites(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	repo := NewFileSnapshotRepository(dir)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testutil.CreateTestSnapshot()))
	require.NoError(t, repo.Save(ctx, entities.NewSnapshot()))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got.Users)
	assert.Empty(t, got.ModLogs)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp", "temp files must not be left behind")
	}
}
