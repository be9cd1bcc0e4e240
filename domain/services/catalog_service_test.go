package services

import (
	"testing"

	"coinbot/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_SeedAndVisibility(t *testing.T) {
	t.Parallel()

	// Setup
	env := newTestEnv(t)
	catalog := NewCatalogService(env.store)
	require.NoError(t, catalog.Seed([]*entities.CatalogItem{
		{Key: "Apple", Name: "Apple", Emoji: "🍎", Price: 5},
		{Key: "trophy", Name: "Trophy"},
	}))

	_, err := catalog.AddItem(testGuildID, &entities.CatalogItem{Key: "badge", Name: "Server Badge", Price: 20})
	require.NoError(t, err)

	// Execute
	items := catalog.Items(testGuildID)
	otherItems := catalog.Items(testOtherGuild)

	// Assert
	require.Len(t, items, 3)
	assert.Equal(t, []string{"apple", "badge", "trophy"}, []string{items[0].Key, items[1].Key, items[2].Key})
	assert.Len(t, otherItems, 2, "guild items are hidden from other guilds")
	assert.True(t, catalog.IsValidItem("APPLE"))

	_, ok := catalog.Item(testOtherGuild, "badge")
	assert.False(t, ok)
}

func TestCatalogService_SeedRejectsInvalidItems(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	catalog := NewCatalogService(env.store)

	err := catalog.Seed([]*entities.CatalogItem{{Key: "ok", Name: "Ok"}, {Key: "bad", Price: 5}})

	assert.ErrorIs(t, err, ErrInvalidItem)
	assert.False(t, catalog.IsValidItem("ok"), "seeding is all or nothing")
}

func TestCatalogService_AddItem(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		guild   string
		item    *entities.CatalogItem
		wantErr error
	}{
		{name: "new guild item", guild: testGuildID, item: &entities.CatalogItem{Key: "Cape", Name: "Cape", Price: 10}},
		{name: "replace own item", guild: testGuildID, item: &entities.CatalogItem{Key: "hat", Name: "Fancy Hat", Price: 15}},
		{name: "missing name", guild: testGuildID, item: &entities.CatalogItem{Key: "x", Price: 1}, wantErr: ErrInvalidItem},
		{name: "negative price", guild: testGuildID, item: &entities.CatalogItem{Key: "x", Name: "X", Price: -1}, wantErr: ErrInvalidItem},
		{name: "shadows global item", guild: testGuildID, item: &entities.CatalogItem{Key: "coin", Name: "Coin"}, wantErr: ErrGlobalItem},
		{name: "key owned by another guild", guild: testOtherGuild, item: &entities.CatalogItem{Key: "hat", Name: "Hat"}, wantErr: ErrInvalidItem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// Setup
			env := newTestEnv(t)
			env.seedItem("coin", 0, "")
			env.seedItem("hat", 5, testGuildID)
			catalog := NewCatalogService(env.store)

			// Execute
			added, err := catalog.AddItem(tt.guild, tt.item)

			// Assert
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, added)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, entities.NormalizeItemKey(tt.item.Key), added.Key)
			assert.Equal(t, tt.guild, added.GuildID)
			stored, ok := catalog.Item(tt.guild, tt.item.Key)
			require.True(t, ok)
			assert.Equal(t, tt.item.Price, stored.Price)
		})
	}
}

func TestCatalogService_RemoveItem(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedItem("coin", 0, "")
	env.seedItem("hat", 5, testGuildID)
	catalog := NewCatalogService(env.store)

	assert.ErrorIs(t, catalog.RemoveItem(testGuildID, "missing"), ErrItemNotFound)
	assert.ErrorIs(t, catalog.RemoveItem(testGuildID, "coin"), ErrGlobalItem)
	assert.ErrorIs(t, catalog.RemoveItem(testOtherGuild, "hat"), ErrItemNotFound)
	assert.NoError(t, catalog.RemoveItem(testGuildID, "HAT"))
	assert.False(t, catalog.IsValidItem("hat"))
}

func TestCatalogService_Buy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		key         string
		qty         int64
		wantSuccess bool
		wantMessage string
		wantBalance int64
		wantHeld    int64
	}{
		{name: "buys items", key: "hat", qty: 3, wantSuccess: true, wantMessage: "Purchased 3x 🎩 Hat for 45 coins", wantBalance: 55, wantHeld: 3},
		{name: "not for sale", key: "trophy", qty: 1, wantMessage: "Trophy is not for sale", wantBalance: 100},
		{name: "unknown item", key: "boat", qty: 1, wantMessage: "Item `boat` not found in the store", wantBalance: 100},
		{name: "too expensive", key: "hat", qty: 7, wantMessage: "Insufficient funds. Need 105, have 100", wantBalance: 100},
		{name: "zero quantity", key: "hat", qty: 0, wantMessage: "Quantity must be positive", wantBalance: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// Setup
			env := newTestEnv(t)
			env.seedAccount(testUser1, testGuildID, 100, 0)
			catalog := NewCatalogService(env.store)
			_, err := catalog.AddItem(testGuildID, &entities.CatalogItem{Key: "hat", Name: "Hat", Emoji: "🎩", Price: 15})
			require.NoError(t, err)
			_, err = catalog.AddItem(testGuildID, &entities.CatalogItem{Key: "trophy", Name: "Trophy"})
			require.NoError(t, err)

			// Execute
			result := catalog.Buy(testGuildID, testUser1, tt.key, tt.qty)

			// Assert
			assert.Equal(t, tt.wantSuccess, result.Success)
			assert.Equal(t, tt.wantMessage, result.Message)
			acc := env.account(testUser1)
			assert.Equal(t, tt.wantBalance, acc.Balance)
			assert.Equal(t, tt.wantHeld, acc.ItemCount("hat"))
		})
	}
}
