package testutil

import (
	"time"

	"coinbot/domain/entities"
)

// FixedTime is the timestamp every factory uses, truncated so it survives
// a round trip through TIMESTAMPTZ
var FixedTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// CreateTestAccount creates an account with a wallet balance in the given guild
func CreateTestAccount(userID, guildID string, balance int64) *entities.UserAccount {
	account := entities.NewUserAccount(userID, FixedTime)
	account.GuildID = guildID
	account.Balance = balance
	account.TotalEarned = balance
	return account
}

// CreateTestListing creates a marketplace listing
func CreateTestListing(id, sellerID, guildID, itemKey string, quantity, price int64) *entities.Listing {
	return &entities.Listing{
		ID:        id,
		SellerID:  sellerID,
		GuildID:   guildID,
		ItemKey:   itemKey,
		Quantity:  quantity,
		Price:     price,
		CreatedAt: FixedTime,
	}
}

// CreateTestSnapshot builds a snapshot touching every collection
func CreateTestSnapshot() *entities.Snapshot {
	s := entities.NewSnapshot()

	alice := CreateTestAccount("alice", "guild-1", 150)
	alice.BankBalance = 400
	alice.Inventory["hat"] = 2
	alice.DailyStreak = 3
	alice.LastDaily = FixedTime.Add(-time.Hour)
	alice.Bio = "coin collector"
	alice.Links["github"] = "https://github.com/alice"
	alice.Badges = []string{"early"}
	s.Users[alice.UserID] = alice

	bob := CreateTestAccount("bob", "guild-2", 20)
	bob.Referrals = 1
	s.Users[bob.UserID] = bob

	s.Items["hat"] = &entities.CatalogItem{Key: "hat", Name: "Hat", Emoji: "🎩", Description: "A fine hat", Price: 15}
	s.Items["relic"] = &entities.CatalogItem{Key: "relic", Name: "Relic", GuildID: "guild-1"}

	listing := CreateTestListing("listing-1", "alice", "guild-1", "hat", 1, 40)
	s.Listings[listing.ID] = listing

	s.Invites["abc"] = &entities.InviteRegistration{Code: "abc", InviterID: "alice", RegisteredAt: FixedTime, Uses: 1}
	s.Claimed = []string{"bob"}

	cfg := entities.NewDefaultGuildConfig("guild-1")
	cfg.Prefix = "$"
	s.GuildConfigs["guild-1"] = cfg

	s.Warnings["guild-1"] = map[string][]*entities.Warning{
		"bob": {
			{ID: "w1", GuildID: "guild-1", UserID: "bob", ModeratorID: "mod", Reason: "spam", CreatedAt: FixedTime},
			{ID: "w2", GuildID: "guild-1", UserID: "bob", ModeratorID: "mod", Reason: "caps", CreatedAt: FixedTime.Add(time.Minute)},
		},
	}
	s.ModLogs["guild-1"] = []*entities.ModLogEntry{
		{ID: "l1", GuildID: "guild-1", Action: entities.ModActionWarning, UserID: "bob", ModeratorID: "mod", Reason: "spam", CreatedAt: FixedTime},
		{ID: "l2", GuildID: "guild-1", Action: entities.ModActionWarning, UserID: "bob", ModeratorID: "mod", Reason: "caps", CreatedAt: FixedTime.Add(time.Minute)},
	}

	return s
}
