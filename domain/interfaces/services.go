package interfaces

import (
	"io"
	"time"

	"coinbot/domain/entities"
)

// UserLedger defines wallet and inventory operations on user accounts
type UserLedger interface {
	// GetOrCreateAccount returns a copy of the account, creating a zero record if missing
	GetOrCreateAccount(userID string) *entities.UserAccount

	// GetAccount returns a copy of the account without creating it
	GetAccount(userID string) (*entities.UserAccount, bool)

	// EnsureMember gets or creates the account and records its home guild
	EnsureMember(guildID, userID string) *entities.UserAccount

	// Credit adds to the wallet and lifetime earnings, returning the new balance
	Credit(userID string, amount int64, txType entities.TransactionType) (int64, error)

	// Debit removes from the wallet; false means insufficient funds and no change
	Debit(userID string, amount int64, txType entities.TransactionType) (bool, error)

	// SetBalance overwrites the wallet, clamped to zero
	SetBalance(userID string, amount int64) int64

	AddInventory(userID, itemKey string, qty int64) bool
	RemoveInventory(userID, itemKey string, qty int64) bool

	// Transfer moves coins between wallets; false means insufficient funds
	Transfer(fromID, toID string, amount int64) (bool, error)

	// Leaderboard returns one page of a guild ranked by wallet and the page count
	Leaderboard(guildID string, page, perPage int) ([]*entities.LeaderboardEntry, int)
}

// BankService defines the bank subledger
type BankService interface {
	Deposit(userID string, amount int64) *entities.BankResult
	Withdraw(userID string, amount int64) *entities.BankResult

	// ApplyInterest credits floor(bank*rate) to each account, optionally only
	// those whose home guild matches guildFilter
	ApplyInterest(rate float64, guildFilter string) *entities.InterestResult
}

// MarketplaceService defines player-to-player item trading
type MarketplaceService interface {
	CreateListing(sellerID, guildID, itemKey string, qty, price int64) (*entities.Listing, bool)
	Purchase(buyerID, guildID, listingID string, qty int64) *entities.PurchaseResult
	RemoveListing(sellerID, guildID, listingID string) bool
	GetListing(guildID, listingID string) (*entities.Listing, bool)
	PagedListings(guildID string, page, perPage int) *entities.ListingPage
}

// ReferralService defines invite registration and referral claims
type ReferralService interface {
	RegisterInvite(code, inviterID string) error
	Claim(code, claimerID string) *entities.ClaimResult
	InviteOwner(code string) (string, bool)
	InvitesFor(inviterID string) []*entities.InviteRegistration
	HasClaimed(userID string) bool
	Bonus() int64
}

// CatalogService defines the item catalog and the admin item store
type CatalogService interface {
	// Seed installs global items loaded at startup
	Seed(items []*entities.CatalogItem) error
	Items(guildID string) []*entities.CatalogItem
	Item(guildID, key string) (*entities.CatalogItem, bool)
	IsValidItem(key string) bool
	AddItem(guildID string, item *entities.CatalogItem) (*entities.CatalogItem, error)
	RemoveItem(guildID, key string) error
	Buy(guildID, userID, key string, qty int64) *entities.StorePurchaseResult
}

// GuildConfigService defines per-guild configuration
type GuildConfigService interface {
	// Get returns the guild's config, creating defaults on first access
	Get(guildID string) *entities.GuildConfig

	// Peek returns the guild's config without persisting defaults
	Peek(guildID string) *entities.GuildConfig

	// Set applies a configset command and returns a confirmation
	Set(guildID string, args []string) (string, error)

	Update(cfg *entities.GuildConfig) error
	GuildIDs() []string
}

// NukeService defines the per-guild economy wipe confirmation flow
type NukeService interface {
	Request(guildID, userID string) (time.Time, error)
	Confirm(guildID, userID string) (*entities.WipeResult, error)
	Cancel(guildID, userID string) error
	Pending(guildID string) (entities.PendingNuke, bool)

	// OnExpire registers the callback run when a pending nuke times out
	OnExpire(fn func(entities.PendingNuke))

	// Stop cancels all pending timers
	Stop()
}

// EconomyService defines the coin-earning activities
type EconomyService interface {
	Earn(guildID, userID string) (*entities.EconomyOutcome, error)
	Daily(guildID, userID string) (*entities.EconomyOutcome, error)
	Weekly(guildID, userID string) (*entities.EconomyOutcome, error)
	Crime(guildID, userID string) (*entities.EconomyOutcome, error)
	Invest(guildID, userID string, amount int64) (*entities.EconomyOutcome, error)
}

// GamblingService defines the casino games
type GamblingService interface {
	Slots(userID string, bet int64) (*entities.SlotsResult, error)
	Roulette(userID, betType string, amount int64) (*entities.RouletteResult, error)
	StartBlackjack(guildID, userID string, bet int64) (*entities.BlackjackHand, error)
	Hit(userID string) (*entities.BlackjackHand, error)
	Stand(userID string) (*entities.BlackjackHand, error)
	ActiveHand(userID string) (*entities.BlackjackHand, bool)
}

// ModerationService defines warnings and the moderation log
type ModerationService interface {
	// Warn records a warning and returns it with the member's warning count
	Warn(guildID, userID, moderatorID, reason string) (*entities.Warning, int, error)
	RemoveWarning(guildID, userID, moderatorID, warningID string) bool
	Warnings(guildID, userID string) []*entities.Warning
	Log(entry *entities.ModLogEntry) *entities.ModLogEntry
	Logs(guildID string, filter entities.ModLogFilter) []*entities.ModLogEntry
	Stats(guildID string, days int) *entities.ModStats
	ExportCSV(guildID string, w io.Writer) (int, error)
	CleanWarnings(guildID string, olderThanDays int) (int, error)
}

// ProfileService defines cosmetic profile fields
type ProfileService interface {
	SetBio(userID, bio string) error
	AddLink(userID, platform, url string) error
	RemoveLink(userID, platform string) bool
	GrantBadge(userID, badge string) error
	RevokeBadge(userID, badge string) error
	Profile(userID string) *entities.UserAccount
}

// StatisticsService defines economy-wide aggregates
type StatisticsService interface {
	Statistics(guildID string) *entities.EconomyStats
	TopUsers(guildID, metric string, limit int) []*entities.LeaderboardEntry
}
