package entities

import "time"

// BankResult is the outcome of a deposit or withdrawal
type BankResult struct {
	Success   bool
	Message   string
	NewWallet int64
	NewBank   int64
}

// InterestResult summarizes an interest sweep
type InterestResult struct {
	TotalInterest   int64
	AccountsTouched int
}

// PurchaseResult is the outcome of a marketplace purchase
type PurchaseResult struct {
	Success   bool
	Message   string
	ItemKey   string
	Quantity  int64
	TotalCost int64
	SellerID  string
	Listing   *Listing // Remaining listing, nil when sold out or on failure
}

// StorePurchaseResult is the outcome of buying from the item store
type StorePurchaseResult struct {
	Success    bool
	Message    string
	Item       *CatalogItem
	Quantity   int64
	TotalCost  int64
	NewBalance int64
}

// WipeResult reports what an economy wipe removed
type WipeResult struct {
	AccountsReset   int
	ListingsRemoved int
	ItemsRemoved    int
}

// PendingNuke is a guild's outstanding wipe confirmation
type PendingNuke struct {
	GuildID     string
	InitiatorID string
	Deadline    time.Time
}

// EconomyStats aggregates a guild's economy
type EconomyStats struct {
	Users          int
	TotalBalance   int64
	TotalBank      int64
	TotalEarned    int64
	TotalReferrals int64
	AverageBalance int64
	TotalInvites   int
	TotalClaimed   int
	ClaimRate      int
	TotalListings  int
	ListingsValue  int64
}

// LeaderboardEntry is one ranked account
type LeaderboardEntry struct {
	Rank    int
	UserID  string
	Balance int64
	Bank    int64
	Value   int64
}
