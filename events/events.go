package events

import "coinbot/domain/entities"

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeBalanceChange    EventType = "balance_change"
	EventTypeListingCreated   EventType = "listing_created"
	EventTypeListingPurchased EventType = "listing_purchased"
	EventTypeReferralClaimed  EventType = "referral_claimed"
	EventTypeInterestApplied  EventType = "interest_applied"
	EventTypeEconomyNuked     EventType = "economy_nuked"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// BalanceChangeEvent represents a wallet or bank change that occurred
type BalanceChangeEvent struct {
	UserID          string
	GuildID         string
	OldBalance      int64
	NewBalance      int64
	OldBank         int64
	NewBank         int64
	TransactionType entities.TransactionType
	ChangeAmount    int64
}

func (e BalanceChangeEvent) Type() EventType {
	return EventTypeBalanceChange
}

// ListingCreatedEvent represents a new marketplace listing
type ListingCreatedEvent struct {
	ListingID string
	GuildID   string
	SellerID  string
	ItemKey   string
	Quantity  int64
	Price     int64
}

func (e ListingCreatedEvent) Type() EventType {
	return EventTypeListingCreated
}

// ListingPurchasedEvent represents a completed marketplace purchase
type ListingPurchasedEvent struct {
	ListingID string
	GuildID   string
	BuyerID   string
	SellerID  string
	ItemKey   string
	Quantity  int64
	TotalCost int64
	SoldOut   bool
}

func (e ListingPurchasedEvent) Type() EventType {
	return EventTypeListingPurchased
}

// ReferralClaimedEvent represents a successful referral claim
type ReferralClaimedEvent struct {
	Code      string
	InviterID string
	ClaimerID string
	Bonus     int64
}

func (e ReferralClaimedEvent) Type() EventType {
	return EventTypeReferralClaimed
}

// InterestAppliedEvent represents a completed interest sweep
type InterestAppliedEvent struct {
	GuildID         string
	Rate            float64
	TotalInterest   int64
	AccountsTouched int
}

func (e InterestAppliedEvent) Type() EventType {
	return EventTypeInterestApplied
}

// EconomyNukedEvent represents a guild economy wipe
type EconomyNukedEvent struct {
	GuildID         string
	InitiatorID     string
	AccountsReset   int
	ListingsRemoved int
	ItemsRemoved    int
}

func (e EconomyNukedEvent) Type() EventType {
	return EventTypeEconomyNuked
}
