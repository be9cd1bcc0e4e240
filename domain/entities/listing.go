package entities

import "time"

// Listing is a marketplace offer of a quantity of one item at a unit price
type Listing struct {
	ID        string    `json:"id" db:"id"`
	SellerID  string    `json:"sellerId" db:"seller_id"`
	GuildID   string    `json:"guildId" db:"guild_id"`
	ItemKey   string    `json:"item" db:"item_key"`
	Quantity  int64     `json:"quantity" db:"quantity"`
	Price     int64     `json:"price" db:"price"` // Unit price
	CreatedAt time.Time `json:"timestamp" db:"created_at"`
}

// TotalValue returns quantity times unit price
func (l *Listing) TotalValue() int64 {
	return l.Quantity * l.Price
}

// CostOf returns the price of buying qty units
func (l *Listing) CostOf(qty int64) int64 {
	return qty * l.Price
}

// IsActive reports whether the listing still has stock
func (l *Listing) IsActive() bool {
	return l.Quantity > 0
}

// Clone returns a copy of the listing
func (l *Listing) Clone() *Listing {
	if l == nil {
		return nil
	}
	c := *l
	return &c
}

// ListingPage is one page of a guild's marketplace
type ListingPage struct {
	Listings   []*Listing
	Total      int
	TotalPages int
	Page       int
}
