package entities

import (
	"errors"
	"time"
)

// UserAccount represents a Discord user's economy record
type UserAccount struct {
	UserID           string            `json:"userId" db:"user_id"`
	GuildID          string            `json:"guildId,omitempty" db:"guild_id"` // Home guild, scope for interest and nuke
	Balance          int64             `json:"balance" db:"balance"`
	BankBalance      int64             `json:"bankBalance" db:"bank_balance"`
	TotalEarned      int64             `json:"totalEarned" db:"total_earned"`
	Inventory        map[string]int64  `json:"inventory" db:"inventory"`
	Referrals        int64             `json:"referrals" db:"referrals"`
	DailyStreak      int               `json:"dailyStreak" db:"daily_streak"`
	LastDaily        time.Time         `json:"lastDaily,omitempty" db:"last_daily"`
	LastWeekly       time.Time         `json:"lastWeekly,omitempty" db:"last_weekly"`
	LastEarn         time.Time         `json:"lastEarn,omitempty" db:"last_earn"`
	LastBankActivity time.Time         `json:"lastBankActivity,omitempty" db:"last_bank_activity"`
	JoinedAt         time.Time         `json:"joinedAt" db:"joined_at"`
	Bio              string            `json:"bio,omitempty" db:"bio"`
	Links            map[string]string `json:"links,omitempty" db:"links"`
	Badges           []string          `json:"badges,omitempty" db:"badges"`
}

// NewUserAccount creates a zero-valued account for a user
func NewUserAccount(userID string, now time.Time) *UserAccount {
	return &UserAccount{
		UserID:    userID,
		Inventory: make(map[string]int64),
		Links:     make(map[string]string),
		JoinedAt:  now,
	}
}

// Clone returns a deep copy of the account
func (a *UserAccount) Clone() *UserAccount {
	if a == nil {
		return nil
	}
	c := *a
	c.Inventory = make(map[string]int64, len(a.Inventory))
	for k, v := range a.Inventory {
		c.Inventory[k] = v
	}
	c.Links = make(map[string]string, len(a.Links))
	for k, v := range a.Links {
		c.Links[k] = v
	}
	if a.Badges != nil {
		c.Badges = append([]string(nil), a.Badges...)
	}
	return &c
}

// HasSufficientBalance checks if the wallet covers an amount
func (a *UserAccount) HasSufficientBalance(amount int64) bool {
	return a.Balance >= amount
}

// HasSufficientBankBalance checks if the bank covers an amount
func (a *UserAccount) HasSufficientBankBalance(amount int64) bool {
	return a.BankBalance >= amount
}

// NetWorth returns wallet plus bank
func (a *UserAccount) NetWorth() int64 {
	return a.Balance + a.BankBalance
}

// ItemCount returns how many of an item the user holds
func (a *UserAccount) ItemCount(itemKey string) int64 {
	return a.Inventory[itemKey]
}

// HasBadge reports whether the badge was granted
func (a *UserAccount) HasBadge(badge string) bool {
	for _, b := range a.Badges {
		if b == badge {
			return true
		}
	}
	return false
}

// ValidateAmount checks if an amount is positive and affordable from the wallet
func (a *UserAccount) ValidateAmount(amount int64) error {
	if amount <= 0 {
		return errors.New("amount must be positive")
	}
	if !a.HasSufficientBalance(amount) {
		return errors.New("insufficient balance")
	}
	return nil
}

// ResetEconomy zeroes every economy field, keeping the profile
func (a *UserAccount) ResetEconomy() {
	a.Balance = 0
	a.BankBalance = 0
	a.TotalEarned = 0
	a.Inventory = make(map[string]int64)
	a.DailyStreak = 0
	a.LastDaily = time.Time{}
	a.LastWeekly = time.Time{}
	a.LastEarn = time.Time{}
}
