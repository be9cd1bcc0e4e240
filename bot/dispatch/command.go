package dispatch

import (
	"time"
)

// Command describes a chat command
type Command struct {
	Name        string
	Aliases     []string
	Usage       string
	Description string
	Category    string

	// Permissions is a bitmask of discordgo permissions, all of which are required
	Permissions int64
	// AdminRole requires the guild's configured admin role or Administrator
	AdminRole bool
	DMAllowed bool

	Cooldown time.Duration
	// Feature names the guild toggle gating this command, empty for none
	Feature string

	Handler func(*Context) error
}

// Command categories shown by help
const (
	CategoryEconomy     = "Economy"
	CategoryGambling    = "Gambling"
	CategoryMarketplace = "Marketplace"
	CategoryReferrals   = "Referrals"
	CategoryProfile     = "Profile"
	CategoryModeration  = "Moderation"
	CategoryAdmin       = "Admin"
	CategoryUtility     = "Utility"
)

// Names returns the command's name followed by its aliases
func (c *Command) Names() []string {
	return append([]string{c.Name}, c.Aliases...)
}
