package entities

import (
	"fmt"
	"strings"
)

// Range is an inclusive integer range
type Range struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// Validate checks both bounds are at least floor and min <= max
func (r Range) Validate(name string, floor, ceiling int64) error {
	if r.Min < floor || r.Max < floor {
		return fmt.Errorf("%s values must be at least %d", name, floor)
	}
	if ceiling > 0 && (r.Min > ceiling || r.Max > ceiling) {
		return fmt.Errorf("%s values must be at most %d", name, ceiling)
	}
	if r.Min > r.Max {
		return fmt.Errorf("%s minimum cannot be greater than maximum", name)
	}
	return nil
}

// FloatRange is an inclusive float range
type FloatRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// CrimeSettings parameterizes the crime command
type CrimeSettings struct {
	SuccessChance float64 `json:"successChance"`
	Reward        Range   `json:"rewardRange"`
	Fine          Range   `json:"fineRange"`
}

// InvestSettings parameterizes the invest command
type InvestSettings struct {
	FailChance float64    `json:"failChance"`
	Multiplier FloatRange `json:"multiplierRange"`
}

// ChannelBindings holds optional channel ids
type ChannelBindings struct {
	Welcome              *string `json:"welcome,omitempty"`
	Leave                *string `json:"leave,omitempty"`
	Logs                 *string `json:"logs,omitempty"`
	InterestNotification *string `json:"interestNotification,omitempty"`
}

// RoleBindings holds role names used for gating
type RoleBindings struct {
	Admin     string `json:"admin"`
	Moderator string `json:"moderator"`
}

// Feature toggle names
const (
	FeatureWelcomeMessages = "welcome_messages"
	FeatureLeaveMessages   = "leave_messages"
	FeatureEconomy         = "economy_enabled"
	FeatureGiveaways       = "giveaways_enabled"
	FeatureGambling        = "gambling_enabled"
)

// KnownFeatures lists every toggle a guild can set
var KnownFeatures = []string{
	FeatureWelcomeMessages,
	FeatureLeaveMessages,
	FeatureEconomy,
	FeatureGiveaways,
	FeatureGambling,
}

// GuildConfig represents per-guild economy configuration
type GuildConfig struct {
	GuildID          string          `json:"guildId"`
	Prefix           string          `json:"prefix"`
	EarnRange        Range           `json:"earnRange"`
	Crime            CrimeSettings   `json:"crime"`
	Invest           InvestSettings  `json:"invest"`
	DailyBonus       Range           `json:"dailyBonus"`
	BankInterestRate float64         `json:"bankInterestRate"`
	Channels         ChannelBindings `json:"channels"`
	Roles            RoleBindings    `json:"roles"`
	Features         map[string]bool `json:"features"`
}

// DefaultPrefix is the command prefix for new guilds
var DefaultPrefix = "!"

// NewDefaultGuildConfig creates the configuration a guild starts with
func NewDefaultGuildConfig(guildID string) *GuildConfig {
	features := make(map[string]bool, len(KnownFeatures))
	for _, f := range KnownFeatures {
		features[f] = true
	}
	return &GuildConfig{
		GuildID:   guildID,
		Prefix:    DefaultPrefix,
		EarnRange: Range{Min: 1, Max: 50},
		Crime: CrimeSettings{
			SuccessChance: 0.85,
			Reward:        Range{Min: 10, Max: 109},
			Fine:          Range{Min: 10, Max: 59},
		},
		Invest: InvestSettings{
			FailChance: 0.25,
			Multiplier: FloatRange{Min: 0.5, Max: 2.0},
		},
		DailyBonus:       Range{Min: 50, Max: 100},
		BankInterestRate: 0.02,
		Roles: RoleBindings{
			Admin:     "Admin",
			Moderator: "Moderator",
		},
		Features: features,
	}
}

// IsFeatureEnabled reports a toggle; unknown or unset toggles default to enabled
func (gc *GuildConfig) IsFeatureEnabled(feature string) bool {
	enabled, ok := gc.Features[feature]
	return !ok || enabled
}

// HasInterestChannel checks if an interest notification channel is configured
func (gc *GuildConfig) HasInterestChannel() bool {
	return gc.Channels.InterestNotification != nil && *gc.Channels.InterestNotification != ""
}

// HasLogsChannel checks if a moderation log channel is configured
func (gc *GuildConfig) HasLogsChannel() bool {
	return gc.Channels.Logs != nil && *gc.Channels.Logs != ""
}

// MaxConfiguredPayout bounds the configurable crime and daily bonus amounts
const MaxConfiguredPayout int64 = 1_000_000

// Validate checks every field against its allowed range
func (gc *GuildConfig) Validate() error {
	if err := ValidatePrefix(gc.Prefix); err != nil {
		return err
	}
	if err := gc.EarnRange.Validate("earn", 1, 1000); err != nil {
		return err
	}
	if err := ValidateProbability("crime success chance", gc.Crime.SuccessChance); err != nil {
		return err
	}
	if err := gc.Crime.Reward.Validate("crime reward", 1, MaxConfiguredPayout); err != nil {
		return err
	}
	if err := gc.Crime.Fine.Validate("crime fine", 1, MaxConfiguredPayout); err != nil {
		return err
	}
	if err := ValidateProbability("invest fail chance", gc.Invest.FailChance); err != nil {
		return err
	}
	if gc.Invest.Multiplier.Min <= 0 || gc.Invest.Multiplier.Min > gc.Invest.Multiplier.Max {
		return fmt.Errorf("invest multiplier range is invalid")
	}
	if err := gc.DailyBonus.Validate("daily bonus", 1, MaxConfiguredPayout); err != nil {
		return err
	}
	if err := ValidateProbability("bank interest rate", gc.BankInterestRate); err != nil {
		return err
	}
	if err := ValidateRoleName(gc.Roles.Admin); err != nil {
		return err
	}
	return ValidateRoleName(gc.Roles.Moderator)
}

// Clone returns a deep copy of the configuration
func (gc *GuildConfig) Clone() *GuildConfig {
	if gc == nil {
		return nil
	}
	c := *gc
	c.Channels = ChannelBindings{
		Welcome:              cloneString(gc.Channels.Welcome),
		Leave:                cloneString(gc.Channels.Leave),
		Logs:                 cloneString(gc.Channels.Logs),
		InterestNotification: cloneString(gc.Channels.InterestNotification),
	}
	c.Features = make(map[string]bool, len(gc.Features))
	for k, v := range gc.Features {
		c.Features[k] = v
	}
	return &c
}

// ValidatePrefix checks a command prefix is 1-3 characters without whitespace
func ValidatePrefix(prefix string) error {
	n := len([]rune(prefix))
	if n < 1 || n > 3 {
		return fmt.Errorf("prefix must be 1-3 characters long")
	}
	if strings.ContainsAny(prefix, " \t\n") {
		return fmt.Errorf("prefix cannot contain whitespace")
	}
	return nil
}

// ValidateProbability checks a value lies in [0,1]
func ValidateProbability(name string, p float64) error {
	if p < 0 || p > 1 {
		return fmt.Errorf("%s must be between 0 and 1", name)
	}
	return nil
}

// ValidateRoleName checks a role name is 1-100 characters
func ValidateRoleName(name string) error {
	n := len([]rune(name))
	if n < 1 || n > 100 {
		return fmt.Errorf("role name must be 1-100 characters long")
	}
	return nil
}

// IsKnownFeature reports whether a toggle name exists
func IsKnownFeature(feature string) bool {
	for _, f := range KnownFeatures {
		if f == feature {
			return true
		}
	}
	return false
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
