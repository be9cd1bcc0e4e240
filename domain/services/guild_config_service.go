package services

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"coinbot/domain/entities"
	"coinbot/domain/interfaces"
	"coinbot/domain/store"

	log "github.com/sirupsen/logrus"
)

var channelMentionPattern = regexp.MustCompile(`^<#(\d+)>$`)

// guildConfigService implements the GuildConfigService interface
type guildConfigService struct {
	store *store.Store
}

// NewGuildConfigService creates a new guild config service
func NewGuildConfigService(s *store.Store) interfaces.GuildConfigService {
	return &guildConfigService{store: s}
}

// Get returns a copy of the guild's configuration, creating defaults if missing
func (g *guildConfigService) Get(guildID string) *entities.GuildConfig {
	var out *entities.GuildConfig
	_ = g.store.Update(func(tx *store.Tx) error {
		out = tx.GuildConfig(guildID).Clone()
		return nil
	})
	return out
}

// Peek returns the guild's configuration without creating it. Used on the
// hot path of message dispatch.
func (g *guildConfigService) Peek(guildID string) *entities.GuildConfig {
	var out *entities.GuildConfig
	_ = g.store.View(func(tx *store.Tx) error {
		out = tx.GuildConfig(guildID).Clone()
		return nil
	})
	return out
}

// Set applies one configset command. The returned string confirms the change.
func (g *guildConfigService) Set(guildID string, args []string) (string, error) {
	if len(args) < 2 {
		return "", invalidConfig("Usage: `configset <setting> <value>`")
	}

	var confirmation string
	err := g.store.Update(func(tx *store.Tx) error {
		updated := tx.GuildConfig(guildID).Clone()
		msg, err := applySetting(updated, args)
		if err != nil {
			return err
		}
		if err := updated.Validate(); err != nil {
			return invalidConfig(err.Error())
		}
		tx.PutGuildConfig(updated)
		confirmation = msg
		return nil
	})
	if err != nil {
		return "", err
	}

	log.WithFields(log.Fields{
		"guild_id": guildID,
		"setting":  strings.ToLower(args[0]),
	}).Info("Guild configuration updated")

	return confirmation, nil
}

// Update replaces a guild's configuration after validating it
func (g *guildConfigService) Update(cfg *entities.GuildConfig) error {
	if err := cfg.Validate(); err != nil {
		return invalidConfig(err.Error())
	}
	return g.store.Update(func(tx *store.Tx) error {
		tx.PutGuildConfig(cfg.Clone())
		return nil
	})
}

// GuildIDs lists every guild with a stored configuration
func (g *guildConfigService) GuildIDs() []string {
	var ids []string
	_ = g.store.View(func(tx *store.Tx) error {
		ids = tx.GuildIDs()
		return nil
	})
	return ids
}

func applySetting(cfg *entities.GuildConfig, args []string) (string, error) {
	sub := strings.ToLower(args[0])
	switch sub {
	case "prefix":
		if len(args) != 2 {
			return "", invalidConfig("Usage: `configset prefix <new_prefix>`")
		}
		if err := entities.ValidatePrefix(args[1]); err != nil {
			return "", invalidConfig(err.Error())
		}
		cfg.Prefix = args[1]
		return fmt.Sprintf("Prefix set to `%s`", cfg.Prefix), nil

	case "earn", "daily":
		if len(args) != 3 {
			return "", invalidConfig(fmt.Sprintf("Usage: `configset %s <min> <max>`", sub))
		}
		r, err := parseRange(args[1], args[2])
		if err != nil {
			return "", err
		}
		if sub == "earn" {
			cfg.EarnRange = r
			return fmt.Sprintf("Earn range %d-%d", r.Min, r.Max), nil
		}
		cfg.DailyBonus = r
		return fmt.Sprintf("Daily bonus %d-%d", r.Min, r.Max), nil

	case "crime":
		return applyCrimeSetting(cfg, args)

	case "invest":
		if len(args) != 3 || strings.ToLower(args[1]) != "fail_chance" {
			return "", invalidConfig("Usage: `configset invest fail_chance <percentage>`")
		}
		p, err := parsePercent(args[2])
		if err != nil {
			return "", err
		}
		cfg.Invest.FailChance = p
		return fmt.Sprintf("Invest fail %d%%", percentOf(p)), nil

	case "interest":
		if len(args) != 2 {
			return "", invalidConfig("Usage: `configset interest <percentage>`")
		}
		p, err := parsePercent(args[1])
		if err != nil {
			return "", err
		}
		cfg.BankInterestRate = p
		return fmt.Sprintf("Bank interest rate %.2f%%", p*100), nil

	case "channel":
		return applyChannelSetting(cfg, args)

	case "role":
		if len(args) < 3 {
			return "", invalidConfig("Usage: `configset role <admin|moderator> <role_name>`")
		}
		name := strings.Join(args[2:], " ")
		if err := entities.ValidateRoleName(name); err != nil {
			return "", invalidConfig(err.Error())
		}
		switch strings.ToLower(args[1]) {
		case "admin":
			cfg.Roles.Admin = name
		case "moderator":
			cfg.Roles.Moderator = name
		default:
			return "", invalidConfig("Use `admin` or `moderator`")
		}
		return fmt.Sprintf("%s role set to \"%s\"", strings.ToLower(args[1]), name), nil

	case "feature":
		if len(args) != 3 {
			return "", invalidConfig("Usage: `configset feature <feature> <true|false>`")
		}
		feature := strings.ToLower(args[1])
		if !entities.IsKnownFeature(feature) {
			return "", invalidConfig("Unknown feature. Options: " + strings.Join(entities.KnownFeatures, ", "))
		}
		enabled, err := strconv.ParseBool(strings.ToLower(args[2]))
		if err != nil {
			return "", invalidConfig("Value must be `true` or `false`")
		}
		if cfg.Features == nil {
			cfg.Features = make(map[string]bool)
		}
		cfg.Features[feature] = enabled
		state := "disabled"
		if enabled {
			state = "enabled"
		}
		return fmt.Sprintf("Feature \"%s\" %s", feature, state), nil
	}

	return "", invalidConfig("Unknown setting. Use `configset help`.")
}

func applyCrimeSetting(cfg *entities.GuildConfig, args []string) (string, error) {
	if len(args) < 3 {
		return "", invalidConfig("Usage: `configset crime <chance|rewards|fines> <values>`")
	}
	switch kind := strings.ToLower(args[1]); kind {
	case "chance":
		p, err := parsePercent(args[2])
		if err != nil {
			return "", err
		}
		cfg.Crime.SuccessChance = p
		return fmt.Sprintf("Crime success %d%%", percentOf(p)), nil
	case "rewards", "fines":
		if len(args) != 4 {
			return "", invalidConfig(fmt.Sprintf("Usage: `configset crime %s <min> <max>`", kind))
		}
		r, err := parseRange(args[2], args[3])
		if err != nil {
			return "", err
		}
		if kind == "rewards" {
			cfg.Crime.Reward = r
		} else {
			cfg.Crime.Fine = r
		}
		return fmt.Sprintf("Crime %s %d-%d", kind, r.Min, r.Max), nil
	}
	return "", invalidConfig("Unknown crime setting. Use: chance, rewards, or fines")
}

func applyChannelSetting(cfg *entities.GuildConfig, args []string) (string, error) {
	if len(args) != 3 {
		return "", invalidConfig("Usage: `configset channel <welcome|leave|logs|interest> <#channel|none>`")
	}

	var channelID *string
	if strings.ToLower(args[2]) != "none" {
		m := channelMentionPattern.FindStringSubmatch(args[2])
		if m == nil {
			return "", invalidConfig("Please mention a channel")
		}
		channelID = &m[1]
	}

	kind := strings.ToLower(args[1])
	switch kind {
	case "welcome":
		cfg.Channels.Welcome = channelID
	case "leave":
		cfg.Channels.Leave = channelID
	case "logs":
		cfg.Channels.Logs = channelID
	case "interest":
		cfg.Channels.InterestNotification = channelID
	default:
		return "", invalidConfig("Use `welcome`, `leave`, `logs`, or `interest`")
	}

	if channelID == nil {
		return fmt.Sprintf("%s channel cleared", kind), nil
	}
	return fmt.Sprintf("%s channel set", kind), nil
}

func parseRange(minArg, maxArg string) (entities.Range, error) {
	lo, err1 := strconv.ParseInt(minArg, 10, 64)
	hi, err2 := strconv.ParseInt(maxArg, 10, 64)
	if err1 != nil || err2 != nil || lo < 1 || hi < lo {
		return entities.Range{}, invalidConfig("Invalid range")
	}
	return entities.Range{Min: lo, Max: hi}, nil
}

// parsePercent converts a 0-100 percentage into a probability
func parsePercent(arg string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSuffix(arg, "%"), 64)
	if err != nil || math.IsNaN(v) || v < 0 || v > 100 {
		return 0, invalidConfig("Percentage must be 0-100")
	}
	return v / 100, nil
}

func percentOf(p float64) int {
	return int(math.Round(p * 100))
}

func invalidConfig(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, msg)
}

// ConfigErrorMessage strips the sentinel prefix from a configuration error
func ConfigErrorMessage(err error) string {
	return strings.TrimPrefix(err.Error(), ErrInvalidConfig.Error()+": ")
}
