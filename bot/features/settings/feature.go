package settings

import (
	"time"

	"coinbot/bot/dispatch"
	"coinbot/domain/interfaces"
)

// Feature handles guild settings management
type Feature struct {
	configs interfaces.GuildConfigService
}

// New creates a new settings feature instance
func New(configs interfaces.GuildConfigService) *Feature {
	return &Feature{configs: configs}
}

// Commands returns the configuration commands
func (f *Feature) Commands() []*dispatch.Command {
	return []*dispatch.Command{
		{
			Name:        "configset",
			Aliases:     []string{"config"},
			Usage:       "configset <setting> <value...>",
			Description: "Change a server setting (prefix, earn, daily, crime, invest, interest, channel, role, feature)",
			Category:    dispatch.CategoryAdmin,
			AdminRole:   true,
			Cooldown:    2 * time.Second,
			Handler:     f.handleConfigSet,
		},
		{
			Name:        "configshow",
			Aliases:     []string{"settings"},
			Usage:       "configshow",
			Description: "Show the current server configuration",
			Category:    dispatch.CategoryAdmin,
			AdminRole:   true,
			Cooldown:    5 * time.Second,
			Handler:     f.handleConfigShow,
		},
	}
}
