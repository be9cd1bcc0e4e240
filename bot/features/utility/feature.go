package utility

import (
	"time"

	"coinbot/bot/dispatch"
)

// Feature provides help and ping
type Feature struct {
	registry *dispatch.Registry
}

// New creates the utility feature. The registry is read lazily so help
// lists commands registered after this feature.
func New(registry *dispatch.Registry) *Feature {
	return &Feature{registry: registry}
}

// Commands returns help and ping
func (f *Feature) Commands() []*dispatch.Command {
	return []*dispatch.Command{
		{
			Name:        "help",
			Aliases:     []string{"commands", "h"},
			Usage:       "help [command]",
			Description: "List commands or show details for one command",
			Category:    dispatch.CategoryUtility,
			DMAllowed:   true,
			Cooldown:    3 * time.Second,
			Handler:     f.handleHelp,
		},
		{
			Name:        "ping",
			Usage:       "ping",
			Description: "Check that the bot is responsive",
			Category:    dispatch.CategoryUtility,
			DMAllowed:   true,
			Cooldown:    3 * time.Second,
			Handler:     f.handlePing,
		},
	}
}
