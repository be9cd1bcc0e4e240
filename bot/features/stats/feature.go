package stats

import (
	"time"

	"coinbot/bot/dispatch"
	"coinbot/domain/interfaces"
)

// Feature represents the stats feature
type Feature struct {
	statistics interfaces.StatisticsService
}

// New creates a new stats feature instance
func New(statistics interfaces.StatisticsService) *Feature {
	return &Feature{statistics: statistics}
}

// Commands returns the stats command
func (f *Feature) Commands() []*dispatch.Command {
	return []*dispatch.Command{
		{
			Name:        "stats",
			Aliases:     []string{"economy"},
			Usage:       "stats [balance|bank|earned|referrals|networth]",
			Description: "Show server economy statistics and top members",
			Category:    dispatch.CategoryEconomy,
			Cooldown:    10 * time.Second,
			Handler:     f.handleStats,
		},
	}
}
