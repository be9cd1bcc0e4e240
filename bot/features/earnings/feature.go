package earnings

import (
	"time"

	"coinbot/bot/dispatch"
	"coinbot/domain/entities"
	"coinbot/domain/interfaces"
)

// Feature handles the coin-earning activities
type Feature struct {
	economy interfaces.EconomyService
	ledger  interfaces.UserLedger
}

// New creates a new earnings feature
func New(economy interfaces.EconomyService, ledger interfaces.UserLedger) *Feature {
	return &Feature{
		economy: economy,
		ledger:  ledger,
	}
}

// Commands returns the earning commands. Earn, daily and weekly keep their
// cooldowns on the account, so the dispatcher cooldown is left at zero.
func (f *Feature) Commands() []*dispatch.Command {
	return []*dispatch.Command{
		{
			Name:        "earn",
			Aliases:     []string{"work"},
			Usage:       "earn",
			Description: "Earn a random amount of coins",
			Category:    dispatch.CategoryEconomy,
			Feature:     entities.FeatureEconomy,
			Handler:     f.handleEarn,
		},
		{
			Name:        "daily",
			Usage:       "daily",
			Description: "Claim your daily coin bonus (once every 24 hours)",
			Category:    dispatch.CategoryEconomy,
			Feature:     entities.FeatureEconomy,
			Handler:     f.handleDaily,
		},
		{
			Name:        "weekly",
			Usage:       "weekly",
			Description: "Claim your weekly coin bonus (once every 7 days)",
			Category:    dispatch.CategoryEconomy,
			Feature:     entities.FeatureEconomy,
			Handler:     f.handleWeekly,
		},
		{
			Name:        "crime",
			Usage:       "crime",
			Description: "Try to commit a crime for coins, with a chance to get caught and fined!",
			Category:    dispatch.CategoryEconomy,
			Cooldown:    300 * time.Second,
			Feature:     entities.FeatureEconomy,
			Handler:     f.handleCrime,
		},
		{
			Name:        "invest",
			Usage:       "invest <amount>",
			Description: "Invest coins for a chance at higher returns or potential losses!",
			Category:    dispatch.CategoryEconomy,
			Cooldown:    600 * time.Second,
			Feature:     entities.FeatureEconomy,
			Handler:     f.handleInvest,
		},
	}
}
