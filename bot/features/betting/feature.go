package betting

import (
	"time"

	"coinbot/bot/dispatch"
	"coinbot/domain/entities"
	"coinbot/domain/interfaces"
)

// Feature handles the casino games
type Feature struct {
	gambling interfaces.GamblingService
	ledger   interfaces.UserLedger
}

// New creates a new betting feature
func New(gambling interfaces.GamblingService, ledger interfaces.UserLedger) *Feature {
	return &Feature{
		gambling: gambling,
		ledger:   ledger,
	}
}

// Commands returns the casino commands
func (f *Feature) Commands() []*dispatch.Command {
	return []*dispatch.Command{
		{
			Name:        "slots",
			Usage:       "slots <bet>",
			Description: "Spin the slot machine",
			Category:    dispatch.CategoryGambling,
			Cooldown:    30 * time.Second,
			Feature:     entities.FeatureGambling,
			Handler:     f.handleSlots,
		},
		{
			Name:        "roulette",
			Usage:       "roulette <red|black|even|odd|0-36> <amount>",
			Description: "Play roulette and bet on number, color, even or odd",
			Category:    dispatch.CategoryGambling,
			Cooldown:    15 * time.Second,
			Feature:     entities.FeatureGambling,
			Handler:     f.handleRoulette,
		},
		{
			Name:        "blackjack",
			Aliases:     []string{"bj"},
			Usage:       "blackjack <bet>",
			Description: "Start a game of blackjack against the dealer",
			Category:    dispatch.CategoryGambling,
			Cooldown:    10 * time.Second,
			Feature:     entities.FeatureGambling,
			Handler:     f.handleBlackjack,
		},
		{
			Name:        "hit",
			Usage:       "hit",
			Description: "Draw another card in your blackjack game",
			Category:    dispatch.CategoryGambling,
			Cooldown:    5 * time.Second,
			Feature:     entities.FeatureGambling,
			Handler:     f.handleHit,
		},
		{
			Name:        "stand",
			Usage:       "stand",
			Description: "End your turn and let the dealer play",
			Category:    dispatch.CategoryGambling,
			Cooldown:    5 * time.Second,
			Feature:     entities.FeatureGambling,
			Handler:     f.handleStand,
		},
	}
}
