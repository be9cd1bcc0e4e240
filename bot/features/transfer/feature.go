package transfer

import (
	"time"

	"coinbot/bot/dispatch"
	"coinbot/domain/entities"
	"coinbot/domain/interfaces"
)

// Feature handles coin transfers between members
type Feature struct {
	ledger interfaces.UserLedger
}

func New(ledger interfaces.UserLedger) *Feature {
	return &Feature{
		ledger: ledger,
	}
}

func (f *Feature) Commands() []*dispatch.Command {
	return []*dispatch.Command{{
		Name:        "give",
		Aliases:     []string{"transfer", "send", "pay"},
		Usage:       "give @user <amount>",
		Description: "Give coins to another user",
		Category:    dispatch.CategoryEconomy,
		Cooldown:    5 * time.Second,
		Feature:     entities.FeatureEconomy,
		Handler:     f.handleGive,
	}}
}
