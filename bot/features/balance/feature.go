package balance

import (
	"time"

	"coinbot/bot/dispatch"
	"coinbot/domain/interfaces"
)

// Feature handles wallet, bank and leaderboard commands
type Feature struct {
	ledger interfaces.UserLedger
	bank   interfaces.BankService
}

// New creates a new balance feature
func New(ledger interfaces.UserLedger, bank interfaces.BankService) *Feature {
	return &Feature{
		ledger: ledger,
		bank:   bank,
	}
}

// Commands returns the commands this feature serves
func (f *Feature) Commands() []*dispatch.Command {
	return []*dispatch.Command{
		{
			Name:        "balance",
			Aliases:     []string{"bal", "coins", "money"},
			Usage:       "balance [@user]",
			Description: "Check your current balance or another user's balance",
			Category:    dispatch.CategoryEconomy,
			Cooldown:    3 * time.Second,
			Handler:     f.handleBalance,
		},
		{
			Name:        "leaderboard",
			Aliases:     []string{"lb", "top", "rich", "richest"},
			Usage:       "leaderboard [page]",
			Description: "View the top earners on the server",
			Category:    dispatch.CategoryEconomy,
			Cooldown:    10 * time.Second,
			Handler:     f.handleLeaderboard,
		},
		{
			Name:        "deposit",
			Aliases:     []string{"dep"},
			Usage:       "deposit <amount|all>",
			Description: "Deposit coins from your wallet to your bank",
			Category:    dispatch.CategoryEconomy,
			Cooldown:    5 * time.Second,
			Handler:     f.handleDeposit,
		},
		{
			Name:        "withdraw",
			Aliases:     []string{"with"},
			Usage:       "withdraw <amount|all>",
			Description: "Withdraw coins from your bank to your wallet",
			Category:    dispatch.CategoryEconomy,
			Cooldown:    5 * time.Second,
			Handler:     f.handleWithdraw,
		},
	}
}
