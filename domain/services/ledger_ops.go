package services

import (
	"math"

	"coinbot/domain/entities"
	"coinbot/domain/store"
	"coinbot/events"
)

// The helpers below mutate an account inside an open store update and stage
// the matching balance event. Callers have already validated the amount.

func creditAccount(tx *store.Tx, u *entities.UserAccount, amount int64, txType entities.TransactionType) {
	oldWallet, oldBank := u.Balance, u.BankBalance
	u.Balance = addSaturating(u.Balance, amount)
	u.TotalEarned = addSaturating(u.TotalEarned, amount)
	stageBalanceChange(tx, u, oldWallet, oldBank, txType, u.Balance-oldWallet)
}

// addSaturating adds a non-negative delta, capping at math.MaxInt64
func addSaturating(v, delta int64) int64 {
	if delta > math.MaxInt64-v {
		return math.MaxInt64
	}
	return v + delta
}

func debitAccount(tx *store.Tx, u *entities.UserAccount, amount int64, txType entities.TransactionType) {
	oldWallet, oldBank := u.Balance, u.BankBalance
	u.Balance -= amount
	stageBalanceChange(tx, u, oldWallet, oldBank, txType, -amount)
}

// applyNet credits gains or debits losses, clamping losses to the wallet.
// It returns the signed amount actually applied.
func applyNet(tx *store.Tx, u *entities.UserAccount, net int64, win, loss entities.TransactionType) int64 {
	switch {
	case net > 0:
		creditAccount(tx, u, net, win)
	case net < 0:
		lost := -net
		if lost > u.Balance {
			lost = u.Balance
		}
		if lost == 0 {
			return 0
		}
		debitAccount(tx, u, lost, loss)
		return -lost
	}
	return net
}

func stageBalanceChange(tx *store.Tx, u *entities.UserAccount, oldWallet, oldBank int64, txType entities.TransactionType, change int64) {
	tx.Stage(events.BalanceChangeEvent{
		UserID:          u.UserID,
		GuildID:         u.GuildID,
		OldBalance:      oldWallet,
		NewBalance:      u.Balance,
		OldBank:         oldBank,
		NewBank:         u.BankBalance,
		TransactionType: txType,
		ChangeAmount:    change,
	})
}

func addItems(u *entities.UserAccount, key string, qty int64) {
	u.Inventory[key] += qty
}

// removeItems reports false without mutating when the holder lacks qty
func removeItems(u *entities.UserAccount, key string, qty int64) bool {
	held := u.Inventory[key]
	if held < qty {
		return false
	}
	if held == qty {
		delete(u.Inventory, key)
		return true
	}
	u.Inventory[key] = held - qty
	return true
}

func pageBounds(total, page, perPage int) (start, end, totalPages int) {
	if perPage <= 0 {
		perPage = 10
	}
	totalPages = (total + perPage - 1) / perPage
	start = (page - 1) * perPage
	if page < 1 || start >= total {
		return 0, 0, totalPages
	}
	end = start + perPage
	if end > total {
		end = total
	}
	return start, end, totalPages
}
