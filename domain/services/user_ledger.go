package services

import (
	"sort"

	"coinbot/domain/entities"
	"coinbot/domain/interfaces"
	"coinbot/domain/store"

	log "github.com/sirupsen/logrus"
)

// userLedger implements the UserLedger interface
type userLedger struct {
	store *store.Store
}

// NewUserLedger creates a new user ledger over the store
func NewUserLedger(s *store.Store) interfaces.UserLedger {
	return &userLedger{store: s}
}

// GetOrCreateAccount returns a copy of the account, creating it if missing
func (l *userLedger) GetOrCreateAccount(userID string) *entities.UserAccount {
	var out *entities.UserAccount
	_ = l.store.Update(func(tx *store.Tx) error {
		out = tx.AccountOrCreate(userID).Clone()
		return nil
	})
	return out
}

// GetAccount returns a copy of the account without creating it
func (l *userLedger) GetAccount(userID string) (*entities.UserAccount, bool) {
	var out *entities.UserAccount
	_ = l.store.View(func(tx *store.Tx) error {
		if u, ok := tx.Account(userID); ok {
			out = u.Clone()
		}
		return nil
	})
	return out, out != nil
}

// EnsureMember gets or creates the account and records its home guild
func (l *userLedger) EnsureMember(guildID, userID string) *entities.UserAccount {
	var out *entities.UserAccount
	_ = l.store.Update(func(tx *store.Tx) error {
		u := tx.AccountOrCreate(userID)
		if u.GuildID == "" && guildID != "" {
			u.GuildID = guildID
		}
		out = u.Clone()
		return nil
	})
	return out
}

// Credit adds to the wallet and the lifetime earnings
func (l *userLedger) Credit(userID string, amount int64, txType entities.TransactionType) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	var newBalance int64
	err := l.store.Update(func(tx *store.Tx) error {
		u := tx.AccountOrCreate(userID)
		creditAccount(tx, u, amount, txType)
		newBalance = u.Balance
		return nil
	})

	log.WithFields(log.Fields{
		"user_id":          userID,
		"amount":           amount,
		"transaction_type": txType,
		"new_balance":      newBalance,
	}).Debug("Credited wallet")

	return newBalance, err
}

// Debit removes from the wallet. It reports false without mutating when the
// wallet cannot cover the amount.
func (l *userLedger) Debit(userID string, amount int64, txType entities.TransactionType) (bool, error) {
	if amount <= 0 {
		return false, ErrInvalidAmount
	}

	ok := false
	err := l.store.Update(func(tx *store.Tx) error {
		u := tx.AccountOrCreate(userID)
		if !u.HasSufficientBalance(amount) {
			return nil
		}
		debitAccount(tx, u, amount, txType)
		ok = true
		return nil
	})
	return ok, err
}

// SetBalance overwrites the wallet, clamping to zero
func (l *userLedger) SetBalance(userID string, amount int64) int64 {
	if amount < 0 {
		amount = 0
	}

	_ = l.store.Update(func(tx *store.Tx) error {
		u := tx.AccountOrCreate(userID)
		oldWallet, oldBank := u.Balance, u.BankBalance
		u.Balance = amount
		stageBalanceChange(tx, u, oldWallet, oldBank, entities.TransactionTypeAdminSet, amount-oldWallet)
		return nil
	})

	log.WithFields(log.Fields{
		"user_id":     userID,
		"new_balance": amount,
	}).Info("Balance set by administrator")

	return amount
}

// AddInventory grants qty of a catalog item
func (l *userLedger) AddInventory(userID, itemKey string, qty int64) bool {
	if qty <= 0 {
		return false
	}

	ok := false
	_ = l.store.Update(func(tx *store.Tx) error {
		if _, exists := tx.Item(itemKey); !exists {
			return nil
		}
		addItems(tx.AccountOrCreate(userID), itemKey, qty)
		ok = true
		return nil
	})
	return ok
}

// RemoveInventory takes qty of a catalog item, failing if fewer are held
func (l *userLedger) RemoveInventory(userID, itemKey string, qty int64) bool {
	if qty <= 0 {
		return false
	}

	ok := false
	_ = l.store.Update(func(tx *store.Tx) error {
		if _, exists := tx.Item(itemKey); !exists {
			return nil
		}
		ok = removeItems(tx.AccountOrCreate(userID), itemKey, qty)
		return nil
	})
	return ok
}

// Transfer moves coins between two wallets. It reports false when the
// sender cannot cover the amount.
func (l *userLedger) Transfer(fromID, toID string, amount int64) (bool, error) {
	if amount <= 0 {
		return false, ErrInvalidAmount
	}
	if fromID == toID {
		return false, ErrSelfTransfer
	}

	ok := false
	err := l.store.Update(func(tx *store.Tx) error {
		from := tx.AccountOrCreate(fromID)
		if !from.HasSufficientBalance(amount) {
			return nil
		}
		to := tx.AccountOrCreate(toID)
		debitAccount(tx, from, amount, entities.TransactionTypeTransferOut)
		creditAccount(tx, to, amount, entities.TransactionTypeTransferIn)
		ok = true
		return nil
	})

	if ok {
		log.WithFields(log.Fields{
			"from_user": fromID,
			"to_user":   toID,
			"amount":    amount,
		}).Info("Transfer completed")
	}

	return ok, err
}

// Leaderboard ranks a guild's members by wallet, highest first. An empty
// guild id ranks every account.
func (l *userLedger) Leaderboard(guildID string, page, perPage int) ([]*entities.LeaderboardEntry, int) {
	var accounts []*entities.UserAccount
	_ = l.store.View(func(tx *store.Tx) error {
		for _, u := range tx.Accounts() {
			if guildID != "" && u.GuildID != guildID {
				continue
			}
			accounts = append(accounts, u.Clone())
		}
		return nil
	})

	sort.SliceStable(accounts, func(i, j int) bool {
		return accounts[i].Balance > accounts[j].Balance
	})

	start, end, totalPages := pageBounds(len(accounts), page, perPage)
	entries := make([]*entities.LeaderboardEntry, 0, end-start)
	for i := start; i < end; i++ {
		u := accounts[i]
		entries = append(entries, &entities.LeaderboardEntry{
			Rank:    i + 1,
			UserID:  u.UserID,
			Balance: u.Balance,
			Bank:    u.BankBalance,
			Value:   u.NetWorth(),
		})
	}
	return entries, totalPages
}
