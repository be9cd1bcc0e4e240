package services

import (
	"fmt"
	"math"

	"coinbot/domain/entities"
	"coinbot/domain/interfaces"
	"coinbot/domain/store"
	"coinbot/events"

	log "github.com/sirupsen/logrus"
)

// bankService implements the BankService interface
type bankService struct {
	store *store.Store
}

// NewBankService creates a new bank service
func NewBankService(s *store.Store) interfaces.BankService {
	return &bankService{store: s}
}

// Deposit moves coins from the wallet into the bank
func (b *bankService) Deposit(userID string, amount int64) *entities.BankResult {
	if amount <= 0 {
		return &entities.BankResult{Message: "Amount must be positive"}
	}

	result := &entities.BankResult{}
	_ = b.store.Update(func(tx *store.Tx) error {
		u := tx.AccountOrCreate(userID)
		if !u.HasSufficientBalance(amount) {
			result.Message = fmt.Sprintf("Insufficient wallet balance. You have %d coins.", u.Balance)
			result.NewWallet, result.NewBank = u.Balance, u.BankBalance
			return nil
		}

		oldWallet, oldBank := u.Balance, u.BankBalance
		u.Balance -= amount
		u.BankBalance += amount
		u.LastBankActivity = tx.Now()
		stageBalanceChange(tx, u, oldWallet, oldBank, entities.TransactionTypeDeposit, amount)

		result.Success = true
		result.Message = fmt.Sprintf("Deposited %d coins to bank", amount)
		result.NewWallet, result.NewBank = u.Balance, u.BankBalance
		return nil
	})

	return result
}

// Withdraw moves coins from the bank into the wallet
func (b *bankService) Withdraw(userID string, amount int64) *entities.BankResult {
	if amount <= 0 {
		return &entities.BankResult{Message: "Amount must be positive"}
	}

	result := &entities.BankResult{}
	_ = b.store.Update(func(tx *store.Tx) error {
		u := tx.AccountOrCreate(userID)
		if !u.HasSufficientBankBalance(amount) {
			result.Message = fmt.Sprintf("Insufficient bank balance. You have %d coins in bank.", u.BankBalance)
			result.NewWallet, result.NewBank = u.Balance, u.BankBalance
			return nil
		}

		oldWallet, oldBank := u.Balance, u.BankBalance
		u.BankBalance -= amount
		u.Balance += amount
		u.LastBankActivity = tx.Now()
		stageBalanceChange(tx, u, oldWallet, oldBank, entities.TransactionTypeWithdraw, amount)

		result.Success = true
		result.Message = fmt.Sprintf("Withdrew %d coins from bank", amount)
		result.NewWallet, result.NewBank = u.Balance, u.BankBalance
		return nil
	})

	return result
}

// ApplyInterest adds floor(bank*rate) to every bank balance, optionally
// restricted to accounts whose home guild matches guildFilter
func (b *bankService) ApplyInterest(rate float64, guildFilter string) *entities.InterestResult {
	result := &entities.InterestResult{}
	if rate <= 0 {
		return result
	}

	_ = b.store.Update(func(tx *store.Tx) error {
		for _, u := range tx.Accounts() {
			if guildFilter != "" && u.GuildID != guildFilter {
				continue
			}
			if u.BankBalance <= 0 {
				continue
			}
			interest := int64(math.Floor(float64(u.BankBalance) * rate))
			if interest <= 0 {
				continue
			}

			oldWallet, oldBank := u.Balance, u.BankBalance
			u.BankBalance += interest
			u.TotalEarned += interest
			stageBalanceChange(tx, u, oldWallet, oldBank, entities.TransactionTypeInterest, interest)

			result.TotalInterest += interest
			result.AccountsTouched++
		}

		tx.Stage(events.InterestAppliedEvent{
			GuildID:         guildFilter,
			Rate:            rate,
			TotalInterest:   result.TotalInterest,
			AccountsTouched: result.AccountsTouched,
		})
		return nil
	})

	log.WithFields(log.Fields{
		"guild_id":         guildFilter,
		"rate":             rate,
		"total_interest":   result.TotalInterest,
		"accounts_touched": result.AccountsTouched,
	}).Info("Applied bank interest")

	return result
}
