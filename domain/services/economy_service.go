package services

import (
	"math"
	"math/rand/v2"
	"time"

	"coinbot/domain/entities"
	"coinbot/domain/interfaces"
	"coinbot/domain/store"

	log "github.com/sirupsen/logrus"
)

const (
	EarnCooldown        = time.Hour
	DailyCooldown       = 24 * time.Hour
	WeeklyCooldown      = 7 * 24 * time.Hour
	StreakWindow        = 48 * time.Hour
	MinimumInvestment   = int64(10)
	weeklyMin           = int64(100)
	weeklyMax           = int64(500)
	investMinLossFactor = 0.5
)

// RandSource supplies randomness to the economy and gambling services
type RandSource interface {
	IntN(n int) int
	Float64() float64
}

type globalRand struct{}

func (globalRand) IntN(n int) int   { return rand.IntN(n) }
func (globalRand) Float64() float64 { return rand.Float64() }

// NewRandSource returns a goroutine-safe source backed by math/rand/v2
func NewRandSource() RandSource {
	return globalRand{}
}

func randRange(r RandSource, lo, hi int64) int64 {
	if hi <= lo {
		return lo
	}
	return lo + int64(r.IntN(int(hi-lo+1)))
}

// economyService implements the EconomyService interface
type economyService struct {
	store *store.Store
	rand  RandSource
}

// NewEconomyService creates a new economy service
func NewEconomyService(s *store.Store, r RandSource) interfaces.EconomyService {
	if r == nil {
		r = NewRandSource()
	}
	return &economyService{store: s, rand: r}
}

// Earn pays a random amount from the guild's earn range once per hour
func (e *economyService) Earn(guildID, userID string) (*entities.EconomyOutcome, error) {
	out := &entities.EconomyOutcome{}
	err := e.store.Update(func(tx *store.Tx) error {
		u := tx.AccountOrCreate(userID)
		if remaining := cooldownLeft(u.LastEarn, EarnCooldown, tx.Now()); remaining > 0 {
			out.Remaining = remaining
			return ErrOnCooldown
		}

		cfg := tx.GuildConfig(guildID)
		amount := randRange(e.rand, cfg.EarnRange.Min, cfg.EarnRange.Max)
		creditAccount(tx, u, amount, entities.TransactionTypeEarn)
		u.LastEarn = tx.Now()

		out.Success = true
		out.Amount = amount
		out.NewBalance = u.Balance
		return nil
	})
	return out, err
}

// Daily pays the guild's daily bonus once per 24 hours and tracks the streak
func (e *economyService) Daily(guildID, userID string) (*entities.EconomyOutcome, error) {
	out := &entities.EconomyOutcome{}
	err := e.store.Update(func(tx *store.Tx) error {
		u := tx.AccountOrCreate(userID)
		now := tx.Now()
		if remaining := cooldownLeft(u.LastDaily, DailyCooldown, now); remaining > 0 {
			out.Remaining = remaining
			out.Streak = u.DailyStreak
			return ErrOnCooldown
		}

		if !u.LastDaily.IsZero() && now.Sub(u.LastDaily) < StreakWindow {
			u.DailyStreak++
		} else {
			u.DailyStreak = 1
		}

		cfg := tx.GuildConfig(guildID)
		amount := randRange(e.rand, cfg.DailyBonus.Min, cfg.DailyBonus.Max)
		creditAccount(tx, u, amount, entities.TransactionTypeDaily)
		u.LastDaily = now

		out.Success = true
		out.Amount = amount
		out.NewBalance = u.Balance
		out.Streak = u.DailyStreak
		return nil
	})
	return out, err
}

// Weekly pays 100-500 coins once per seven days
func (e *economyService) Weekly(guildID, userID string) (*entities.EconomyOutcome, error) {
	out := &entities.EconomyOutcome{}
	err := e.store.Update(func(tx *store.Tx) error {
		u := tx.AccountOrCreate(userID)
		if remaining := cooldownLeft(u.LastWeekly, WeeklyCooldown, tx.Now()); remaining > 0 {
			out.Remaining = remaining
			return ErrOnCooldown
		}

		amount := randRange(e.rand, weeklyMin, weeklyMax)
		creditAccount(tx, u, amount, entities.TransactionTypeWeekly)
		u.LastWeekly = tx.Now()

		out.Success = true
		out.Amount = amount
		out.NewBalance = u.Balance
		return nil
	})
	return out, err
}

// Crime succeeds with the guild's success chance. A failed crime fines the
// user, never taking more than the wallet holds.
func (e *economyService) Crime(guildID, userID string) (*entities.EconomyOutcome, error) {
	out := &entities.EconomyOutcome{}
	err := e.store.Update(func(tx *store.Tx) error {
		u := tx.AccountOrCreate(userID)
		cfg := tx.GuildConfig(guildID)

		if e.rand.Float64() < cfg.Crime.SuccessChance {
			amount := randRange(e.rand, cfg.Crime.Reward.Min, cfg.Crime.Reward.Max)
			creditAccount(tx, u, amount, entities.TransactionTypeCrimeReward)
			out.Success = true
			out.Amount = amount
		} else {
			fine := randRange(e.rand, cfg.Crime.Fine.Min, cfg.Crime.Fine.Max)
			out.Amount = -applyNet(tx, u, -fine, entities.TransactionTypeCrimeReward, entities.TransactionTypeCrimeFine)
		}
		out.NewBalance = u.Balance
		return nil
	})
	return out, err
}

// Invest stakes amount. A failed investment loses 50-100% of the stake; a
// successful one returns stake times a multiplier from the guild's range.
// Amount on the outcome is the signed net change.
func (e *economyService) Invest(guildID, userID string, amount int64) (*entities.EconomyOutcome, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if amount < MinimumInvestment {
		return nil, ErrMinimumInvestment
	}

	out := &entities.EconomyOutcome{}
	err := e.store.Update(func(tx *store.Tx) error {
		u := tx.AccountOrCreate(userID)
		if !u.HasSufficientBalance(amount) {
			out.NewBalance = u.Balance
			return ErrInsufficientFunds
		}
		cfg := tx.GuildConfig(guildID)

		var net int64
		if e.rand.Float64() < cfg.Invest.FailChance {
			lossFactor := investMinLossFactor + e.rand.Float64()*(1-investMinLossFactor)
			net = -int64(math.Floor(float64(amount) * lossFactor))
		} else {
			spread := cfg.Invest.Multiplier.Max - cfg.Invest.Multiplier.Min
			multiplier := cfg.Invest.Multiplier.Min + e.rand.Float64()*spread
			net = int64(math.Floor(float64(amount)*multiplier)) - amount
			out.Success = true
		}

		out.Amount = applyNet(tx, u, net, entities.TransactionTypeInvestWin, entities.TransactionTypeInvestLoss)
		out.NewBalance = u.Balance
		return nil
	})

	if err == nil {
		log.WithFields(log.Fields{
			"user_id": userID,
			"amount":  amount,
			"net":     out.Amount,
			"success": out.Success,
		}).Debug("Investment resolved")
	}
	return out, err
}

// cooldownLeft returns the whole seconds until last+window, or 0 when elapsed
func cooldownLeft(last time.Time, window time.Duration, now time.Time) int64 {
	if last.IsZero() {
		return 0
	}
	left := last.Add(window).Sub(now)
	if left <= 0 {
		return 0
	}
	return int64(math.Ceil(left.Seconds()))
}
