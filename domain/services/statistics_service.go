package services

import (
	"math"
	"sort"

	"coinbot/domain/entities"
	"coinbot/domain/interfaces"
	"coinbot/domain/store"
)

// Ranking metrics accepted by TopUsers
const (
	MetricBalance     = "balance"
	MetricBank        = "bank"
	MetricTotalEarned = "earned"
	MetricReferrals   = "referrals"
	MetricNetWorth    = "networth"
)

// statisticsService implements the StatisticsService interface
type statisticsService struct {
	store *store.Store
}

// NewStatisticsService creates a new statistics service
func NewStatisticsService(s *store.Store) interfaces.StatisticsService {
	return &statisticsService{store: s}
}

// Statistics aggregates the economy of a guild's members. An empty guild id
// aggregates every account. Invite counts are global.
func (st *statisticsService) Statistics(guildID string) *entities.EconomyStats {
	stats := &entities.EconomyStats{}
	_ = st.store.View(func(tx *store.Tx) error {
		for _, u := range tx.Accounts() {
			if guildID != "" && u.GuildID != guildID {
				continue
			}
			stats.Users++
			stats.TotalBalance += u.Balance
			stats.TotalBank += u.BankBalance
			stats.TotalEarned += u.TotalEarned
			stats.TotalReferrals += u.Referrals
		}
		for _, l := range tx.Listings() {
			if guildID != "" && l.GuildID != guildID {
				continue
			}
			stats.TotalListings++
			stats.ListingsValue += l.TotalValue()
		}
		stats.TotalInvites = len(tx.Invites())
		stats.TotalClaimed = tx.ClaimedCount()
		return nil
	})

	if stats.Users > 0 {
		stats.AverageBalance = int64(math.Round(float64(stats.TotalBalance) / float64(stats.Users)))
	}
	if stats.TotalInvites > 0 {
		stats.ClaimRate = int(math.Round(float64(stats.TotalClaimed) / float64(stats.TotalInvites) * 100))
	}
	return stats
}

// TopUsers ranks a guild's members by the given metric, highest first
func (st *statisticsService) TopUsers(guildID, metric string, limit int) []*entities.LeaderboardEntry {
	if limit <= 0 {
		limit = 10
	}
	value := metricFunc(metric)

	var accounts []*entities.UserAccount
	_ = st.store.View(func(tx *store.Tx) error {
		for _, u := range tx.Accounts() {
			if guildID != "" && u.GuildID != guildID {
				continue
			}
			accounts = append(accounts, u.Clone())
		}
		return nil
	})

	sort.SliceStable(accounts, func(i, j int) bool {
		return value(accounts[i]) > value(accounts[j])
	})
	if len(accounts) > limit {
		accounts = accounts[:limit]
	}

	entries := make([]*entities.LeaderboardEntry, 0, len(accounts))
	for i, u := range accounts {
		entries = append(entries, &entities.LeaderboardEntry{
			Rank:    i + 1,
			UserID:  u.UserID,
			Balance: u.Balance,
			Bank:    u.BankBalance,
			Value:   value(u),
		})
	}
	return entries
}

// IsKnownMetric reports whether TopUsers accepts the metric
func IsKnownMetric(metric string) bool {
	switch metric {
	case MetricBalance, MetricBank, MetricTotalEarned, MetricReferrals, MetricNetWorth:
		return true
	}
	return false
}

func metricFunc(metric string) func(*entities.UserAccount) int64 {
	switch metric {
	case MetricBank:
		return func(u *entities.UserAccount) int64 { return u.BankBalance }
	case MetricTotalEarned:
		return func(u *entities.UserAccount) int64 { return u.TotalEarned }
	case MetricReferrals:
		return func(u *entities.UserAccount) int64 { return u.Referrals }
	case MetricNetWorth:
		return func(u *entities.UserAccount) int64 { return u.NetWorth() }
	}
	return func(u *entities.UserAccount) int64 { return u.Balance }
}
