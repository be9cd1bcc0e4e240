package application

import (
	"context"
	"fmt"
	"time"

	"coinbot/domain/entities"
	"coinbot/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// InterestSweepSummary totals one sweep across guilds
type InterestSweepSummary struct {
	Guilds          int
	TotalInterest   int64
	AccountsTouched int
}

// InterestWorker applies each guild's bank interest rate once a day
type InterestWorker struct {
	bank     interfaces.BankService
	configs  interfaces.GuildConfigService
	guilds   GuildLister
	notifier InterestNotifier
	saver    SnapshotSaver
}

// NewInterestWorker creates the daily interest job. notifier and saver may be nil.
func NewInterestWorker(
	bank interfaces.BankService,
	configs interfaces.GuildConfigService,
	guilds GuildLister,
	notifier InterestNotifier,
	saver SnapshotSaver,
) *InterestWorker {
	return &InterestWorker{
		bank:     bank,
		configs:  configs,
		guilds:   guilds,
		notifier: notifier,
		saver:    saver,
	}
}

// Run sweeps every guild, posts notifications and saves the store
func (w *InterestWorker) Run(ctx context.Context) *InterestSweepSummary {
	start := time.Now()
	summary := &InterestSweepSummary{}

	for _, guildID := range w.guilds.GuildIDs() {
		cfg := w.configs.Peek(guildID)
		result := w.bank.ApplyInterest(cfg.BankInterestRate, guildID)

		summary.Guilds++
		summary.TotalInterest += result.TotalInterest
		summary.AccountsTouched += result.AccountsTouched

		w.notify(ctx, cfg, result)
	}

	if w.saver != nil {
		if err := w.saver.Save(ctx); err != nil {
			log.WithError(err).Error("Failed to save after interest sweep")
		}
	}

	log.WithFields(log.Fields{
		"guilds":           summary.Guilds,
		"total_interest":   summary.TotalInterest,
		"accounts_touched": summary.AccountsTouched,
		"duration":         time.Since(start),
	}).Info("Completed daily interest sweep")
	return summary
}

func (w *InterestWorker) notify(ctx context.Context, cfg *entities.GuildConfig, result *entities.InterestResult) {
	if w.notifier == nil {
		return
	}

	channelID := notificationChannel(cfg)
	if channelID == "" {
		return
	}

	if err := w.notifier.NotifyInterest(ctx, cfg.GuildID, channelID, InterestMessage(cfg.BankInterestRate, result)); err != nil {
		log.WithFields(log.Fields{
			"guild_id":   cfg.GuildID,
			"channel_id": channelID,
			"error":      err,
		}).Warn("Could not send interest notification")
	}
}

// notificationChannel prefers the interest channel and falls back to logs
func notificationChannel(cfg *entities.GuildConfig) string {
	switch {
	case cfg.HasInterestChannel():
		return *cfg.Channels.InterestNotification
	case cfg.HasLogsChannel():
		return *cfg.Channels.Logs
	default:
		return ""
	}
}

// InterestMessage formats the channel notification for a sweep
func InterestMessage(rate float64, result *entities.InterestResult) string {
	if result.AccountsTouched > 0 {
		return fmt.Sprintf("💰 Daily bank interest applied: %d coins added to %d users (%.0f%% rate).",
			result.TotalInterest, result.AccountsTouched, rate*100)
	}
	return fmt.Sprintf("💤 Daily bank interest: No interest applied (%.0f%% rate).", rate*100)
}
