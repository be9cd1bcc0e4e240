package application

import (
	"context"

	"coinbot/events"
	"coinbot/infrastructure/observability"

	log "github.com/sirupsen/logrus"
)

// RegisterEventHandlers attaches the in-process consumers of economy events
func RegisterEventHandlers(registry EventHandlerRegistry, metrics *observability.MetricsProvider) {
	allTypes := []events.EventType{
		events.EventTypeBalanceChange,
		events.EventTypeListingCreated,
		events.EventTypeListingPurchased,
		events.EventTypeReferralClaimed,
		events.EventTypeInterestApplied,
		events.EventTypeEconomyNuked,
	}
	for _, eventType := range allTypes {
		registry.RegisterLocalHandler(eventType, func(ctx context.Context, event events.Event) error {
			metrics.RecordEventPublished(string(event.Type()))
			return nil
		})
	}

	registry.RegisterLocalHandler(events.EventTypeBalanceChange, func(ctx context.Context, event events.Event) error {
		if e, ok := event.(events.BalanceChangeEvent); ok {
			metrics.RecordBalanceTransaction(string(e.TransactionType))
		}
		return nil
	})

	registry.RegisterLocalHandler(events.EventTypeEconomyNuked, func(ctx context.Context, event events.Event) error {
		if e, ok := event.(events.EconomyNukedEvent); ok {
			log.WithFields(log.Fields{
				"guild_id":         e.GuildID,
				"initiator_id":     e.InitiatorID,
				"accounts_reset":   e.AccountsReset,
				"listings_removed": e.ListingsRemoved,
				"items_removed":    e.ItemsRemoved,
			}).Warn("Guild economy wiped")
		}
		return nil
	})
}
