package marketplace

import (
	"time"

	"coinbot/bot/dispatch"
	"coinbot/domain/entities"
	"coinbot/domain/interfaces"
)

// Feature handles player-to-player item trading
type Feature struct {
	market  interfaces.MarketplaceService
	catalog interfaces.CatalogService
	ledger  interfaces.UserLedger
}

// New creates a new marketplace feature
func New(market interfaces.MarketplaceService, catalog interfaces.CatalogService, ledger interfaces.UserLedger) *Feature {
	return &Feature{
		market:  market,
		catalog: catalog,
		ledger:  ledger,
	}
}

// Commands returns the marketplace commands
func (f *Feature) Commands() []*dispatch.Command {
	return []*dispatch.Command{
		{
			Name:        "listitem",
			Aliases:     []string{"sell"},
			Usage:       "listitem <item> <quantity> <price>",
			Description: "List items from your inventory on the marketplace",
			Category:    dispatch.CategoryMarketplace,
			Cooldown:    10 * time.Second,
			Feature:     entities.FeatureEconomy,
			Handler:     f.handleListItem,
		},
		{
			Name:        "market",
			Aliases:     []string{"marketplace"},
			Usage:       "market [page]",
			Description: "Browse marketplace listings",
			Category:    dispatch.CategoryMarketplace,
			Cooldown:    5 * time.Second,
			Feature:     entities.FeatureEconomy,
			Handler:     f.handleMarket,
		},
		{
			Name:        "buy",
			Usage:       "buy <listingId> [quantity]",
			Description: "Buy items from a marketplace listing",
			Category:    dispatch.CategoryMarketplace,
			Cooldown:    10 * time.Second,
			Feature:     entities.FeatureEconomy,
			Handler:     f.handleBuy,
		},
		{
			Name:        "unlist",
			Usage:       "unlist <listingId>",
			Description: "Remove your listing and get the items back",
			Category:    dispatch.CategoryMarketplace,
			Cooldown:    5 * time.Second,
			Feature:     entities.FeatureEconomy,
			Handler:     f.handleUnlist,
		},
	}
}
