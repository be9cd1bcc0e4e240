package shop

import (
	"time"

	"coinbot/bot/dispatch"
	"coinbot/domain/interfaces"
)

// Feature handles the admin-curated item store and inventories
type Feature struct {
	catalog interfaces.CatalogService
	ledger  interfaces.UserLedger
}

// New creates a new store feature
func New(catalog interfaces.CatalogService, ledger interfaces.UserLedger) *Feature {
	return &Feature{
		catalog: catalog,
		ledger:  ledger,
	}
}

// Commands returns the store commands
func (f *Feature) Commands() []*dispatch.Command {
	return []*dispatch.Command{
		{
			Name:        "store",
			Aliases:     []string{"shop"},
			Usage:       "store",
			Description: "View the items available in the server store",
			Category:    dispatch.CategoryMarketplace,
			Cooldown:    5 * time.Second,
			Handler:     f.handleStore,
		},
		{
			Name:        "storebuy",
			Usage:       "storebuy <item key> [quantity]",
			Description: "Buy an item from the server store",
			Category:    dispatch.CategoryMarketplace,
			Cooldown:    5 * time.Second,
			Handler:     f.handleStoreBuy,
		},
		{
			Name:        "storeadd",
			Aliases:     []string{"additem"},
			Usage:       "storeadd <name> <price> [description]",
			Description: "Add an item to the server store",
			Category:    dispatch.CategoryAdmin,
			AdminRole:   true,
			Cooldown:    5 * time.Second,
			Handler:     f.handleStoreAdd,
		},
		{
			Name:        "storeremove",
			Aliases:     []string{"removeitem"},
			Usage:       "storeremove <name>",
			Description: "Remove an item from the server store",
			Category:    dispatch.CategoryAdmin,
			AdminRole:   true,
			Cooldown:    5 * time.Second,
			Handler:     f.handleStoreRemove,
		},
		{
			Name:        "inventory",
			Aliases:     []string{"inv"},
			Usage:       "inventory",
			Description: "Show the items you own",
			Category:    dispatch.CategoryUtility,
			Cooldown:    5 * time.Second,
			Handler:     f.handleInventory,
		},
	}
}
