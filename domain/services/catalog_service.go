package services

import (
	"fmt"

	"coinbot/domain/entities"
	"coinbot/domain/interfaces"
	"coinbot/domain/store"

	log "github.com/sirupsen/logrus"
)

// catalogService implements the CatalogService interface
type catalogService struct {
	store *store.Store
}

// NewCatalogService creates a new catalog service
func NewCatalogService(s *store.Store) interfaces.CatalogService {
	return &catalogService{store: s}
}

// Seed installs global items, replacing existing definitions with the same key
func (c *catalogService) Seed(items []*entities.CatalogItem) error {
	for _, item := range items {
		if err := validateItem(item); err != nil {
			return fmt.Errorf("failed to seed catalog item %q: %w", item.Key, err)
		}
	}

	return c.store.Update(func(tx *store.Tx) error {
		for _, item := range items {
			seeded := item.Clone()
			seeded.Key = entities.NormalizeItemKey(seeded.Key)
			seeded.GuildID = ""
			tx.PutItem(seeded)
		}
		return nil
	})
}

// Items returns the global and guild items, ordered by key
func (c *catalogService) Items(guildID string) []*entities.CatalogItem {
	var out []*entities.CatalogItem
	_ = c.store.View(func(tx *store.Tx) error {
		for _, item := range tx.Items() {
			if item.VisibleIn(guildID) {
				out = append(out, item.Clone())
			}
		}
		return nil
	})
	return out
}

// Item returns one item visible in the guild
func (c *catalogService) Item(guildID, key string) (*entities.CatalogItem, bool) {
	key = entities.NormalizeItemKey(key)
	var out *entities.CatalogItem
	_ = c.store.View(func(tx *store.Tx) error {
		if item, ok := tx.Item(key); ok && item.VisibleIn(guildID) {
			out = item.Clone()
		}
		return nil
	})
	return out, out != nil
}

// IsValidItem reports whether the key exists in the catalog
func (c *catalogService) IsValidItem(key string) bool {
	valid := false
	_ = c.store.View(func(tx *store.Tx) error {
		_, valid = tx.Item(entities.NormalizeItemKey(key))
		return nil
	})
	return valid
}

// AddItem adds or replaces a guild item. Global items cannot be shadowed.
func (c *catalogService) AddItem(guildID string, item *entities.CatalogItem) (*entities.CatalogItem, error) {
	if err := validateItem(item); err != nil {
		return nil, err
	}

	added := item.Clone()
	added.Key = entities.NormalizeItemKey(added.Key)
	added.GuildID = guildID

	err := c.store.Update(func(tx *store.Tx) error {
		if existing, ok := tx.Item(added.Key); ok && existing.GuildID != guildID {
			if existing.IsGlobal() {
				return ErrGlobalItem
			}
			return fmt.Errorf("%w: key %q is used by another server", ErrInvalidItem, added.Key)
		}
		tx.PutItem(added)
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"guild_id": guildID,
		"item":     added.Key,
		"price":    added.Price,
	}).Info("Store item added")

	return added.Clone(), nil
}

// RemoveItem deletes a guild item
func (c *catalogService) RemoveItem(guildID, key string) error {
	key = entities.NormalizeItemKey(key)
	return c.store.Update(func(tx *store.Tx) error {
		item, ok := tx.Item(key)
		if !ok {
			return ErrItemNotFound
		}
		if item.IsGlobal() {
			return ErrGlobalItem
		}
		if item.GuildID != guildID {
			return ErrItemNotFound
		}
		tx.DeleteItem(key)
		return nil
	})
}

// Buy debits qty*price and grants the items in one update
func (c *catalogService) Buy(guildID, userID, key string, qty int64) *entities.StorePurchaseResult {
	key = entities.NormalizeItemKey(key)
	result := &entities.StorePurchaseResult{Quantity: qty}
	if qty <= 0 {
		result.Message = "Quantity must be positive"
		return result
	}

	_ = c.store.Update(func(tx *store.Tx) error {
		item, ok := tx.Item(key)
		if !ok || !item.VisibleIn(guildID) {
			result.Message = fmt.Sprintf("Item `%s` not found in the store", key)
			return nil
		}
		result.Item = item.Clone()
		if !item.IsPurchasable() {
			result.Message = fmt.Sprintf("%s is not for sale", item.DisplayName())
			return nil
		}

		totalCost := item.Price * qty
		result.TotalCost = totalCost
		buyer := tx.AccountOrCreate(userID)
		if !buyer.HasSufficientBalance(totalCost) {
			result.Message = fmt.Sprintf("Insufficient funds. Need %d, have %d", totalCost, buyer.Balance)
			result.NewBalance = buyer.Balance
			return nil
		}

		debitAccount(tx, buyer, totalCost, entities.TransactionTypeStorePurchase)
		addItems(buyer, key, qty)

		result.Success = true
		result.Message = fmt.Sprintf("Purchased %dx %s for %d coins", qty, item.DisplayName(), totalCost)
		result.NewBalance = buyer.Balance
		return nil
	})

	return result
}

func validateItem(item *entities.CatalogItem) error {
	if item == nil {
		return ErrInvalidItem
	}
	key := entities.NormalizeItemKey(item.Key)
	if key == "" || len(key) > 32 {
		return fmt.Errorf("%w: key must be 1-32 characters", ErrInvalidItem)
	}
	if item.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidItem)
	}
	if item.Price < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrInvalidItem)
	}
	return nil
}
