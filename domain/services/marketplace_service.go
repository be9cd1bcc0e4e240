package services

import (
	"fmt"

	"coinbot/domain/entities"
	"coinbot/domain/interfaces"
	"coinbot/domain/store"
	"coinbot/events"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// marketplaceService implements the MarketplaceService interface
type marketplaceService struct {
	store *store.Store
}

// NewMarketplaceService creates a new marketplace service
func NewMarketplaceService(s *store.Store) interfaces.MarketplaceService {
	return &marketplaceService{store: s}
}

// CreateListing moves qty of an item out of the seller's inventory into a
// new listing. It reports false when the request is invalid or the seller
// holds too few.
func (m *marketplaceService) CreateListing(sellerID, guildID, itemKey string, qty, price int64) (*entities.Listing, bool) {
	if sellerID == "" || qty <= 0 || price <= 0 {
		return nil, false
	}
	itemKey = entities.NormalizeItemKey(itemKey)

	var listing *entities.Listing
	_ = m.store.Update(func(tx *store.Tx) error {
		item, ok := tx.Item(itemKey)
		if !ok || !item.VisibleIn(guildID) {
			return nil
		}
		seller := tx.AccountOrCreate(sellerID)
		if !removeItems(seller, itemKey, qty) {
			return nil
		}

		listing = &entities.Listing{
			ID:        uuid.New().String(),
			SellerID:  sellerID,
			GuildID:   guildID,
			ItemKey:   itemKey,
			Quantity:  qty,
			Price:     price,
			CreatedAt: tx.Now(),
		}
		tx.PutListing(listing)
		tx.Stage(events.ListingCreatedEvent{
			ListingID: listing.ID,
			GuildID:   guildID,
			SellerID:  sellerID,
			ItemKey:   itemKey,
			Quantity:  qty,
			Price:     price,
		})
		listing = listing.Clone()
		return nil
	})

	if listing == nil {
		return nil, false
	}

	log.WithFields(log.Fields{
		"listing_id": listing.ID,
		"seller_id":  sellerID,
		"guild_id":   guildID,
		"item":       itemKey,
		"quantity":   qty,
		"price":      price,
	}).Debug("Created marketplace listing")

	return listing, true
}

// Purchase buys qty units of a listing. Every check and mutation happens
// under a single store update.
func (m *marketplaceService) Purchase(buyerID, guildID, listingID string, qty int64) *entities.PurchaseResult {
	result := &entities.PurchaseResult{}

	_ = m.store.Update(func(tx *store.Tx) error {
		listing, ok := tx.Listing(listingID)
		if !ok || listing.GuildID != guildID {
			result.Message = "Listing not found"
			return nil
		}
		if qty <= 0 || qty > listing.Quantity {
			result.Message = fmt.Sprintf("Only %d items available", listing.Quantity)
			return nil
		}
		if buyerID == listing.SellerID {
			result.Message = "Cannot buy your own listing"
			return nil
		}

		totalCost := listing.CostOf(qty)
		buyer := tx.AccountOrCreate(buyerID)
		if !buyer.HasSufficientBalance(totalCost) {
			result.Message = fmt.Sprintf("Insufficient funds. Need %d, have %d", totalCost, buyer.Balance)
			return nil
		}

		seller := tx.AccountOrCreate(listing.SellerID)
		debitAccount(tx, buyer, totalCost, entities.TransactionTypeMarketPurchase)
		creditAccount(tx, seller, totalCost, entities.TransactionTypeMarketSale)
		addItems(buyer, listing.ItemKey, qty)

		listing.Quantity -= qty
		soldOut := !listing.IsActive()
		if soldOut {
			tx.DeleteListing(listing.ID)
		} else {
			result.Listing = listing.Clone()
		}

		tx.Stage(events.ListingPurchasedEvent{
			ListingID: listing.ID,
			GuildID:   guildID,
			BuyerID:   buyerID,
			SellerID:  listing.SellerID,
			ItemKey:   listing.ItemKey,
			Quantity:  qty,
			TotalCost: totalCost,
			SoldOut:   soldOut,
		})

		result.Success = true
		result.Message = fmt.Sprintf("Successfully purchased %dx %s for %d coins", qty, listing.ItemKey, totalCost)
		result.ItemKey = listing.ItemKey
		result.Quantity = qty
		result.TotalCost = totalCost
		result.SellerID = listing.SellerID
		return nil
	})

	if result.Success {
		log.WithFields(log.Fields{
			"listing_id": listingID,
			"buyer_id":   buyerID,
			"seller_id":  result.SellerID,
			"quantity":   qty,
			"total_cost": result.TotalCost,
		}).Info("Marketplace purchase completed")
	}

	return result
}

// RemoveListing withdraws a seller's own listing and returns the unsold
// quantity to their inventory
func (m *marketplaceService) RemoveListing(sellerID, guildID, listingID string) bool {
	ok := false
	_ = m.store.Update(func(tx *store.Tx) error {
		listing, exists := tx.Listing(listingID)
		if !exists || listing.GuildID != guildID || listing.SellerID != sellerID {
			return nil
		}
		addItems(tx.AccountOrCreate(sellerID), listing.ItemKey, listing.Quantity)
		tx.DeleteListing(listingID)
		ok = true
		return nil
	})
	return ok
}

// GetListing returns a copy of a guild's listing
func (m *marketplaceService) GetListing(guildID, listingID string) (*entities.Listing, bool) {
	var out *entities.Listing
	_ = m.store.View(func(tx *store.Tx) error {
		if l, ok := tx.Listing(listingID); ok && l.GuildID == guildID {
			out = l.Clone()
		}
		return nil
	})
	return out, out != nil
}

// PagedListings returns one page of a guild's listings, newest first
func (m *marketplaceService) PagedListings(guildID string, page, perPage int) *entities.ListingPage {
	var all []*entities.Listing
	_ = m.store.View(func(tx *store.Tx) error {
		for _, l := range tx.Listings() {
			if l.GuildID == guildID {
				all = append(all, l.Clone())
			}
		}
		return nil
	})

	start, end, totalPages := pageBounds(len(all), page, perPage)
	return &entities.ListingPage{
		Listings:   append([]*entities.Listing{}, all[start:end]...),
		Total:      len(all),
		TotalPages: totalPages,
		Page:       page,
	}
}
