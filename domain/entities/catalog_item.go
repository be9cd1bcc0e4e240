package entities

import "strings"

// CatalogItem is an item definition that can be held in inventories
type CatalogItem struct {
	Key         string `json:"key" yaml:"key" db:"item_key"`
	Name        string `json:"name" yaml:"name" db:"name"`
	Emoji       string `json:"emoji,omitempty" yaml:"emoji" db:"emoji"`
	Description string `json:"description,omitempty" yaml:"description" db:"description"`
	Price       int64  `json:"price" yaml:"price" db:"price"`            // 0 = not sold in the store
	GuildID     string `json:"guildId,omitempty" yaml:"-" db:"guild_id"` // Empty for global items
}

// NormalizeItemKey lower-cases and trims an item key
func NormalizeItemKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// IsGlobal reports whether the item belongs to every guild
func (i *CatalogItem) IsGlobal() bool {
	return i.GuildID == ""
}

// IsPurchasable reports whether the store sells the item
func (i *CatalogItem) IsPurchasable() bool {
	return i.Price > 0
}

// DisplayName returns the emoji-prefixed name
func (i *CatalogItem) DisplayName() string {
	name := i.Name
	if name == "" {
		name = i.Key
	}
	if i.Emoji != "" {
		return i.Emoji + " " + name
	}
	return name
}

// VisibleIn reports whether the item is available in a guild
func (i *CatalogItem) VisibleIn(guildID string) bool {
	return i.IsGlobal() || i.GuildID == guildID
}

// Clone returns a copy of the item
func (i *CatalogItem) Clone() *CatalogItem {
	if i == nil {
		return nil
	}
	c := *i
	return &c
}
