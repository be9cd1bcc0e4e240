package store

import (
	"sort"
	"time"

	"coinbot/domain/entities"
	"coinbot/events"
)

// Tx is the view of the store handed to View and Update callbacks. Pointers
// returned by a Tx are live records and must not escape the callback.
type Tx struct {
	s        *Store
	writable bool
	now      time.Time
	pending  []events.Event
}

// Now returns the time the transaction started
func (tx *Tx) Now() time.Time {
	return tx.now
}

// Stage queues an event for publication after a successful update
func (tx *Tx) Stage(event events.Event) {
	tx.pending = append(tx.pending, event)
}

func (tx *Tx) mustWrite() {
	if !tx.writable {
		panic("store: write attempted inside View")
	}
}

// Account returns an existing account
func (tx *Tx) Account(userID string) (*entities.UserAccount, bool) {
	u, ok := tx.s.users[userID]
	return u, ok
}

// AccountOrCreate returns the account, creating a zero record when missing
func (tx *Tx) AccountOrCreate(userID string) *entities.UserAccount {
	if u, ok := tx.s.users[userID]; ok {
		return u
	}
	tx.mustWrite()
	u := entities.NewUserAccount(userID, tx.now)
	tx.s.users[userID] = u
	return u
}

// Accounts returns every account ordered by user id
func (tx *Tx) Accounts() []*entities.UserAccount {
	out := make([]*entities.UserAccount, 0, len(tx.s.users))
	for _, u := range tx.s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out
}

// Item returns a catalog item by key
func (tx *Tx) Item(key string) (*entities.CatalogItem, bool) {
	item, ok := tx.s.items[key]
	return item, ok
}

// PutItem inserts or replaces a catalog item
func (tx *Tx) PutItem(item *entities.CatalogItem) {
	tx.mustWrite()
	tx.s.items[item.Key] = item
}

// DeleteItem removes a catalog item
func (tx *Tx) DeleteItem(key string) {
	tx.mustWrite()
	delete(tx.s.items, key)
}

// Items returns every catalog item ordered by key
func (tx *Tx) Items() []*entities.CatalogItem {
	out := make([]*entities.CatalogItem, 0, len(tx.s.items))
	for _, item := range tx.s.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Listing returns a listing by id
func (tx *Tx) Listing(id string) (*entities.Listing, bool) {
	l, ok := tx.s.listings[id]
	return l, ok
}

// PutListing inserts or replaces a listing
func (tx *Tx) PutListing(l *entities.Listing) {
	tx.mustWrite()
	tx.s.listings[l.ID] = l
}

// DeleteListing removes a listing
func (tx *Tx) DeleteListing(id string) {
	tx.mustWrite()
	delete(tx.s.listings, id)
}

// Listings returns every listing, newest first
func (tx *Tx) Listings() []*entities.Listing {
	out := make([]*entities.Listing, 0, len(tx.s.listings))
	for _, l := range tx.s.listings {
		out = append(out, l)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Invite returns an invite registration by code
func (tx *Tx) Invite(code string) (*entities.InviteRegistration, bool) {
	inv, ok := tx.s.invites[code]
	return inv, ok
}

// PutInvite inserts or replaces an invite registration
func (tx *Tx) PutInvite(inv *entities.InviteRegistration) {
	tx.mustWrite()
	tx.s.invites[inv.Code] = inv
}

// Invites returns every invite registration ordered by code
func (tx *Tx) Invites() []*entities.InviteRegistration {
	out := make([]*entities.InviteRegistration, 0, len(tx.s.invites))
	for _, inv := range tx.s.invites {
		out = append(out, inv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// IsClaimed reports whether a user already claimed a referral
func (tx *Tx) IsClaimed(userID string) bool {
	_, ok := tx.s.claimed[userID]
	return ok
}

// MarkClaimed adds a user to the claimed set
func (tx *Tx) MarkClaimed(userID string) {
	tx.mustWrite()
	tx.s.claimed[userID] = struct{}{}
}

// ClaimedCount returns the size of the claimed set
func (tx *Tx) ClaimedCount() int {
	return len(tx.s.claimed)
}

// GuildConfig returns a guild's configuration. Missing configs are created
// with defaults inside Update; inside View, or for direct messages (empty
// guildID), an unsaved default is returned.
func (tx *Tx) GuildConfig(guildID string) *entities.GuildConfig {
	if cfg, ok := tx.s.configs[guildID]; ok {
		return cfg
	}
	cfg := entities.NewDefaultGuildConfig(guildID)
	if tx.writable && guildID != "" {
		tx.s.configs[guildID] = cfg
	}
	return cfg
}

// PutGuildConfig replaces a guild's configuration
func (tx *Tx) PutGuildConfig(cfg *entities.GuildConfig) {
	tx.mustWrite()
	tx.s.configs[cfg.GuildID] = cfg
}

// GuildIDs returns every guild with a stored configuration
func (tx *Tx) GuildIDs() []string {
	out := make([]string, 0, len(tx.s.configs))
	for id := range tx.s.configs {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Warnings returns a member's warnings, oldest first
func (tx *Tx) Warnings(guildID, userID string) []*entities.Warning {
	return tx.s.warnings[guildID][userID]
}

// GuildWarnings returns every member's warnings in a guild
func (tx *Tx) GuildWarnings(guildID string) map[string][]*entities.Warning {
	return tx.s.warnings[guildID]
}

// SetWarnings replaces a member's warnings; an empty list removes the entry
func (tx *Tx) SetWarnings(guildID, userID string, list []*entities.Warning) {
	tx.mustWrite()
	byUser, ok := tx.s.warnings[guildID]
	if !ok {
		byUser = make(map[string][]*entities.Warning)
		tx.s.warnings[guildID] = byUser
	}
	if len(list) == 0 {
		delete(byUser, userID)
		return
	}
	byUser[userID] = list
}

// ModLogs returns a guild's moderation log, oldest first
func (tx *Tx) ModLogs(guildID string) []*entities.ModLogEntry {
	return tx.s.modLogs[guildID]
}

// SetModLogs replaces a guild's moderation log
func (tx *Tx) SetModLogs(guildID string, list []*entities.ModLogEntry) {
	tx.mustWrite()
	tx.s.modLogs[guildID] = list
}
