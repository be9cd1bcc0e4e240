package entities

// Snapshot is the persisted state of the entity store
type Snapshot struct {
	Users        map[string]*UserAccount          `json:"users"`
	Items        map[string]*CatalogItem          `json:"items"`
	Listings     map[string]*Listing              `json:"listings"`
	Invites      map[string]*InviteRegistration   `json:"invites"`
	Claimed      []string                         `json:"claimed"`
	GuildConfigs map[string]*GuildConfig          `json:"guildConfigs"`
	Warnings     map[string]map[string][]*Warning `json:"warnings"` // guild -> user -> warnings
	ModLogs      map[string][]*ModLogEntry        `json:"modLogs"`  // guild -> entries, oldest first
}

// NewSnapshot creates an empty snapshot with all collections allocated
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Users:        make(map[string]*UserAccount),
		Items:        make(map[string]*CatalogItem),
		Listings:     make(map[string]*Listing),
		Invites:      make(map[string]*InviteRegistration),
		Claimed:      []string{},
		GuildConfigs: make(map[string]*GuildConfig),
		Warnings:     make(map[string]map[string][]*Warning),
		ModLogs:      make(map[string][]*ModLogEntry),
	}
}

// Normalize allocates any collection left nil by a partial load
func (s *Snapshot) Normalize() {
	if s.Users == nil {
		s.Users = make(map[string]*UserAccount)
	}
	if s.Items == nil {
		s.Items = make(map[string]*CatalogItem)
	}
	if s.Listings == nil {
		s.Listings = make(map[string]*Listing)
	}
	if s.Invites == nil {
		s.Invites = make(map[string]*InviteRegistration)
	}
	if s.Claimed == nil {
		s.Claimed = []string{}
	}
	if s.GuildConfigs == nil {
		s.GuildConfigs = make(map[string]*GuildConfig)
	}
	if s.Warnings == nil {
		s.Warnings = make(map[string]map[string][]*Warning)
	}
	if s.ModLogs == nil {
		s.ModLogs = make(map[string][]*ModLogEntry)
	}
	for _, u := range s.Users {
		if u.Inventory == nil {
			u.Inventory = make(map[string]int64)
		}
		if u.Links == nil {
			u.Links = make(map[string]string)
		}
	}
}
