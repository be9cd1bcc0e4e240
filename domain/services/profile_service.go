package services

import (
	"fmt"
	"strings"

	"coinbot/domain/entities"
	"coinbot/domain/interfaces"
	"coinbot/domain/store"
)

// MaxBioLength is the longest bio a profile accepts, in characters
const MaxBioLength = 200

// LinkPlatforms are the social platforms a profile can link
var LinkPlatforms = []string{"twitter", "twitch", "github", "youtube", "discord", "steam", "instagram", "tiktok"}

// Badges are the badge ids administrators can grant
var Badges = []string{
	"first-referral", "crime-master", "investor", "3-day-streak", "7-day-streak",
	"store-champion", "gambling-addict", "community-helper", "early-adopter",
}

// profileService implements the ProfileService interface
type profileService struct {
	store *store.Store
}

// NewProfileService creates a new profile service
func NewProfileService(s *store.Store) interfaces.ProfileService {
	return &profileService{store: s}
}

// SetBio replaces the profile bio
func (p *profileService) SetBio(userID, bio string) error {
	bio = strings.TrimSpace(bio)
	if bio == "" {
		return fmt.Errorf("%w: bio cannot be empty", ErrInvalidProfile)
	}
	if len([]rune(bio)) > MaxBioLength {
		return fmt.Errorf("%w: bio must be %d characters or less", ErrInvalidProfile, MaxBioLength)
	}
	return p.store.Update(func(tx *store.Tx) error {
		tx.AccountOrCreate(userID).Bio = bio
		return nil
	})
}

// AddLink sets the URL for a supported platform
func (p *profileService) AddLink(userID, platform, url string) error {
	platform = strings.ToLower(platform)
	if !contains(LinkPlatforms, platform) {
		return fmt.Errorf("%w: supported platforms are %s", ErrInvalidProfile, strings.Join(LinkPlatforms, ", "))
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return fmt.Errorf("%w: URL must start with http:// or https://", ErrInvalidProfile)
	}
	return p.store.Update(func(tx *store.Tx) error {
		u := tx.AccountOrCreate(userID)
		if u.Links == nil {
			u.Links = make(map[string]string)
		}
		u.Links[platform] = url
		return nil
	})
}

// RemoveLink deletes a platform link, reporting false if none was set
func (p *profileService) RemoveLink(userID, platform string) bool {
	platform = strings.ToLower(platform)
	removed := false
	_ = p.store.Update(func(tx *store.Tx) error {
		u := tx.AccountOrCreate(userID)
		if _, ok := u.Links[platform]; ok {
			delete(u.Links, platform)
			removed = true
		}
		return nil
	})
	return removed
}

// GrantBadge awards a known badge; granting twice is a no-op
func (p *profileService) GrantBadge(userID, badge string) error {
	if !contains(Badges, badge) {
		return ErrUnknownBadge
	}
	return p.store.Update(func(tx *store.Tx) error {
		u := tx.AccountOrCreate(userID)
		if !u.HasBadge(badge) {
			u.Badges = append(u.Badges, badge)
		}
		return nil
	})
}

// RevokeBadge removes a badge
func (p *profileService) RevokeBadge(userID, badge string) error {
	if !contains(Badges, badge) {
		return ErrUnknownBadge
	}
	return p.store.Update(func(tx *store.Tx) error {
		u := tx.AccountOrCreate(userID)
		kept := u.Badges[:0]
		for _, b := range u.Badges {
			if b != badge {
				kept = append(kept, b)
			}
		}
		u.Badges = kept
		return nil
	})
}

// Profile returns a copy of the account backing the profile
func (p *profileService) Profile(userID string) *entities.UserAccount {
	var out *entities.UserAccount
	_ = p.store.Update(func(tx *store.Tx) error {
		out = tx.AccountOrCreate(userID).Clone()
		return nil
	})
	return out
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
