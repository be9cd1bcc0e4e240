package services

import (
	"regexp"
	"strings"

	"coinbot/domain/entities"
	"coinbot/domain/interfaces"
	"coinbot/domain/store"
	"coinbot/events"

	log "github.com/sirupsen/logrus"
)

// DefaultReferralBonus is paid to an inviter when no bonus is configured
const DefaultReferralBonus int64 = 50

var inviteCodePattern = regexp.MustCompile(`^[a-zA-Z0-9]{2,20}$`)

var inviteURLPrefixes = []string{
	"https://discord.gg/",
	"http://discord.gg/",
	"discord.gg/",
	"https://discord.com/invite/",
	"http://discord.com/invite/",
	"discord.com/invite/",
	"https://discordapp.com/invite/",
	"discordapp.com/invite/",
}

// referralService implements the ReferralService interface
type referralService struct {
	store *store.Store
	bonus int64
}

// NewReferralService creates a referral ledger paying bonus per claim
func NewReferralService(s *store.Store, bonus int64) interfaces.ReferralService {
	if bonus <= 0 {
		bonus = DefaultReferralBonus
	}
	return &referralService{store: s, bonus: bonus}
}

// ValidInviteCode reports whether a code is 2-20 alphanumeric characters
func ValidInviteCode(code string) bool {
	return inviteCodePattern.MatchString(code)
}

// ExtractInviteCode accepts a bare code or a discord invite URL
func ExtractInviteCode(raw string) (string, bool) {
	code := strings.TrimSpace(raw)
	for _, prefix := range inviteURLPrefixes {
		if len(code) > len(prefix) && strings.EqualFold(code[:len(prefix)], prefix) {
			code = code[len(prefix):]
			break
		}
	}
	code = strings.TrimSuffix(code, "/")
	if i := strings.IndexAny(code, "?#"); i >= 0 {
		code = code[:i]
	}
	if !ValidInviteCode(code) {
		return "", false
	}
	return code, true
}

// RegisterInvite binds a code to an inviter. A code can only ever be owned
// by one user.
func (r *referralService) RegisterInvite(code, inviterID string) error {
	if !ValidInviteCode(code) {
		return ErrInvalidInviteCode
	}

	err := r.store.Update(func(tx *store.Tx) error {
		if existing, ok := tx.Invite(code); ok {
			if existing.InviterID == inviterID {
				return ErrInviteAlreadyOwned
			}
			return ErrInviteOwnedByOther
		}
		tx.PutInvite(&entities.InviteRegistration{
			Code:         code,
			InviterID:    inviterID,
			RegisteredAt: tx.Now(),
		})
		return nil
	})
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"code":       code,
		"inviter_id": inviterID,
	}).Info("Invite registered")
	return nil
}

// Claim credits the inviter behind code on behalf of claimerID. Each user
// can claim at most once.
func (r *referralService) Claim(code, claimerID string) *entities.ClaimResult {
	result := &entities.ClaimResult{}

	_ = r.store.Update(func(tx *store.Tx) error {
		if tx.IsClaimed(claimerID) {
			result.Reason = entities.ClaimReasonAlreadyClaimed
			return nil
		}
		invite, ok := tx.Invite(code)
		if !ok {
			result.Reason = entities.ClaimReasonInvalidCode
			return nil
		}
		if invite.InviterID == claimerID {
			result.Reason = entities.ClaimReasonSelfReferral
			return nil
		}

		inviter := tx.AccountOrCreate(invite.InviterID)
		creditAccount(tx, inviter, r.bonus, entities.TransactionTypeReferralBonus)
		inviter.Referrals++
		invite.Uses++
		tx.MarkClaimed(claimerID)
		tx.Stage(events.ReferralClaimedEvent{
			Code:      code,
			InviterID: invite.InviterID,
			ClaimerID: claimerID,
			Bonus:     r.bonus,
		})

		result.Success = true
		result.InviterID = invite.InviterID
		result.Bonus = r.bonus
		return nil
	})

	log.WithFields(log.Fields{
		"code":       code,
		"claimer_id": claimerID,
		"success":    result.Success,
		"reason":     result.Reason,
	}).Info("Referral claim processed")

	return result
}

// InviteOwner returns the inviter a code is registered to
func (r *referralService) InviteOwner(code string) (string, bool) {
	owner := ""
	_ = r.store.View(func(tx *store.Tx) error {
		if inv, ok := tx.Invite(code); ok {
			owner = inv.InviterID
		}
		return nil
	})
	return owner, owner != ""
}

// InvitesFor lists the codes an inviter has registered
func (r *referralService) InvitesFor(inviterID string) []*entities.InviteRegistration {
	var out []*entities.InviteRegistration
	_ = r.store.View(func(tx *store.Tx) error {
		for _, inv := range tx.Invites() {
			if inv.InviterID == inviterID {
				out = append(out, inv.Clone())
			}
		}
		return nil
	})
	return out
}

// HasClaimed reports whether a user already used a referral
func (r *referralService) HasClaimed(userID string) bool {
	claimed := false
	_ = r.store.View(func(tx *store.Tx) error {
		claimed = tx.IsClaimed(userID)
		return nil
	})
	return claimed
}

// Bonus returns the amount paid per claim
func (r *referralService) Bonus() int64 {
	return r.bonus
}
