package referrals

import (
	"time"

	"coinbot/bot/dispatch"
	"coinbot/domain/interfaces"
)

// Feature handles invite registration and referral claims
type Feature struct {
	referrals interfaces.ReferralService
	ledger    interfaces.UserLedger
}

// New creates a new referrals feature
func New(referrals interfaces.ReferralService, ledger interfaces.UserLedger) *Feature {
	return &Feature{
		referrals: referrals,
		ledger:    ledger,
	}
}

// Commands returns the referral commands
func (f *Feature) Commands() []*dispatch.Command {
	return []*dispatch.Command{
		{
			Name:        "reginvurl",
			Aliases:     []string{"reginvite", "register", "reg"},
			Usage:       "reginvurl <invite_url_or_code>",
			Description: "Register your invite link for referral rewards",
			Category:    dispatch.CategoryReferrals,
			Cooldown:    30 * time.Second,
			Handler:     f.handleRegister,
		},
		{
			Name:        "claiminvite",
			Aliases:     []string{"claim", "claimref", "ref"},
			Usage:       "claiminvite <invite_code>",
			Description: "Claim the invite you joined with so your inviter gets rewarded",
			Category:    dispatch.CategoryReferrals,
			Cooldown:    60 * time.Second,
			Handler:     f.handleClaim,
		},
		{
			Name:        "myinvites",
			Usage:       "myinvites",
			Description: "List your registered invite codes",
			Category:    dispatch.CategoryReferrals,
			Cooldown:    5 * time.Second,
			Handler:     f.handleMyInvites,
		},
	}
}
