package entities

import "time"

// InviteRegistration binds an invite code to the user who owns it
type InviteRegistration struct {
	Code         string    `json:"code" db:"code"`
	InviterID    string    `json:"inviterId" db:"inviter_id"`
	RegisteredAt time.Time `json:"registeredAt" db:"registered_at"`
	Uses         int64     `json:"uses" db:"uses"`
}

// Clone returns a copy of the registration
func (r *InviteRegistration) Clone() *InviteRegistration {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}

// ClaimFailureReason explains why a referral claim was rejected
type ClaimFailureReason string

const (
	ClaimReasonAlreadyClaimed ClaimFailureReason = "already_claimed"
	ClaimReasonInvalidCode    ClaimFailureReason = "invalid_code"
	ClaimReasonSelfReferral   ClaimFailureReason = "self_referral"
)

// ClaimResult is the outcome of a referral claim
type ClaimResult struct {
	Success   bool
	Reason    ClaimFailureReason
	InviterID string
	Bonus     int64
}
