package services

import "errors"

var (
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrSelfTransfer       = errors.New("cannot transfer to yourself")
	ErrItemNotFound       = errors.New("item not found")
	ErrItemNotForSale     = errors.New("item is not for sale")
	ErrGlobalItem         = errors.New("global items cannot be removed by a guild")
	ErrInvalidItem        = errors.New("invalid item definition")
	ErrInvalidInviteCode  = errors.New("invalid invite code")
	ErrInviteAlreadyOwned = errors.New("invite already registered to you")
	ErrInviteOwnedByOther = errors.New("invite registered to another user")
	ErrNukeAlreadyPending = errors.New("nuke already pending")
	ErrNoPendingNuke      = errors.New("no pending nuke")
	ErrNotNukeInitiator   = errors.New("only the initiator can confirm or abort the nuke")
	ErrInvalidConfig      = errors.New("invalid configuration")
	ErrOnCooldown         = errors.New("action is on cooldown")
	ErrMinimumInvestment  = errors.New("minimum investment not met")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrGameInProgress     = errors.New("a blackjack game is already in progress")
	ErrNoActiveGame       = errors.New("no active blackjack game")
	ErrInvalidBet         = errors.New("invalid bet")
	ErrWarningNotFound    = errors.New("warning not found")
	ErrInvalidProfile     = errors.New("invalid profile value")
	ErrUnknownBadge       = errors.New("unknown badge")
)
