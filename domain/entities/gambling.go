package entities

import (
	"fmt"
	"strconv"
)

// SlotsResult is one spin of the slot machine
type SlotsResult struct {
	Reels      [3]string
	Multiplier int64
	Bet        int64
	Payout     int64
	NewBalance int64
}

// Won reports whether the spin paid out
func (r *SlotsResult) Won() bool {
	return r.Multiplier > 0
}

// RouletteColor is the color of a roulette pocket
type RouletteColor string

const (
	RouletteRed   RouletteColor = "red"
	RouletteBlack RouletteColor = "black"
	RouletteGreen RouletteColor = "green"
)

// RouletteResult is one roulette spin
type RouletteResult struct {
	BetType    string
	Number     int
	Color      RouletteColor
	Won        bool
	Multiplier int64
	Bet        int64
	Payout     int64
	NewBalance int64
}

// Card is a playing card
type Card struct {
	Rank string // A, 2-10, J, Q, K
	Suit string
}

// String renders the card as rank and suit
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// BaseValue returns the card value with aces counted as 11
func (c Card) BaseValue() int {
	switch c.Rank {
	case "A":
		return 11
	case "K", "Q", "J":
		return 10
	default:
		v, _ := strconv.Atoi(c.Rank)
		return v
	}
}

// HandValue scores a blackjack hand, demoting aces from 11 to 1 while over 21
func HandValue(cards []Card) int {
	total := 0
	aces := 0
	for _, c := range cards {
		total += c.BaseValue()
		if c.Rank == "A" {
			aces++
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total
}

// BlackjackOutcome is the state of a blackjack hand
type BlackjackOutcome string

const (
	BlackjackInProgress BlackjackOutcome = "in_progress"
	BlackjackPlayerWin  BlackjackOutcome = "win"
	BlackjackPlayerBust BlackjackOutcome = "bust"
	BlackjackDealerWin  BlackjackOutcome = "lose"
	BlackjackPush       BlackjackOutcome = "push"
	BlackjackNatural    BlackjackOutcome = "blackjack"
)

// BlackjackHand is a user's active game
type BlackjackHand struct {
	UserID     string
	GuildID    string
	Bet        int64
	Player     []Card
	Dealer     []Card
	Deck       []Card
	Outcome    BlackjackOutcome
	Payout     int64
	NewBalance int64
}

// PlayerValue returns the player's score
func (h *BlackjackHand) PlayerValue() int {
	return HandValue(h.Player)
}

// DealerValue returns the dealer's score
func (h *BlackjackHand) DealerValue() int {
	return HandValue(h.Dealer)
}

// IsFinished reports whether the hand has been settled
func (h *BlackjackHand) IsFinished() bool {
	return h.Outcome != BlackjackInProgress
}

// EconomyOutcome is the result of an earn/daily/weekly/crime/invest action
type EconomyOutcome struct {
	Success    bool
	Amount     int64 // Coins gained, or lost when Success is false
	NewBalance int64
	Streak     int
	Remaining  int64 // Seconds until the action is available again
}
