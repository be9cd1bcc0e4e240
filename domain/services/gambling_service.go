package services

import (
	"strconv"
	"strings"
	"sync"

	"coinbot/domain/entities"
	"coinbot/domain/interfaces"
	"coinbot/domain/store"

	log "github.com/sirupsen/logrus"
)

// SlotSymbols are the faces of each reel
var SlotSymbols = []string{"🍒", "🍋", "🍊", "🍇", "⭐", "🔔"}

const (
	slotsJackpotMultiplier = 10
	slotsPairMultiplier    = 3
	slotsStarMultiplier    = 2
	rouletteNumberPayout   = 35
	rouletteOutsidePayout  = 2
	blackjackPayout        = 2
	dealerStandValue       = 17
)

var redNumbers = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true, 14: true, 16: true, 18: true,
	19: true, 21: true, 23: true, 25: true, 27: true, 30: true, 32: true, 34: true, 36: true,
}

var (
	cardRanks = []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}
	cardSuits = []string{"♠", "♥", "♦", "♣"}
)

// gamblingService implements the GamblingService interface
type gamblingService struct {
	store *store.Store
	rand  RandSource

	mu    sync.Mutex
	hands map[string]*entities.BlackjackHand
}

// NewGamblingService creates a new gambling service
func NewGamblingService(s *store.Store, r RandSource) interfaces.GamblingService {
	if r == nil {
		r = NewRandSource()
	}
	return &gamblingService{
		store: s,
		rand:  r,
		hands: make(map[string]*entities.BlackjackHand),
	}
}

// Slots spins three reels: three of a kind pays 10x, a pair 3x, any star 2x
func (g *gamblingService) Slots(userID string, bet int64) (*entities.SlotsResult, error) {
	if bet <= 0 {
		return nil, ErrInvalidAmount
	}

	result := &entities.SlotsResult{Bet: bet}
	err := g.store.Update(func(tx *store.Tx) error {
		u := tx.AccountOrCreate(userID)
		if !u.HasSufficientBalance(bet) {
			result.NewBalance = u.Balance
			return ErrInsufficientFunds
		}

		for i := range result.Reels {
			result.Reels[i] = SlotSymbols[g.rand.IntN(len(SlotSymbols))]
		}
		result.Multiplier = slotsMultiplier(result.Reels)
		result.Payout = bet * result.Multiplier

		applyNet(tx, u, result.Payout-bet, entities.TransactionTypeGambleWin, entities.TransactionTypeGambleLoss)
		result.NewBalance = u.Balance
		return nil
	})
	return result, err
}

func slotsMultiplier(reels [3]string) int64 {
	a, b, c := reels[0], reels[1], reels[2]
	switch {
	case a == b && b == c:
		return slotsJackpotMultiplier
	case a == b || b == c || a == c:
		return slotsPairMultiplier
	case a == "⭐" || b == "⭐" || c == "⭐":
		return slotsStarMultiplier
	}
	return 0
}

// ParseRouletteBet normalizes a bet target: red, black, even, odd or 0-36
func ParseRouletteBet(raw string) (string, bool) {
	bet := strings.ToLower(strings.TrimSpace(raw))
	switch bet {
	case "red", "black", "even", "odd":
		return bet, true
	}
	n, err := strconv.Atoi(bet)
	if err != nil || n < 0 || n > 36 {
		return "", false
	}
	return strconv.Itoa(n), true
}

// RouletteColorOf returns the pocket color of a number
func RouletteColorOf(n int) entities.RouletteColor {
	switch {
	case n == 0:
		return entities.RouletteGreen
	case redNumbers[n]:
		return entities.RouletteRed
	}
	return entities.RouletteBlack
}

// Roulette spins the wheel. A straight number pays 35x, outside bets 2x,
// and green zero loses every outside bet.
func (g *gamblingService) Roulette(userID, betType string, amount int64) (*entities.RouletteResult, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	bet, ok := ParseRouletteBet(betType)
	if !ok {
		return nil, ErrInvalidBet
	}

	result := &entities.RouletteResult{BetType: bet, Bet: amount}
	err := g.store.Update(func(tx *store.Tx) error {
		u := tx.AccountOrCreate(userID)
		if !u.HasSufficientBalance(amount) {
			result.NewBalance = u.Balance
			return ErrInsufficientFunds
		}

		result.Number = g.rand.IntN(37)
		result.Color = RouletteColorOf(result.Number)
		result.Multiplier = rouletteMultiplier(bet, result.Number, result.Color)
		result.Won = result.Multiplier > 0
		result.Payout = amount * result.Multiplier

		applyNet(tx, u, result.Payout-amount, entities.TransactionTypeGambleWin, entities.TransactionTypeGambleLoss)
		result.NewBalance = u.Balance
		return nil
	})
	return result, err
}

func rouletteMultiplier(bet string, number int, color entities.RouletteColor) int64 {
	switch bet {
	case "red", "black":
		if string(color) == bet {
			return rouletteOutsidePayout
		}
	case "even":
		if number != 0 && number%2 == 0 {
			return rouletteOutsidePayout
		}
	case "odd":
		if number%2 == 1 {
			return rouletteOutsidePayout
		}
	default:
		if n, err := strconv.Atoi(bet); err == nil && n == number {
			return rouletteNumberPayout
		}
	}
	return 0
}

// StartBlackjack debits the bet and deals a new hand. A natural 21 settles
// immediately.
func (g *gamblingService) StartBlackjack(guildID, userID string, bet int64) (*entities.BlackjackHand, error) {
	if bet <= 0 {
		return nil, ErrInvalidAmount
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, active := g.hands[userID]; active {
		return nil, ErrGameInProgress
	}

	hand := &entities.BlackjackHand{
		UserID:  userID,
		GuildID: guildID,
		Bet:     bet,
		Outcome: entities.BlackjackInProgress,
	}

	err := g.store.Update(func(tx *store.Tx) error {
		u := tx.AccountOrCreate(userID)
		if !u.HasSufficientBalance(bet) {
			return ErrInsufficientFunds
		}
		debitAccount(tx, u, bet, entities.TransactionTypeGambleBet)
		hand.NewBalance = u.Balance
		return nil
	})
	if err != nil {
		return nil, err
	}

	hand.Deck = g.shuffledDeck()
	hand.Player = append(hand.Player, draw(hand), draw(hand))
	hand.Dealer = append(hand.Dealer, draw(hand), draw(hand))

	if hand.PlayerValue() == 21 {
		if hand.DealerValue() == 21 {
			hand.Outcome = entities.BlackjackPush
		} else {
			hand.Outcome = entities.BlackjackNatural
		}
		g.settle(hand)
		return snapshotHand(hand), nil
	}

	g.hands[userID] = hand
	return snapshotHand(hand), nil
}

// Hit draws a card for the player; going over 21 loses the bet
func (g *gamblingService) Hit(userID string) (*entities.BlackjackHand, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	hand, ok := g.hands[userID]
	if !ok {
		return nil, ErrNoActiveGame
	}

	hand.Player = append(hand.Player, draw(hand))
	if hand.PlayerValue() > 21 {
		hand.Outcome = entities.BlackjackPlayerBust
		delete(g.hands, userID)
		g.settle(hand)
	}
	return snapshotHand(hand), nil
}

// Stand plays the dealer out to 17 and settles the hand
func (g *gamblingService) Stand(userID string) (*entities.BlackjackHand, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	hand, ok := g.hands[userID]
	if !ok {
		return nil, ErrNoActiveGame
	}
	delete(g.hands, userID)

	for hand.DealerValue() < dealerStandValue && len(hand.Deck) > 0 {
		hand.Dealer = append(hand.Dealer, draw(hand))
	}

	player, dealer := hand.PlayerValue(), hand.DealerValue()
	switch {
	case dealer > 21 || player > dealer:
		hand.Outcome = entities.BlackjackPlayerWin
	case player == dealer:
		hand.Outcome = entities.BlackjackPush
	default:
		hand.Outcome = entities.BlackjackDealerWin
	}
	g.settle(hand)
	return snapshotHand(hand), nil
}

// ActiveHand returns the user's hand in progress
func (g *gamblingService) ActiveHand(userID string) (*entities.BlackjackHand, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	hand, ok := g.hands[userID]
	if !ok {
		return nil, false
	}
	return snapshotHand(hand), true
}

// settle pays out a finished hand. The stake was debited when the hand was
// dealt, so a push returns it and a win returns it plus equal winnings.
func (g *gamblingService) settle(hand *entities.BlackjackHand) {
	switch hand.Outcome {
	case entities.BlackjackPlayerWin, entities.BlackjackNatural:
		hand.Payout = hand.Bet * blackjackPayout
	case entities.BlackjackPush:
		hand.Payout = hand.Bet
	}

	err := g.store.Update(func(tx *store.Tx) error {
		u := tx.AccountOrCreate(hand.UserID)
		if hand.Payout > 0 {
			oldWallet, oldBank := u.Balance, u.BankBalance
			u.Balance += hand.Bet
			stageBalanceChange(tx, u, oldWallet, oldBank, entities.TransactionTypeGambleWin, hand.Bet)
			if winnings := hand.Payout - hand.Bet; winnings > 0 {
				creditAccount(tx, u, winnings, entities.TransactionTypeGambleWin)
			}
		}
		hand.NewBalance = u.Balance
		return nil
	})
	if err != nil {
		log.WithFields(log.Fields{
			"user_id": hand.UserID,
			"error":   err,
		}).Error("Failed to settle blackjack hand")
	}
}

func (g *gamblingService) shuffledDeck() []entities.Card {
	deck := make([]entities.Card, 0, len(cardRanks)*len(cardSuits))
	for _, suit := range cardSuits {
		for _, rank := range cardRanks {
			deck = append(deck, entities.Card{Rank: rank, Suit: suit})
		}
	}
	for i := len(deck) - 1; i > 0; i-- {
		j := g.rand.IntN(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}
	return deck
}

func draw(hand *entities.BlackjackHand) entities.Card {
	last := len(hand.Deck) - 1
	card := hand.Deck[last]
	hand.Deck = hand.Deck[:last]
	return card
}

func snapshotHand(hand *entities.BlackjackHand) *entities.BlackjackHand {
	c := *hand
	c.Player = append([]entities.Card(nil), hand.Player...)
	c.Dealer = append([]entities.Card(nil), hand.Dealer...)
	c.Deck = nil
	return &c
}
