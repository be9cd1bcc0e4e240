package betting

import (
	"errors"

	"coinbot/bot/common"
	"coinbot/bot/dispatch"
	"coinbot/domain/services"
)

func (f *Feature) handleSlots(ctx *dispatch.Context) error {
	bet, ok := common.ParsePositiveAmount(ctx.Arg(0))
	if !ok {
		return ctx.Usage("slots <bet>")
	}

	f.ledger.EnsureMember(ctx.GuildID, ctx.UserID())
	result, err := f.gambling.Slots(ctx.UserID(), bet)
	if errors.Is(err, services.ErrInsufficientFunds) {
		return insufficientFunds(result.NewBalance)
	}
	if err != nil {
		return common.NewSystemError(err, "failed to spin slots")
	}

	return ctx.ReplyEmbed(buildSlotsEmbed(result))
}

func (f *Feature) handleRoulette(ctx *dispatch.Context) error {
	if len(ctx.Args) < 2 {
		return common.NewUserErrorf("Usage: `%sroulette <bet> <amount>`\nBet can be a number (0-36), 'red', 'black', 'even', or 'odd'", ctx.Prefix)
	}

	amount, ok := common.ParsePositiveAmount(ctx.Args[1])
	if !ok {
		return common.NewUserError("Please specify a valid positive bet amount.", "roulette: bad amount")
	}
	if _, ok := services.ParseRouletteBet(ctx.Args[0]); !ok {
		return common.NewUserError("Invalid bet type. Bet must be a number 0-36, 'red', 'black', 'even', or 'odd'.", "roulette: bad bet")
	}

	f.ledger.EnsureMember(ctx.GuildID, ctx.UserID())
	result, err := f.gambling.Roulette(ctx.UserID(), ctx.Args[0], amount)
	if errors.Is(err, services.ErrInsufficientFunds) {
		return insufficientFunds(result.NewBalance)
	}
	if err != nil {
		return common.NewSystemError(err, "failed to spin roulette")
	}

	return ctx.ReplyEmbed(buildRouletteEmbed(result))
}

func (f *Feature) handleBlackjack(ctx *dispatch.Context) error {
	bet, ok := common.ParsePositiveAmount(ctx.Arg(0))
	if !ok {
		return ctx.Usage("blackjack <bet>")
	}

	account := f.ledger.EnsureMember(ctx.GuildID, ctx.UserID())
	hand, err := f.gambling.StartBlackjack(ctx.GuildID, ctx.UserID(), bet)
	switch {
	case errors.Is(err, services.ErrGameInProgress):
		return common.NewUserErrorf("You already have a blackjack game in progress! Use `%shit` or `%sstand`.", ctx.Prefix, ctx.Prefix)
	case errors.Is(err, services.ErrInsufficientFunds):
		return insufficientFunds(account.Balance)
	case err != nil:
		return common.NewSystemError(err, "failed to start blackjack")
	}

	return ctx.ReplyEmbed(buildBlackjackEmbed(hand, ctx.Prefix))
}

func (f *Feature) handleHit(ctx *dispatch.Context) error {
	hand, err := f.gambling.Hit(ctx.UserID())
	if errors.Is(err, services.ErrNoActiveGame) {
		return noActiveGame(ctx)
	}
	if err != nil {
		return common.NewSystemError(err, "failed to hit")
	}
	return ctx.ReplyEmbed(buildBlackjackEmbed(hand, ctx.Prefix))
}

func (f *Feature) handleStand(ctx *dispatch.Context) error {
	hand, err := f.gambling.Stand(ctx.UserID())
	if errors.Is(err, services.ErrNoActiveGame) {
		return noActiveGame(ctx)
	}
	if err != nil {
		return common.NewSystemError(err, "failed to stand")
	}
	return ctx.ReplyEmbed(buildBlackjackEmbed(hand, ctx.Prefix))
}

func insufficientFunds(balance int64) error {
	return common.NewUserErrorf("You only have %s, which is insufficient for this bet.", common.FormatCoins(balance))
}

func noActiveGame(ctx *dispatch.Context) error {
	return common.NewUserErrorf("You don't have an active blackjack game. Start one with `%sblackjack <bet>`.", ctx.Prefix)
}
