package earnings

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"coinbot/bot/common"
	"coinbot/bot/dispatch"
	"coinbot/domain/services"
)

func (f *Feature) handleEarn(ctx *dispatch.Context) error {
	f.ledger.EnsureMember(ctx.GuildID, ctx.UserID())

	out, err := f.economy.Earn(ctx.GuildID, ctx.UserID())
	if errors.Is(err, services.ErrOnCooldown) {
		return common.NewUserErrorf("You can earn again in %s.", common.FormatWait(out.Remaining))
	}
	if err != nil {
		return common.NewSystemError(err, "failed to earn coins")
	}

	return ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "💰 Coins Earned!",
		Description: fmt.Sprintf("You worked hard and earned %s!", common.FormatCoins(out.Amount)),
		Color:       common.ColorGold,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "💎 Amount Earned", Value: common.FormatCoins(out.Amount), Inline: true},
			{Name: "🏦 New Balance", Value: common.FormatCoins(out.NewBalance), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Next earn available in 1 hour"},
	})
}

func (f *Feature) handleDaily(ctx *dispatch.Context) error {
	f.ledger.EnsureMember(ctx.GuildID, ctx.UserID())

	out, err := f.economy.Daily(ctx.GuildID, ctx.UserID())
	if errors.Is(err, services.ErrOnCooldown) {
		return ctx.Reply(fmt.Sprintf("🕒 You have already claimed your daily bonus. Next claim available in %s.", common.FormatWait(out.Remaining)))
	}
	if err != nil {
		return common.NewSystemError(err, "failed to claim daily bonus")
	}

	return ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "🎁 Daily Bonus Claimed!",
		Description: fmt.Sprintf("You earned **%s** coins today!", common.FormatBalance(out.Amount)),
		Color:       common.ColorSuccess,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "🏦 New Balance", Value: common.FormatCoins(out.NewBalance), Inline: true},
			{Name: "🔥 Streak", Value: fmt.Sprintf("%d day(s)", out.Streak), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Come back tomorrow for your next bonus!"},
	})
}

func (f *Feature) handleWeekly(ctx *dispatch.Context) error {
	f.ledger.EnsureMember(ctx.GuildID, ctx.UserID())

	out, err := f.economy.Weekly(ctx.GuildID, ctx.UserID())
	if errors.Is(err, services.ErrOnCooldown) {
		days := out.Remaining / 86400
		return ctx.Reply(fmt.Sprintf("🕒 You have already claimed your weekly bonus. Next claim available in %dd %s.", days, common.FormatWait(out.Remaining%86400)))
	}
	if err != nil {
		return common.NewSystemError(err, "failed to claim weekly bonus")
	}

	return ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "🎉 Weekly Bonus Claimed!",
		Description: fmt.Sprintf("You earned **%s** coins this week!", common.FormatBalance(out.Amount)),
		Color:       common.ColorSuccess,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "🏦 New Balance", Value: common.FormatCoins(out.NewBalance), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Come back next week for your next bonus!"},
	})
}

func (f *Feature) handleCrime(ctx *dispatch.Context) error {
	f.ledger.EnsureMember(ctx.GuildID, ctx.UserID())

	out, err := f.economy.Crime(ctx.GuildID, ctx.UserID())
	if err != nil {
		return common.NewSystemError(err, "failed to resolve crime")
	}

	var msg string
	if out.Success {
		msg = fmt.Sprintf("💰 **Crime successful!** You pulled it off and earned **%s** coins!", common.FormatBalance(out.Amount))
	} else {
		msg = fmt.Sprintf("🚨 **You got caught!** You paid a fine of **%s** coins.", common.FormatBalance(out.Amount))
	}
	msg += fmt.Sprintf("\n💳 **New balance:** %s coins", common.FormatBalance(out.NewBalance))
	return ctx.Reply(msg)
}

func (f *Feature) handleInvest(ctx *dispatch.Context) error {
	amount, ok := common.ParsePositiveAmount(ctx.Arg(0))
	if !ok {
		return common.NewUserErrorf("You must specify a positive amount to invest!\nUsage: `%sinvest <amount>`", ctx.Prefix)
	}

	f.ledger.EnsureMember(ctx.GuildID, ctx.UserID())

	out, err := f.economy.Invest(ctx.GuildID, ctx.UserID(), amount)
	switch {
	case errors.Is(err, services.ErrMinimumInvestment):
		return common.NewUserErrorf("Minimum investment is **%d coins**.", services.MinimumInvestment)
	case errors.Is(err, services.ErrInsufficientFunds):
		return common.NewUserErrorf("You don't have enough coins! You have **%s** coins but tried to invest **%s**.",
			common.FormatBalance(out.NewBalance), common.FormatBalance(amount))
	case err != nil:
		return common.NewSystemError(err, "failed to invest")
	}

	var msg string
	switch {
	case out.Amount >= 0:
		msg = fmt.Sprintf("📈 **Investment succeeded!** Your %s coin stake returned a profit of **+%s** coins!",
			common.FormatBalance(amount), common.FormatBalance(out.Amount))
	case out.Success:
		msg = fmt.Sprintf("📉 **Investment underperformed.** Your %s coin stake came back short by **%s** coins.",
			common.FormatBalance(amount), common.FormatBalance(-out.Amount))
	default:
		msg = fmt.Sprintf("📉 **Investment failed!** The market turned and you lost **%s** coins.",
			common.FormatBalance(-out.Amount))
	}
	msg += fmt.Sprintf("\n💳 **New balance:** %s coins", common.FormatBalance(out.NewBalance))
	return ctx.Reply(msg)
}
