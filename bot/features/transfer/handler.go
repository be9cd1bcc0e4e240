package transfer

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"coinbot/bot/common"
	"coinbot/bot/dispatch"
	"coinbot/domain/services"
)

func (f *Feature) handleGive(ctx *dispatch.Context) error {
	if len(ctx.Args) < 2 {
		return common.NewUserErrorf("Usage: `%sgive @user <amount>`\nExample: `%sgive @john 100`", ctx.Prefix, ctx.Prefix)
	}

	recipientID, ok := ctx.TargetUserID(0)
	if !ok {
		return common.NewUserError("Please mention a user to give coins to!", "give: no target")
	}
	if recipientID == ctx.UserID() {
		return common.NewUserError("You cannot give coins to yourself!", "give: self transfer")
	}
	if len(ctx.Mentions) > 0 && ctx.Mentions[0].Bot {
		return common.NewUserError("You cannot give coins to bots!", "give: bot target")
	}

	amount, ok := common.ParsePositiveAmount(ctx.Args[1])
	if !ok {
		return common.NewUserError("Please provide a valid positive amount!", "give: bad amount")
	}

	sender := f.ledger.EnsureMember(ctx.GuildID, ctx.UserID())
	f.ledger.EnsureMember(ctx.GuildID, recipientID)

	moved, err := f.ledger.Transfer(ctx.UserID(), recipientID, amount)
	if err != nil {
		if errors.Is(err, services.ErrSelfTransfer) || errors.Is(err, services.ErrInvalidAmount) {
			return common.NewUserError(err.Error(), "give rejected")
		}
		return common.NewSystemError(err, "failed to transfer coins")
	}
	if !moved {
		return ctx.ReplyEmbed(&discordgo.MessageEmbed{
			Title: "❌ Insufficient Funds",
			Description: fmt.Sprintf("You only have %s!\nYou need %s to complete this transfer.",
				common.FormatCoins(sender.Balance), common.FormatCoins(amount)),
			Color: common.ColorDanger,
			Footer: &discordgo.MessageEmbedFooter{
				Text: fmt.Sprintf("Use %searn to earn more coins!", ctx.Prefix),
			},
		})
	}

	newSender, _ := f.ledger.GetAccount(ctx.UserID())
	newReceiver, _ := f.ledger.GetAccount(recipientID)

	log.WithFields(log.Fields{
		"from_user": ctx.UserID(),
		"to_user":   recipientID,
		"amount":    amount,
	}).Info("Coins transferred")

	return ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "💸 Transfer Successful!",
		Description: fmt.Sprintf("<@%s> gave %s to <@%s>", ctx.UserID(), common.FormatCoins(amount), recipientID),
		Color:       common.ColorSuccess,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "👤 Sender", Value: fmt.Sprintf("<@%s>\n💰 %s", ctx.UserID(), common.FormatCoins(newSender.Balance)), Inline: true},
			{Name: "👤 Receiver", Value: fmt.Sprintf("<@%s>\n💰 %s", recipientID, common.FormatCoins(newReceiver.Balance)), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Thank you for your generosity!"},
	})
}
