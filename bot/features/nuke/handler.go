package nuke

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"coinbot/bot/common"
	"coinbot/bot/dispatch"
	"coinbot/domain/entities"
	"coinbot/domain/services"
)

func (f *Feature) handleNuke(ctx *dispatch.Context) error {
	deadline, err := f.nukes.Request(ctx.GuildID, ctx.UserID())
	if errors.Is(err, services.ErrNukeAlreadyPending) {
		return ctx.Reply(fmt.Sprintf("A nuke is already pending. Use `%slaunch` to execute or `%sabort` to cancel.", ctx.Prefix, ctx.Prefix))
	}
	if err != nil {
		return common.NewSystemError(err, "failed to request nuke")
	}

	return ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title: "🚨 Economy Nuke Initiated",
		Description: strings.Join([]string{
			"This will permanently wipe **all user balances**, **bank**, **inventories**, **store items**, and **market listings** for this server.",
			"⚠️ **This action is irreversible once confirmed!**",
			"",
			fmt.Sprintf("Requested by: <@%s>", ctx.UserID()),
			"",
			fmt.Sprintf("To **confirm**, run `%slaunch` %s.", ctx.Prefix, common.FormatDiscordTimestamp(deadline, "R")),
			fmt.Sprintf("To **cancel**, run `%sabort`.", ctx.Prefix),
		}, "\n"),
		Color: common.ColorDanger,
	})
}

func (f *Feature) handleLaunch(ctx *dispatch.Context) error {
	result, err := f.nukes.Confirm(ctx.GuildID, ctx.UserID())
	switch {
	case errors.Is(err, services.ErrNoPendingNuke):
		return ctx.Reply("No economy nuke is pending.")
	case errors.Is(err, services.ErrNotNukeInitiator):
		return ctx.Reply("Only the user who initiated the nuke can confirm it.")
	case err != nil:
		return common.NewSystemError(err, "failed to execute nuke")
	}

	return ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "💣 Economy Nuked",
		Description: "All balances, bank funds, inventories, and marketplace listings have been wiped for this server.",
		Color:       common.ColorDanger,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Accounts Reset", Value: fmt.Sprintf("%d", result.AccountsReset), Inline: true},
			{Name: "Listings Removed", Value: fmt.Sprintf("%d", result.ListingsRemoved), Inline: true},
			{Name: "Store Items Removed", Value: fmt.Sprintf("%d", result.ItemsRemoved), Inline: true},
		},
	})
}

func (f *Feature) handleAbort(ctx *dispatch.Context) error {
	err := f.nukes.Cancel(ctx.GuildID, ctx.UserID())
	switch {
	case errors.Is(err, services.ErrNoPendingNuke):
		return ctx.Reply("No economy nuke is pending.")
	case errors.Is(err, services.ErrNotNukeInitiator):
		return ctx.Reply("Only the user who initiated the nuke can abort it.")
	case err != nil:
		return common.NewSystemError(err, "failed to abort nuke")
	}

	return ctx.ReplyEmbed(AbortedEmbed("The pending economy wipe has been canceled."))
}

// AbortedEmbed is shared with the timeout announcement
func AbortedEmbed(description string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🛑 Nuke Aborted",
		Description: description,
		Color:       common.ColorWarning,
	}
}

// ExpiredMessage describes an automatic abort after the confirmation window
func ExpiredMessage(p entities.PendingNuke, timeout time.Duration) string {
	return fmt.Sprintf("The economy wipe requested by <@%s> was not confirmed within %s and has been canceled.",
		p.InitiatorID, common.FormatDuration(timeout))
}
