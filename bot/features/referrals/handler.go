package referrals

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"coinbot/bot/common"
	"coinbot/bot/dispatch"
	"coinbot/domain/entities"
	"coinbot/domain/services"
)

func (f *Feature) handleRegister(ctx *dispatch.Context) error {
	if len(ctx.Args) < 1 {
		return ctx.ReplyEmbed(&discordgo.MessageEmbed{
			Title:       "❌ Missing Invite Code",
			Description: "Please provide an invite URL or code to register.",
			Color:       common.ColorDanger,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "📝 Usage", Value: fmt.Sprintf("`%sreginvurl <invite_url_or_code>`", ctx.Prefix)},
				{Name: "💡 Examples", Value: fmt.Sprintf("`%sreginvurl https://discord.gg/abc123`\n`%sreginvurl abc123`", ctx.Prefix, ctx.Prefix)},
			},
		})
	}

	code, ok := services.ExtractInviteCode(ctx.Args[0])
	if !ok {
		return common.NewUserError("Invalid invite code format! Invite codes should only contain letters and numbers.", "reginvurl: bad code")
	}

	f.ledger.EnsureMember(ctx.GuildID, ctx.UserID())
	err := f.referrals.RegisterInvite(code, ctx.UserID())
	switch {
	case errors.Is(err, services.ErrInviteAlreadyOwned):
		return common.NewUserError("You have already registered this invite code!", "reginvurl: already owned")
	case errors.Is(err, services.ErrInviteOwnedByOther):
		return common.NewUserError("This invite code is already registered by another user!", "reginvurl: owned by other")
	case errors.Is(err, services.ErrInvalidInviteCode):
		return common.NewUserError("Invalid invite code format! Invite codes should only contain letters and numbers.", "reginvurl: bad code")
	case err != nil:
		return common.NewSystemError(err, "failed to register invite")
	}

	return ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "✅ Invite Registered Successfully!",
		Description: "Your invite code has been registered for referral tracking.",
		Color:       common.ColorSuccess,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "🎯 Invite Code", Value: fmt.Sprintf("`%s`", code), Inline: true},
			{Name: "👤 Owner", Value: fmt.Sprintf("<@%s>", ctx.UserID()), Inline: true},
			{Name: "📊 Your Total Invites", Value: fmt.Sprintf("%d", len(f.referrals.InvitesFor(ctx.UserID()))), Inline: true},
			{
				Name: "💰 How Referrals Work",
				Value: fmt.Sprintf("When someone joins with your invite and runs `%sclaiminvite %s`, you earn **%s**!",
					ctx.Prefix, code, common.FormatCoins(f.referrals.Bonus())),
			},
		},
	})
}

func (f *Feature) handleClaim(ctx *dispatch.Context) error {
	if len(ctx.Args) < 1 {
		return ctx.ReplyEmbed(&discordgo.MessageEmbed{
			Title:       "❌ Missing Invite Code",
			Description: "Please provide the invite code you used to join this server.",
			Color:       common.ColorDanger,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "📝 Usage", Value: fmt.Sprintf("`%sclaiminvite <invite_code>`", ctx.Prefix)},
				{Name: "💡 Example", Value: fmt.Sprintf("`%sclaiminvite abc123`", ctx.Prefix)},
			},
		})
	}

	code, ok := services.ExtractInviteCode(ctx.Args[0])
	if !ok {
		code = ctx.Args[0]
	}

	f.ledger.EnsureMember(ctx.GuildID, ctx.UserID())
	result := f.referrals.Claim(code, ctx.UserID())
	if !result.Success {
		return ctx.ReplyEmbed(claimFailureEmbed(result.Reason))
	}

	return ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "🎉 Referral Claimed Successfully!",
		Description: "Thank you for joining through a referral! Your inviter has been rewarded.",
		Color:       common.ColorSuccess,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "💰 Reward Given", Value: fmt.Sprintf("<@%s> received %s", result.InviterID, common.FormatCoins(result.Bonus)), Inline: true},
			{Name: "🎯 Invite Code", Value: fmt.Sprintf("`%s`", code), Inline: true},
		},
	})
}

func claimFailureEmbed(reason entities.ClaimFailureReason) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{Color: common.ColorDanger}
	switch reason {
	case entities.ClaimReasonAlreadyClaimed:
		embed.Title = "❌ Already Claimed"
		embed.Description = "You have already claimed a referral bonus! Each user can only claim one referral reward."
	case entities.ClaimReasonInvalidCode:
		embed.Title = "❌ Invalid Invite Code"
		embed.Description = "This invite code is not registered or does not exist."
	case entities.ClaimReasonSelfReferral:
		embed.Title = "❌ Self-Referral Not Allowed"
		embed.Description = "You cannot refer yourself! Nice try though 😉"
	default:
		embed.Title = "❌ Claim Failed"
		embed.Description = "Unable to process referral claim."
	}
	return embed
}

func (f *Feature) handleMyInvites(ctx *dispatch.Context) error {
	invites := f.referrals.InvitesFor(ctx.UserID())
	if len(invites) == 0 {
		return ctx.Reply(fmt.Sprintf("You have no registered invites. Register one with `%sreginvurl <invite_url_or_code>`.", ctx.Prefix))
	}

	var sb strings.Builder
	var uses int64
	for _, inv := range invites {
		fmt.Fprintf(&sb, "`%s` • %d use(s) • registered %s\n", inv.Code, inv.Uses, common.FormatDiscordTimestamp(inv.RegisteredAt, "d"))
		uses += inv.Uses
	}

	account := f.ledger.EnsureMember(ctx.GuildID, ctx.UserID())
	return ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "🎯 Your Invites",
		Description: strings.TrimSpace(sb.String()),
		Color:       common.ColorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Total Uses", Value: fmt.Sprintf("%d", uses), Inline: true},
			{Name: "Referrals", Value: fmt.Sprintf("%d", account.Referrals), Inline: true},
		},
	})
}
