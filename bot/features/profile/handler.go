package profile

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"

	"coinbot/bot/common"
	"coinbot/bot/dispatch"
	"coinbot/domain/entities"
	"coinbot/domain/services"
)

var badgeEmojis = map[string]string{
	"first-referral":   "🎖️",
	"crime-master":     "🕵️",
	"investor":         "💼",
	"3-day-streak":     "🔥",
	"7-day-streak":     "🏆",
	"store-champion":   "🛒",
	"gambling-addict":  "🎲",
	"community-helper": "🤝",
	"early-adopter":    "⭐",
}

func (f *Feature) handleProfile(ctx *dispatch.Context) error {
	targetID := ctx.UserID()
	if len(ctx.Args) > 0 {
		id, ok := ctx.TargetUserID(0)
		if !ok {
			return common.NewUserError("Please mention a valid user.", "profile: bad target")
		}
		targetID = id
	}

	f.ledger.EnsureMember(ctx.GuildID, targetID)
	return ctx.ReplyEmbed(buildProfileEmbed(f.profiles.Profile(targetID)))
}

func buildProfileEmbed(account *entities.UserAccount) *discordgo.MessageEmbed {
	bio := account.Bio
	if bio == "" {
		bio = "No bio set."
	}

	embed := &discordgo.MessageEmbed{
		Title:       "👤 Profile",
		Description: fmt.Sprintf("<@%s>\n%s", account.UserID, bio),
		Color:       common.ColorPrimary,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "💰 Balance", Value: common.FormatBalance(account.Balance), Inline: true},
			{Name: "🔄 Total Earned", Value: common.FormatBalance(account.TotalEarned), Inline: true},
			{Name: "👥 Referrals", Value: fmt.Sprintf("%d", account.Referrals), Inline: true},
			{Name: "🔥 Daily Streak", Value: fmt.Sprintf("%d days", account.DailyStreak), Inline: true},
		},
	}

	if len(account.Links) > 0 {
		platforms := make([]string, 0, len(account.Links))
		for p := range account.Links {
			platforms = append(platforms, p)
		}
		sort.Strings(platforms)

		links := make([]string, len(platforms))
		for i, p := range platforms {
			links[i] = fmt.Sprintf("[%s](%s)", p, account.Links[p])
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "🔗 Links", Value: strings.Join(links, " • ")})
	}

	if len(account.Badges) > 0 {
		badges := make([]string, len(account.Badges))
		for i, b := range account.Badges {
			if emoji, ok := badgeEmojis[b]; ok {
				badges[i] = emoji
			} else {
				badges[i] = b
			}
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "🏷️ Badges", Value: strings.Join(badges, " ")})
	}
	return embed
}

func (f *Feature) handleSetBio(ctx *dispatch.Context) error {
	bio := strings.Join(ctx.Args, " ")
	if bio == "" {
		return ctx.Usage("profile setbio <text>")
	}

	if err := f.profiles.SetBio(ctx.UserID(), bio); err != nil {
		return profileError(err)
	}
	return ctx.Reply("✅ Your bio has been updated!")
}

func (f *Feature) handleAddLink(ctx *dispatch.Context) error {
	if len(ctx.Args) < 2 {
		return common.NewUserErrorf("Usage: `%sprofile addlink <platform> <url>`\nSupported platforms: %s",
			ctx.Prefix, strings.Join(services.LinkPlatforms, ", "))
	}

	platform := strings.ToLower(ctx.Args[0])
	if err := f.profiles.AddLink(ctx.UserID(), platform, ctx.Args[1]); err != nil {
		return profileError(err)
	}
	return ctx.Reply(fmt.Sprintf("✅ Added %s link to your profile!", platform))
}

func (f *Feature) handleRemoveLink(ctx *dispatch.Context) error {
	if len(ctx.Args) < 1 {
		return ctx.Usage("profile removelink <platform>")
	}

	platform := strings.ToLower(ctx.Args[0])
	if !f.profiles.RemoveLink(ctx.UserID(), platform) {
		return common.NewUserErrorf("You don't have a %s link on your profile.", platform)
	}
	return ctx.Reply(fmt.Sprintf("✅ Removed %s link from your profile.", platform))
}

func (f *Feature) handleGrant(ctx *dispatch.Context) error {
	targetID, badge, err := badgeArgs(ctx, "grant")
	if err != nil {
		return err
	}
	if err := f.profiles.GrantBadge(targetID, badge); err != nil {
		return profileError(err)
	}
	return ctx.Reply(fmt.Sprintf("✅ Granted badge \"%s\" to <@%s>!", badge, targetID))
}

func (f *Feature) handleRevoke(ctx *dispatch.Context) error {
	targetID, badge, err := badgeArgs(ctx, "revoke")
	if err != nil {
		return err
	}
	if err := f.profiles.RevokeBadge(targetID, badge); err != nil {
		return profileError(err)
	}
	return ctx.Reply(fmt.Sprintf("✅ Revoked badge \"%s\" from <@%s>!", badge, targetID))
}

func badgeArgs(ctx *dispatch.Context, action string) (string, string, error) {
	if len(ctx.Args) < 2 {
		return "", "", common.NewUserErrorf("Usage: `%sprofile %s <@user> <badgeId>`\nAvailable badges: %s",
			ctx.Prefix, action, strings.Join(services.Badges, ", "))
	}
	targetID, ok := ctx.TargetUserID(0)
	if !ok {
		return "", "", common.NewUserError("Please mention a valid user.", "badge: bad target")
	}
	return targetID, strings.ToLower(ctx.Args[1]), nil
}

// profileError turns a validation failure into a user-facing message
func profileError(err error) error {
	switch {
	case errors.Is(err, services.ErrUnknownBadge):
		return common.NewUserErrorf("Invalid badge ID. Available badges: %s", strings.Join(services.Badges, ", "))
	case errors.Is(err, services.ErrInvalidProfile):
		msg := strings.TrimPrefix(err.Error(), services.ErrInvalidProfile.Error()+": ")
		return common.NewUserError(capitalize(msg)+".", err.Error())
	}
	return common.NewSystemError(err, "failed to update profile")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
