package settings

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

// handleConfigSet applies one setting and echoes the confirmation
func (f *Feature) handleConfigSet(ctx *dispatch.Context) error {
	confirmation, err := f.configs.Set(ctx.GuildID, ctx.Args)
	if errors.Is(err, services.ErrInvalidConfig) {
		return common.NewUserError(services.ConfigErrorMessage(err), err.Error())
	}
	if err != nil {
		return common.NewSystemError(err, "failed to update guild configuration")
	}
	return ctx.Reply("✅ " + confirmation)
}

func (f *Feature) handleConfigShow(ctx *dispatch.Context) error {
	return ctx.ReplyEmbed(buildConfigEmbed(f.configs.Get(ctx.GuildID)))
}

func buildConfigEmbed(cfg *entities.GuildConfig) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "⚙️ Server Configuration",
		Color: common.ColorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Prefix", Value: fmt.Sprintf("`%s`", cfg.Prefix), Inline: true},
			{Name: "Earn Range", Value: fmt.Sprintf("%d-%d", cfg.EarnRange.Min, cfg.EarnRange.Max), Inline: true},
			{Name: "Daily Bonus", Value: fmt.Sprintf("%d-%d", cfg.DailyBonus.Min, cfg.DailyBonus.Max), Inline: true},
			{
				Name: "Crime",
				Value: fmt.Sprintf("%s success\nReward %d-%d\nFine %d-%d",
					common.FormatPercent(cfg.Crime.SuccessChance),
					cfg.Crime.Reward.Min, cfg.Crime.Reward.Max,
					cfg.Crime.Fine.Min, cfg.Crime.Fine.Max),
				Inline: true,
			},
			{
				Name: "Invest",
				Value: fmt.Sprintf("%s fail\n%.2fx-%.2fx",
					common.FormatPercent(cfg.Invest.FailChance),
					cfg.Invest.Multiplier.Min, cfg.Invest.Multiplier.Max),
				Inline: true,
			},
			{Name: "Bank Interest", Value: common.FormatPercent(cfg.BankInterestRate) + " daily", Inline: true},
			{Name: "Channels", Value: formatChannels(cfg.Channels)},
			{Name: "Roles", Value: fmt.Sprintf("Admin: `%s`\nModerator: `%s`", cfg.Roles.Admin, cfg.Roles.Moderator), Inline: true},
			{Name: "Features", Value: formatFeatures(cfg), Inline: true},
		},
	}
}

func formatChannels(c entities.ChannelBindings) string {
	channel := func(id *string) string {
		if id == nil || *id == "" {
			return "not set"
		}
		return fmt.Sprintf("<#%s>", *id)
	}
	return fmt.Sprintf("Welcome: %s\nLeave: %s\nLogs: %s\nInterest: %s",
		channel(c.Welcome), channel(c.Leave), channel(c.Logs), channel(c.InterestNotification))
}

func formatFeatures(cfg *entities.GuildConfig) string {
	names := append([]string(nil), entities.KnownFeatures...)
	sort.Strings(names)

	lines := make([]string, len(names))
	for i, name := range names {
		mark := "✅"
		if !cfg.IsFeatureEnabled(name) {
			mark = "❌"
		}
		lines[i] = fmt.Sprintf("%s %s", mark, name)
	}
	return strings.Join(lines, "\n")
}
