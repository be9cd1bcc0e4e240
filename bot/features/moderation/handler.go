package moderation

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"coinbot/bot/common"
	"coinbot/bot/dispatch"
	"coinbot/domain/entities"
	"coinbot/domain/services"
)

const maxWarningsShown = 10

func (f *Feature) handleWarn(ctx *dispatch.Context) error {
	if len(ctx.Args) < 1 {
		return common.NewUserError("Please mention a user to warn.", "warn: no target")
	}
	targetID, ok := ctx.TargetUserID(0)
	if !ok {
		return common.NewUserError("Invalid user mention.", "warn: bad target")
	}
	if len(ctx.Mentions) > 0 && ctx.Mentions[0].Bot {
		return common.NewUserError("You cannot warn bots.", "warn: bot target")
	}
	if targetID == ctx.UserID() {
		return common.NewUserError("You cannot warn yourself.", "warn: self")
	}

	reason := strings.Join(ctx.Args[1:], " ")
	warning, total, err := f.moderation.Warn(ctx.GuildID, targetID, ctx.UserID(), reason)
	if err != nil {
		return common.NewSystemError(err, "failed to record warning")
	}

	log.WithFields(log.Fields{
		"guild_id":     ctx.GuildID,
		"user_id":      targetID,
		"moderator_id": ctx.UserID(),
		"warning_id":   warning.ID,
	}).Info("Member warned")

	return ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "⚠️ User Warning",
		Description: fmt.Sprintf("<@%s> has been warned", targetID),
		Color:       common.ColorWarning,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "📋 Reason", Value: warning.Reason},
			{Name: "👮 Moderator", Value: fmt.Sprintf("<@%s>", ctx.UserID()), Inline: true},
			{Name: "📊 Total Warnings", Value: strconv.Itoa(total), Inline: true},
			{Name: "🆔 Warning ID", Value: warning.ID, Inline: true},
		},
	})
}

func (f *Feature) handleRemoveWarn(ctx *dispatch.Context) error {
	if len(ctx.Args) < 2 {
		return common.NewUserErrorf("Please specify a user and warning ID. Usage: `%sremovewarn @user warningID`", ctx.Prefix)
	}
	targetID, ok := ctx.TargetUserID(0)
	if !ok {
		return common.NewUserError("Invalid or missing user mention.", "removewarn: bad target")
	}

	warningID := ctx.Args[1]
	if len(f.moderation.Warnings(ctx.GuildID, targetID)) == 0 {
		return common.NewUserError("This user has no warnings in this server.", "removewarn: none")
	}
	if !f.moderation.RemoveWarning(ctx.GuildID, targetID, ctx.UserID(), warningID) {
		return common.NewUserError("Warning ID not found.", "removewarn: unknown id")
	}

	remaining := len(f.moderation.Warnings(ctx.GuildID, targetID))
	return ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "✅ Warning Removed",
		Description: fmt.Sprintf("Successfully removed warning ID **%s** from <@%s>", warningID, targetID),
		Color:       common.ColorSuccess,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Remaining Warnings", Value: strconv.Itoa(remaining)},
		},
	})
}

func (f *Feature) handleWarnings(ctx *dispatch.Context) error {
	targetID := ctx.UserID()
	if len(ctx.Args) > 0 {
		id, ok := ctx.TargetUserID(0)
		if !ok {
			return common.NewUserError("Please mention a valid user to view warnings for.", "warnings: bad target")
		}
		targetID = id
	}

	warnings := f.moderation.Warnings(ctx.GuildID, targetID)
	if len(warnings) == 0 {
		return ctx.Reply(fmt.Sprintf("✅ <@%s> has no warnings in this server.", targetID))
	}

	embed := &discordgo.MessageEmbed{
		Title:       "⚠️ Warnings",
		Description: fmt.Sprintf("<@%s>\n**Total Warnings:** %d", targetID, len(warnings)),
		Color:       common.ColorWarning,
	}

	// Newest first
	shown := 0
	for i := len(warnings) - 1; i >= 0 && shown < maxWarningsShown; i-- {
		w := warnings[i]
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: fmt.Sprintf("Warning #%d (ID: %s)", i+1, w.ID),
			Value: fmt.Sprintf("**Reason:** %s\n**Moderator:** <@%s>\n**Date:** %s",
				w.Reason, w.ModeratorID, common.FormatDiscordTimestamp(w.CreatedAt, "f")),
		})
		shown++
	}
	if len(warnings) > maxWarningsShown {
		embed.Description += fmt.Sprintf("\n*(Showing %d most recent warnings)*", maxWarningsShown)
	}
	return ctx.ReplyEmbed(embed)
}

func (f *Feature) handleModLogs(ctx *dispatch.Context) error {
	filter, err := parseLogFilter(ctx)
	if err != nil {
		return err
	}

	entries := f.moderation.Logs(ctx.GuildID, filter)
	if len(entries) == 0 {
		return common.NewUserError("No logs found matching the specified criteria.", "modlogs: empty")
	}

	embed := &discordgo.MessageEmbed{
		Title:       "📋 Moderation Logs",
		Description: fmt.Sprintf("Showing %d most recent entries", len(entries)),
		Color:       common.ColorInfo,
	}
	for _, e := range entries {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: fmt.Sprintf("%s %s - Log ID: %s", actionEmoji(e.Action), e.Action, e.ID),
			Value: fmt.Sprintf("**User:** <@%s>\n**Moderator:** <@%s>\n**Reason:** %s\n**Date:** %s",
				e.UserID, e.ModeratorID, common.Truncate(e.Reason, 200), common.FormatDiscordTimestamp(e.CreatedAt, "f")),
		})
	}
	return ctx.ReplyEmbed(embed)
}

// parseLogFilter reads [@user] [action] [limit] in any order
func parseLogFilter(ctx *dispatch.Context) (entities.ModLogFilter, error) {
	var filter entities.ModLogFilter
	for _, arg := range ctx.Args {
		if id, ok := common.ParseUserMention(arg); ok && strings.HasPrefix(arg, "<@") {
			filter.UserID = id
			continue
		}
		if action, ok := entities.ParseModAction(strings.ToUpper(arg)); ok {
			filter.Action = action
			continue
		}
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 || n > common.MaxModLogLimit {
			return filter, common.NewUserErrorf("Limit must be a number between 1 and %d.", common.MaxModLogLimit)
		}
		filter.Limit = n
	}
	return filter, nil
}

func actionEmoji(action entities.ModAction) string {
	switch action {
	case entities.ModActionWarning:
		return "⚠️"
	case entities.ModActionBan, entities.ModActionAutoBan:
		return "🔨"
	case entities.ModActionKick:
		return "👢"
	case entities.ModActionMute:
		return "🔇"
	case entities.ModActionUnmute:
		return "🔊"
	case entities.ModActionWarningRemoved:
		return "✅"
	}
	return "📝"
}

func (f *Feature) handleModStats(ctx *dispatch.Context) error {
	days := services.DefaultModStatsWindow
	if len(ctx.Args) > 0 {
		n, err := strconv.Atoi(ctx.Args[0])
		if err != nil || n < 1 || n > 365 {
			return common.NewUserError("Days must be a number between 1 and 365.", "modstats: bad days")
		}
		days = n
	}

	stats := f.moderation.Stats(ctx.GuildID, days)
	return ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "📊 Moderation Statistics",
		Description: fmt.Sprintf("Server moderation activity for the last %d days", stats.Days),
		Color:       common.ColorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "📝 Total Actions", Value: strconv.Itoa(stats.Total), Inline: true},
			{Name: "⚠️ Warnings", Value: strconv.Itoa(stats.Warnings), Inline: true},
			{Name: "🔨 Bans", Value: strconv.Itoa(stats.Bans), Inline: true},
			{Name: "👢 Kicks", Value: strconv.Itoa(stats.Kicks), Inline: true},
			{Name: "🔇 Mutes", Value: strconv.Itoa(stats.Mutes), Inline: true},
			{Name: "👥 Unique Users", Value: strconv.Itoa(stats.UniqueUsers), Inline: true},
			{Name: "📈 Avg. Actions/Day", Value: fmt.Sprintf("%.1f", float64(stats.Total)/float64(stats.Days)), Inline: true},
		},
	})
}

func (f *Feature) handleExportLogs(ctx *dispatch.Context) error {
	var buf bytes.Buffer
	n, err := f.moderation.ExportCSV(ctx.GuildID, &buf)
	if err != nil {
		return common.NewSystemError(err, "failed to export moderation logs")
	}
	if n == 0 {
		return common.NewUserError("No moderation logs found for this server.", "exportlogs: empty")
	}

	filename := fmt.Sprintf("modlogs-%s-%s.csv", ctx.GuildID, time.Now().UTC().Format("20060102"))
	return ctx.ReplyFile(filename, &buf, fmt.Sprintf("📊 Exported %d moderation log entries", n))
}

func (f *Feature) handleCleanWarnings(ctx *dispatch.Context) error {
	days := services.DefaultWarningMaxAge
	if len(ctx.Args) > 0 {
		n, err := strconv.Atoi(ctx.Args[0])
		if err != nil || n < 1 || n > 365 {
			return common.NewUserError("Days must be a number between 1 and 365.", "cleanwarnings: bad days")
		}
		days = n
	}

	removed, err := f.moderation.CleanWarnings(ctx.GuildID, days)
	if err != nil {
		return common.NewSystemError(err, "failed to clean warnings")
	}

	return ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "🧹 Warning Cleanup Complete",
		Description: fmt.Sprintf("Cleaned warnings older than %d days", days),
		Color:       common.ColorSuccess,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Warnings Removed", Value: strconv.Itoa(removed), Inline: true},
		},
	})
}
