package stats

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"coinbot/bot/common"
	"coinbot/domain/entities"
	"coinbot/domain/services"
)

// getMedalForRank returns the appropriate medal emoji or rank number
func getMedalForRank(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return fmt.Sprintf("%d.", rank)
	}
}

func formatMetricValue(metric string, value int64) string {
	if metric == services.MetricReferrals {
		return fmt.Sprintf("%d", value)
	}
	return common.FormatBalanceCompact(value)
}

func buildStatsEmbed(stats *entities.EconomyStats, top []*entities.LeaderboardEntry, metric string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "📊 Economy Statistics",
		Color: common.ColorPrimary,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "👥 Members", Value: fmt.Sprintf("%d", stats.Users), Inline: true},
			{Name: "💰 Wallets", Value: common.FormatBalanceCompact(stats.TotalBalance), Inline: true},
			{Name: "🏦 Banks", Value: common.FormatBalanceCompact(stats.TotalBank), Inline: true},
			{Name: "📈 Total Earned", Value: common.FormatBalanceCompact(stats.TotalEarned), Inline: true},
			{Name: "⚖️ Average Wallet", Value: common.FormatBalance(stats.AverageBalance), Inline: true},
			{Name: "🤝 Referrals", Value: fmt.Sprintf("%d", stats.TotalReferrals), Inline: true},
			{
				Name:   "🎯 Invites",
				Value:  fmt.Sprintf("%d registered • %d claimed (%d%%)", stats.TotalInvites, stats.TotalClaimed, stats.ClaimRate),
				Inline: true,
			},
			{
				Name:   "🏪 Marketplace",
				Value:  fmt.Sprintf("%d listings worth %s", stats.TotalListings, common.FormatBalanceCompact(stats.ListingsValue)),
				Inline: true,
			},
		},
	}

	if len(top) > 0 {
		var sb strings.Builder
		for _, e := range top {
			fmt.Fprintf(&sb, "%s <@%s> • %s\n", getMedalForRank(e.Rank), e.UserID, formatMetricValue(metric, e.Value))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("🏆 Top by %s", metrics[metric]),
			Value: strings.TrimSpace(sb.String()),
		})
	}
	return embed
}
