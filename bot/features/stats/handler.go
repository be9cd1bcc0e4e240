package stats

import (
	"strings"

	"coinbot/bot/common"
	"coinbot/bot/dispatch"
	"coinbot/domain/services"
)

const topUsersLimit = 5

var metrics = map[string]string{
	services.MetricBalance:     "Wallet",
	services.MetricBank:        "Bank",
	services.MetricTotalEarned: "Total Earned",
	services.MetricReferrals:   "Referrals",
	services.MetricNetWorth:    "Net Worth",
}

func (f *Feature) handleStats(ctx *dispatch.Context) error {
	metric := services.MetricNetWorth
	if len(ctx.Args) > 0 {
		metric = strings.ToLower(ctx.Args[0])
		if _, ok := metrics[metric]; !ok {
			return common.NewUserErrorf("Unknown metric `%s`. Choose one of: balance, bank, earned, referrals, networth.", metric)
		}
	}

	stats := f.statistics.Statistics(ctx.GuildID)
	top := f.statistics.TopUsers(ctx.GuildID, metric, topUsersLimit)
	return ctx.ReplyEmbed(buildStatsEmbed(stats, top, metric))
}
