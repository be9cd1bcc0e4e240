package balance

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"coinbot/bot/common"
	"coinbot/bot/dispatch"
	"coinbot/domain/entities"
)

func (f *Feature) handleBalance(ctx *dispatch.Context) error {
	targetID := ctx.UserID()
	if len(ctx.Args) > 0 {
		id, ok := ctx.TargetUserID(0)
		if !ok {
			return common.NewUserError("Please mention a valid user.", "balance: bad target")
		}
		targetID = id
	}

	account := f.ledger.EnsureMember(ctx.GuildID, targetID)
	return ctx.ReplyEmbed(buildBalanceEmbed(account, targetID == ctx.UserID(), ctx.Prefix))
}

func (f *Feature) handleLeaderboard(ctx *dispatch.Context) error {
	page := common.ParsePage(ctx.Args, 0)
	entries, totalPages := f.ledger.Leaderboard(ctx.GuildID, page, common.LeaderboardPageSize)

	if totalPages > 0 && page > totalPages {
		return common.NewUserErrorf("Page %d does not exist! There are only %d pages.", page, totalPages)
	}

	return ctx.ReplyEmbed(buildLeaderboardEmbed(entries, page, totalPages, ctx.Prefix))
}

func (f *Feature) handleDeposit(ctx *dispatch.Context) error {
	if len(ctx.Args) != 1 {
		return ctx.Usage("deposit <amount>")
	}

	account := f.ledger.EnsureMember(ctx.GuildID, ctx.UserID())
	amount, ok := common.ParseAmountOrAll(ctx.Args[0], account.Balance)
	if !ok {
		return common.NewUserError("Please specify a valid positive amount to deposit.", "deposit: bad amount")
	}

	result := f.bank.Deposit(ctx.UserID(), amount)
	if !result.Success {
		return common.NewUserError(result.Message, "deposit rejected")
	}

	log.WithFields(log.Fields{
		"user_id": ctx.UserID(),
		"amount":  amount,
	}).Debug("Deposit completed")

	return ctx.ReplyEmbed(buildBankEmbed("Deposit Successful", fmt.Sprintf("You deposited **%s** to your bank.", common.FormatCoins(amount)), result))
}

func (f *Feature) handleWithdraw(ctx *dispatch.Context) error {
	if len(ctx.Args) != 1 {
		return ctx.Usage("withdraw <amount>")
	}

	account := f.ledger.EnsureMember(ctx.GuildID, ctx.UserID())
	amount, ok := common.ParseAmountOrAll(ctx.Args[0], account.BankBalance)
	if !ok {
		return common.NewUserError("Please specify a valid positive amount to withdraw.", "withdraw: bad amount")
	}

	result := f.bank.Withdraw(ctx.UserID(), amount)
	if !result.Success {
		return common.NewUserError(result.Message, "withdraw rejected")
	}

	return ctx.ReplyEmbed(buildBankEmbed("Withdrawal Successful", fmt.Sprintf("You withdrew **%s** from your bank.", common.FormatCoins(amount)), result))
}

func buildBalanceEmbed(account *entities.UserAccount, own bool, prefix string) *discordgo.MessageEmbed {
	title := "💰 Your Balance"
	if !own {
		title = fmt.Sprintf("💰 Balance of <@%s>", account.UserID)
	}

	embed := &discordgo.MessageEmbed{
		Title: title,
		Color: common.ColorSuccess,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "👛 Wallet", Value: common.FormatCoins(account.Balance), Inline: true},
			{Name: "🏦 Bank", Value: common.FormatCoins(account.BankBalance), Inline: true},
			{Name: "📈 Total Earned", Value: common.FormatCoins(account.TotalEarned), Inline: true},
			{Name: "🎯 Referrals", Value: fmt.Sprintf("%d users", account.Referrals), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Use %searn to earn more coins!", prefix),
		},
	}

	if own && !account.LastEarn.IsZero() {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "⏰ Last Earn",
			Value:  common.FormatDiscordTimestamp(account.LastEarn, "R"),
			Inline: true,
		})
	}
	return embed
}

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
		return fmt.Sprintf("**%d.**", rank)
	}
}

func buildLeaderboardEmbed(entries []*entities.LeaderboardEntry, page, totalPages int, prefix string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "🏆 Economy Leaderboard",
		Color: common.ColorGold,
	}

	if len(entries) == 0 {
		embed.Description = fmt.Sprintf("No users found! Start earning coins with `%searn` to appear on the leaderboard.", prefix)
		return embed
	}

	var sb strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&sb, "%s <@%s>\n💰 %s\n\n", getMedalForRank(e.Rank), e.UserID, common.FormatCoins(e.Balance))
	}
	embed.Description = strings.TrimSpace(sb.String())
	embed.Footer = &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("Page %d of %d", page, totalPages),
	}

	if totalPages > 1 {
		nav := fmt.Sprintf("Use `%sleaderboard <page>` to view other pages.", prefix)
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "📄 Navigation", Value: nav})
	}
	return embed
}

func buildBankEmbed(title, description string, result *entities.BankResult) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       common.ColorSuccess,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "👛 Wallet", Value: common.FormatCoins(result.NewWallet), Inline: true},
			{Name: "🏦 Bank", Value: common.FormatCoins(result.NewBank), Inline: true},
		},
	}
}
