package betting

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"coinbot/bot/common"
	"coinbot/domain/entities"
)

func buildSlotsEmbed(r *entities.SlotsResult) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "🎰 Slot Machine",
		Description: fmt.Sprintf("**[ %s | %s | %s ]**", r.Reels[0], r.Reels[1], r.Reels[2]),
	}

	if r.Won() {
		embed.Color = common.ColorSuccess
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("You Won! (%dx)", r.Multiplier),
			Value:  fmt.Sprintf("+%s", common.FormatCoins(r.Payout-r.Bet)),
			Inline: true,
		})
	} else {
		embed.Color = common.ColorDanger
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "You Lost!",
			Value:  fmt.Sprintf("-%s", common.FormatCoins(r.Bet)),
			Inline: true,
		})
	}

	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:   "New Balance",
		Value:  common.FormatCoins(r.NewBalance),
		Inline: true,
	})
	return embed
}

func buildRouletteEmbed(r *entities.RouletteResult) *discordgo.MessageEmbed {
	outcome := &discordgo.MessageEmbedField{Name: "You Lost!", Value: fmt.Sprintf("-%s", common.FormatCoins(r.Bet)), Inline: true}
	color := common.ColorDanger
	if r.Won {
		outcome = &discordgo.MessageEmbedField{Name: "You Won!", Value: fmt.Sprintf("+%s", common.FormatCoins(r.Payout-r.Bet)), Inline: true}
		color = common.ColorSuccess
	}

	return &discordgo.MessageEmbed{
		Title:       "🎡 Roulette",
		Description: fmt.Sprintf("The wheel spun and landed on: **%d** (%s)", r.Number, r.Color),
		Color:       color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Your Bet", Value: r.BetType, Inline: true},
			{Name: "Bet Amount", Value: common.FormatCoins(r.Bet), Inline: true},
			outcome,
			{Name: "New Balance", Value: common.FormatCoins(r.NewBalance)},
		},
	}
}

func formatCards(cards []entities.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

func buildBlackjackEmbed(h *entities.BlackjackHand, prefix string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "🃏 Blackjack",
		Color: common.ColorInfo,
	}

	if !h.IsFinished() {
		// Dealer's hole card stays hidden until the player stands
		embed.Fields = []*discordgo.MessageEmbedField{
			{Name: fmt.Sprintf("Your Hand (%d)", h.PlayerValue()), Value: formatCards(h.Player), Inline: true},
			{Name: "Dealer's Hand", Value: fmt.Sprintf("%s 🂠", h.Dealer[0].String()), Inline: true},
		}
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Bet: %s • %shit or %sstand", common.FormatCoins(h.Bet), prefix, prefix),
		}
		return embed
	}

	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: fmt.Sprintf("Your Hand (%d)", h.PlayerValue()), Value: formatCards(h.Player), Inline: true},
		{Name: fmt.Sprintf("Dealer's Hand (%d)", h.DealerValue()), Value: formatCards(h.Dealer), Inline: true},
	}

	switch h.Outcome {
	case entities.BlackjackNatural:
		embed.Color = common.ColorGold
		embed.Description = fmt.Sprintf("🎉 **Blackjack!** You won %s!", common.FormatCoins(h.Payout-h.Bet))
	case entities.BlackjackPlayerWin:
		embed.Color = common.ColorSuccess
		embed.Description = fmt.Sprintf("✅ **You win!** You won %s!", common.FormatCoins(h.Payout-h.Bet))
	case entities.BlackjackPush:
		embed.Color = common.ColorWarning
		embed.Description = "🤝 **Push!** Your bet has been returned."
	case entities.BlackjackPlayerBust:
		embed.Color = common.ColorDanger
		embed.Description = fmt.Sprintf("💥 **Bust!** You lost %s.", common.FormatCoins(h.Bet))
	default:
		embed.Color = common.ColorDanger
		embed.Description = fmt.Sprintf("❌ **Dealer wins.** You lost %s.", common.FormatCoins(h.Bet))
	}

	embed.Footer = &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("New balance: %s", common.FormatCoins(h.NewBalance)),
	}
	return embed
}
