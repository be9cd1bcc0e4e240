package utility

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"coinbot/bot/common"
	"coinbot/bot/dispatch"
)

func (f *Feature) handleHelp(ctx *dispatch.Context) error {
	if len(ctx.Args) > 0 {
		name := strings.TrimPrefix(strings.Join(ctx.Args, " "), ctx.Prefix)
		cmd, ok := f.registry.Lookup(name)
		if !ok {
			return common.NewUserErrorf("Unknown command `%s`. Use `%shelp` to list commands.", name, ctx.Prefix)
		}
		return ctx.ReplyEmbed(buildCommandEmbed(cmd, ctx.Prefix))
	}
	return ctx.ReplyEmbed(buildHelpEmbed(f.registry.Commands(), ctx.Prefix))
}

func buildHelpEmbed(cmds []*dispatch.Command, prefix string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "📖 Commands",
		Description: fmt.Sprintf("Use `%shelp <command>` for details.", prefix),
		Color:       common.ColorPrimary,
	}

	// Commands() is sorted by category so groups are contiguous
	var category string
	var names []string
	flush := func() {
		if len(names) > 0 {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:  category,
				Value: strings.Join(names, " "),
			})
		}
	}
	for _, cmd := range cmds {
		if cmd.Category != category {
			flush()
			category = cmd.Category
			names = nil
		}
		names = append(names, fmt.Sprintf("`%s`", cmd.Name))
	}
	flush()
	return embed
}

func buildCommandEmbed(cmd *dispatch.Command, prefix string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       prefix + cmd.Name,
		Description: cmd.Description,
		Color:       common.ColorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Usage", Value: fmt.Sprintf("`%s%s`", prefix, cmd.Usage)},
		},
	}
	if len(cmd.Aliases) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Aliases", Value: strings.Join(cmd.Aliases, ", "), Inline: true})
	}
	if cmd.Cooldown > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Cooldown", Value: common.FormatDuration(cmd.Cooldown), Inline: true})
	}
	return embed
}

func (f *Feature) handlePing(ctx *dispatch.Context) error {
	return ctx.Reply("🏓 Pong!")
}
