package shop

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

func (f *Feature) handleStore(ctx *dispatch.Context) error {
	items := f.catalog.Items(ctx.GuildID)

	embed := &discordgo.MessageEmbed{
		Title:       "Server Store",
		Description: "Available items:",
		Color:       common.ColorPrimary,
	}
	for _, item := range items {
		if !item.IsPurchasable() {
			continue
		}
		value := common.FormatCoins(item.Price)
		if item.Description != "" {
			value = item.Description + "\n" + value
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s • Key: %s", item.DisplayName(), item.Key),
			Value: value,
		})
	}

	if len(embed.Fields) == 0 {
		return ctx.Reply("No items available in the store.")
	}
	embed.Footer = &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Buy with %sstorebuy <item key> [quantity]", ctx.Prefix)}
	return ctx.ReplyEmbed(embed)
}

func (f *Feature) handleStoreBuy(ctx *dispatch.Context) error {
	if len(ctx.Args) < 1 {
		return ctx.Usage("storebuy <item key> [quantity]")
	}

	qty := int64(1)
	if len(ctx.Args) > 1 {
		n, ok := common.ParsePositiveAmount(ctx.Args[1])
		if !ok {
			return common.NewUserError("Quantity must be a positive number.", "storebuy: bad quantity")
		}
		qty = n
	}

	f.ledger.EnsureMember(ctx.GuildID, ctx.UserID())
	result := f.catalog.Buy(ctx.GuildID, ctx.UserID(), ctx.Args[0], qty)
	if !result.Success {
		return common.NewUserError(result.Message, "storebuy rejected")
	}

	return ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "🛒 Purchase Successful!",
		Description: fmt.Sprintf("You bought **%dx %s** for **%s**.", result.Quantity, result.Item.DisplayName(), common.FormatCoins(result.TotalCost)),
		Color:       common.ColorSuccess,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "💰 Remaining Balance", Value: common.FormatCoins(result.NewBalance), Inline: true},
			{Name: "📦 Item Added", Value: fmt.Sprintf("%d x %s", result.Quantity, result.Item.Name), Inline: true},
		},
	})
}

func (f *Feature) handleStoreAdd(ctx *dispatch.Context) error {
	if len(ctx.Args) < 2 {
		return ctx.Usage("storeadd <name> <price> [description]")
	}

	price, ok := common.ParsePositiveAmount(ctx.Args[1])
	if !ok {
		return common.NewUserError("Price must be a positive number.", "storeadd: bad price")
	}

	name := ctx.Args[0]
	item, err := f.catalog.AddItem(ctx.GuildID, &entities.CatalogItem{
		Key:         name,
		Name:        name,
		Description: strings.Join(ctx.Args[2:], " "),
		Price:       price,
	})
	switch {
	case errors.Is(err, services.ErrGlobalItem):
		return common.NewUserErrorf("\"%s\" is a built-in item and cannot be replaced.", name)
	case errors.Is(err, services.ErrInvalidItem):
		return common.NewUserError(err.Error(), "storeadd: invalid item")
	case err != nil:
		return common.NewSystemError(err, "failed to add store item")
	}

	return ctx.Reply(fmt.Sprintf("✅ Added item \"%s\" to the store for %s.", item.Name, common.FormatCoins(item.Price)))
}

func (f *Feature) handleStoreRemove(ctx *dispatch.Context) error {
	if len(ctx.Args) < 1 {
		return ctx.Usage("storeremove <name>")
	}

	name := ctx.Args[0]
	err := f.catalog.RemoveItem(ctx.GuildID, name)
	switch {
	case errors.Is(err, services.ErrItemNotFound):
		return common.NewUserError("That item was not found in the store.", "storeremove: not found")
	case errors.Is(err, services.ErrGlobalItem):
		return common.NewUserErrorf("\"%s\" is a built-in item and cannot be removed.", name)
	case err != nil:
		return common.NewSystemError(err, "failed to remove store item")
	}

	return ctx.Reply(fmt.Sprintf("✅ Removed item \"%s\" from the store.", name))
}

func (f *Feature) handleInventory(ctx *dispatch.Context) error {
	account := f.ledger.EnsureMember(ctx.GuildID, ctx.UserID())
	if len(account.Inventory) == 0 {
		return ctx.Reply("Your inventory is currently empty.")
	}

	keys := make([]string, 0, len(account.Inventory))
	for k := range account.Inventory {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s's Inventory", ctx.Author.Username),
		Color: common.ColorInfo,
	}
	for _, k := range keys {
		name := k
		if item, ok := f.catalog.Item(ctx.GuildID, k); ok {
			name = item.DisplayName()
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   name,
			Value:  fmt.Sprintf("%d", account.Inventory[k]),
			Inline: true,
		})
	}
	return ctx.ReplyEmbed(embed)
}
