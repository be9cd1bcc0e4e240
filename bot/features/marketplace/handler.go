package marketplace

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"coinbot/bot/common"
	"coinbot/bot/dispatch"
	"coinbot/domain/entities"
)

func (f *Feature) handleListItem(ctx *dispatch.Context) error {
	if len(ctx.Args) < 3 {
		return ctx.Usage("listitem <item> <quantity> <price>")
	}

	key := entities.NormalizeItemKey(ctx.Args[0])
	item, ok := f.catalog.Item(ctx.GuildID, key)
	if !ok {
		return common.NewUserErrorf("Item \"%s\" not found.", key)
	}

	qty, okQty := common.ParsePositiveAmount(ctx.Args[1])
	price, okPrice := common.ParsePositiveAmount(ctx.Args[2])
	if !okQty || !okPrice {
		return common.NewUserError("Quantity and price must be positive numbers.", "listitem: bad numbers")
	}

	account := f.ledger.EnsureMember(ctx.GuildID, ctx.UserID())
	if held := account.ItemCount(key); held < qty {
		return common.NewUserErrorf("You only have %dx %s.", held, item.DisplayName())
	}

	listing, ok := f.market.CreateListing(ctx.UserID(), ctx.GuildID, key, qty, price)
	if !ok {
		return common.NewUserError("Failed to create listing.", "listitem: create rejected")
	}

	return ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "Item Listed",
		Description: fmt.Sprintf("You listed **%dx %s** for **%s** each.", qty, item.DisplayName(), common.FormatCoins(price)),
		Color:       common.ColorSuccess,
		Footer:      &discordgo.MessageEmbedFooter{Text: "Listing ID: " + listing.ID},
	})
}

func (f *Feature) handleMarket(ctx *dispatch.Context) error {
	page := common.ParsePage(ctx.Args, 0)
	result := f.market.PagedListings(ctx.GuildID, page, common.MarketPageSize)
	if len(result.Listings) == 0 {
		return ctx.Reply("No listings found on that page.")
	}

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Marketplace Listings (Page %d/%d)", result.Page, result.TotalPages),
		Color: common.ColorInfo,
	}
	for _, l := range result.Listings {
		name := l.ItemKey
		if item, ok := f.catalog.Item(ctx.GuildID, l.ItemKey); ok {
			name = item.DisplayName()
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s • ID: %s", name, l.ID),
			Value: fmt.Sprintf("Seller: <@%s>\nQuantity: %d\nPrice: %s each", l.SellerID, l.Quantity, common.FormatCoins(l.Price)),
		})
	}
	embed.Footer = &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("%d listing(s) • %sbuy <listingId> [quantity]", result.Total, ctx.Prefix),
	}
	return ctx.ReplyEmbed(embed)
}

func (f *Feature) handleBuy(ctx *dispatch.Context) error {
	if len(ctx.Args) < 1 {
		return ctx.Usage("buy <listingId> [quantity]")
	}

	qty := int64(1)
	if len(ctx.Args) > 1 {
		n, ok := common.ParsePositiveAmount(ctx.Args[1])
		if !ok {
			return common.NewUserError("Please specify a valid positive number for quantity.", "buy: bad quantity")
		}
		qty = n
	}

	f.ledger.EnsureMember(ctx.GuildID, ctx.UserID())
	result := f.market.Purchase(ctx.UserID(), ctx.GuildID, ctx.Args[0], qty)
	if !result.Success {
		return common.NewUserError(result.Message, "buy rejected")
	}

	name := result.ItemKey
	if item, ok := f.catalog.Item(ctx.GuildID, result.ItemKey); ok {
		name = item.DisplayName()
	}

	return ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title: "Purchase Successful",
		Description: fmt.Sprintf("You bought **%dx %s** from <@%s> for **%s**.",
			result.Quantity, name, result.SellerID, common.FormatCoins(result.TotalCost)),
		Color: common.ColorSuccess,
	})
}

func (f *Feature) handleUnlist(ctx *dispatch.Context) error {
	if len(ctx.Args) < 1 {
		return ctx.Usage("unlist <listingId>")
	}

	listing, ok := f.market.GetListing(ctx.GuildID, ctx.Args[0])
	if !ok {
		return common.NewUserError("Listing not found.", "unlist: missing listing")
	}
	if listing.SellerID != ctx.UserID() {
		return common.NewUserError("You can only remove your own listings.", "unlist: not seller")
	}
	if !f.market.RemoveListing(ctx.UserID(), ctx.GuildID, listing.ID) {
		return common.NewUserError("Listing not found.", "unlist: removed concurrently")
	}

	return ctx.Reply(fmt.Sprintf("✅ Removed listing `%s`. %dx %s returned to your inventory.", listing.ID, listing.Quantity, listing.ItemKey))
}
