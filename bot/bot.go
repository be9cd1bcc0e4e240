package bot

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"coinbot/bot/dispatch"
	"coinbot/bot/features/balance"
	"coinbot/bot/features/betting"
	"coinbot/bot/features/earnings"
	"coinbot/bot/features/marketplace"
	"coinbot/bot/features/moderation"
	"coinbot/bot/features/nuke"
	"coinbot/bot/features/profile"
	"coinbot/bot/features/referrals"
	"coinbot/bot/features/settings"
	"coinbot/bot/features/shop"
	"coinbot/bot/features/stats"
	"coinbot/bot/features/transfer"
	"coinbot/bot/features/utility"
	"coinbot/domain/entities"
	"coinbot/domain/interfaces"
	"coinbot/infrastructure/observability"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Config holds bot configuration
type Config struct {
	Token       string
	NukeTimeout time.Duration // Only used to word the expiry announcement
}

// Services groups the domain services the features are built from
type Services struct {
	Ledger      interfaces.UserLedger
	Bank        interfaces.BankService
	Marketplace interfaces.MarketplaceService
	Referrals   interfaces.ReferralService
	Catalog     interfaces.CatalogService
	Configs     interfaces.GuildConfigService
	Nukes       interfaces.NukeService
	Economy     interfaces.EconomyService
	Gambling    interfaces.GamblingService
	Moderation  interfaces.ModerationService
	Profiles    interfaces.ProfileService
	Statistics  interfaces.StatisticsService
}

// feature is implemented by every package under bot/features
type feature interface {
	Commands() []*dispatch.Command
}

// Bot manages the Discord session and routes messages to the feature modules
type Bot struct {
	config     Config
	session    *discordgo.Session
	services   *Services
	dispatcher *dispatch.Dispatcher
}

// New creates the bot, registers every feature and opens the gateway connection
func New(config Config, services *Services, metrics *observability.MetricsProvider) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent

	b, err := newBot(config, dg, services, metrics)
	if err != nil {
		return nil, err
	}

	dg.AddHandler(b.handleMessageCreate)
	dg.AddHandler(b.handleGuildCreate)
	services.Nukes.OnExpire(b.announceNukeExpired)

	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}
	log.WithField("commands", len(b.dispatcher.Registry().Commands())).Info("Discord session opened")

	return b, nil
}

// newBot wires the features without touching the network
func newBot(config Config, session *discordgo.Session, services *Services, metrics *observability.MetricsProvider) (*Bot, error) {
	registry, err := buildRegistry(services)
	if err != nil {
		return nil, err
	}
	return &Bot{
		config:     config,
		session:    session,
		services:   services,
		dispatcher: dispatch.NewDispatcher(registry, metrics),
	}, nil
}

func buildRegistry(s *Services) (*dispatch.Registry, error) {
	registry := dispatch.NewRegistry()
	features := []feature{
		balance.New(s.Ledger, s.Bank),
		transfer.New(s.Ledger),
		earnings.New(s.Economy, s.Ledger),
		betting.New(s.Gambling, s.Ledger),
		marketplace.New(s.Marketplace, s.Catalog, s.Ledger),
		shop.New(s.Catalog, s.Ledger),
		referrals.New(s.Referrals, s.Ledger),
		profile.New(s.Profiles, s.Ledger),
		settings.New(s.Configs),
		stats.New(s.Statistics),
		moderation.New(s.Moderation),
		nuke.New(s.Nukes),
		utility.New(registry),
	}
	for _, f := range features {
		if err := registry.Register(f.Commands()...); err != nil {
			return nil, fmt.Errorf("failed to register commands: %w", err)
		}
	}
	return registry, nil
}

// Close stops pending timers and closes the Discord session
func (b *Bot) Close() error {
	b.services.Nukes.Stop()
	return b.session.Close()
}

// Dispatcher exposes the command dispatcher
func (b *Bot) Dispatcher() *dispatch.Dispatcher {
	return b.dispatcher
}

func (b *Bot) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	// Ignore other bots and ourselves
	if m.Author == nil || m.Author.Bot {
		return
	}

	ctx, ok := b.commandContext(s.State, m.Message)
	if !ok {
		return
	}
	ctx.Responder = &sessionResponder{session: s}

	if ctx.InGuild() {
		b.services.Ledger.EnsureMember(ctx.GuildID, ctx.UserID())
	}
	b.dispatcher.Dispatch(ctx, m.Content)
}

// commandContext builds the dispatch context for a message, reporting false
// when the message does not start with the applicable prefix
func (b *Bot) commandContext(state *discordgo.State, m *discordgo.Message) (*dispatch.Context, bool) {
	prefix := entities.DefaultPrefix
	if m.GuildID != "" {
		prefix = b.services.Configs.Peek(m.GuildID).Prefix
	}
	if !strings.HasPrefix(m.Content, prefix) {
		return nil, false
	}

	ctx := &dispatch.Context{
		GuildID:   m.GuildID,
		ChannelID: m.ChannelID,
		MessageID: m.ID,
		Author:    m.Author,
		Mentions:  m.Mentions,
		Prefix:    prefix,
	}
	if m.GuildID == "" {
		return ctx, true
	}

	ctx.Config = b.services.Configs.Get(m.GuildID)
	ctx.Permissions = memberPermissions(state, m)
	ctx.RoleNames = memberRoleNames(state, m)
	return ctx, true
}

func memberPermissions(state *discordgo.State, m *discordgo.Message) int64 {
	if state == nil {
		return 0
	}
	perms, err := state.UserChannelPermissions(m.Author.ID, m.ChannelID)
	if err != nil {
		log.WithFields(log.Fields{
			"guild_id":   m.GuildID,
			"channel_id": m.ChannelID,
			"user_id":    m.Author.ID,
		}).WithError(err).Debug("Failed to resolve permissions from state")
		return 0
	}
	return perms
}

func memberRoleNames(state *discordgo.State, m *discordgo.Message) []string {
	var roleIDs []string
	if m.Member != nil {
		roleIDs = m.Member.Roles
	} else if state != nil {
		if member, err := state.Member(m.GuildID, m.Author.ID); err == nil {
			roleIDs = member.Roles
		}
	}
	if state == nil {
		return nil
	}

	names := make([]string, 0, len(roleIDs))
	for _, id := range roleIDs {
		role, err := state.Role(m.GuildID, id)
		if err != nil {
			continue
		}
		names = append(names, role.Name)
	}
	return names
}

func (b *Bot) handleGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	cfg := b.services.Configs.Get(g.ID)
	log.WithFields(log.Fields{
		"guild_id": g.ID,
		"name":     g.Name,
		"prefix":   cfg.Prefix,
	}).Info("Guild available")
}

// announceNukeExpired tells the guild a pending wipe timed out
func (b *Bot) announceNukeExpired(p entities.PendingNuke) {
	channelID := b.announcementChannel(p.GuildID)
	if channelID == "" {
		log.WithField("guild_id", p.GuildID).Info("Pending nuke expired with no channel to announce in")
		return
	}

	embed := nuke.AbortedEmbed(nuke.ExpiredMessage(p, b.config.NukeTimeout))
	if _, err := b.session.ChannelMessageSendEmbed(channelID, embed); err != nil {
		log.WithFields(log.Fields{
			"guild_id":   p.GuildID,
			"channel_id": channelID,
		}).WithError(err).Warn("Failed to announce nuke expiry")
	}
}

// announcementChannel prefers the configured logs channel, then the guild's system channel
func (b *Bot) announcementChannel(guildID string) string {
	cfg := b.services.Configs.Peek(guildID)
	if cfg.HasLogsChannel() {
		return *cfg.Channels.Logs
	}
	if b.session.State == nil {
		return ""
	}
	guild, err := b.session.State.Guild(guildID)
	if err != nil {
		return ""
	}
	return guild.SystemChannelID
}

// NotifyInterest posts an interest sweep summary
func (b *Bot) NotifyInterest(ctx context.Context, guildID, channelID, message string) error {
	if _, err := b.session.ChannelMessageSend(channelID, message, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to post interest summary to guild %s: %w", guildID, err)
	}
	return nil
}

// GuildIDs lists guilds the bot is in together with guilds that have stored config
func (b *Bot) GuildIDs() []string {
	seen := make(map[string]bool)
	for _, g := range b.GetGuilds() {
		seen[g.ID] = true
	}
	for _, id := range b.services.Configs.GuildIDs() {
		seen[id] = true
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// GetGuilds returns the guilds the bot is currently in
func (b *Bot) GetGuilds() []GuildInfo {
	guilds := make([]GuildInfo, 0)
	if b.session.State != nil {
		for _, guild := range b.session.State.Guilds {
			guilds = append(guilds, GuildInfo{ID: guild.ID, Name: guild.Name})
		}
	}
	if len(guilds) > 0 || b.session.State == nil || b.session.State.User == nil {
		return guilds
	}

	// State can be empty right after connecting
	log.Warn("No guilds in session state, attempting to fetch user guilds")
	userGuilds, err := b.session.UserGuilds(100, "", "", false)
	if err != nil {
		log.WithError(err).Error("Failed to fetch user guilds")
		return guilds
	}
	for _, guild := range userGuilds {
		guilds = append(guilds, GuildInfo{ID: guild.ID, Name: guild.Name})
	}
	return guilds
}
