package cmd

import (
	"context"
	"fmt"
	"time"

	"coinbot/application"
	"coinbot/bot"
	"coinbot/config"
	"coinbot/domain/entities"
	"coinbot/domain/interfaces"
	"coinbot/domain/services"
	"coinbot/domain/store"
	"coinbot/infrastructure"
	"coinbot/infrastructure/observability"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// Run initializes and starts the bot, blocking until ctx is canceled
func Run(ctx context.Context, cfg *config.Config) error {
	if err := cfg.ValidateForBot(); err != nil {
		return err
	}
	log.Infof("Starting coinbot in %s mode...", cfg.Environment)

	if cfg.DefaultPrefix != "" {
		entities.DefaultPrefix = cfg.DefaultPrefix
	}

	// Metrics are optional; failures only disable them
	if err := observability.InitializeGlobalMetrics(ctx, cfg); err != nil {
		log.WithError(err).Warn("Failed to initialize metrics, continuing without them")
	}
	metrics := observability.GetMetrics()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := observability.ShutdownGlobalMetrics(shutdownCtx); err != nil {
			log.WithError(err).Warn("Failed to flush metrics")
		}
	}()

	log.Infof("Opening %s snapshot storage...", cfg.StorageBackend)
	repo, closeRepo, err := openSnapshotRepository(ctx, cfg, true)
	if err != nil {
		return err
	}
	defer closeRepo()

	publisher, closePublisher, err := newEventPublisher(ctx, cfg)
	if err != nil {
		return err
	}
	defer closePublisher()
	application.RegisterEventHandlers(publisher, metrics)

	s := store.New(publisher)
	autosave := application.NewAutosaveWorker(s, repo, cfg.StorageBackend, metrics)
	if err := autosave.Load(ctx); err != nil {
		return err
	}

	svc := newServices(s, cfg)
	if err := seedCatalog(svc.Catalog, cfg.CatalogFile); err != nil {
		return err
	}

	log.Info("Initializing Discord bot...")
	discordBot, err := bot.New(bot.Config{
		Token:       cfg.DiscordToken,
		NukeTimeout: cfg.NukeTimeout,
	}, svc, metrics)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}

	interest := application.NewInterestWorker(svc.Bank, svc.Configs, discordBot, discordBot, autosave)

	scheduler, err := infrastructure.NewScheduler()
	if err != nil {
		return err
	}
	if err := scheduler.Every("autosave", cfg.AutosaveInterval, func() { autosave.Run(ctx) }); err != nil {
		return err
	}
	if err := scheduler.DailyAt("bank-interest", cfg.InterestHour, func() { interest.Run(ctx) }); err != nil {
		return err
	}
	scheduler.Start()

	var debugAPI *bot.DebugAPI
	if cfg.DebugAPIPort > 0 {
		debugAPI = bot.NewDebugAPI(discordBot, svc.Statistics, autosave)
		debugAPI.Start(cfg.DebugAPIPort)
	}

	log.Info("Bot is running. Press Ctrl+C to exit.")
	<-ctx.Done()

	log.Info("Shutting down bot...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Stop every input before the final save
	g, gctx := errgroup.WithContext(shutdownCtx)
	g.Go(func() error {
		if err := scheduler.Shutdown(); err != nil {
			return fmt.Errorf("failed to stop scheduler: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if debugAPI == nil {
			return nil
		}
		if err := debugAPI.Shutdown(gctx); err != nil {
			return fmt.Errorf("failed to stop debug API: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := discordBot.Close(); err != nil {
			return fmt.Errorf("failed to close Discord session: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		log.WithError(err).Warn("Shutdown step failed")
	}

	if err := autosave.Save(shutdownCtx); err != nil {
		return fmt.Errorf("final save failed: %w", err)
	}
	log.Info("Final snapshot saved, shutdown complete")
	return nil
}

// newServices builds every domain service over one store
func newServices(s *store.Store, cfg *config.Config) *bot.Services {
	rand := services.NewRandSource()
	return &bot.Services{
		Ledger:      services.NewUserLedger(s),
		Bank:        services.NewBankService(s),
		Marketplace: services.NewMarketplaceService(s),
		Referrals:   services.NewReferralService(s, cfg.ReferralBonus),
		Catalog:     services.NewCatalogService(s),
		Configs:     services.NewGuildConfigService(s),
		Nukes:       services.NewNukeService(s, cfg.NukeTimeout),
		Economy:     services.NewEconomyService(s, rand),
		Gambling:    services.NewGamblingService(s, rand),
		Moderation:  services.NewModerationService(s),
		Profiles:    services.NewProfileService(s),
		Statistics:  services.NewStatisticsService(s),
	}
}

func seedCatalog(catalog interfaces.CatalogService, path string) error {
	if path == "" {
		return nil
	}
	items, err := config.LoadCatalog(path)
	if err != nil {
		return err
	}
	if err := catalog.Seed(items); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}
	log.WithFields(log.Fields{
		"file":  path,
		"items": len(items),
	}).Info("Seeded item catalog")
	return nil
}

// newEventPublisher connects to NATS when servers are configured and falls
// back to in-process handlers otherwise
func newEventPublisher(ctx context.Context, cfg *config.Config) (*infrastructure.NATSEventPublisher, func(), error) {
	servers := cfg.NATSServerList()
	if len(servers) == 0 {
		log.Info("NATS_SERVERS not set, events stay in-process")
		return infrastructure.NewLocalEventPublisher(), func() {}, nil
	}

	client := infrastructure.NewNATSClient(servers)
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Connect(connectCtx); err != nil {
		return nil, nil, err
	}

	mapper := infrastructure.NewEventSubjectMapper()
	if err := infrastructure.EnsureEconomyEventStream(client, mapper); err != nil {
		client.Close()
		return nil, nil, err
	}

	closeFn := func() {
		if err := client.Close(); err != nil {
			log.WithError(err).Warn("Failed to close NATS connection")
		}
	}
	return infrastructure.NewNATSEventPublisher(client, mapper), closeFn, nil
}
