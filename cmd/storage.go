package cmd

import (
	"context"
	"fmt"

	"coinbot/config"
	"coinbot/database"
	"coinbot/domain/interfaces"
	"coinbot/repository"

	log "github.com/sirupsen/logrus"
)

// openSnapshotRepository returns the configured backend and a close func.
// With migrate set, pending schema migrations run before the pool opens.
func openSnapshotRepository(ctx context.Context, cfg *config.Config, migrate bool) (interfaces.SnapshotRepository, func(), error) {
	if !cfg.UsesPostgres() {
		return repository.NewFileSnapshotRepository(cfg.DataDir), func() {}, nil
	}

	databaseURL := cfg.GetDatabaseURL()
	if migrate {
		if err := database.RunMigrationsWithURL(databaseURL); err != nil {
			return nil, nil, err
		}
	}

	db, err := database.NewConnectionWithOptions(ctx, databaseURL, cfg.DatabasePoolOptions())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("Database connection established successfully")

	return repository.NewPostgresSnapshotRepository(db), db.Close, nil
}
