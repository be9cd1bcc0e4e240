package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"coinbot/application"
	"coinbot/config"
	"coinbot/domain/services"
	"coinbot/domain/store"
	"coinbot/infrastructure"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// BalanceUpdate reports an offline balance change
type BalanceUpdate struct {
	UserID string
	Before int64
	After  int64
}

// offlineStore loads the persisted snapshot into a store whose events go nowhere
func offlineStore(ctx context.Context, cfg *config.Config) (*store.Store, *application.AutosaveWorker, func(), error) {
	repo, closeRepo, err := openSnapshotRepository(ctx, cfg, false)
	if err != nil {
		return nil, nil, nil, err
	}

	s := store.New(infrastructure.NewNoopEventPublisher())
	worker := application.NewAutosaveWorker(s, repo, cfg.StorageBackend, nil)
	if err := worker.Load(ctx); err != nil {
		closeRepo()
		return nil, nil, nil, err
	}
	return s, worker, closeRepo, nil
}

// UpdateBalance overwrites a user's wallet in the persisted snapshot
func UpdateBalance(ctx context.Context, cfg *config.Config, userID string, amount int64) (*BalanceUpdate, error) {
	s, worker, closeRepo, err := offlineStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer closeRepo()

	ledger := services.NewUserLedger(s)
	update := &BalanceUpdate{
		UserID: userID,
		Before: ledger.GetOrCreateAccount(userID).Balance,
	}
	update.After = ledger.SetBalance(userID, amount)

	if err := worker.Save(ctx); err != nil {
		return nil, err
	}
	return update, nil
}

// ExportSnapshot writes the persisted state as one JSON document
func ExportSnapshot(ctx context.Context, cfg *config.Config, path string) error {
	s, _, closeRepo, err := offlineStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRepo()

	data, err := json.MarshalIndent(s.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func newUpdateBalanceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "update-balance <user-id> <amount>",
		Short: "Set a user's wallet balance in stored data",
		Long: "Set a user's wallet balance in stored data. Run it while the bot is stopped, " +
			"otherwise the next autosave overwrites the change.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}

			update, err := UpdateBalance(cmd.Context(), config.Get(), args[0], amount)
			if err != nil {
				return err
			}
			color.Green("✓ Balance of %s updated: %d → %d", update.UserID, update.Before, update.After)
			return nil
		},
	}
}

func newExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Export stored economy data as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ExportSnapshot(cmd.Context(), config.Get(), args[0]); err != nil {
				return err
			}
			color.Green("✓ Exported economy data to %s", args[0])
			return nil
		},
	}
}
