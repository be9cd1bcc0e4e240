package cmd

import (
	"os"

	"coinbot/cmd/debug"
	"coinbot/config"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewRootCommand builds the coinbot CLI. Without a subcommand it runs the bot.
func NewRootCommand() *cobra.Command {
	// Subcommands with their own pre-run hooks still get logging configured
	cobra.EnableTraverseRunHooks = true

	root := &cobra.Command{
		Use:           "coinbot",
		Short:         "Discord economy bot",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ConfigureLogging(config.Get())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd.Context(), config.Get())
		},
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "run",
			Short: "Run the bot (default)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return Run(cmd.Context(), config.Get())
			},
		},
		newMigrateCommand(),
		newUpdateBalanceCommand(),
		newExportCommand(),
		debug.NewCommand(func() int { return config.Get().DebugAPIPort }),
	)

	return root
}

// ConfigureLogging applies the configured level and formatter
func ConfigureLogging(cfg *config.Config) {
	log.SetOutput(os.Stdout)

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithField("level", cfg.LogLevel).Warn("Unknown log level, using info")
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Environment == "production" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
