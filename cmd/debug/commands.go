package debug

import (
	"fmt"
	"io"
	"strconv"

	"coinbot/domain/entities"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewCommand builds the debug command tree. port is resolved lazily so the
// config is only read when a subcommand runs.
func NewCommand(port func() int) *cobra.Command {
	var client *Client

	debugCmd := &cobra.Command{
		Use:   "debug",
		Short: "Inspect the running bot through its debug API",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			p := port()
			if p <= 0 {
				return fmt.Errorf("debug API is disabled (DEBUG_API_PORT=%d)", p)
			}
			client = NewClient(p)
			return client.CheckConnection()
		},
	}

	debugCmd.AddCommand(
		&cobra.Command{
			Use:   "guilds",
			Short: "List the guilds the bot is in",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				guilds, err := client.GetGuilds()
				if err != nil {
					return err
				}
				printGuilds(cmd.OutOrStdout(), guilds)
				return nil
			},
		},
		&cobra.Command{
			Use:   "stats <guild-id>",
			Short: "Show economy statistics for a guild",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				stats, err := client.GetStats(args[0])
				if err != nil {
					return err
				}
				printStats(cmd.OutOrStdout(), args[0], stats)
				return nil
			},
		},
		&cobra.Command{
			Use:   "save",
			Short: "Force an immediate snapshot save",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				msg, err := client.Save()
				if err != nil {
					return err
				}
				color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ %s\n", msg)
				return nil
			},
		},
	)

	return debugCmd
}

func printGuilds(w io.Writer, guilds []GuildInfo) {
	if len(guilds) == 0 {
		color.New(color.FgYellow).Fprintln(w, "The bot is not in any guilds")
		return
	}

	rows := make([][]string, 0, len(guilds))
	for _, g := range guilds {
		rows = append(rows, []string{g.ID, g.Name})
	}
	fmt.Fprintln(w, formatTable([]string{"ID", "Name"}, rows))
}

func printStats(w io.Writer, guildID string, stats *entities.EconomyStats) {
	color.New(color.FgCyan, color.Bold).Fprintf(w, "📊 Economy of guild %s\n", guildID)
	rows := [][]string{
		{"Users", strconv.Itoa(stats.Users)},
		{"Wallets", formatNumber(stats.TotalBalance)},
		{"Bank", formatNumber(stats.TotalBank)},
		{"Average balance", formatNumber(stats.AverageBalance)},
		{"Total earned", formatNumber(stats.TotalEarned)},
		{"Listings", fmt.Sprintf("%d (%s coins)", stats.TotalListings, formatNumber(stats.ListingsValue))},
		{"Invites", fmt.Sprintf("%d registered, %d claimed (%d%%)", stats.TotalInvites, stats.TotalClaimed, stats.ClaimRate)},
	}
	fmt.Fprintln(w, formatTable([]string{"Metric", "Value"}, rows))
}
