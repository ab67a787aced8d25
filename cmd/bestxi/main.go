// Command bestxi selects a lineup from a local dataset or probes a running
// selector.
package main

import (
	"fmt"
	"os"

	"github.com/okian/bestxi/pkg/logger"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:   "bestxi",
		Short: "Pick a cricket best XI from player statistics",
		Long: `bestxi scores every player for the pitch, removes the opponent's
players, fills a 5-1-2-3 lineup and names a captain and vice-captain.

Examples:
  bestxi select --dataset data/players.tsv --venue Lahore --opponent Pakistan
  bestxi select --pitch pace --format json
  bestxi probe --url http://localhost:8000`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := logger.Init(logger.WithOutput(cmd.ErrOrStderr())); err != nil {
				return fmt.Errorf("failed to initialize logging: %w", err)
			}
			return logger.SetLevelString(logLevel)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug|info|warn|error)")

	root.AddCommand(newSelectCmd(), newProbeCmd())
	return root
}
