package main

import (
	"fmt"

	"github.com/okian/bestxi/internal/probe"
	"github.com/okian/bestxi/pkg/logger"
	"github.com/spf13/cobra"
)

func newProbeCmd() *cobra.Command {
	cfg := probe.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Verify a running selector",
		Long: `Request the best XI for every pitch type and opponent, twice each,
and check every lineup: eleven distinct players, the role quotas, no opponent
players, one captain, at most one vice-captain and a repeatable answer.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfg.Verbose {
				_ = logger.SetLevelString("debug")
			}
			report, err := probe.Run(cmd.Context(), cfg)
			if report != nil && report.Cases > 0 {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "cases: %d  passed: %d  failed: %d  took: %s\n",
					report.Cases, report.Passed, report.Failed, report.Duration)
				for _, v := range report.Violations {
					fmt.Fprintf(out, "FAIL %s: %s\n", v.Case, v.Reason)
				}
			}
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfg.BaseURL, "url", cfg.BaseURL, "Base URL of the selector")
	f.StringSliceVar(&cfg.Pitches, "pitches", cfg.Pitches, "Pitch types to request")
	f.StringSliceVar(&cfg.Opponents, "opponents", cfg.Opponents, "Opponents to exclude (empty entry means none)")
	f.StringVar(&cfg.Venue, "venue", "", "Venue sent with every request")
	f.IntVar(&cfg.Workers, "workers", cfg.Workers, "Concurrent workers")
	f.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "HTTP request timeout")
	f.BoolVar(&cfg.Verbose, "verbose", false, "Log every passing case")
	return cmd
}
