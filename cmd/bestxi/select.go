package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	service "github.com/okian/bestxi/internal/app"
	"github.com/okian/bestxi/internal/config"
	"github.com/okian/bestxi/internal/domain/types"
	"github.com/spf13/cobra"
)

// Output formats.
const (
	formatTable = "table"
	formatJSON  = "json"
)

type selectOptions struct {
	configFile string
	dataset    string
	delimiter  string
	pitch      string
	opponent   string
	venue      string
	format     string
}

type selectOutput struct {
	PitchType   string              `json:"pitch_type"`
	PitchSource string              `json:"pitch_source"`
	Opponent    string              `json:"opponent,omitempty"`
	Venue       string              `json:"venue,omitempty"`
	Rejected    int                 `json:"rejected_rows"`
	Players     []types.LineupEntry `json:"players"`
}

func newSelectCmd() *cobra.Command {
	opts := &selectOptions{}

	cmd := &cobra.Command{
		Use:   "select",
		Short: "Select the best XI from a local dataset",
		Long: `Run the selection pipeline against a dataset file and print the
lineup. Flags override values from the configuration file and BESTXI_* env.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSelect(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configFile, "config", "", "YAML configuration file")
	f.StringVar(&opts.dataset, "dataset", "", "Player statistics file (default from config)")
	f.StringVar(&opts.delimiter, "delimiter", "", "Field delimiter (auto|tab|comma)")
	f.StringVar(&opts.pitch, "pitch", "", "Pitch type (pace|spin|neutral)")
	f.StringVar(&opts.opponent, "opponent", "", "Opponent country to exclude")
	f.StringVar(&opts.venue, "venue", "", "Venue used to infer the pitch type")
	f.StringVar(&opts.format, "format", formatTable, "Output format (table|json)")
	return cmd
}

func runSelect(cmd *cobra.Command, opts *selectOptions) error {
	if opts.format != formatTable && opts.format != formatJSON {
		return fmt.Errorf("unknown format %q", opts.format)
	}
	if opts.configFile != "" {
		if err := os.Setenv(config.EnvConfigFile, opts.configFile); err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if opts.dataset != "" {
		cfg.Dataset.Path = opts.dataset
	}
	if opts.delimiter != "" {
		cfg.Dataset.Delimiter = opts.delimiter
	}

	svc, err := service.NewFromConfig(cfg)
	if err != nil {
		return err
	}
	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer svc.Stop()

	res, err := svc.SelectBestXI(ctx, service.Query{
		PitchType: opts.pitch,
		Opponent:  opts.opponent,
		Venue:     opts.venue,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", service.Kind(err), err)
	}

	if opts.format == formatJSON {
		return writeSelectJSON(cmd.OutOrStdout(), res)
	}
	return writeSelectTable(cmd.OutOrStdout(), res)
}

func writeSelectJSON(w io.Writer, res service.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(selectOutput{
		PitchType:   string(res.Pitch),
		PitchSource: string(res.PitchSource),
		Opponent:    res.Opponent,
		Venue:       res.Venue,
		Rejected:    res.Rejected,
		Players:     res.Players,
	})
}

func writeSelectTable(w io.Writer, res service.Result) error {
	header := fmt.Sprintf("pitch: %s (%s)", res.Pitch, res.PitchSource)
	if res.Opponent != "" {
		header += "  opponent: " + res.Opponent
	}
	if res.Venue != "" {
		header += "  venue: " + res.Venue
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join([]string{"#", "PLAYER", "ROLE", "COUNTRY", "RUNS", "SR", "WKTS", "ECON", "SCORE", ""}, "\t"))
	for i, p := range res.Players {
		mark := ""
		switch {
		case p.IsCaptain:
			mark = "C"
		case p.IsViceCaptain:
			mark = "VC"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%.2f\t%d\t%.2f\t%.2f\t%s\n",
			i+1, p.Player, p.Role, p.Country, p.Runs, p.StrikeRate,
			p.WicketsTaken, p.BowlingEconomy, p.SelectionScore, mark)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	var notes []string
	if res.KeeperPromoted {
		notes = append(notes, "no wicket-keeper in the pool; top batsman keeps wicket")
	}
	if res.CaptainFallback {
		notes = append(notes, "no listed leader selected; top scorer captains")
	}
	if res.Rejected > 0 {
		notes = append(notes, fmt.Sprintf("%d dataset rows rejected", res.Rejected))
	}
	for _, n := range notes {
		if _, err := fmt.Fprintln(w, "note: "+n); err != nil {
			return err
		}
	}
	return nil
}
