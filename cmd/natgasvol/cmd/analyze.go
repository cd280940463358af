package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/rustyeddy/natgasvol/analysis"
	"github.com/rustyeddy/natgasvol/config"
	"github.com/rustyeddy/natgasvol/market"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Compute log returns and rolling volatility for a price table",
	Long: `Load a weekly price table, put it in chronological order and compute log
returns and rolling volatility. Results go to a series CSV and an Org report.

Flags override values from the config file.

Examples:
  natgasvol analyze --input Henry_Hub_Natural_Gas_Spot_Price.csv
  natgasvol analyze -f natgasvol.yaml --window 52 --strategy incremental
  natgasvol analyze --input hh.csv.xz --series-csv out.csv --report out.org`,
	RunE: runAnalyze,
}

var (
	analyzeConfigPath string
	analyzeInput      string
	analyzeWindow     int
	analyzeStrategy   string
	analyzeSeriesCSV  string
	analyzeReport     string
	analyzePreview    int
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeConfigPath, "file", "f", "", "path to config file")
	analyzeCmd.Flags().StringVarP(&analyzeInput, "input", "i", "", "price table (.csv or .csv.xz)")
	analyzeCmd.Flags().IntVarP(&analyzeWindow, "window", "w", 0, "rolling window in weeks")
	analyzeCmd.Flags().StringVar(&analyzeStrategy, "strategy", "", "volatility strategy (recompute, incremental, reference)")
	analyzeCmd.Flags().StringVar(&analyzeSeriesCSV, "series-csv", "", "series CSV output path")
	analyzeCmd.Flags().StringVar(&analyzeReport, "report", "", "Org report output path")
	analyzeCmd.Flags().IntVar(&analyzePreview, "preview", 5, "rows to print after loading")
}

// loadConfig reads path, or the defaults when path is empty.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.LoadFromFile(path)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(analyzeConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.Input.Path = analyzeInput
	}
	if flags.Changed("window") {
		cfg.Analysis.Window = analyzeWindow
	}
	if flags.Changed("strategy") {
		cfg.Analysis.Strategy = analyzeStrategy
	}
	if flags.Changed("series-csv") {
		cfg.Output.SeriesCSV = analyzeSeriesCSV
	}
	if flags.Changed("report") {
		cfg.Output.ReportOrg = analyzeReport
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	res, err := analyze(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Successfully loaded data with %d rows\n\n", res.Prices.Len())
	printPreview(out, res, analyzePreview)

	rep := res.Report(cfg.Input.Path, cfg.Output.SeriesCSV)
	fmt.Fprintf(out, "\n%s\n", res.VolatilityTitle())
	printSummary(out, "Price", rep.Price)
	printSummary(out, "Log return", rep.Returns)
	printSummary(out, "Volatility", rep.Volatility)
	if rep.Annualized != nil {
		printSummary(out, "Annualized", *rep.Annualized)
	}
	for _, n := range rep.Notes {
		fmt.Fprintf(out, "  note: %s\n", n)
	}

	if cfg.Output.SeriesCSV != "" {
		fmt.Fprintf(out, "✓ Series written: %s\n", cfg.Output.SeriesCSV)
	}
	if cfg.Output.ReportOrg != "" {
		fmt.Fprintf(out, "✓ Report written: %s\n", cfg.Output.ReportOrg)
	}
	return nil
}

// analyze runs the pipeline for cfg and writes its outputs.
func analyze(ctx context.Context, cfg *config.Config) (*analysis.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	opts, err := analysis.OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	r := &analysis.Runner{
		Source:  analysis.CSVSource{Path: cfg.Input.Path, Options: cfg.LoadOptions()},
		Options: opts,
	}
	res, err := r.Run(ctx)
	if err != nil {
		return nil, err
	}
	slog.Debug("analysis complete",
		"run_id", res.RunID,
		"rows", res.Prices.Len(),
		"window", res.Window(),
		"strategy", opts.Strategy.String(),
	)

	if err := res.WriteOutputs(cfg.Input.Path, cfg.Output); err != nil {
		return nil, err
	}
	return res, nil
}

func printPreview(w io.Writer, res *analysis.Result, n int) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Date\tPrice\tReturn\tVolatility")
	rows, err := res.Rows()
	if err != nil {
		return
	}
	for i, r := range rows {
		if i >= n {
			break
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Label, cell(r.Price), cell(r.Return), cell(r.Volatility))
	}
	tw.Flush()
}

func cell(v market.Value) string {
	if !v.Valid() {
		return "-"
	}
	return v.String()
}

func printSummary(w io.Writer, name string, s market.Summary) {
	if s.Count == 0 {
		fmt.Fprintf(w, "  %-11s n=0 (%d undefined)\n", name, s.Undefined)
		return
	}
	fmt.Fprintf(w, "  %-11s n=%d mean=%.6f min=%.6f max=%.6f last=%s\n",
		name, s.Count, s.Mean, s.Min, s.Max, cell(s.Last))
}
