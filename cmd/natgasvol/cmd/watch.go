package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rustyeddy/natgasvol/analysis"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run the analysis on a schedule",
	Long: `Run the analysis on a cron schedule until interrupted. The EIA publishes
weekly prices on Wednesdays, so the default schedule is Wednesday 18:00.

The schedule has six fields, seconds first.

Examples:
  natgasvol watch -f natgasvol.yaml
  natgasvol watch -f natgasvol.yaml --cron "0 30 9 * * 4" --now`,
	RunE: runWatch,
}

var (
	watchConfigPath string
	watchCron       string
	watchNow        bool
)

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchConfigPath, "file", "f", "", "path to config file")
	watchCmd.Flags().StringVar(&watchCron, "cron", "", "cron schedule (overrides config)")
	watchCmd.Flags().BoolVar(&watchNow, "now", false, "run once immediately before waiting")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(watchConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cmd.Flags().Changed("cron") {
		cfg.Schedule.Cron = watchCron
	}
	if cfg.Schedule.Cron == "" {
		return fmt.Errorf("no schedule: set schedule.cron or pass --cron")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := slog.Default().With("input", cfg.Input.Path)
	sched, err := analysis.NewScheduler(ctx, cfg.Schedule.Cron, func(ctx context.Context) error {
		res, err := analyze(ctx, cfg)
		if err != nil {
			return err
		}
		log.Info("analysis written",
			"run_id", res.RunID,
			"rows", res.Prices.Len(),
			"series_csv", cfg.Output.SeriesCSV,
			"report", cfg.Output.ReportOrg,
		)
		return nil
	}, log)
	if err != nil {
		return err
	}

	if watchNow {
		sched.RunNow()
	}
	sched.Start()
	<-ctx.Done()
	sched.Stop()
	return nil
}
