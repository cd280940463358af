package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "natgasvol",
	Short: "Weekly commodity price returns and rolling volatility",
	Long: `natgasvol turns a weekly commodity price table (Henry Hub natural gas spot
prices by default) into a chronologically ordered series and derives:
  - log returns, ln(p[t] / p[t-1])
  - rolling volatility, the sample standard deviation of returns over a
    trailing window (156 weeks by default)

Results are written as a series CSV and an Org-mode report for charting.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initLogger(cmd.ErrOrStderr())
	},
}

var (
	logLevel  string
	logFormat string
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text or json)")
}

// initLogger configures the default slog logger from the global flags.
func initLogger(w io.Writer) error {
	var level slog.Level
	switch strings.ToLower(strings.TrimSpace(logLevel)) {
	case "debug":
		level = slog.LevelDebug
	case "", "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("unknown log level %q", logLevel)
	}

	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	switch strings.ToLower(strings.TrimSpace(logFormat)) {
	case "json":
		h = slog.NewJSONHandler(w, opts)
	case "", "text":
		h = slog.NewTextHandler(w, opts)
	default:
		return fmt.Errorf("unknown log format %q", logFormat)
	}
	slog.SetDefault(slog.New(h))
	return nil
}
