package cmd

import (
	"fmt"

	"github.com/rustyeddy/natgasvol/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Create, check or print analysis configuration",
	Long: `A config file (YAML, or JSON as a fallback) has five sections:

  input     price table path, dataset name, date and price column names,
            preamble rows to skip, and row order
            (detect | newest-first | oldest-first)
  dates     strftime patterns for reading (default %m/%d/%Y) and
            labelling (default %d/%m/%Y) dates
  analysis  rolling window in weeks (default 156), strategy
            (recompute | incremental | reference), periods per year
            for annualized volatility (0 disables it)
  output    series CSV and Org report paths; empty paths are skipped
  schedule  six-field cron expression used by "natgasvol watch"

Examples:
  natgasvol config init -o natgasvol.yaml
  natgasvol config validate -f natgasvol.yaml
  natgasvol config show -f natgasvol.yaml`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration",
	Long: `Write the defaults for the EIA weekly Henry Hub download: a 156-week
window, annualized over 52 weeks, refreshed Wednesdays at 18:00. The file
format follows the extension (.yaml/.yml, anything else is JSON).`,
	RunE: runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a configuration file",
	Long: `Load a configuration file and report the first problem: unknown order
or strategy, a window below 2, date patterns strftime cannot use, or a bad
cron expression.`,
	RunE: runConfigValidate,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration analyze would use, as YAML: the file merged over
the defaults, or the defaults alone when no file is given.`,
	RunE: runConfigShow,
}

var (
	configInitOutput   string
	configValidatePath string
	configShowPath     string
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configShowCmd)

	configInitCmd.Flags().StringVarP(&configInitOutput, "output", "o", "natgasvol.yaml", "output config file path")
	configValidateCmd.Flags().StringVarP(&configValidatePath, "file", "f", "", "path to config file (required)")
	configValidateCmd.MarkFlagRequired("file")
	configShowCmd.Flags().StringVarP(&configShowPath, "file", "f", "", "path to config file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	if err := config.Default().SaveToFile(configInitOutput); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Created default configuration: %s\n", configInitOutput)
	fmt.Fprintf(out, "  Point input.path at the EIA download, then run:\n")
	fmt.Fprintf(out, "  natgasvol analyze -f %s\n", configInitOutput)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(configValidatePath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Configuration valid: %s\n", configValidatePath)
	fmt.Fprintf(out, "  Input: %s (%s)\n", cfg.Input.Path, cfg.Input.Order)
	fmt.Fprintf(out, "  Dates: %s -> %s\n", cfg.Dates.SourceFormat, cfg.Dates.TargetFormat)
	fmt.Fprintf(out, "  Window: %d weeks (%s)\n", cfg.Analysis.Window, cfg.Analysis.Strategy)
	if cfg.Schedule.Cron != "" {
		fmt.Fprintf(out, "  Schedule: %s\n", cfg.Schedule.Cron)
	}
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(configShowPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}
