// Package cmd provides the CLI commands for translation-quote.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"translation-quote/adapters/regime"
	"translation-quote/core/engine"
	"translation-quote/core/output"
	"translation-quote/internal/config"
	"translation-quote/internal/errors"
	"translation-quote/internal/logging"
)

// Version is set at build time
var Version = "0.1.0"

// app carries the flags and state shared by every subcommand
type app struct {
	cfgFile    string
	envFiles   []string
	verbose    bool
	regimePath string
	format     string

	cfg     *config.Config
	formats *output.Registry

	// clock supplies "now" when a command is not given --now
	clock func() time.Time
}

// Execute runs the CLI
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree. Each call returns independent state.
func NewRootCmd() *cobra.Command {
	a := &app{formats: output.NewRegistry(), clock: time.Now}

	rootCmd := &cobra.Command{
		Use:   "quote",
		Short: "Price, tax and schedule translation orders",
		Long: `quote prices translation orders against a pricing regime file.

It computes per-document charges, turnaround fees, delivery fees and
tax, and projects the estimated delivery date in business days.

Examples:
  quote quote order.json
  quote quote --tier rush --format json order.json
  quote options order.json
  quote diff before.json after.json
  quote tax resolve CA-QC
  quote calendar add 2026-10-16 3 --region CA-QC`,
		SilenceUsage:      true,
		PersistentPreRunE: a.initConfig,
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ./quote.json when present)")
	rootCmd.PersistentFlags().StringSliceVar(&a.envFiles, "env-file", nil, "env files to load before QUOTE_* overrides (default .env)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&a.regimePath, "regime", "", "regime file (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&a.format, "format", "f", "", "output format (table, json, markdown)")

	rootCmd.AddCommand(
		a.quoteCmd(),
		a.optionsCmd(),
		a.diffCmd(),
		a.taxCmd(),
		a.calendarCmd(),
		a.regimeCmd(),
		a.configCmd(),
		versionCmd(),
	)
	return rootCmd
}

func (a *app) initConfig(cmd *cobra.Command, args []string) error {
	path := a.cfgFile
	if path == "" {
		path = "quote.json"
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(a.envFiles...); err != nil {
		return err
	}
	if a.regimePath != "" {
		cfg.Regime.Path = a.regimePath
	}
	if a.format != "" {
		cfg.Output.DefaultFormat = a.format
	}
	if a.verbose {
		cfg.Logging.Level = "debug"
	}
	config.Set(cfg)
	a.cfg = cfg

	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
	return nil
}

// engine builds an engine over the configured regime file
func (a *app) engine() (*engine.Engine, error) {
	fallback, err := a.cfg.FallbackTax()
	if err != nil {
		return nil, err
	}
	return engine.NewEngine(regime.NewFileSource(a.cfg.Regime.Path), nil, engine.EngineConfig{
		DefaultRegion: a.cfg.Regime.DefaultRegion,
		FallbackTax:   fallback,
		DiffThreshold: a.cfg.Regime.DiffThreshold,
	}), nil
}

// formatter returns the configured output formatter
func (a *app) formatter() (output.Formatter, error) {
	name := output.Format(a.cfg.Output.DefaultFormat)
	f, ok := a.formats.Get(name)
	if !ok {
		return nil, errors.InvalidArgument("unknown output format %q (available: %v)", name, a.formats.Formats())
	}
	return f, nil
}

// now returns the --now flag value, or the clock
func (a *app) now(flag string) (time.Time, error) {
	if flag == "" {
		return a.clock(), nil
	}
	t, err := time.Parse(time.RFC3339, flag)
	if err != nil {
		return time.Time{}, errors.InvalidArgument("--now must be RFC 3339, got %q", flag)
	}
	return t, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "translation-quote version %s\n", Version)
		},
	}
}

// configCmd manages configuration
func (a *app) configCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(a.cfg)
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "init <path>",
		Short: "Write a default configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); err == nil {
				return errors.InvalidArgument("%s already exists", args[0])
			}
			if err := config.Default().Save(args[0]); err != nil {
				return errors.Config("writing "+args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
			return nil
		},
	})
	return configCmd
}
