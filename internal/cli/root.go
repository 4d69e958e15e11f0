// Package cli wires config, ingest, snapshot and report into the candles
// command tree.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rustyeddy/candles/config"
	"github.com/rustyeddy/candles/ingest"
	"github.com/rustyeddy/candles/internal/logger"
	"github.com/rustyeddy/candles/snapshot"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is overridden at build time with -ldflags.
var Version = "dev"

// RootConfig holds the persistent flags shared by every subcommand.
type RootConfig struct {
	ConfigPath string
	Source     string
	Precision  int32
	Trailing   string
	LogLevel   string
	LogFormat  string
}

func NewRootCmd() *cobra.Command {
	rc := &RootConfig{}

	cmd := &cobra.Command{
		Use:           "candles",
		Short:         "Candles: OHLC aggregation and moving averages from price ticks",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global / persistent flags. Unset flags fall back to config and env.
	pf := cmd.PersistentFlags()
	pf.StringVar(&rc.ConfigPath, "config", "", "Path to config file (optional)")
	pf.StringVar(&rc.Source, "source", "", "Price CSV path or http(s) URL (.csv, .xz, .zip)")
	pf.Int32Var(&rc.Precision, "precision", 0, "Decimal places kept on prices and indicators (default from config)")
	pf.StringVar(&rc.Trailing, "trailing", "", "Last partial interval: flush|drop (default from config)")
	pf.StringVar(&rc.LogLevel, "log-level", "", "Log level: debug|info|warn|error (default from config)")
	pf.StringVar(&rc.LogFormat, "log-format", "", "Log format: console|json (default from config)")

	cmd.AddCommand(
		newShowCmd(rc),
		newMACmd(rc, "sma", "Simple moving average of daily closes"),
		newMACmd(rc, "ema", "Exponential moving average of daily closes"),
		newExportCmd(rc),
		newConfigCmd(rc),
	)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "candles (%s)\n", Version)
		},
	})

	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// load reads the config file and environment, then applies any flags the
// user set explicitly.
func (rc *RootConfig) load(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(rc.ConfigPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("source") {
		cfg.Source.URL = ""
		cfg.Source.Path = rc.Source
	}
	if flags.Changed("precision") {
		cfg.Aggregation.Precision = rc.Precision
	}
	if flags.Changed("trailing") {
		cfg.Aggregation.Trailing = rc.Trailing
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = rc.LogLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = rc.LogFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

// session is the per-invocation state built from config.
type session struct {
	cfg  *config.Config
	log  *zap.Logger
	snap *snapshot.Snapshot
}

// open loads config, builds the logger, reads the ticks and aggregates
// them into a snapshot.
func (rc *RootConfig) open(cmd *cobra.Command) (*session, error) {
	cfg, err := rc.load(cmd)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return nil, err
	}

	timeout, _ := cfg.Source.ParseTimeout()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	ticks, err := ingest.NewLoader(timeout, log).Load(ctx, cfg.Source.Location())
	if err != nil {
		return nil, err
	}

	snap, err := snapshot.New(ticks, snapshot.Options{
		Precision: cfg.Precision(),
		Trailing:  cfg.TrailingPolicy(),
	})
	if err != nil {
		return nil, err
	}

	log.Debug("snapshot built",
		zap.String("id", snap.ID()),
		zap.Int("ticks", snap.TickCount()),
		zap.Stringer("trailing", snap.Trailing()),
		zap.Int32("precision", int32(snap.Precision())),
	)
	return &session{cfg: cfg, log: log, snap: snap}, nil
}
