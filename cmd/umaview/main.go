package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/meur/umaviewer/internal/config"
)

var (
	verbose    bool
	configPath string
	dirFlag    string

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "umaview",
	Short: "Extract, enrich and view Uma Musume veteran data",
	Long: `umaview turns a veteran list dump into a browsable collection.

  1. extract   run UmaExtractor against the running game, producing data.json
  2. enrich    add English names from community tables, producing enriched_data.json
  3. validate  check the output and viewer.html for non-Global terminology
  4. serve     open the local control panel that runs the steps above`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zapCfg := zap.NewProductionConfig()
		zapCfg.Encoding = "console"
		zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		zapCfg.DisableStacktrace = true
		if verbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if dirFlag != "" {
			cfg.Dir = dirFlag
		}
		// Subprocesses run elsewhere, so keep the directory absolute.
		if abs, err := filepath.Abs(cfg.Dir); err == nil {
			cfg.Dir = abs
		}
		logger.Debug("config loaded", zap.String("dir", cfg.Dir), zap.Strings("spark_strategies", cfg.SparkStrategies))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: umaview.yaml if present)")
	rootCmd.PersistentFlags().StringVarP(&dirFlag, "dir", "d", "", "Working directory for data.json and enriched_data.json (default: current)")

	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(enrichCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "[X] Error: %v\n", err)
		os.Exit(1)
	}
}
