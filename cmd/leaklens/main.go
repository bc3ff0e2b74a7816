package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/leaklens/leaklens/internal/cli"
	"github.com/leaklens/leaklens/internal/common"
)

var (
	cfgFile string
	version = "dev"
	rootCmd = &cobra.Command{
		Use:   "leaklens",
		Short: "🔍 Spending leak analysis for bank statements",
		Long: `leaklens analyzes a normalized bank statement export and reports
where your money goes: category breakdowns, recurring subscriptions,
price increases on those subscriptions, and projected yearly savings.`,
		PersistentPreRunE: initConfig,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/leaklens/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")

	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(reportsCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Received interrupt signal, shutting down gracefully...")
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	cancel()

	if err != nil {
		common.LogError(err, "command failed", common.Fields{"command": rootCmd.CalledAs()})
		fmt.Fprintln(os.Stderr, cli.FormatError(err.Error()))
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		viper.AddConfigPath(fmt.Sprintf("%s/.config/leaklens", home))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("LEAKLENS")
	viper.AutomaticEnv()

	setAnalysisDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if cfgFile != "" && errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("%w: %s", common.ErrMissingConfig, cfgFile)
			}
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	if err := setupLogging(); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	return nil
}

// setAnalysisDefaults registers the tuned analysis thresholds so every
// one of them can be overridden from the config file or environment.
func setAnalysisDefaults() {
	viper.SetDefault("analysis.top_merchants", 3)
	viper.SetDefault("analysis.top_spending", 5)
	viper.SetDefault("analysis.max_leaks", 10)
	viper.SetDefault("analysis.subscription_confidence", 0.5)
	viper.SetDefault("analysis.workers", 0)
	viper.SetDefault("analysis.recurrence.min_occurrences", 2)
	viper.SetDefault("analysis.recurrence.max_gap_cv", 0.35)
	viper.SetDefault("analysis.recurrence.min_period_days", 3.5)
	viper.SetDefault("analysis.recurrence.max_period_days", 370.0)
	viper.SetDefault("analysis.pricing.level_tolerance_cents", 2)
	viper.SetDefault("analysis.pricing.min_stable_run", 2)
	viper.SetDefault("analysis.pricing.min_increase_cents", 50)
	viper.SetDefault("analysis.pricing.min_increase_percent", 2.0)
	viper.SetDefault("analysis.pricing.max_occurrences_per_year", 12.0)
}

func setupLogging() error {
	level := viper.GetString("logging.level")
	format := viper.GetString("logging.format")

	var slogLevel slog.Level
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "info":
		slogLevel = slog.LevelInfo
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		return fmt.Errorf("%w: unknown log level %q", common.ErrInvalidConfig, level)
	}

	switch format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: unknown log format %q", common.ErrInvalidConfig, format)
	}

	return common.SetupLogger(slogLevel, format)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			common.LogInfo("leaklens version", common.Fields{"version": version})
		},
	}
}
