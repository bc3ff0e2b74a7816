package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/leaklens/leaklens/internal/cli"
	"github.com/leaklens/leaklens/internal/common"
	"github.com/leaklens/leaklens/internal/config"
	"github.com/leaklens/leaklens/internal/engine"
	"github.com/leaklens/leaklens/internal/ingest"
	"github.com/leaklens/leaklens/internal/model"
	"github.com/leaklens/leaklens/internal/pricing"
	"github.com/leaklens/leaklens/internal/recurrence"
	"github.com/leaklens/leaklens/internal/storage"
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <transactions.csv>",
		Short: "Analyze a statement export for spending leaks",
		Long: `Run the analysis pipeline over a normalized transaction CSV
(columns: date, description, amount, optional currency) and report
category breakdowns, subscriptions, price increases and savings.`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().StringP("format", "f", "pretty", "Output format (pretty, json)")
	cmd.Flags().String("currency", "USD", "Currency for rows without a currency column")
	cmd.Flags().Bool("save", false, "Persist the report to the local report store")

	_ = viper.BindPFlag("analyze.format", cmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("analyze.currency", cmd.Flags().Lookup("currency"))
	_ = viper.BindPFlag("analyze.save", cmd.Flags().Lookup("save"))

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	reader := &ingest.Reader{DefaultCurrency: viper.GetString("analyze.currency")}

	txns, warnings, err := reader.ReadFile(args[0])
	if err != nil {
		return err
	}
	common.LogDebug("statement ingested", common.Fields{
		"file":         args[0],
		"transactions": len(txns),
		"skipped_rows": len(warnings),
	})
	for _, w := range warnings {
		slog.Warn("skipped input row", "detail", w)
	}

	eng := engine.New(engineConfigFromViper())
	result, err := eng.Analyze(cmd.Context(), txns)
	if err != nil {
		return err
	}

	switch viper.GetString("analyze.format") {
	case "json":
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to serialize result: %w", err)
		}
		fmt.Fprintln(os.Stdout, string(out))
	case "pretty":
		fmt.Fprint(os.Stdout, cli.RenderReport(result))
	default:
		return fmt.Errorf("unknown output format %q", viper.GetString("analyze.format"))
	}

	if viper.GetBool("analyze.save") {
		id, err := saveReport(cmd, result)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, cli.FormatSuccess("saved report "+id))
	}

	return nil
}

func saveReport(cmd *cobra.Command, result *model.AnalysisResult) (string, error) {
	dbPath, err := config.DatabasePath()
	if err != nil {
		return "", err
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return "", err
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(cmd.Context()); err != nil {
		return "", err
	}
	return store.SaveReport(cmd.Context(), result)
}

// engineConfigFromViper assembles the engine thresholds from the
// analysis.* configuration keys.
func engineConfigFromViper() engine.Config {
	return engine.Config{
		TopMerchants:           viper.GetInt("analysis.top_merchants"),
		TopSpending:            viper.GetInt("analysis.top_spending"),
		MaxLeaks:               viper.GetInt("analysis.max_leaks"),
		SubscriptionConfidence: viper.GetFloat64("analysis.subscription_confidence"),
		Workers:                viper.GetInt("analysis.workers"),
		Recurrence: recurrence.Config{
			MinOccurrences: viper.GetInt("analysis.recurrence.min_occurrences"),
			MaxGapCV:       viper.GetFloat64("analysis.recurrence.max_gap_cv"),
			MinPeriodDays:  viper.GetFloat64("analysis.recurrence.min_period_days"),
			MaxPeriodDays:  viper.GetFloat64("analysis.recurrence.max_period_days"),
		},
		Pricing: pricing.Config{
			LevelTolerance:        model.Cents(viper.GetInt64("analysis.pricing.level_tolerance_cents")),
			MinStableRun:          viper.GetInt("analysis.pricing.min_stable_run"),
			MinIncrease:           model.Cents(viper.GetInt64("analysis.pricing.min_increase_cents")),
			MinIncreasePercent:    viper.GetFloat64("analysis.pricing.min_increase_percent"),
			MaxOccurrencesPerYear: viper.GetFloat64("analysis.pricing.max_occurrences_per_year"),
		},
	}
}
