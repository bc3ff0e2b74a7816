// Package engine orchestrates the analysis pipeline: normalization and
// categorization per transaction, recurrence and price-change detection
// per merchant, and the final spending report. The engine is stateless;
// concurrent analyses share only the read-only rule table.
package engine

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/leaklens/leaklens/internal/aggregate"
	"github.com/leaklens/leaklens/internal/categorize"
	"github.com/leaklens/leaklens/internal/common"
	"github.com/leaklens/leaklens/internal/model"
	"github.com/leaklens/leaklens/internal/normalize"
	"github.com/leaklens/leaklens/internal/pricing"
	"github.com/leaklens/leaklens/internal/recurrence"
)

// Config collects every tuning threshold the pipeline uses. Values come
// from configuration so they can be validated against representative
// statement fixtures instead of being baked in.
type Config struct {
	Recurrence             recurrence.Config
	Pricing                pricing.Config
	TopMerchants           int
	TopSpending            int
	MaxLeaks               int
	SubscriptionConfidence float64
	Workers                int
}

// DefaultConfig returns the tuned defaults.
func DefaultConfig() Config {
	return Config{
		Recurrence:             recurrence.DefaultConfig(),
		Pricing:                pricing.DefaultConfig(),
		TopMerchants:           3,
		TopSpending:            5,
		MaxLeaks:               10,
		SubscriptionConfidence: 0.5,
		Workers:                runtime.NumCPU(),
	}
}

// Engine runs the analysis pipeline for one statement per invocation.
type Engine struct {
	categorizer *categorize.Categorizer
	recurrence  *recurrence.Detector
	pricing     *pricing.Detector
	cfg         Config
}

// New creates an engine with the default rule table.
func New(cfg Config) *Engine {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return &Engine{
		cfg:         cfg,
		categorizer: categorize.NewDefault(),
		recurrence:  recurrence.NewDetector(cfg.Recurrence),
		pricing:     pricing.NewDetector(cfg.Pricing),
	}
}

// Analyze turns a normalized transaction batch into an AnalysisResult.
// Empty or fully skipped input yields a valid empty result; genuine
// defects (mixed or missing currency) are returned as errors.
func (e *Engine) Analyze(ctx context.Context, txns []model.Transaction) (*model.AnalysisResult, error) {
	kept, warnings := filterTransactions(txns)

	if len(kept) == 0 {
		result := emptyResult()
		result.Metadata.SkippedCount = len(txns) - len(kept)
		result.Metadata.Warnings = warnings
		return result, nil
	}

	currency, err := statementCurrency(kept)
	if err != nil {
		return nil, err
	}

	// Deterministic processing order: date, then description, then amount.
	sort.SliceStable(kept, func(i, j int) bool {
		if !kept[i].Date.Equal(kept[j].Date) {
			return kept[i].Date.Before(kept[j].Date)
		}
		if kept[i].RawDescription != kept[j].RawDescription {
			return kept[i].RawDescription < kept[j].RawDescription
		}
		return kept[i].Amount < kept[j].Amount
	})

	categorized, err := e.categorizeAll(ctx, kept)
	if err != nil {
		return nil, err
	}

	// Merchant keys that differ only by residual noise collapse here,
	// before the grouping barrier.
	canon := normalize.NewCanonicalizer()
	for i := range categorized {
		categorized[i].MerchantKey = canon.Canonical(categorized[i].MerchantKey)
	}

	groups := e.recurrence.Detect(categorized)

	priceChanges := e.pricing.Detect(groups)
	sort.SliceStable(priceChanges, func(i, j int) bool {
		if priceChanges[i].YearlyImpact != priceChanges[j].YearlyImpact {
			return priceChanges[i].YearlyImpact > priceChanges[j].YearlyImpact
		}
		return priceChanges[i].Merchant < priceChanges[j].Merchant
	})

	subscriptions := e.subscriptions(groups)
	leaks, monthlyLeak := e.detectLeaks(categorized, groups, subscriptions)

	var priceImpact model.Cents
	for _, pc := range priceChanges {
		priceImpact += pc.YearlyImpact
	}

	start, end, days := aggregate.DateRange(categorized)

	result := &model.AnalysisResult{
		Categories:    aggregate.Summaries(categorized, e.cfg.TopMerchants),
		PriceChanges:  priceChanges,
		Subscriptions: subscriptions,
		Leaks:         leaks,
		TopSpending:   aggregate.TopSpending(categorized, e.cfg.TopSpending),
		Comparison:    aggregate.MonthComparison(categorized),
		MonthlyLeak:   monthlyLeak,
		AnnualSavings: model.Cents(int64(monthlyLeak)*12) + priceImpact,
		Metadata: model.Metadata{
			StartDate:        model.NewDate(start),
			EndDate:          model.NewDate(end),
			DaysCovered:      days,
			TransactionCount: len(categorized),
			SkippedCount:     len(txns) - len(kept),
			Currency:         currency,
			Warnings:         warnings,
		},
	}
	return result, nil
}

// categorizeAll runs normalization and categorization per transaction
// across a worker pool. Each transaction is independent, so only the
// ordered merge into the output slice matters.
func (e *Engine) categorizeAll(ctx context.Context, txns []model.Transaction) ([]model.CategorizedTransaction, error) {
	out := make([]model.CategorizedTransaction, len(txns))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Workers)

	for i, txn := range txns {
		i, txn := i, txn
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			key := normalize.Key(txn.RawDescription)
			out[i] = model.CategorizedTransaction{
				Transaction: txn,
				MerchantKey: key,
				Category:    e.categorizer.Categorize(txn, key),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("categorization failed: %w", err)
	}
	return out, nil
}

// subscriptions surfaces the groups confident enough to call recurring
// charges, ordered by monthly cost descending.
func (e *Engine) subscriptions(groups []model.RecurringGroup) []model.Subscription {
	subs := make([]model.Subscription, 0)

	for _, g := range groups {
		if g.Confidence < e.cfg.SubscriptionConfidence {
			continue
		}

		var total model.Cents
		for _, t := range g.Transactions {
			total += t.Amount.Abs()
		}
		avg := total.Float() / float64(len(g.Transactions))

		// Normalize to a monthly figure using the detected cadence; known
		// subscriptions without a confirmed cadence are assumed monthly.
		perMonth := 1.0
		if g.IsRecurring && g.PeriodEstimate > 0 {
			perMonth = 30.44 / g.PeriodEstimate
		}
		monthly := model.CentsFromFloat(avg * perMonth)

		last := g.Transactions[len(g.Transactions)-1].Date

		subs = append(subs, model.Subscription{
			Merchant:    g.MerchantKey,
			MonthlyCost: monthly,
			AnnualCost:  model.Cents(int64(monthly) * 12),
			Confidence:  g.Confidence,
			Occurrences: len(g.Transactions),
			LastDate:    model.NewDate(last),
			Reason:      g.Reason,
		})
	}

	sort.SliceStable(subs, func(i, j int) bool {
		if subs[i].MonthlyCost != subs[j].MonthlyCost {
			return subs[i].MonthlyCost > subs[j].MonthlyCost
		}
		return subs[i].Merchant < subs[j].Merchant
	})
	return subs
}

// statementCurrency validates the single-currency assumption.
func statementCurrency(txns []model.Transaction) (string, error) {
	currency := ""
	for _, t := range txns {
		if t.Currency == "" {
			continue
		}
		if currency == "" {
			currency = t.Currency
			continue
		}
		if t.Currency != currency {
			return "", fmt.Errorf("%w: %s and %s", common.ErrMixedCurrencies, currency, t.Currency)
		}
	}

	if currency == "" {
		return "", common.ErrUnknownCurrency
	}
	return currency, nil
}

func emptyResult() *model.AnalysisResult {
	return &model.AnalysisResult{
		Categories:    []model.CategorySummary{},
		PriceChanges:  []model.PriceChange{},
		Subscriptions: []model.Subscription{},
		Leaks:         []model.Leak{},
		TopSpending:   []model.TopTransaction{},
	}
}
