// Package pricing finds price increases inside recurring charge groups
// and quantifies their yearly cost impact.
package pricing

import (
	"time"

	"github.com/leaklens/leaklens/internal/model"
)

// Config holds the stable-level and increase thresholds. Exposed as
// configuration because the exact tolerances are product-tuning values.
type Config struct {
	// LevelTolerance is the rounding slack within which two amounts count
	// as the same price level.
	LevelTolerance model.Cents
	// MinStableRun is how many consecutive occurrences an amount needs to
	// count as a stable level. A single outlier charge never forms one.
	MinStableRun int
	// MinIncrease and MinIncreasePercent must both be exceeded for an
	// increase to be reported.
	MinIncrease        model.Cents
	MinIncreasePercent float64
	// MaxOccurrencesPerYear caps the yearly extrapolation so sub-weekly
	// noise is not over-counted.
	MaxOccurrencesPerYear float64
}

// DefaultConfig returns the tuned defaults.
func DefaultConfig() Config {
	return Config{
		LevelTolerance:        2,
		MinStableRun:          2,
		MinIncrease:           50,
		MinIncreasePercent:    2.0,
		MaxOccurrencesPerYear: 12,
	}
}

// Detector scans recurring groups for stable price-level increases.
type Detector struct {
	cfg Config
}

// NewDetector creates a detector with the given thresholds.
func NewDetector(cfg Config) *Detector {
	return &Detector{cfg: cfg}
}

// priceLevel is a run of consecutive charges at the same price.
type priceLevel struct {
	first time.Time
	last  time.Time
	price model.Cents
	count int
}

// Detect emits one PriceChange per stable level increase across all
// recurring groups, in group order and chronological within a group.
// Decreases are never reported.
func (d *Detector) Detect(groups []model.RecurringGroup) []model.PriceChange {
	changes := make([]model.PriceChange, 0)

	for _, g := range groups {
		if !g.IsRecurring || g.PeriodEstimate <= 0 {
			continue
		}
		changes = append(changes, d.detectGroup(g)...)
	}
	return changes
}

func (d *Detector) detectGroup(g model.RecurringGroup) []model.PriceChange {
	levels := d.stableLevels(g.Transactions)

	perYear := 365 / g.PeriodEstimate
	if perYear > d.cfg.MaxOccurrencesPerYear {
		perYear = d.cfg.MaxOccurrencesPerYear
	}

	var changes []model.PriceChange
	for i := 1; i < len(levels); i++ {
		old, next := levels[i-1], levels[i]
		if old.price <= 0 || next.price <= old.price {
			continue
		}

		increase := next.price - old.price
		percent := increase.Float() / old.price.Float() * 100
		if increase <= d.cfg.MinIncrease || percent <= d.cfg.MinIncreasePercent {
			continue
		}

		changes = append(changes, model.PriceChange{
			Merchant:      g.MerchantKey,
			OldPrice:      old.price,
			NewPrice:      next.price,
			Increase:      increase,
			PercentChange: percent,
			FirstDate:     model.NewDate(old.last),
			LatestDate:    model.NewDate(next.first),
			YearlyImpact:  model.CentsFromFloat(increase.Float() * perYear),
		})
	}
	return changes
}

// stableLevels compresses the date-ordered charge amounts into runs and
// keeps only runs long enough to count as a level, merging adjacent runs
// that land back on the same price. Transactions must already be sorted
// by date.
func (d *Detector) stableLevels(txns []model.CategorizedTransaction) []priceLevel {
	var runs []priceLevel
	for _, t := range txns {
		amount := t.Amount.Abs()
		if len(runs) > 0 && sameLevel(runs[len(runs)-1].price, amount, d.cfg.LevelTolerance) {
			cur := &runs[len(runs)-1]
			cur.count++
			cur.last = t.Date
			continue
		}
		runs = append(runs, priceLevel{
			price: amount,
			first: t.Date,
			last:  t.Date,
			count: 1,
		})
	}

	var levels []priceLevel
	for _, r := range runs {
		if r.count < d.cfg.MinStableRun {
			continue
		}
		if len(levels) > 0 && sameLevel(levels[len(levels)-1].price, r.price, d.cfg.LevelTolerance) {
			prev := &levels[len(levels)-1]
			prev.count += r.count
			prev.last = r.last
			continue
		}
		levels = append(levels, r)
	}
	return levels
}

func sameLevel(a, b, tolerance model.Cents) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff <= tolerance
}
