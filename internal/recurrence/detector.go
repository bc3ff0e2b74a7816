// Package recurrence identifies merchants whose charges follow a
// periodic cadence. Recurring groups gate both subscription labeling and
// price-change detection: without the cadence check, two unrelated
// one-off purchases would be misread as a price increase.
package recurrence

import (
	"fmt"
	"math"
	"sort"

	"github.com/leaklens/leaklens/internal/model"
)

// Config holds the cadence and amount-consistency thresholds. These are
// product-tuning parameters surfaced through configuration.
type Config struct {
	// MinOccurrences is the minimum number of distinct charge dates.
	MinOccurrences int
	// MaxGapCV is the maximum coefficient of variation of day-gaps for a
	// group to count as periodic.
	MaxGapCV float64
	// MinPeriodDays and MaxPeriodDays bound the accepted cadence, from
	// roughly weekly to roughly annual.
	MinPeriodDays float64
	MaxPeriodDays float64
}

// DefaultConfig returns the tuned defaults.
func DefaultConfig() Config {
	return Config{
		MinOccurrences: 2,
		MaxGapCV:       0.35,
		MinPeriodDays:  3.5,
		MaxPeriodDays:  370,
	}
}

// Detector groups transactions by merchant key and scores each group's
// charge cadence.
type Detector struct {
	cfg Config
}

// NewDetector creates a detector with the given thresholds.
func NewDetector(cfg Config) *Detector {
	return &Detector{cfg: cfg}
}

// Detect builds one group per merchant from the debit transactions and
// marks the periodic ones. Groups are returned sorted by merchant key;
// transactions within a group are sorted by date.
func (d *Detector) Detect(txns []model.CategorizedTransaction) []model.RecurringGroup {
	byMerchant := make(map[string][]model.CategorizedTransaction)
	for _, t := range txns {
		if !t.IsDebit() {
			continue
		}
		byMerchant[t.MerchantKey] = append(byMerchant[t.MerchantKey], t)
	}

	keys := make([]string, 0, len(byMerchant))
	for k := range byMerchant {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	groups := make([]model.RecurringGroup, 0, len(keys))
	for _, key := range keys {
		group := byMerchant[key]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Date.Before(group[j].Date)
		})
		groups = append(groups, d.score(key, group))
	}
	return groups
}

// score evaluates one merchant's charge history.
func (d *Detector) score(key string, txns []model.CategorizedTransaction) model.RecurringGroup {
	g := model.RecurringGroup{
		MerchantKey:  key,
		Transactions: txns,
	}

	gaps := dayGaps(txns)
	occurrences := len(gaps) + 1

	periodic := false
	if occurrences >= d.cfg.MinOccurrences && len(gaps) > 0 {
		median := medianOf(gaps)
		cv := coefficientOfVariation(gaps)
		if median >= d.cfg.MinPeriodDays && median <= d.cfg.MaxPeriodDays && cv <= d.cfg.MaxGapCV {
			periodic = true
			g.PeriodEstimate = median
		}
	}
	g.IsRecurring = periodic

	consistent := amountsConsistent(txns, 200, 0.05)
	known := isKnownSubscription(txns)

	switch {
	case known:
		g.Confidence = 0.95
		g.Reason = "known subscription service"
	case periodic && len(txns) >= 3 && consistent:
		g.Confidence = 0.85
		g.Reason = fmt.Sprintf("recurring pattern: %d charges, ~%.0f days apart", len(txns), g.PeriodEstimate)
	case periodic && consistent:
		g.Confidence = 0.70
		g.Reason = fmt.Sprintf("consistent amounts: %d charges", len(txns))
	case periodic:
		g.Confidence = 0.60
		g.Reason = fmt.Sprintf("periodic charges: %d charges, ~%.0f days apart", len(txns), g.PeriodEstimate)
	}

	return g
}

// dayGaps returns the day deltas between consecutive distinct charge
// dates. Same-day duplicates collapse into one occurrence so they don't
// break an otherwise clean cadence.
func dayGaps(txns []model.CategorizedTransaction) []float64 {
	var gaps []float64
	for i := 1; i < len(txns); i++ {
		days := txns[i].Date.Sub(txns[i-1].Date).Hours() / 24
		if days < 1 {
			continue
		}
		gaps = append(gaps, days)
	}
	return gaps
}

func medianOf(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func coefficientOfVariation(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	if mean == 0 {
		return 0
	}

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	variance := sq / float64(len(values))

	return math.Sqrt(variance) / mean
}

// amountsConsistent reports whether the absolute amounts stay within an
// absolute or relative spread.
func amountsConsistent(txns []model.CategorizedTransaction, maxSpread model.Cents, maxRatio float64) bool {
	if len(txns) == 0 {
		return false
	}

	minAmt := txns[0].Amount.Abs()
	maxAmt := minAmt
	var total model.Cents
	for _, t := range txns {
		a := t.Amount.Abs()
		if a < minAmt {
			minAmt = a
		}
		if a > maxAmt {
			maxAmt = a
		}
		total += a
	}

	spread := maxAmt - minAmt
	if spread <= maxSpread {
		return true
	}

	avg := total.Float() / float64(len(txns))
	return avg > 0 && spread.Float()/avg <= maxRatio
}

func isKnownSubscription(txns []model.CategorizedTransaction) bool {
	for _, t := range txns {
		if t.Category == model.CategorySubscriptions {
			return true
		}
	}
	return false
}
