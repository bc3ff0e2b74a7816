// Package aggregate rolls categorized transactions up into the spending
// breakdown: per-category totals and percentages, top merchants, largest
// individual debits, and month-over-month comparison.
package aggregate

import (
	"sort"
	"time"

	"github.com/leaklens/leaklens/internal/model"
)

// Summaries builds one CategorySummary per category with at least one
// debit. Transfers and Income are not spending: they are omitted and
// excluded from the percent denominator. Output is ordered by descending
// total, ties broken by category name; top merchants are capped at
// topMerchants, ties broken by merchant key.
func Summaries(txns []model.CategorizedTransaction, topMerchants int) []model.CategorySummary {
	type bucket struct {
		merchants map[string]model.Cents
		total     model.Cents
		count     int
	}

	buckets := make(map[model.Category]*bucket)
	var totalSpend model.Cents

	for _, t := range txns {
		if !t.IsDebit() || !t.Category.IsSpending() {
			continue
		}

		b := buckets[t.Category]
		if b == nil {
			b = &bucket{merchants: make(map[string]model.Cents)}
			buckets[t.Category] = b
		}

		amount := t.Amount.Abs()
		b.total += amount
		b.count++
		b.merchants[t.MerchantKey] += amount
		totalSpend += amount
	}

	summaries := make([]model.CategorySummary, 0, len(buckets))
	for category, b := range buckets {
		percent := 0.0
		if totalSpend > 0 {
			percent = b.total.Float() / totalSpend.Float() * 100
		}

		summaries = append(summaries, model.CategorySummary{
			Category:         category,
			Total:            b.total,
			Percent:          percent,
			TransactionCount: b.count,
			TopMerchants:     rankMerchants(b.merchants, topMerchants),
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Total != summaries[j].Total {
			return summaries[i].Total > summaries[j].Total
		}
		return summaries[i].Category < summaries[j].Category
	})
	return summaries
}

func rankMerchants(totals map[string]model.Cents, limit int) []model.TopMerchant {
	ranked := make([]model.TopMerchant, 0, len(totals))
	for name, total := range totals {
		ranked = append(ranked, model.TopMerchant{Name: name, Total: total})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Total != ranked[j].Total {
			return ranked[i].Total > ranked[j].Total
		}
		return ranked[i].Name < ranked[j].Name
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// TopSpending returns the limit largest individual debits, descending by
// amount with date and merchant tie-breaks for determinism.
func TopSpending(txns []model.CategorizedTransaction, limit int) []model.TopTransaction {
	debits := make([]model.CategorizedTransaction, 0, len(txns))
	for _, t := range txns {
		if t.IsDebit() {
			debits = append(debits, t)
		}
	}

	sort.Slice(debits, func(i, j int) bool {
		ai, aj := debits[i].Amount.Abs(), debits[j].Amount.Abs()
		if ai != aj {
			return ai > aj
		}
		if !debits[i].Date.Equal(debits[j].Date) {
			return debits[i].Date.Before(debits[j].Date)
		}
		return debits[i].MerchantKey < debits[j].MerchantKey
	})

	if len(debits) > limit {
		debits = debits[:limit]
	}

	top := make([]model.TopTransaction, 0, len(debits))
	for _, t := range debits {
		top = append(top, model.TopTransaction{
			Date:     model.NewDate(t.Date),
			Merchant: t.MerchantKey,
			Amount:   t.Amount.Abs(),
			Category: t.Category,
		})
	}
	return top
}

// DateRange returns the first and last transaction dates and the number
// of days between them.
func DateRange(txns []model.CategorizedTransaction) (start, end time.Time, days int) {
	if len(txns) == 0 {
		return time.Time{}, time.Time{}, 0
	}

	start, end = txns[0].Date, txns[0].Date
	for _, t := range txns[1:] {
		if t.Date.Before(start) {
			start = t.Date
		}
		if t.Date.After(end) {
			end = t.Date
		}
	}
	return start, end, int(end.Sub(start).Hours() / 24)
}

// comparisonMinDays is the statement span required before a month
// comparison is meaningful.
const comparisonMinDays = 60

// MonthComparison compares spending between the two most recent months.
// Returns nil when the statement covers fewer than comparisonMinDays or
// fewer than two calendar months.
func MonthComparison(txns []model.CategorizedTransaction) *model.MonthComparison {
	_, _, days := DateRange(txns)
	if days < comparisonMinDays {
		return nil
	}

	type monthBucket struct {
		categories map[model.Category]model.Cents
		total      model.Cents
	}

	months := make(map[string]*monthBucket)
	for _, t := range txns {
		if !t.IsDebit() || !t.Category.IsSpending() {
			continue
		}

		key := t.Date.Format("2006-01")
		b := months[key]
		if b == nil {
			b = &monthBucket{categories: make(map[model.Category]model.Cents)}
			months[key] = b
		}
		b.total += t.Amount.Abs()
		b.categories[t.Category] += t.Amount.Abs()
	}

	if len(months) < 2 {
		return nil
	}

	keys := make([]string, 0, len(months))
	for k := range months {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	prevKey, currKey := keys[len(keys)-2], keys[len(keys)-1]
	prev, curr := months[prevKey], months[currKey]

	totalChange := curr.total - prev.total
	totalChangePct := 0.0
	if prev.total > 0 {
		totalChangePct = totalChange.Float() / prev.total.Float() * 100
	}

	seen := make(map[model.Category]bool)
	for c := range prev.categories {
		seen[c] = true
	}
	for c := range curr.categories {
		seen[c] = true
	}

	changes := make([]model.CategoryChange, 0, len(seen))
	for c := range seen {
		p, q := prev.categories[c], curr.categories[c]
		delta := q - p
		pct := 0.0
		switch {
		case p > 0:
			pct = delta.Float() / p.Float() * 100
		case q > 0:
			pct = 100
		}
		changes = append(changes, model.CategoryChange{
			Category:      c,
			Previous:      p,
			Current:       q,
			Change:        delta,
			ChangePercent: pct,
		})
	}

	sort.Slice(changes, func(i, j int) bool {
		ai, aj := changes[i].Change.Abs(), changes[j].Change.Abs()
		if ai != aj {
			return ai > aj
		}
		return changes[i].Category < changes[j].Category
	})

	var spikes []model.CategoryChange
	for _, c := range changes {
		if c.ChangePercent > 30 && c.Change > 2000 {
			spikes = append(spikes, c)
		}
	}
	if len(spikes) > 3 {
		spikes = spikes[:3]
	}

	top := changes
	if len(top) > 5 {
		top = top[:5]
	}

	return &model.MonthComparison{
		PreviousMonth:      prevKey,
		CurrentMonth:       currKey,
		PreviousTotal:      prev.total,
		CurrentTotal:       curr.total,
		TotalChange:        totalChange,
		TotalChangePercent: totalChangePct,
		TopChanges:         top,
		Spikes:             spikes,
		MonthsAnalyzed:     len(keys),
	}
}
