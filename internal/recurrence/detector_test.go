package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leaklens/leaklens/internal/model"
)

func charge(merchant string, amount model.Cents, year int, month time.Month, day int) model.CategorizedTransaction {
	return model.CategorizedTransaction{
		Transaction: model.Transaction{
			Date:           time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
			RawDescription: merchant,
			Amount:         amount,
			Currency:       "USD",
		},
		MerchantKey: merchant,
		Category:    model.CategoryOther,
	}
}

func findGroup(t *testing.T, groups []model.RecurringGroup, merchant string) model.RecurringGroup {
	t.Helper()
	for _, g := range groups {
		if g.MerchantKey == merchant {
			return g
		}
	}
	t.Fatalf("no group for merchant %s", merchant)
	return model.RecurringGroup{}
}

func TestDetectMonthlyCadence(t *testing.T) {
	d := NewDetector(DefaultConfig())

	txns := []model.CategorizedTransaction{
		charge("STREAMFLIX", -999, 2024, time.January, 5),
		charge("STREAMFLIX", -999, 2024, time.February, 5),
		charge("STREAMFLIX", -999, 2024, time.March, 5),
		charge("STREAMFLIX", -999, 2024, time.April, 5),
	}

	groups := d.Detect(txns)
	require.Len(t, groups, 1)

	g := groups[0]
	assert.True(t, g.IsRecurring)
	assert.InDelta(t, 30, g.PeriodEstimate, 2)
	assert.Greater(t, g.Confidence, 0.0)
}

func TestDetectWeeklyCadence(t *testing.T) {
	d := NewDetector(DefaultConfig())

	txns := []model.CategorizedTransaction{
		charge("GYM CLASS", -2500, 2024, time.March, 4),
		charge("GYM CLASS", -2500, 2024, time.March, 11),
		charge("GYM CLASS", -2500, 2024, time.March, 18),
		charge("GYM CLASS", -2500, 2024, time.March, 25),
	}

	g := findGroup(t, d.Detect(txns), "GYM CLASS")
	assert.True(t, g.IsRecurring)
	assert.InDelta(t, 7, g.PeriodEstimate, 0.1)
}

func TestSingleOccurrenceNeverRecurring(t *testing.T) {
	d := NewDetector(DefaultConfig())

	txns := []model.CategorizedTransaction{
		charge("ONE OFF STORE", -9900, 2024, time.January, 10),
	}

	groups := d.Detect(txns)
	require.Len(t, groups, 1)
	assert.False(t, groups[0].IsRecurring)
	assert.Zero(t, groups[0].PeriodEstimate)
}

func TestIrregularGapsNotRecurring(t *testing.T) {
	d := NewDetector(DefaultConfig())

	txns := []model.CategorizedTransaction{
		charge("RANDOM SHOP", -1200, 2024, time.January, 2),
		charge("RANDOM SHOP", -1300, 2024, time.January, 5),
		charge("RANDOM SHOP", -1100, 2024, time.March, 20),
		charge("RANDOM SHOP", -1250, 2024, time.March, 28),
	}

	g := findGroup(t, d.Detect(txns), "RANDOM SHOP")
	assert.False(t, g.IsRecurring)
}

func TestSameDayDuplicatesCollapse(t *testing.T) {
	d := NewDetector(DefaultConfig())

	// Two charges on one day must not break an otherwise monthly cadence.
	txns := []model.CategorizedTransaction{
		charge("CLOUD STORE", -499, 2024, time.January, 3),
		charge("CLOUD STORE", -499, 2024, time.February, 3),
		charge("CLOUD STORE", -499, 2024, time.February, 3),
		charge("CLOUD STORE", -499, 2024, time.March, 3),
	}

	g := findGroup(t, d.Detect(txns), "CLOUD STORE")
	assert.True(t, g.IsRecurring)
	assert.InDelta(t, 29.5, g.PeriodEstimate, 1.5)
}

func TestCreditsIgnored(t *testing.T) {
	d := NewDetector(DefaultConfig())

	txns := []model.CategorizedTransaction{
		charge("EMPLOYER PAY", 500000, 2024, time.January, 1),
		charge("EMPLOYER PAY", 500000, 2024, time.February, 1),
	}

	assert.Empty(t, d.Detect(txns))
}

func TestKnownSubscriptionConfidence(t *testing.T) {
	d := NewDetector(DefaultConfig())

	txn := charge("NETFLIX.COM", -1599, 2024, time.January, 12)
	txn.Category = model.CategorySubscriptions

	groups := d.Detect([]model.CategorizedTransaction{txn})
	require.Len(t, groups, 1)

	// A known subscription is confidently reported even from one charge,
	// but a single occurrence is still never a recurring group.
	assert.Equal(t, 0.95, groups[0].Confidence)
	assert.False(t, groups[0].IsRecurring)
}

func TestGroupsSortedByMerchant(t *testing.T) {
	d := NewDetector(DefaultConfig())

	txns := []model.CategorizedTransaction{
		charge("ZETA", -100, 2024, time.January, 1),
		charge("ALPHA", -100, 2024, time.January, 2),
		charge("MIDDLE", -100, 2024, time.January, 3),
	}

	groups := d.Detect(txns)
	require.Len(t, groups, 3)
	assert.Equal(t, "ALPHA", groups[0].MerchantKey)
	assert.Equal(t, "MIDDLE", groups[1].MerchantKey)
	assert.Equal(t, "ZETA", groups[2].MerchantKey)
}
