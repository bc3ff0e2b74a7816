package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/leaklens/leaklens/internal/model"
)

func TestRenderReport(t *testing.T) {
	result := &model.AnalysisResult{
		Categories: []model.CategorySummary{
			{Category: model.CategoryGroceries, Total: 8450, Percent: 70, TransactionCount: 2},
			{Category: model.CategoryDining, Total: 3621, Percent: 30, TransactionCount: 3},
		},
		PriceChanges: []model.PriceChange{
			{
				Merchant:      "STREAMFLIX",
				OldPrice:      999,
				NewPrice:      1299,
				Increase:      300,
				PercentChange: 30.03,
				FirstDate:     model.NewDate(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)),
				LatestDate:    model.NewDate(time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC)),
				YearlyImpact:  3600,
			},
		},
		Subscriptions: []model.Subscription{
			{Merchant: "STREAMFLIX", MonthlyCost: 1299, AnnualCost: 15588, Confidence: 0.85, Occurrences: 5},
		},
		Leaks: []model.Leak{
			{Merchant: "STREAMFLIX", Kind: model.LeakSubscription, MonthlyCost: 1299, YearlyCost: 15588, Explanation: "recurring charge"},
		},
		TopSpending: []model.TopTransaction{
			{Date: model.NewDate(time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)), Merchant: "WOOLWORTHS", Amount: 8450, Category: model.CategoryGroceries},
		},
		MonthlyLeak:   1299,
		AnnualSavings: 19188,
		Metadata: model.Metadata{
			StartDate:        model.NewDate(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)),
			EndDate:          model.NewDate(time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC)),
			DaysCovered:      121,
			TransactionCount: 6,
			Currency:         "USD",
		},
	}

	out := RenderReport(result)

	assert.Contains(t, out, "STREAMFLIX")
	assert.Contains(t, out, "WOOLWORTHS")
	assert.Contains(t, out, string(model.CategoryGroceries))
	assert.NotEmpty(t, out)
}

func TestRenderReportEmpty(t *testing.T) {
	result := &model.AnalysisResult{
		Categories:    []model.CategorySummary{},
		PriceChanges:  []model.PriceChange{},
		Subscriptions: []model.Subscription{},
		Leaks:         []model.Leak{},
		TopSpending:   []model.TopTransaction{},
	}

	assert.NotEmpty(t, RenderReport(result))
}
