package model

import (
	"strings"
	"time"
)

// Date is a calendar date serialized as YYYY-MM-DD in reports.
type Date struct {
	time.Time
}

// NewDate truncates a time to its calendar date.
func NewDate(t time.Time) Date {
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// MarshalJSON encodes the date as "2006-01-02".
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format("2006-01-02") + `"`), nil
}

// UnmarshalJSON decodes a "2006-01-02" date.
func (d *Date) UnmarshalJSON(data []byte) error {
	t, err := time.Parse("2006-01-02", strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// TopMerchant is one entry of a category's top-merchant ranking.
type TopMerchant struct {
	Name  string `json:"name"`
	Total Cents  `json:"total"`
}

// CategorySummary is the per-category rollup of the spending breakdown.
type CategorySummary struct {
	Category         Category      `json:"category"`
	Total            Cents         `json:"total"`
	Percent          float64       `json:"percent"`
	TransactionCount int           `json:"transaction_count"`
	TopMerchants     []TopMerchant `json:"top_merchants"`
}

// PriceChange records a detected increase in a recurring charge.
// Invariants: NewPrice > OldPrice > 0.
type PriceChange struct {
	Merchant      string  `json:"merchant"`
	OldPrice      Cents   `json:"old_price"`
	NewPrice      Cents   `json:"new_price"`
	Increase      Cents   `json:"increase"`
	PercentChange float64 `json:"percent_change"`
	FirstDate     Date    `json:"first_date"`
	LatestDate    Date    `json:"latest_date"`
	YearlyImpact  Cents   `json:"yearly_impact"`
}

// Subscription is a detected recurring charge.
type Subscription struct {
	Merchant    string  `json:"merchant"`
	MonthlyCost Cents   `json:"monthly_cost"`
	AnnualCost  Cents   `json:"annual_cost"`
	Confidence  float64 `json:"confidence"`
	Occurrences int     `json:"occurrences"`
	LastDate    Date    `json:"last_date"`
	Reason      string  `json:"reason"`
}

// Leak is a flagged source of avoidable spend (subscription, fees, food
// delivery, small frequent purchases).
type Leak struct {
	Kind        string `json:"category"`
	Merchant    string `json:"merchant"`
	MonthlyCost Cents  `json:"monthly_cost"`
	YearlyCost  Cents  `json:"yearly_cost"`
	Explanation string `json:"explanation"`
}

// Leak kinds.
const (
	LeakSubscription = "Subscription"
	LeakFees         = "Fees & Charges"
	LeakFoodDelivery = "Food Delivery"
	LeakMicro        = "Small Frequent Purchases"
)

// TopTransaction is one of the largest individual debits.
type TopTransaction struct {
	Date     Date     `json:"date"`
	Merchant string   `json:"merchant"`
	Amount   Cents    `json:"amount"`
	Category Category `json:"category"`
}

// CategoryChange is one category's month-over-month delta.
type CategoryChange struct {
	Category      Category `json:"category"`
	Previous      Cents    `json:"previous"`
	Current       Cents    `json:"current"`
	Change        Cents    `json:"change"`
	ChangePercent float64  `json:"change_percent"`
}

// MonthComparison compares the two most recent months of a statement
// spanning more than two months of data.
type MonthComparison struct {
	PreviousMonth      string           `json:"previous_month"`
	CurrentMonth       string           `json:"current_month"`
	PreviousTotal      Cents            `json:"previous_total"`
	CurrentTotal       Cents            `json:"current_total"`
	TotalChange        Cents            `json:"total_change"`
	TotalChangePercent float64          `json:"total_change_percent"`
	TopChanges         []CategoryChange `json:"top_changes"`
	Spikes             []CategoryChange `json:"spikes"`
	MonthsAnalyzed     int              `json:"months_analyzed"`
}

// Metadata describes the analyzed statement.
type Metadata struct {
	StartDate        Date     `json:"start_date"`
	EndDate          Date     `json:"end_date"`
	DaysCovered      int      `json:"days_covered"`
	TransactionCount int      `json:"transaction_count"`
	SkippedCount     int      `json:"skipped_count"`
	Currency         string   `json:"currency"`
	Warnings         []string `json:"warnings,omitempty"`
}

// AnalysisResult is the engine's sole output: the full report handed to
// persistence, export and UI consumers. Sequences carry deterministic
// ordering so identical input serializes byte-identically.
type AnalysisResult struct {
	Categories    []CategorySummary `json:"category_summary"`
	PriceChanges  []PriceChange     `json:"price_changes"`
	Subscriptions []Subscription    `json:"subscriptions"`
	Leaks         []Leak            `json:"top_leaks"`
	TopSpending   []TopTransaction  `json:"top_spending"`
	Comparison    *MonthComparison  `json:"comparison,omitempty"`
	MonthlyLeak   Cents             `json:"monthly_leak"`
	AnnualSavings Cents             `json:"annual_savings"`
	Metadata      Metadata          `json:"metadata"`
}
