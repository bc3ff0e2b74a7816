// Package model defines the data types shared across the analysis engine.
package model

import "time"

// Transaction is a single normalized statement entry as produced by an
// external statement parser. Negative amounts are debits. Transactions
// are immutable once ingested; every pipeline stage produces new values
// instead of editing them.
type Transaction struct {
	Date           time.Time
	RawDescription string
	Currency       string
	Amount         Cents
}

// IsDebit reports whether the transaction is an outgoing charge.
func (t Transaction) IsDebit() bool {
	return t.Amount < 0
}

// CategorizedTransaction is a Transaction enriched with its derived
// merchant key and assigned category.
type CategorizedTransaction struct {
	Transaction
	MerchantKey string
	Category    Category
}

// RecurringGroup is one merchant's transactions judged against a periodic
// charge pattern. It exists only inside a single analysis run.
type RecurringGroup struct {
	MerchantKey    string
	Transactions   []CategorizedTransaction // ordered by date
	PeriodEstimate float64                  // median gap in days
	Confidence     float64
	Reason         string
	IsRecurring    bool
}
