package engine

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/leaklens/leaklens/internal/model"
)

// excludeKeywords mark statement lines that are balances or summaries,
// not transactions.
var excludeKeywords = []string{
	"BALANCE", "TOTAL", "OPENING", "CLOSING", "BROUGHT FORWARD",
	"CARRIED FORWARD", "AVAILABLE", "PENDING", "CREDIT LIMIT",
}

// filterTransactions drops entries that cannot be analyzed, collecting a
// warning for each. Skipping never aborts the analysis.
func filterTransactions(txns []model.Transaction) ([]model.Transaction, []string) {
	kept := make([]model.Transaction, 0, len(txns))
	var warnings []string

	for _, t := range txns {
		desc := strings.ToUpper(strings.TrimSpace(t.RawDescription))

		switch {
		case t.Date.IsZero():
			warnings = append(warnings, fmt.Sprintf("skipped %q: missing date", t.RawDescription))
		case t.Amount == 0:
			warnings = append(warnings, fmt.Sprintf("skipped %q: zero amount", t.RawDescription))
		case len(desc) < 2 || isAllDigits(desc):
			warnings = append(warnings, fmt.Sprintf("skipped %q: no usable description", t.RawDescription))
		case containsAny(desc, excludeKeywords):
			warnings = append(warnings, fmt.Sprintf("skipped %q: statement summary line", t.RawDescription))
		default:
			kept = append(kept, t)
		}
	}
	return kept, warnings
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func isAllDigits(s string) bool {
	seen := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		if !unicode.IsDigit(r) {
			return false
		}
		seen = true
	}
	return seen
}
