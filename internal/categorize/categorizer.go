// Package categorize assigns spending categories from an ordered,
// process-wide rule table. Rule order encodes priority and the table is
// read-only after construction, so one Categorizer is safely shared
// across concurrent analyses.
package categorize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/leaklens/leaklens/internal/model"
)

// compiledRule pairs a rule with its compiled pattern.
type compiledRule struct {
	regex *regexp.Regexp
	Rule
}

// Categorizer evaluates the rule table in priority order.
type Categorizer struct {
	rules []compiledRule
}

// New compiles the given rules. Patterns are made case-insensitive.
func New(rules []Rule) (*Categorizer, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		pattern := r.Pattern
		if !strings.HasPrefix(pattern, "(?i)") {
			pattern = "(?i)" + pattern
		}

		regex, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to compile rule %s: %w", r.Name, err)
		}
		compiled = append(compiled, compiledRule{Rule: r, regex: regex})
	}

	return &Categorizer{rules: compiled}, nil
}

// NewDefault builds a categorizer from the built-in rule table.
func NewDefault() *Categorizer {
	c, err := New(DefaultRules())
	if err != nil {
		// The default table is static; a compile failure is a programming error.
		panic(err)
	}
	return c
}

// Categorize assigns exactly one category to a transaction. Credits
// short-circuit to Transfers or Income before merchant rules, since
// merchant text is unreliable for credits. Debits take the first
// matching rule; unmatched transactions are Other.
func (c *Categorizer) Categorize(txn model.Transaction, merchantKey string) model.Category {
	searchText := merchantKey + " " + strings.ToUpper(txn.RawDescription)

	if txn.Amount > 0 {
		for _, r := range c.rules {
			if r.Category == model.CategoryTransfers && r.regex.MatchString(searchText) {
				return model.CategoryTransfers
			}
		}
		return model.CategoryIncome
	}

	for _, r := range c.rules {
		if r.regex.MatchString(searchText) {
			return r.Category
		}
	}
	return model.CategoryOther
}

// RuleCount returns the number of compiled rules.
func (c *Categorizer) RuleCount() int {
	return len(c.rules)
}
