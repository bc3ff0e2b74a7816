// Package normalize canonicalizes raw merchant descriptions into stable
// merchant keys so recurrence detection can group differently-formatted
// charges from the same payee.
package normalize

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// UnknownKey is the sentinel merchant key for empty descriptions.
const UnknownKey = "UNKNOWN"

// maxKeyLength bounds merchant keys so pathological descriptions cannot
// blow up grouping or storage.
const maxKeyLength = 48

// noisePatterns strip processor tags, reference codes and location
// suffixes from descriptions. Compiled once at startup and shared
// read-only across concurrent analyses.
var noisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(POS|EFTPOS|VISA|MASTERCARD|DEBIT|CARD|PURCHASE|PAYMENT)\b`),
	regexp.MustCompile(`\b(SQ|TST|PAYPAL|PYPL|AMZN MKTP)\s*\*`),
	regexp.MustCompile(`\b(PTY|LTD|INC|LLC|CORP)\b`),
	regexp.MustCompile(`\b(AU|AUS|USA|GBR|NSW|VIC|QLD|CA|NY|TX|WA)\b$`),
	regexp.MustCompile(`\b(USD|AUD|NZD|GBP|EUR)\b`),
	regexp.MustCompile(`\b\d{4,}\b`),
	regexp.MustCompile(`#\d+`),
	regexp.MustCompile(`\bREF:?\s*\w+`),
	regexp.MustCompile(`\bCONF[:#]?\s*\w+`),
	regexp.MustCompile(`\bTRANS[:#]?\s*\w+`),
	regexp.MustCompile(`\bXX+\d*`),
	regexp.MustCompile(`\b\d{2}/\d{2}\b`),
	regexp.MustCompile(`\*+`),
}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	edgePunctRe  = regexp.MustCompile(`^[^A-Z0-9]+|[^A-Z0-9]+$`)
)

// Key normalizes a raw merchant description into a stable merchant key.
// It is a total function: unrecognized input degrades to a trimmed,
// uppercased copy, and blank input yields UnknownKey. Two descriptions
// differing only in noise tokens produce the same key.
func Key(raw string) string {
	trimmed := strings.ToUpper(strings.TrimSpace(raw))
	if trimmed == "" {
		return UnknownKey
	}

	key := trimmed
	for _, re := range noisePatterns {
		key = re.ReplaceAllString(key, " ")
	}

	key = whitespaceRe.ReplaceAllString(key, " ")
	key = edgePunctRe.ReplaceAllString(strings.TrimSpace(key), "")

	if key == "" {
		key = trimmed
	}
	if len(key) > maxKeyLength {
		// Back off to a rune boundary so truncation never produces
		// invalid UTF-8.
		cut := maxKeyLength
		for cut > 0 && !utf8.RuneStart(key[cut]) {
			cut--
		}
		key = strings.TrimSpace(key[:cut])
	}
	return key
}

// Canonicalizer folds near-identical merchant keys together so that
// variants the noise patterns miss (typos, truncated terminal names)
// still land in one recurring group. Keys are registered in first-seen
// order, which keeps the mapping deterministic for a given batch.
type Canonicalizer struct {
	canonical []string
}

// NewCanonicalizer returns an empty canonicalizer for one analysis run.
func NewCanonicalizer() *Canonicalizer {
	return &Canonicalizer{}
}

// Canonical returns the canonical form of key, registering it if no
// previously seen key is within edit-distance tolerance.
func (c *Canonicalizer) Canonical(key string) string {
	if key == UnknownKey {
		return key
	}

	for _, existing := range c.canonical {
		if withinTolerance(existing, key) {
			return existing
		}
	}

	c.canonical = append(c.canonical, key)
	return key
}

// withinTolerance allows small edit distances on longer keys only; short
// keys must match exactly so UBER and UBER EATS stay distinct.
func withinTolerance(a, b string) bool {
	if a == b {
		return true
	}

	shorter := len(a)
	if len(b) < shorter {
		shorter = len(b)
	}
	if shorter < 8 {
		return false
	}

	dist := levenshtein.ComputeDistance(a, b)
	return dist <= 2 && dist*8 <= shorter
}
