package normalize

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "plain merchant", raw: "Netflix.com", want: "NETFLIX.COM"},
		{name: "strips store number", raw: "STARBUCKS #1234", want: "STARBUCKS"},
		{name: "strips reference code", raw: "STREAMFLIX REF:ABC123", want: "STREAMFLIX"},
		{name: "strips long digits", raw: "WOOLWORTHS 30291847", want: "WOOLWORTHS"},
		{name: "strips processor prefix", raw: "SQ *COFFEE SHOP", want: "COFFEE SHOP"},
		{name: "strips card noise", raw: "VISA PURCHASE UBER EATS", want: "UBER EATS"},
		{name: "strips state suffix", raw: "WOOLWORTHS SYDNEY NSW", want: "WOOLWORTHS SYDNEY"},
		{name: "collapses whitespace", raw: "  ACME   CORP   STORE ", want: "ACME STORE"},
		{name: "empty is sentinel", raw: "", want: UnknownKey},
		{name: "whitespace only is sentinel", raw: "   ", want: UnknownKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Key(tt.raw))
		})
	}
}

func TestKeyNoiseEquivalence(t *testing.T) {
	// Descriptions differing only in noise tokens must share one key,
	// otherwise recurrence detection cannot group them.
	variants := []string{
		"STREAMFLIX",
		"STREAMFLIX 84521",
		"STREAMFLIX REF:XK2",
		"streamflix   99887766",
	}

	want := Key(variants[0])
	for _, v := range variants[1:] {
		assert.Equal(t, want, Key(v), "variant %q", v)
	}
}

func TestKeyIsTotal(t *testing.T) {
	// Any input yields a usable key; pure noise degrades to the trimmed
	// uppercased original rather than an empty string.
	assert.NotEmpty(t, Key("1234 5678"))
	assert.NotEmpty(t, Key("***"))
}

func TestKeyBoundedLength(t *testing.T) {
	long := strings.Repeat("ABCDE ", 30)
	assert.LessOrEqual(t, len(Key(long)), maxKeyLength)
}

func TestKeyTruncatesOnRuneBoundary(t *testing.T) {
	// The length cap lands mid-rune here; truncation must still yield
	// valid UTF-8.
	raw := "A" + strings.Repeat("É", 30) + "A"
	key := Key(raw)
	assert.LessOrEqual(t, len(key), maxKeyLength)
	assert.True(t, utf8.ValidString(key))
}

func TestCanonicalizer(t *testing.T) {
	c := NewCanonicalizer()

	first := c.Canonical("SPOTIFY PREMIUM")
	assert.Equal(t, "SPOTIFY PREMIUM", first)

	// Near-identical long keys fold into the first-seen form.
	assert.Equal(t, "SPOTIFY PREMIUM", c.Canonical("SPOTIFY PREMIUMS"))

	// Short keys must match exactly; UBER and UBER EATS stay apart.
	assert.Equal(t, "UBER", c.Canonical("UBER"))
	assert.Equal(t, "UBER EATS", c.Canonical("UBER EATS"))

	// The sentinel never merges with anything.
	assert.Equal(t, UnknownKey, c.Canonical(UnknownKey))
}
