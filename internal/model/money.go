package model

import (
	"fmt"
	"math"
	"strings"
)

// Cents is a monetary amount in hundredths of the statement currency.
// All arithmetic in the pipeline happens on integer cents; floats only
// appear at the edges (parsing, percentages, serialization).
type Cents int64

// ParseCents parses a decimal amount string into cents. It accepts an
// optional sign, comma or dot as the decimal separator, and thousands
// separators ("1,234.56"). A third decimal digit rounds half up.
func ParseCents(s string) (Cents, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	in := s

	neg := false
	switch s[0] {
	case '+':
		s = s[1:]
	case '-':
		neg = true
		s = s[1:]
	}
	if s == "" {
		return 0, fmt.Errorf("invalid amount %q", in)
	}

	// The last dot or comma is the decimal separator, except a comma
	// followed by exactly three digits, which is a thousands group.
	intPart, fracPart := s, ""
	if sep := strings.LastIndexAny(s, ".,"); sep >= 0 {
		after := s[sep+1:]
		if !(s[sep] == ',' && len(after) == 3) {
			intPart, fracPart = s[:sep], after
		}
	}
	intPart = strings.ReplaceAll(intPart, ",", "")

	var units int64
	for _, r := range intPart {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("invalid amount %q", in)
		}
		d := int64(r - '0')
		if units > (math.MaxInt64-d)/10 {
			return 0, fmt.Errorf("amount %q overflows", in)
		}
		units = units*10 + d
	}
	if intPart == "" && fracPart == "" {
		return 0, fmt.Errorf("invalid amount %q", in)
	}

	var milli int64
	if len(fracPart) > 3 {
		return 0, fmt.Errorf("too many decimal places in %q", in)
	}
	for _, r := range fracPart {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("invalid amount %q", in)
		}
		milli = milli*10 + int64(r-'0')
	}
	for i := len(fracPart); i < 3; i++ {
		milli *= 10
	}
	cents := (milli + 5) / 10

	if units > (math.MaxInt64-cents)/100 {
		return 0, fmt.Errorf("amount %q overflows", in)
	}
	total := units*100 + cents
	if neg {
		total = -total
	}
	return Cents(total), nil
}

// CentsFromFloat converts a float amount of whole currency units to
// cents, rounding half away from zero.
func CentsFromFloat(f float64) Cents {
	return Cents(math.Round(f * 100))
}

// Abs returns the absolute value.
func (c Cents) Abs() Cents {
	if c < 0 {
		return -c
	}
	return c
}

// Float returns the amount in whole currency units.
func (c Cents) Float() float64 {
	return float64(c) / 100
}

// String formats the amount with two decimal places.
func (c Cents) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// MarshalJSON encodes the amount as a plain two-decimal number.
func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalJSON accepts both the number form and a quoted string.
func (c *Cents) UnmarshalJSON(data []byte) error {
	parsed, err := ParseCents(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
