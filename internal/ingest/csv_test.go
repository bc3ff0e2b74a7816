package ingest

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leaklens/leaklens/internal/common"
	"github.com/leaklens/leaklens/internal/model"
)

func TestRead(t *testing.T) {
	r := &Reader{DefaultCurrency: "USD"}

	input := strings.Join([]string{
		"date,description,amount,currency",
		"2024-01-05,STREAMFLIX 84521,-9.99,USD",
		"2024-01-10,WOOLWORTHS METRO,-84.50,",
		"2024-01-15,SALARY ACME,5000.00,USD",
	}, "\n")

	txns, warnings, err := r.Read(strings.NewReader(input))
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, txns, 3)

	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), txns[0].Date)
	assert.Equal(t, "STREAMFLIX 84521", txns[0].RawDescription)
	assert.Equal(t, model.Cents(-999), txns[0].Amount)
	assert.Equal(t, "USD", txns[0].Currency)

	// Blank currency column falls back to the default.
	assert.Equal(t, "USD", txns[1].Currency)
	assert.Equal(t, model.Cents(500000), txns[2].Amount)
}

func TestReadHeaderAliases(t *testing.T) {
	r := &Reader{DefaultCurrency: "AUD"}

	tests := []struct {
		name   string
		header string
	}{
		{name: "merchant alias", header: "date,merchant,amount"},
		{name: "raw_description alias", header: "date,raw_description,amount"},
		{name: "reordered and cased", header: "Amount,Description,Date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var row string
			if strings.HasPrefix(tt.header, "Amount") {
				row = "-9.99,NETFLIX,2024-01-05"
			} else {
				row = "2024-01-05,NETFLIX,-9.99"
			}

			txns, warnings, err := r.Read(strings.NewReader(tt.header + "\n" + row))
			require.NoError(t, err)
			assert.Empty(t, warnings)
			require.Len(t, txns, 1)
			assert.Equal(t, "NETFLIX", txns[0].RawDescription)
			assert.Equal(t, model.Cents(-999), txns[0].Amount)
			assert.Equal(t, "AUD", txns[0].Currency)
		})
	}
}

func TestReadMissingColumns(t *testing.T) {
	r := &Reader{}

	_, _, err := r.Read(strings.NewReader("date,amount\n2024-01-05,-9.99"))
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestReadMalformedRowsSkipped(t *testing.T) {
	r := &Reader{DefaultCurrency: "USD"}

	input := strings.Join([]string{
		"date,description,amount",
		"2024-01-05,NETFLIX,-9.99",
		"not-a-date,BROKEN,-1.00",
		"2024-01-07,BAD AMOUNT,abc",
		"2024-01-08,WOOLWORTHS,-84.50",
	}, "\n")

	txns, warnings, err := r.Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, txns, 2)
	require.Len(t, warnings, 2)

	// Warnings carry the 1-based input line number.
	assert.Contains(t, warnings[0], "line 3")
	assert.Contains(t, warnings[1], "line 4")
}

func TestReadEmptyInput(t *testing.T) {
	r := &Reader{}

	txns, warnings, err := r.Read(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, txns)
	assert.Empty(t, warnings)
}

func TestReadDateFormats(t *testing.T) {
	r := &Reader{DefaultCurrency: "USD"}

	tests := []struct {
		raw  string
		want time.Time
	}{
		{raw: "2024-04-05", want: time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC)},
		{raw: "2024/04/05", want: time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC)},
		{raw: "05 Apr 2024", want: time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC)},
		{raw: `"Apr 5, 2024"`, want: time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			input := "date,description,amount\n" + tt.raw + ",NETFLIX,-9.99"
			txns, warnings, err := r.Read(strings.NewReader(input))
			require.NoError(t, err)
			assert.Empty(t, warnings)
			require.Len(t, txns, 1)
			assert.Equal(t, tt.want, txns[0].Date)
		})
	}
}

func TestReadFileMissing(t *testing.T) {
	r := &Reader{}

	_, _, err := r.ReadFile("/nonexistent/statement.csv")
	require.Error(t, err)

	var userErr *common.UserError
	assert.ErrorAs(t, err, &userErr)
}
