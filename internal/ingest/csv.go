// Package ingest reads normalized transaction records from CSV. This is
// the input side of the engine contract: records are already parsed out
// of the raw statement by an upstream exporter; this package only maps
// rows onto model.Transaction and skips what it cannot read.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/leaklens/leaklens/internal/common"
	"github.com/leaklens/leaklens/internal/model"
)

// dateFormats are tried in order when parsing the date column.
var dateFormats = []string{
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
	"01/02/2006",
	"02 Jan 2006",
	"Jan 2, 2006",
}

// Reader maps CSV rows onto transactions.
type Reader struct {
	// DefaultCurrency is applied to rows without a currency column.
	DefaultCurrency string
}

// ReadFile reads transactions from a CSV file on disk.
func (r *Reader) ReadFile(path string) ([]model.Transaction, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, common.NewUserError(fmt.Sprintf("cannot open %s", path), err)
	}
	defer func() { _ = f.Close() }()

	return r.Read(f)
}

// Read parses CSV input with a header row naming at least date,
// description and amount columns (currency optional). Malformed rows are
// skipped with a collected warning; they never abort the read.
func (r *Reader) Read(src io.Reader) ([]model.Transaction, []string, error) {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return []model.Transaction{}, nil, nil
		}
		return nil, nil, fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
	}

	cols, err := mapColumns(header)
	if err != nil {
		return nil, nil, err
	}

	var txns []model.Transaction
	var warnings []string
	line := 1

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("line %d: %v", line, err))
			continue
		}

		txn, err := cols.parse(record, r.DefaultCurrency)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		txns = append(txns, txn)
	}

	return txns, warnings, nil
}

// columns holds the resolved index of each field.
type columns struct {
	date        int
	description int
	amount      int
	currency    int
}

func mapColumns(header []string) (columns, error) {
	cols := columns{date: -1, description: -1, amount: -1, currency: -1}

	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "date":
			cols.date = i
		case "description", "merchant", "raw_description":
			cols.description = i
		case "amount":
			cols.amount = i
		case "currency":
			cols.currency = i
		}
	}

	if cols.date < 0 || cols.description < 0 || cols.amount < 0 {
		return cols, fmt.Errorf("%w: header must name date, description and amount columns", common.ErrInvalidInput)
	}
	return cols, nil
}

func (c columns) parse(record []string, defaultCurrency string) (model.Transaction, error) {
	if c.date >= len(record) || c.description >= len(record) || c.amount >= len(record) {
		return model.Transaction{}, fmt.Errorf("short record")
	}

	date, err := parseDate(record[c.date])
	if err != nil {
		return model.Transaction{}, err
	}

	amount, err := model.ParseCents(record[c.amount])
	if err != nil {
		return model.Transaction{}, err
	}

	currency := defaultCurrency
	if c.currency >= 0 && c.currency < len(record) && strings.TrimSpace(record[c.currency]) != "" {
		currency = strings.ToUpper(strings.TrimSpace(record[c.currency]))
	}

	return model.Transaction{
		Date:           date,
		RawDescription: record[c.description],
		Amount:         amount,
		Currency:       currency,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, format := range dateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}
