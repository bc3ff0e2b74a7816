package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/leaklens/leaklens/internal/common"
	"github.com/leaklens/leaklens/internal/model"
)

// ReportSummary is the list view of a stored report.
type ReportSummary struct {
	CreatedAt        time.Time
	ID               string
	StartDate        string
	EndDate          string
	Currency         string
	AnnualSavings    model.Cents
	TransactionCount int
}

// SaveReport serializes the result and stores it under a fresh id.
func (s *SQLiteStorage) SaveReport(ctx context.Context, result *model.AnalysisResult) (string, error) {
	if result == nil {
		return "", fmt.Errorf("result must not be nil")
	}

	blob, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("failed to serialize report: %w", err)
	}

	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO reports (id, created_at, start_date, end_date, transaction_count, annual_savings, currency, result)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		time.Now().UTC(),
		result.Metadata.StartDate.Format("2006-01-02"),
		result.Metadata.EndDate.Format("2006-01-02"),
		result.Metadata.TransactionCount,
		result.AnnualSavings.String(),
		result.Metadata.Currency,
		blob,
	)
	if err != nil {
		return "", fmt.Errorf("failed to save report: %w", err)
	}
	return id, nil
}

// GetReport loads and deserializes one stored report.
func (s *SQLiteStorage) GetReport(ctx context.Context, id string) (*model.AnalysisResult, error) {
	var blob []byte
	err := s.db.QueryRowContext(ctx, "SELECT result FROM reports WHERE id = ?", id).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("report %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load report: %w", err)
	}

	var result model.AnalysisResult
	if err := json.Unmarshal(blob, &result); err != nil {
		return nil, fmt.Errorf("%w: report %s: %v", common.ErrDatabaseCorrupted, id, err)
	}
	return &result, nil
}

// GetReportBlob returns the stored serialized report verbatim.
func (s *SQLiteStorage) GetReportBlob(ctx context.Context, id string) ([]byte, error) {
	var blob []byte
	err := s.db.QueryRowContext(ctx, "SELECT result FROM reports WHERE id = ?", id).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("report %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load report: %w", err)
	}
	return blob, nil
}

// ListReports returns stored report summaries, newest first.
func (s *SQLiteStorage) ListReports(ctx context.Context) ([]ReportSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, start_date, end_date, transaction_count, annual_savings, currency
		FROM reports ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var summaries []ReportSummary
	for rows.Next() {
		var rs ReportSummary
		var savings string
		if err := rows.Scan(&rs.ID, &rs.CreatedAt, &rs.StartDate, &rs.EndDate, &rs.TransactionCount, &savings, &rs.Currency); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		if rs.AnnualSavings, err = model.ParseCents(savings); err != nil {
			return nil, fmt.Errorf("%w: bad savings value %q", common.ErrDatabaseCorrupted, savings)
		}
		summaries = append(summaries, rs)
	}
	return summaries, rows.Err()
}

// DeleteReport removes a stored report.
func (s *SQLiteStorage) DeleteReport(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM reports WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("report %s: %w", id, common.ErrNotFound)
	}
	return nil
}
