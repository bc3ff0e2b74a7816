package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leaklens/leaklens/internal/common"
	"github.com/leaklens/leaklens/internal/model"
)

func setupTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	s, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "reports.db"))
	require.NoError(t, err)
	require.NoError(t, s.Migrate(context.Background()))

	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleResult() *model.AnalysisResult {
	return &model.AnalysisResult{
		Categories: []model.CategorySummary{
			{Category: model.CategoryGroceries, Total: 8450, Percent: 100, TransactionCount: 1},
		},
		PriceChanges:  []model.PriceChange{},
		Subscriptions: []model.Subscription{},
		Leaks:         []model.Leak{},
		TopSpending:   []model.TopTransaction{},
		AnnualSavings: 3600,
		Metadata: model.Metadata{
			StartDate:        model.NewDate(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)),
			EndDate:          model.NewDate(time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC)),
			DaysCovered:      121,
			TransactionCount: 1,
			Currency:         "USD",
		},
	}
}

func TestSaveAndGetReport(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	id, err := s.SaveReport(ctx, sampleResult())
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := s.GetReport(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, model.Cents(3600), got.AnnualSavings)
	assert.Equal(t, "USD", got.Metadata.Currency)
	require.Len(t, got.Categories, 1)
	assert.Equal(t, model.CategoryGroceries, got.Categories[0].Category)
}

func TestSaveReportNil(t *testing.T) {
	s := setupTestStorage(t)

	_, err := s.SaveReport(context.Background(), nil)
	assert.Error(t, err)
}

func TestGetReportNotFound(t *testing.T) {
	s := setupTestStorage(t)

	_, err := s.GetReport(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestGetReportBlob(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	id, err := s.SaveReport(ctx, sampleResult())
	require.NoError(t, err)

	blob, err := s.GetReportBlob(ctx, id)
	require.NoError(t, err)
	assert.Contains(t, string(blob), `"currency":"USD"`)
}

func TestListReports(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	list, err := s.ListReports(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	first, err := s.SaveReport(ctx, sampleResult())
	require.NoError(t, err)
	second, err := s.SaveReport(ctx, sampleResult())
	require.NoError(t, err)

	list, err = s.ListReports(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	ids := []string{list[0].ID, list[1].ID}
	assert.Contains(t, ids, first)
	assert.Contains(t, ids, second)

	for _, rs := range list {
		assert.Equal(t, "2024-01-05", rs.StartDate)
		assert.Equal(t, "2024-05-05", rs.EndDate)
		assert.Equal(t, model.Cents(3600), rs.AnnualSavings)
		assert.Equal(t, 1, rs.TransactionCount)
	}
}

func TestDeleteReport(t *testing.T) {
	s := setupTestStorage(t)
	ctx := context.Background()

	id, err := s.SaveReport(ctx, sampleResult())
	require.NoError(t, err)

	require.NoError(t, s.DeleteReport(ctx, id))

	_, err = s.GetReport(ctx, id)
	assert.ErrorIs(t, err, common.ErrNotFound)

	err = s.DeleteReport(ctx, id)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestMigrateIdempotent(t *testing.T) {
	s := setupTestStorage(t)

	// Running migrations again against an up-to-date schema is a no-op.
	require.NoError(t, s.Migrate(context.Background()))
}
