package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"twse_codes/internal/feature/codes/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockCodeFetcher is a mock implementation of the CodeFetcher interface.
type mockCodeFetcher struct {
	fetchFn func(ctx context.Context, category entity.Category) ([]entity.CodeRecord, entity.FetchReport, error)
}

func (m *mockCodeFetcher) Fetch(ctx context.Context, category entity.Category) ([]entity.CodeRecord, entity.FetchReport, error) {
	if m.fetchFn != nil {
		return m.fetchFn(ctx, category)
	}
	return nil, entity.FetchReport{Category: category}, nil
}

// mockSnapshotWriter is a mock implementation of the SnapshotWriter interface.
type mockSnapshotWriter struct {
	replaceFn func(ctx context.Context, records []entity.CodeRecord) error
	calls     int
	got       []entity.CodeRecord
}

func (m *mockSnapshotWriter) Replace(ctx context.Context, records []entity.CodeRecord) error {
	m.calls++
	m.got = records
	if m.replaceFn != nil {
		return m.replaceFn(ctx, records)
	}
	return nil
}

// fetcherForCategories returns one record per category, named after it.
func fetcherForCategories() *mockCodeFetcher {
	return &mockCodeFetcher{
		fetchFn: func(ctx context.Context, category entity.Category) ([]entity.CodeRecord, entity.FetchReport, error) {
			rec := entity.CodeRecord{
				Code:     fmt.Sprintf("%s-1", category),
				Name:     "test",
				Category: category,
			}
			return []entity.CodeRecord{rec}, entity.FetchReport{Category: category, Accepted: 1}, nil
		},
	}
}

func TestDownloadUsecase_DownloadCodes_AllCategoriesConcatenated(t *testing.T) {
	t.Parallel()

	csv := &mockSnapshotWriter{}
	sql := &mockSnapshotWriter{}
	uc := NewDownloadUsecase(fetcherForCategories(), csv, sql)

	err := uc.DownloadCodes(context.Background(), DownloadOptions{ToCSV: true, ToSQL: true})
	require.NoError(t, err)

	require.Equal(t, 1, csv.calls)
	require.Equal(t, 1, sql.calls)
	require.Len(t, sql.got, 3)

	// Records arrive in crawl order and keep their source category.
	for i, category := range entity.Categories() {
		assert.Equal(t, category, sql.got[i].Category)
	}
}

func TestDownloadUsecase_DownloadCodes_CSVOnlyLeavesSQLUntouched(t *testing.T) {
	t.Parallel()

	csv := &mockSnapshotWriter{}
	sql := &mockSnapshotWriter{}
	uc := NewDownloadUsecase(fetcherForCategories(), csv, sql)

	err := uc.DownloadCodes(context.Background(), DownloadOptions{ToCSV: true, ToSQL: false})
	require.NoError(t, err)

	assert.Equal(t, 1, csv.calls)
	assert.Equal(t, 0, sql.calls, "sql sink must not be written when disabled")
}

func TestDownloadUsecase_DownloadCodes_NoSinkEnabled(t *testing.T) {
	t.Parallel()

	uc := NewDownloadUsecase(fetcherForCategories(), &mockSnapshotWriter{}, &mockSnapshotWriter{})

	err := uc.DownloadCodes(context.Background(), DownloadOptions{})
	assert.ErrorIs(t, err, ErrNoSinkEnabled)
}

func TestDownloadUsecase_DownloadCodes_FetchErrorAborts(t *testing.T) {
	t.Parallel()

	fetchErr := errors.New("connection refused")
	fetcher := &mockCodeFetcher{
		fetchFn: func(ctx context.Context, category entity.Category) ([]entity.CodeRecord, entity.FetchReport, error) {
			if category == entity.CategoryOTC {
				return nil, entity.FetchReport{}, fetchErr
			}
			return []entity.CodeRecord{{Code: "1101", Category: category}}, entity.FetchReport{Accepted: 1}, nil
		},
	}
	csv := &mockSnapshotWriter{}
	uc := NewDownloadUsecase(fetcher, csv, nil)

	err := uc.DownloadCodes(context.Background(), DownloadOptions{ToCSV: true})
	assert.ErrorIs(t, err, fetchErr)
	assert.Equal(t, 0, csv.calls, "no sink may be written after a fetch failure")
}

func TestDownloadUsecase_DownloadCodes_WriteErrorPropagates(t *testing.T) {
	t.Parallel()

	writeErr := errors.New("permission denied")
	csv := &mockSnapshotWriter{
		replaceFn: func(ctx context.Context, records []entity.CodeRecord) error { return writeErr },
	}
	uc := NewDownloadUsecase(fetcherForCategories(), csv, nil)

	err := uc.DownloadCodes(context.Background(), DownloadOptions{ToCSV: true})
	assert.ErrorIs(t, err, writeErr)
}

func TestDownloadUsecase_DownloadCodes_EmptyCategoryIsNotAnError(t *testing.T) {
	t.Parallel()

	// The FUTURE listing returns no rows; the snapshot still carries the
	// other two categories.
	fetcher := &mockCodeFetcher{
		fetchFn: func(ctx context.Context, category entity.Category) ([]entity.CodeRecord, entity.FetchReport, error) {
			if category == entity.CategoryFuture {
				return nil, entity.FetchReport{Category: category}, nil
			}
			rec := entity.CodeRecord{Code: string(category) + "-1", Category: category}
			return []entity.CodeRecord{rec}, entity.FetchReport{Category: category, Accepted: 1}, nil
		},
	}
	sql := &mockSnapshotWriter{}
	uc := NewDownloadUsecase(fetcher, nil, sql)

	err := uc.DownloadCodes(context.Background(), DownloadOptions{ToSQL: true})
	require.NoError(t, err)
	require.Len(t, sql.got, 2)
	for _, r := range sql.got {
		assert.NotEqual(t, entity.CategoryFuture, r.Category)
	}
}

func TestDownloadUsecase_DownloadCodes_MissingSink(t *testing.T) {
	t.Parallel()

	uc := NewDownloadUsecase(fetcherForCategories(), nil, nil)

	err := uc.DownloadCodes(context.Background(), DownloadOptions{ToCSV: true})
	assert.Error(t, err, "requesting an unconfigured sink must fail")
}
