package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"twse_codes/internal/feature/codes/domain/entity"
)

// CodeFetcher downloads and normalizes one listing page.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type CodeFetcher interface {
	Fetch(ctx context.Context, category entity.Category) ([]entity.CodeRecord, entity.FetchReport, error)
}

// SnapshotWriter replaces the persisted snapshot in one sink.
type SnapshotWriter interface {
	Replace(ctx context.Context, records []entity.CodeRecord) error
}

// DownloadOptions selects which sinks receive the downloaded snapshot.
type DownloadOptions struct {
	ToCSV bool
	ToSQL bool
}

// DownloadUsecase crawls the TWSE ISIN listing pages and replaces the
// persisted snapshot in the enabled sinks.
type DownloadUsecase struct {
	fetcher CodeFetcher
	csv     SnapshotWriter
	sql     SnapshotWriter
}

// NewDownloadUsecase creates a new DownloadUsecase. A sink that is never
// enabled may be passed as nil.
func NewDownloadUsecase(fetcher CodeFetcher, csv, sql SnapshotWriter) *DownloadUsecase {
	return &DownloadUsecase{fetcher: fetcher, csv: csv, sql: sql}
}

// DownloadCodes fetches all source categories in order, concatenates the
// records and writes the full set to each enabled sink. Any fetch or write
// error aborts the run and propagates to the caller. There is no atomicity
// across sinks: the CSV file is written before the table, so a SQL failure
// leaves a fresh CSV next to a stale table.
func (u *DownloadUsecase) DownloadCodes(ctx context.Context, opts DownloadOptions) error {
	if !opts.ToCSV && !opts.ToSQL {
		return ErrNoSinkEnabled
	}

	var all []entity.CodeRecord
	for _, category := range entity.Categories() {
		records, report, err := u.fetcher.Fetch(ctx, category)
		if err != nil {
			return fmt.Errorf("fetch %s listing: %w", category, err)
		}
		for _, s := range report.Skipped {
			slog.Warn("listing row skipped", "category", category, "row", s.Row, "reason", s.Reason)
		}
		slog.Info("listing fetched", "category", category, "accepted", report.Accepted, "skipped", len(report.Skipped))
		all = append(all, records...)
	}

	if opts.ToCSV {
		if u.csv == nil {
			return fmt.Errorf("csv sink requested but not configured")
		}
		if err := u.csv.Replace(ctx, all); err != nil {
			return fmt.Errorf("replace csv snapshot: %w", err)
		}
	}
	if opts.ToSQL {
		if u.sql == nil {
			return fmt.Errorf("sql sink requested but not configured")
		}
		if err := u.sql.Replace(ctx, all); err != nil {
			return fmt.Errorf("replace sql snapshot: %w", err)
		}
	}
	return nil
}
