// Package csvstore persists code snapshots to a single CSV file.
package csvstore

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"twse_codes/internal/feature/codes/domain"
	"twse_codes/internal/feature/codes/domain/entity"
	"twse_codes/internal/feature/codes/usecase"
)

// header lists the CSV columns in write order.
var header = []string{"code", "name", "category", "security_type", "isin", "listing_date", "market", "industry", "cfi_code", "remark"}

// Store reads and writes full code snapshots at a fixed file path.
type Store struct {
	path string
}

// Store implements both snapshot interfaces, verified at compile time.
var (
	_ usecase.SnapshotWriter = (*Store)(nil)
	_ usecase.SnapshotReader = (*Store)(nil)
)

// NewStore creates a Store writing to the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Replace overwrites the snapshot file with the given record set. The rows
// are written to a temporary sibling first and renamed into place, so a
// concurrent reader never sees a torn snapshot.
func (s *Store) Replace(ctx context.Context, records []entity.CodeRecord) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	w := csv.NewWriter(tmp)
	if err := w.Write(header); err != nil {
		_ = tmp.Close()
		return err
	}
	for _, r := range records {
		if err := ctx.Err(); err != nil {
			_ = tmp.Close()
			return err
		}
		row := []string{r.Code, r.Name, string(r.Category), r.SecurityType, r.ISIN, r.ListingDate, r.Market, r.Industry, r.CFICode, r.Remark}
		if err := w.Write(row); err != nil {
			_ = tmp.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

// List loads the snapshot and returns its records ordered by code, optionally
// filtered to one source category. A missing file means no snapshot was ever
// downloaded and yields ErrNoSnapshot.
func (s *Store) List(ctx context.Context, category entity.Category) ([]entity.CodeRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("open %s: %w", s.path, domain.ErrNoSnapshot)
		}
		return nil, err
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	head, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, domain.ErrNoSnapshot
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if len(head) != len(header) {
		return nil, fmt.Errorf("unexpected csv header %v", head)
	}

	var records []entity.CodeRecord
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv record: %w", err)
		}
		rec := entity.CodeRecord{
			Code:         row[0],
			Name:         row[1],
			Category:     entity.Category(row[2]),
			SecurityType: row[3],
			ISIN:         row[4],
			ListingDate:  row[5],
			Market:       row[6],
			Industry:     row[7],
			CFICode:      row[8],
			Remark:       row[9],
		}
		if category != "" && rec.Category != category {
			continue
		}
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Code < records[j].Code })
	return records, nil
}
