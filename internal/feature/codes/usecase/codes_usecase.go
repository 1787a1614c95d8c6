package usecase

import (
	"context"
	"fmt"

	"twse_codes/internal/feature/codes/domain"
	"twse_codes/internal/feature/codes/domain/entity"
)

// SnapshotReader reads back the persisted snapshot. An empty category selects
// all records.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SnapshotReader interface {
	List(ctx context.Context, category entity.Category) ([]entity.CodeRecord, error)
}

// CodesUsecase provides read access to the persisted code snapshot.
type CodesUsecase struct {
	repo SnapshotReader
}

// NewCodesUsecase creates a new CodesUsecase with the given snapshot reader.
func NewCodesUsecase(r SnapshotReader) *CodesUsecase {
	return &CodesUsecase{repo: r}
}

// Get returns the stored records for the requested category, or every
// category when the filter is empty. With details false each record is
// reduced to its code, name and category columns.
//
// An unfiltered empty result means nothing was ever downloaded and yields
// ErrNoSnapshot; an empty result for a single category is a valid answer
// (that listing may simply have no rows).
func (u *CodesUsecase) Get(ctx context.Context, details bool, category entity.Category) ([]entity.CodeRecord, error) {
	if category != "" && !category.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownCategory, category)
	}

	records, err := u.repo.List(ctx, category)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 && category == "" {
		return nil, domain.ErrNoSnapshot
	}
	if details {
		return records, nil
	}

	out := make([]entity.CodeRecord, 0, len(records))
	for _, r := range records {
		out = append(out, r.Summary())
	}
	return out, nil
}
