// Package sqlstore persists code snapshots to a relational table via gorm.
package sqlstore

import (
	"context"

	"twse_codes/internal/feature/codes/domain/entity"
	"twse_codes/internal/feature/codes/usecase"

	"gorm.io/gorm"
)

// batchSize bounds how many rows go into one INSERT during a replace.
const batchSize = 500

// codeGorm stores the snapshot in the twse_codes table.
type codeGorm struct {
	db *gorm.DB
}

// codeGorm implements both snapshot interfaces, verified at compile time.
var (
	_ usecase.SnapshotWriter = (*codeGorm)(nil)
	_ usecase.SnapshotReader = (*codeGorm)(nil)
)

// NewCodeRepository creates a snapshot repository on the given DB handle.
func NewCodeRepository(db *gorm.DB) *codeGorm {
	return &codeGorm{db: db}
}

// Replace swaps the whole snapshot inside a single transaction: every
// existing row is deleted, then the new set is inserted in batches. Readers
// see either the old snapshot or the new one, never a mix.
func (r *codeGorm) Replace(ctx context.Context, records []entity.CodeRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&entity.CodeRecord{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		rows := make([]entity.CodeRecord, len(records))
		copy(rows, records)
		for i := range rows {
			rows[i].ID = 0 // let the database assign fresh keys
		}
		return tx.CreateInBatches(&rows, batchSize).Error
	})
}

// List returns the stored snapshot ordered by code, optionally filtered to
// one source category.
func (r *codeGorm) List(ctx context.Context, category entity.Category) ([]entity.CodeRecord, error) {
	var rows []entity.CodeRecord
	q := r.db.WithContext(ctx).Order("code ASC")
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
