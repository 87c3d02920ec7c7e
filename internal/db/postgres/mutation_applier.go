package postgres

import (
	"context"
	"fmt"

	"Hearth/internal/core/mutation"

	"gorm.io/gorm"
)

type gormApplier struct {
	db *gorm.DB
}

// NewMutationApplier returns an Applier that runs each plan inside one
// database transaction.
func NewMutationApplier(db *gorm.DB) mutation.Applier {
	return &gormApplier{db: db}
}

// Apply executes writes in order. Any failure rolls back the whole plan. A
// delete that matches no row is not an error: the toggle it belongs to lost
// a race and the end state is the same.
func (a *gormApplier) Apply(ctx context.Context, plan mutation.Plan) error {
	if plan.IsEmpty() {
		return nil
	}

	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, w := range plan.Writes {
			switch w.Op {
			case mutation.OpCreate:
				if err := tx.Create(w.Entity).Error; err != nil {
					if isUniqueViolation(err) {
						return fmt.Errorf("write %d (%T): %w: %w", i, w.Entity, mutation.ErrConflict, err)
					}
					return fmt.Errorf("write %d (%T): failed to create: %w", i, w.Entity, err)
				}
			case mutation.OpDelete:
				if err := tx.Delete(w.Entity).Error; err != nil {
					return fmt.Errorf("write %d (%T): failed to delete: %w", i, w.Entity, err)
				}
			default:
				return fmt.Errorf("write %d: unsupported op %s", i, w.Op)
			}
		}
		return nil
	})
}
