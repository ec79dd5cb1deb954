package storage

import (
	"context"
	"errors"

	"github.com/simplefinance/simplefinance/internal/budget"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BudgetRepository implements the budget.Repository interface using GORM
type BudgetRepository struct {
	db *gorm.DB
}

func NewBudgetRepository(db *gorm.DB) budget.Repository {
	return &BudgetRepository{db: db}
}

// Upsert inserts or overwrites the limit, keyed on the unique user_id.
func (r *BudgetRepository) Upsert(ctx context.Context, b *budget.Budget) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"limit_amount"}),
	}).Create(b).Error
}

func (r *BudgetRepository) GetByUserID(ctx context.Context, userID int64) (*budget.Budget, error) {
	var b budget.Budget
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&b).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}
