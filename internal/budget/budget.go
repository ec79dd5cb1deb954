package budget

import (
	"context"

	"github.com/shopspring/decimal"
)

// Budget is the single spending limit a user may set. One row per user,
// upserted on write.
type Budget struct {
	ID          int64           `json:"id" gorm:"primaryKey"`
	UserID      int64           `json:"user_id" gorm:"column:user_id;uniqueIndex;not null"`
	LimitAmount decimal.Decimal `json:"limit_amount" gorm:"column:limit_amount;type:numeric(12,2);not null"`
}

func (Budget) TableName() string {
	return "budgets"
}

// Repository defines the data access methods for budgets
type Repository interface {
	// Upsert inserts the budget or overwrites the limit of an existing row,
	// keyed on user_id.
	Upsert(ctx context.Context, b *Budget) error
	// GetByUserID returns nil with no error when the user has no budget.
	GetByUserID(ctx context.Context, userID int64) (*Budget, error)
}
