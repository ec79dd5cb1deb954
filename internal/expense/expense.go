package expense

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a single monetary movement. Amounts are decimal, never binary
// float, so sums stay exact up to display rounding. Owner and id are
// immutable after creation; created_at is server-assigned and grows
// monotonically with insertion order.
type Expense struct {
	ID              int64           `json:"id" gorm:"primaryKey"`
	Amount          decimal.Decimal `json:"amount" gorm:"type:numeric(12,2);not null"`
	Description     string          `json:"description" gorm:"size:200;not null"`
	CreatedAt       time.Time       `json:"created_at" gorm:"index"`
	UserID          int64           `json:"user_id" gorm:"column:user_id;not null;index"`
	CategoryID      int64           `json:"category_id" gorm:"column:category_id;not null;index"`
	PaymentMethodID *int64          `json:"payment_method_id,omitempty" gorm:"column:payment_method_id;index"`
}

func (Expense) TableName() string {
	return "expenses"
}

const MaxDescriptionLength = 200

// Repository defines the data access methods for expenses
type Repository interface {
	Create(ctx context.Context, exp *Expense) error
	GetByID(ctx context.Context, id int64) (*Expense, error)
	// ListByOwner returns the owner's expenses newest-first, ties broken by
	// descending id (insertion order).
	ListByOwner(ctx context.Context, ownerID int64, filter ListFilter) ([]*Expense, error)
	Update(ctx context.Context, exp *Expense) error
	Delete(ctx context.Context, id int64) error
}
