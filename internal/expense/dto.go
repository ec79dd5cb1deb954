package expense

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/simplefinance/simplefinance/internal"
)

// CreateExpenseDTO carries the fields of an "add expense" form submission.
type CreateExpenseDTO struct {
	Amount          decimal.Decimal
	Description     string
	CategoryID      int64
	PaymentMethodID *int64
}

func (dto CreateExpenseDTO) Validate() error {
	if !dto.Amount.IsPositive() {
		return internal.NewValidationError("amount must be greater than 0", internal.ErrCodeInvalidAmount)
	}
	if strings.TrimSpace(dto.Description) == "" {
		return internal.NewValidationError("description is required", internal.ErrCodeInvalidDescription)
	}
	if len(dto.Description) > MaxDescriptionLength {
		return internal.NewValidationError("description is too long", internal.ErrCodeInvalidDescription)
	}
	if dto.CategoryID <= 0 {
		return internal.NewValidationError("category is required", internal.ErrCodeInvalidCategory)
	}
	return nil
}

// UpdateExpenseDTO carries the mutable fields of an edit. Owner and id are
// never part of it.
type UpdateExpenseDTO struct {
	Amount          decimal.Decimal
	Description     string
	CategoryID      int64
	PaymentMethodID *int64
}

func (dto UpdateExpenseDTO) Validate() error {
	return CreateExpenseDTO{
		Amount:      dto.Amount,
		Description: dto.Description,
		CategoryID:  dto.CategoryID,
	}.Validate()
}

// ListFilter narrows an owner's expense listing. The date range applies only
// when BOTH bounds are present; a single bound deactivates the range filter
// entirely.
type ListFilter struct {
	CategoryID *int64
	Start      *time.Time
	End        *time.Time
}

// DateRange returns the inclusive bounds, with ok=false unless both are set.
func (f ListFilter) DateRange() (start, end time.Time, ok bool) {
	if f.Start == nil || f.End == nil {
		return time.Time{}, time.Time{}, false
	}
	return *f.Start, *f.End, true
}
