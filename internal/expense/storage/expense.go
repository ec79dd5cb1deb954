package storage

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/simplefinance/simplefinance/internal/expense"
	"github.com/simplefinance/simplefinance/internal/report"
	"gorm.io/gorm"
)

// ExpenseRepository implements the expense.Repository interface using GORM.
// It also serves the aggregation engine's read side (report.ExpenseReader).
type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) Create(ctx context.Context, exp *expense.Expense) error {
	return r.db.WithContext(ctx).Create(exp).Error
}

func (r *ExpenseRepository) GetByID(ctx context.Context, id int64) (*expense.Expense, error) {
	var exp expense.Expense
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&exp).Error
	if err != nil {
		return nil, err
	}
	return &exp, nil
}

// ListByOwner returns the owner's rows newest-first with id as the
// insertion-order tiebreaker. The date range is pre-normalized by
// ListFilter.DateRange: a half-open range never reaches the query.
func (r *ExpenseRepository) ListByOwner(ctx context.Context, ownerID int64, filter expense.ListFilter) ([]*expense.Expense, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", ownerID)

	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}
	if start, end, ok := filter.DateRange(); ok {
		q = q.Where("created_at >= ? AND created_at <= ?", start, end)
	}

	var expenses []*expense.Expense
	err := q.Order("created_at DESC").Order("id DESC").Find(&expenses).Error
	return expenses, err
}

func (r *ExpenseRepository) Update(ctx context.Context, exp *expense.Expense) error {
	return r.db.WithContext(ctx).Save(exp).Error
}

func (r *ExpenseRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&expense.Expense{}).Error
}

// SumByCategory groups the owner's expenses by category name. Categories
// without matching rows simply do not appear: the result is a grouped sum
// over existing rows, never padded with zeros.
func (r *ExpenseRepository) SumByCategory(ctx context.Context, ownerID int64) ([]report.CategorySum, error) {
	var sums []report.CategorySum
	err := r.db.WithContext(ctx).
		Table("expenses").
		Select("categories.name AS category, SUM(expenses.amount) AS total").
		Joins("JOIN categories ON categories.id = expenses.category_id").
		Where("expenses.user_id = ?", ownerID).
		Group("categories.name").
		Order("categories.name ASC").
		Scan(&sums).Error
	return sums, err
}

// SumAll returns the total of every expense across all users.
func (r *ExpenseRepository) SumAll(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Table("expenses").
		Select("COALESCE(SUM(amount), 0)").
		Row().Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// MostRecent returns the n newest expenses across all users, same ordering
// rule as ListByOwner.
func (r *ExpenseRepository) MostRecent(ctx context.Context, n int) ([]*expense.Expense, error) {
	var expenses []*expense.Expense
	err := r.db.WithContext(ctx).
		Order("created_at DESC").Order("id DESC").
		Limit(n).
		Find(&expenses).Error
	return expenses, err
}
