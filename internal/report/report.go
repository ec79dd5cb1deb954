// Package report is the aggregation engine: per-user totals, category
// breakdowns, budget balance and the admin-only global KPIs. The arithmetic
// helpers are pure over row snapshots; fetching lives in Service.
package report

import (
	"github.com/shopspring/decimal"
	"github.com/simplefinance/simplefinance/internal/expense"
)

// MostRecentLimit bounds the recent-activity list on the admin dashboard.
const MostRecentLimit = 5

// CategorySum is one row of a category breakdown.
type CategorySum struct {
	Category string          `json:"category" gorm:"column:category"`
	Total    decimal.Decimal `json:"total" gorm:"column:total"`
}

// KPIs is the admin-only system-wide view.
type KPIs struct {
	TotalAllExpenses decimal.Decimal    `json:"total_all_expenses"`
	UserCount        int64              `json:"user_count"`
	AveragePerUser   decimal.Decimal    `json:"average_per_user"`
	MostRecent       []*expense.Expense `json:"most_recent"`
}

// Total sums the amounts of a snapshot, zero for an empty one.
func Total(expenses []*expense.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// BudgetRemaining is limit minus the snapshot total. Overspend is
// representable: the result goes negative and is never clamped.
func BudgetRemaining(limit decimal.Decimal, expenses []*expense.Expense) decimal.Decimal {
	return limit.Sub(Total(expenses))
}

// AveragePerUser divides total spend by the user count, rounded to two
// decimal places. Zero users yields zero rather than a division fault.
func AveragePerUser(total decimal.Decimal, userCount int64) decimal.Decimal {
	if userCount == 0 {
		return decimal.Zero
	}
	return total.DivRound(decimal.NewFromInt(userCount), 2)
}
