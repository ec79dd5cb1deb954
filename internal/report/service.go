package report

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"
	"github.com/simplefinance/simplefinance/internal"
	"github.com/simplefinance/simplefinance/internal/auth"
	"github.com/simplefinance/simplefinance/internal/expense"
)

// ExpenseReader is the aggregation read side of the expense store.
type ExpenseReader interface {
	SumByCategory(ctx context.Context, ownerID int64) ([]CategorySum, error)
	SumAll(ctx context.Context) (decimal.Decimal, error)
	MostRecent(ctx context.Context, n int) ([]*expense.Expense, error)
}

// UserCounter exposes the user population size for the per-user average.
type UserCounter interface {
	Count(ctx context.Context) (int64, error)
}

type Service struct {
	expenses ExpenseReader
	users    UserCounter
	logger   *slog.Logger
}

func NewService(expenses ExpenseReader, users UserCounter, logger *slog.Logger) *Service {
	return &Service{
		expenses: expenses,
		users:    users,
		logger:   logger,
	}
}

// CategoryBreakdown maps category name to summed amount over the owner's own
// rows. Categories with no matching expense are absent, not zero.
func (s *Service) CategoryBreakdown(ctx context.Context, ownerID int64) ([]CategorySum, error) {
	sums, err := s.expenses.SumByCategory(ctx, ownerID)
	if err != nil {
		s.logger.Error("failed to compute category breakdown", "error", err, "user_id", ownerID)
		return nil, internal.NewInternalError("failed to compute category breakdown", err)
	}
	return sums, nil
}

// GlobalKPIs computes the system-wide figures for the admin dashboard. The
// caller is responsible for having checked the admin role; the service
// double-checks to keep the elevated read behind the policy.
func (s *Service) GlobalKPIs(ctx context.Context, actor *auth.Actor) (*KPIs, error) {
	if !auth.IsAdmin(actor) {
		return nil, internal.ErrAccessDenied
	}

	total, err := s.expenses.SumAll(ctx)
	if err != nil {
		s.logger.Error("failed to sum all expenses", "error", err)
		return nil, internal.NewInternalError("failed to compute KPIs", err)
	}

	userCount, err := s.users.Count(ctx)
	if err != nil {
		s.logger.Error("failed to count users", "error", err)
		return nil, internal.NewInternalError("failed to compute KPIs", err)
	}

	recent, err := s.expenses.MostRecent(ctx, MostRecentLimit)
	if err != nil {
		s.logger.Error("failed to fetch recent expenses", "error", err)
		return nil, internal.NewInternalError("failed to compute KPIs", err)
	}

	return &KPIs{
		TotalAllExpenses: total,
		UserCount:        userCount,
		AveragePerUser:   AveragePerUser(total, userCount),
		MostRecent:       recent,
	}, nil
}
