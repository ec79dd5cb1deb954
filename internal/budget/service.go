package budget

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"
	"github.com/simplefinance/simplefinance/internal"
	"github.com/simplefinance/simplefinance/internal/auth"
)

// Service handles budget business logic
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// SetBudget upserts the actor's budget limit. Zero is a valid limit;
// negative limits are rejected.
func (s *Service) SetBudget(ctx context.Context, actor *auth.Actor, limit decimal.Decimal) (*Budget, error) {
	if actor == nil {
		return nil, internal.ErrSessionRequired
	}
	if limit.IsNegative() {
		return nil, internal.NewValidationError("budget limit cannot be negative", internal.ErrCodeInvalidLimit)
	}

	b := &Budget{
		UserID:      actor.ID,
		LimitAmount: limit,
	}
	if err := s.repo.Upsert(ctx, b); err != nil {
		s.logger.Error("failed to upsert budget", "error", err, "user_id", actor.ID)
		return nil, internal.NewInternalError("failed to set budget", err)
	}

	s.logger.Info("budget set", "user_id", actor.ID, "limit", limit.StringFixed(2))
	return b, nil
}

// GetBudget returns the user's budget, or nil when none is set.
func (s *Service) GetBudget(ctx context.Context, userID int64) (*Budget, error) {
	b, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("failed to get budget", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to get budget", err)
	}
	return b, nil
}
