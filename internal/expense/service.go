package expense

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/simplefinance/simplefinance/internal"
	"github.com/simplefinance/simplefinance/internal/auth"
	"gorm.io/gorm"
)

// CatalogChecker validates reference-list foreign keys before a write.
type CatalogChecker interface {
	IsValidCategory(ctx context.Context, id int64) bool
	IsValidPaymentMethod(ctx context.Context, id int64) bool
}

// Service handles expense business logic
type Service struct {
	repo    Repository
	catalog CatalogChecker
	logger  *slog.Logger
}

func NewService(repo Repository, catalog CatalogChecker, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		catalog: catalog,
		logger:  logger,
	}
}

// CreateExpense records a new expense owned by actor.
func (s *Service) CreateExpense(ctx context.Context, actor *auth.Actor, dto CreateExpenseDTO) (*Expense, error) {
	if actor == nil {
		return nil, internal.ErrSessionRequired
	}
	if err := dto.Validate(); err != nil {
		s.logger.Warn("expense validation failed", "error", err, "user_id", actor.ID)
		return nil, err
	}
	if err := s.checkReferences(ctx, dto.CategoryID, dto.PaymentMethodID); err != nil {
		return nil, err
	}

	exp := &Expense{
		Amount:          dto.Amount,
		Description:     dto.Description,
		CreatedAt:       time.Now(),
		UserID:          actor.ID,
		CategoryID:      dto.CategoryID,
		PaymentMethodID: dto.PaymentMethodID,
	}

	if err := s.repo.Create(ctx, exp); err != nil {
		s.logger.Error("failed to create expense", "error", err, "user_id", actor.ID)
		return nil, internal.NewInternalError("failed to create expense", err)
	}

	s.logger.Info("expense created",
		"expense_id", exp.ID,
		"user_id", actor.ID,
		"amount", exp.Amount.StringFixed(2))
	return exp, nil
}

// GetExpense returns a single expense, enforcing ownership.
func (s *Service) GetExpense(ctx context.Context, actor *auth.Actor, id int64) (*Expense, error) {
	exp, err := s.loadExpense(ctx, id)
	if err != nil {
		return nil, err
	}
	if !auth.CanViewExpense(actor, exp.UserID) {
		s.logger.Warn("expense read denied", "expense_id", id, "actor_id", actorID(actor))
		return nil, internal.ErrAccessDenied
	}
	return exp, nil
}

// UpdateExpense mutates amount, description, category and payment method of
// an owned expense. Unknown ids fail with not-found rather than silently
// no-oping.
func (s *Service) UpdateExpense(ctx context.Context, actor *auth.Actor, id int64, dto UpdateExpenseDTO) (*Expense, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("expense validation failed", "error", err, "expense_id", id)
		return nil, err
	}

	exp, err := s.loadExpense(ctx, id)
	if err != nil {
		return nil, err
	}
	if !auth.CanMutateExpense(actor, exp.UserID) {
		s.logger.Warn("expense edit denied",
			"expense_id", id,
			"actor_id", actorID(actor),
			"owner_id", exp.UserID)
		return nil, internal.ErrAccessDenied
	}
	if err := s.checkReferences(ctx, dto.CategoryID, dto.PaymentMethodID); err != nil {
		return nil, err
	}

	exp.Amount = dto.Amount
	exp.Description = dto.Description
	exp.CategoryID = dto.CategoryID
	exp.PaymentMethodID = dto.PaymentMethodID

	if err := s.repo.Update(ctx, exp); err != nil {
		s.logger.Error("failed to update expense", "error", err, "expense_id", id)
		return nil, internal.NewInternalError("failed to update expense", err)
	}

	s.logger.Info("expense updated", "expense_id", id, "actor_id", actor.ID)
	return exp, nil
}

// DeleteExpense removes an owned expense.
func (s *Service) DeleteExpense(ctx context.Context, actor *auth.Actor, id int64) error {
	exp, err := s.loadExpense(ctx, id)
	if err != nil {
		return err
	}
	if !auth.CanMutateExpense(actor, exp.UserID) {
		s.logger.Warn("expense delete denied",
			"expense_id", id,
			"actor_id", actorID(actor),
			"owner_id", exp.UserID)
		return internal.ErrAccessDenied
	}

	if err := s.repo.Delete(ctx, exp.ID); err != nil {
		s.logger.Error("failed to delete expense", "error", err, "expense_id", id)
		return internal.NewInternalError("failed to delete expense", err)
	}

	s.logger.Info("expense deleted", "expense_id", id, "actor_id", actor.ID)
	return nil
}

// ListExpenses returns the actor's own expenses newest-first, optionally
// narrowed by category and an inclusive date range.
func (s *Service) ListExpenses(ctx context.Context, actor *auth.Actor, filter ListFilter) ([]*Expense, error) {
	if actor == nil {
		return nil, internal.ErrSessionRequired
	}

	expenses, err := s.repo.ListByOwner(ctx, actor.ID, filter)
	if err != nil {
		s.logger.Error("failed to list expenses", "error", err, "user_id", actor.ID)
		return nil, internal.NewInternalError("failed to list expenses", err)
	}
	return expenses, nil
}

// loadExpense maps a missing row to not-found; any other storage failure
// stays an internal error rather than masquerading as 404.
func (s *Service) loadExpense(ctx context.Context, id int64) (*Expense, error) {
	exp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrExpenseNotFound
		}
		s.logger.Error("failed to load expense", "error", err, "expense_id", id)
		return nil, internal.NewInternalError("failed to load expense", err)
	}
	return exp, nil
}

func (s *Service) checkReferences(ctx context.Context, categoryID int64, paymentMethodID *int64) error {
	if !s.catalog.IsValidCategory(ctx, categoryID) {
		return internal.NewValidationError("unknown category", internal.ErrCodeInvalidCategory)
	}
	if paymentMethodID != nil && !s.catalog.IsValidPaymentMethod(ctx, *paymentMethodID) {
		return internal.NewValidationError("unknown payment method", internal.ErrCodeValidationFailed)
	}
	return nil
}

func actorID(actor *auth.Actor) int64 {
	if actor == nil {
		return 0
	}
	return actor.ID
}
