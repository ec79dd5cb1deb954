package catalog

import (
	"context"
	"log/slog"
)

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

func (s *Service) ListCategories(ctx context.Context) ([]Category, error) {
	categories, err := s.repo.GetAllCategories(ctx)
	if err != nil {
		s.logger.Error("failed to list categories", "error", err)
		return nil, err
	}
	return categories, nil
}

func (s *Service) ListPaymentMethods(ctx context.Context) ([]PaymentMethod, error) {
	methods, err := s.repo.GetAllPaymentMethods(ctx)
	if err != nil {
		s.logger.Error("failed to list payment methods", "error", err)
		return nil, err
	}
	return methods, nil
}

// IsValidCategory reports whether a category row with the given id exists.
func (s *Service) IsValidCategory(ctx context.Context, id int64) bool {
	ok, err := s.repo.CategoryExists(ctx, id)
	if err != nil {
		s.logger.Warn("error checking category validity", "category_id", id, "error", err)
		return false
	}
	return ok
}

// IsValidPaymentMethod reports whether a payment method row with the given
// id exists.
func (s *Service) IsValidPaymentMethod(ctx context.Context, id int64) bool {
	ok, err := s.repo.PaymentMethodExists(ctx, id)
	if err != nil {
		s.logger.Warn("error checking payment method validity", "payment_method_id", id, "error", err)
		return false
	}
	return ok
}
