package user

import (
	"context"
	"log/slog"

	"github.com/simplefinance/simplefinance/internal"
	"github.com/simplefinance/simplefinance/internal/auth"
)

// Service handles administrative user operations.
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

// DeleteUser removes target user and all owned rows. Only admins may delete,
// and never themselves.
func (s *Service) DeleteUser(ctx context.Context, actor *auth.Actor, targetID int64) error {
	if !auth.CanDeleteUser(actor, targetID) {
		s.logger.Warn("user deletion denied",
			"actor_id", actorID(actor),
			"target_id", targetID)
		return internal.ErrAccessDenied
	}

	target, err := s.repo.GetByID(ctx, targetID)
	if err != nil {
		s.logger.Warn("user deletion target not found", "target_id", targetID)
		return internal.ErrUserNotFound
	}

	if err := s.repo.DeleteCascade(ctx, target.ID); err != nil {
		s.logger.Error("failed to delete user", "error", err, "target_id", targetID)
		return internal.NewInternalError("failed to delete user", err)
	}

	s.logger.Info("user deleted",
		"actor_id", actor.ID,
		"target_id", target.ID,
		"target_username", target.Username)
	return nil
}

func actorID(actor *auth.Actor) int64 {
	if actor == nil {
		return 0
	}
	return actor.ID
}
