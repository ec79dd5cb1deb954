package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/simplefinance/simplefinance/internal"
	"golang.org/x/crypto/bcrypt"
)

// Service verifies credentials and registers new accounts.
type Service struct {
	accounts   AccountStore
	bcryptCost int
	logger     *slog.Logger
}

func NewService(accounts AccountStore, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		accounts:   accounts,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Authenticate compares the plaintext against the stored bcrypt hash. Unknown
// username and wrong password are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*Actor, error) {
	account, err := s.accounts.FindByUsername(ctx, username)
	if err != nil {
		s.logger.Warn("authentication failed: unknown username", "username", username)
		return nil, internal.ErrInvalidCredentials
	}

	if err := VerifyPassword(account.PasswordHash, password); err != nil {
		s.logger.Warn("authentication failed: password mismatch", "username", username)
		return nil, internal.ErrInvalidCredentials
	}

	return account.Actor(), nil
}

// Register creates a standard-role account. Username matching is
// case-sensitive exact, so "Admin" and "admin" are distinct accounts.
func (s *Service) Register(ctx context.Context, username, password string) (*Actor, error) {
	if err := validateRegistration(username, password); err != nil {
		return nil, err
	}

	if _, err := s.accounts.FindByUsername(ctx, username); err == nil {
		s.logger.Warn("registration rejected: username taken", "username", username)
		return nil, internal.ErrUsernameTaken
	}

	hash, err := HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	account := &Account{
		Username:     username,
		PasswordHash: hash,
		Role:         RoleStandard,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		// A concurrent registration may win the unique index after our
		// existence check passed.
		if errors.Is(err, internal.ErrUsernameTaken) {
			s.logger.Warn("registration rejected: username taken", "username", username)
			return nil, internal.ErrUsernameTaken
		}
		s.logger.Error("failed to create account", "error", err, "username", username)
		return nil, internal.NewInternalError("failed to create account", err)
	}

	s.logger.Info("account registered", "user_id", account.ID, "username", username)
	return account.Actor(), nil
}

func validateRegistration(username, password string) error {
	if strings.TrimSpace(username) == "" {
		return internal.NewValidationError("username is required", internal.ErrCodeValidationFailed)
	}
	if len(username) > MaxUsernameLength {
		return internal.NewValidationError("username is too long", internal.ErrCodeValidationFailed)
	}
	if password == "" {
		return internal.NewValidationError("password is required", internal.ErrCodeValidationFailed)
	}
	if len(password) > MaxPasswordLength {
		return internal.NewValidationError("password is too long", internal.ErrCodeValidationFailed)
	}
	return nil
}
