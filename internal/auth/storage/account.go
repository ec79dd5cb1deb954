package storage

import (
	"context"
	"errors"

	"github.com/simplefinance/simplefinance/internal"
	"github.com/simplefinance/simplefinance/internal/auth"
	"github.com/simplefinance/simplefinance/internal/user"
	"gorm.io/gorm"
)

// AccountRepository implements auth.AccountStore on top of the users table.
type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) auth.AccountStore {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (*auth.Account, error) {
	var u user.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &auth.Account{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
	}, nil
}

func (r *AccountRepository) Create(ctx context.Context, account *auth.Account) error {
	u := user.User{
		Username:     account.Username,
		PasswordHash: account.PasswordHash,
		Role:         account.Role,
	}
	if err := r.db.WithContext(ctx).Create(&u).Error; err != nil {
		// Two registrations can race past the service's existence check; the
		// unique index on username is the real arbiter.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return internal.ErrUsernameTaken
		}
		return err
	}
	account.ID = u.ID
	return nil
}
