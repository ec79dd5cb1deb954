package storage

import (
	"context"

	"github.com/simplefinance/simplefinance/internal/budget"
	"github.com/simplefinance/simplefinance/internal/expense"
	"github.com/simplefinance/simplefinance/internal/user"
	"gorm.io/gorm"
)

// UserRepository implements the user.Repository interface using GORM
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	var u user.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&user.User{}).Count(&count).Error
	return count, err
}

// DeleteCascade removes owned expenses and budget before the user row itself.
// The application-level deletes keep the invariant on sqlite files created
// before foreign keys were enforced.
func (r *UserRepository) DeleteCascade(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&expense.Expense{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&budget.Budget{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&user.User{}).Error
	})
}
