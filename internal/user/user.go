package user

import (
	"context"
	"time"

	"github.com/simplefinance/simplefinance/internal/auth"
)

// User owns zero-or-many expenses and at most one budget. Deleting a user
// cascades to both.
type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:50;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;size:255;not null"`
	Role         auth.Role `json:"role" gorm:"size:20;not null;default:usuario"`
	CreatedAt    time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) Actor() *auth.Actor {
	return &auth.Actor{ID: u.ID, Username: u.Username, Role: u.Role}
}

// Repository defines the data access methods the user service depends on.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*User, error)
	Count(ctx context.Context) (int64, error)
	// DeleteCascade removes the user together with its expenses and budget
	// in a single transaction.
	DeleteCascade(ctx context.Context, id int64) error
}
