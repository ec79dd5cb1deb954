package catalog

import "context"

// Category is a shared reference list entry. Categories are never owned by a
// single user and no deletion is exposed.
type Category struct {
	ID   int64  `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:50;uniqueIndex;not null"`
}

func (Category) TableName() string {
	return "categories"
}

// PaymentMethod has the same shape and rules as Category.
type PaymentMethod struct {
	ID   int64  `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:50;uniqueIndex;not null"`
}

func (PaymentMethod) TableName() string {
	return "payment_methods"
}

// Repository defines the data access methods for the reference lists.
type Repository interface {
	GetAllCategories(ctx context.Context) ([]Category, error)
	CategoryExists(ctx context.Context, id int64) (bool, error)
	GetAllPaymentMethods(ctx context.Context) ([]PaymentMethod, error)
	PaymentMethodExists(ctx context.Context, id int64) (bool, error)
}
