package storage

import (
	"context"

	"github.com/simplefinance/simplefinance/internal/catalog"
	"gorm.io/gorm"
)

// CatalogRepository implements the catalog.Repository interface using GORM
type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) catalog.Repository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) GetAllCategories(ctx context.Context) ([]catalog.Category, error) {
	var categories []catalog.Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *CatalogRepository) CategoryExists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&catalog.Category{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *CatalogRepository) GetAllPaymentMethods(ctx context.Context) ([]catalog.PaymentMethod, error) {
	var methods []catalog.PaymentMethod
	err := r.db.WithContext(ctx).Order("name ASC").Find(&methods).Error
	return methods, err
}

func (r *CatalogRepository) PaymentMethodExists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&catalog.PaymentMethod{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
