// Package bootstrap creates the schema and the fixed seed rows. Both steps
// are idempotent: running them against an already-initialized database
// changes nothing.
package bootstrap

import (
	"log/slog"

	"github.com/simplefinance/simplefinance/internal/auth"
	"github.com/simplefinance/simplefinance/internal/budget"
	"github.com/simplefinance/simplefinance/internal/catalog"
	"github.com/simplefinance/simplefinance/internal/expense"
	"github.com/simplefinance/simplefinance/internal/user"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var defaultCategories = []string{"Comida", "Transporte", "Ocio", "Salud"}

var defaultPaymentMethods = []string{"Efectivo", "Tarjeta Débito", "Tarjeta Crédito"}

const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
)

// InitializeSchema creates all tables. AutoMigrate only adds what is
// missing, so repeated invocations are safe.
func InitializeSchema(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.User{},
		&catalog.Category{},
		&catalog.PaymentMethod{},
		&budget.Budget{},
		&expense.Expense{},
	)
}

// SeedDefaults inserts the fixed reference rows and the default admin
// account, each only when absent.
func SeedDefaults(db *gorm.DB, logger *slog.Logger) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, name := range defaultCategories {
			var count int64
			if err := tx.Model(&catalog.Category{}).Where("name = ?", name).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}
			if err := tx.Create(&catalog.Category{Name: name}).Error; err != nil {
				return err
			}
			logger.Info("seeded category", "name", name)
		}

		for _, name := range defaultPaymentMethods {
			var count int64
			if err := tx.Model(&catalog.PaymentMethod{}).Where("name = ?", name).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}
			if err := tx.Create(&catalog.PaymentMethod{Name: name}).Error; err != nil {
				return err
			}
			logger.Info("seeded payment method", "name", name)
		}

		var adminCount int64
		if err := tx.Model(&user.User{}).Where("username = ?", defaultAdminUsername).Count(&adminCount).Error; err != nil {
			return err
		}
		if adminCount == 0 {
			hash, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			admin := &user.User{
				Username:     defaultAdminUsername,
				PasswordHash: string(hash),
				Role:         auth.RoleAdmin,
			}
			if err := tx.Create(admin).Error; err != nil {
				return err
			}
			logger.Info("seeded admin user", "username", defaultAdminUsername)
		}

		return nil
	})
}
