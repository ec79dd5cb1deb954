package expense_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sort"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/simplefinance/simplefinance/internal"
	"github.com/simplefinance/simplefinance/internal/auth"
	"github.com/simplefinance/simplefinance/internal/expense"
)

func TestExpenseService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Expense Service Suite")
}

// Mock repository for testing
type mockExpenseRepository struct {
	expenses    map[int64]*expense.Expense
	nextID      int64
	createError error
	getError    error
	updateError error
	deleteError error
}

func newMockExpenseRepository() *mockExpenseRepository {
	return &mockExpenseRepository{
		expenses: make(map[int64]*expense.Expense),
		nextID:   1,
	}
}

func (m *mockExpenseRepository) Create(_ context.Context, exp *expense.Expense) error {
	if m.createError != nil {
		return m.createError
	}
	exp.ID = m.nextID
	m.nextID++
	stored := *exp
	m.expenses[exp.ID] = &stored
	return nil
}

func (m *mockExpenseRepository) GetByID(_ context.Context, id int64) (*expense.Expense, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	exp, ok := m.expenses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *exp
	return &copied, nil
}

func (m *mockExpenseRepository) ListByOwner(_ context.Context, ownerID int64, filter expense.ListFilter) ([]*expense.Expense, error) {
	var result []*expense.Expense
	for _, exp := range m.expenses {
		if exp.UserID != ownerID {
			continue
		}
		if filter.CategoryID != nil && exp.CategoryID != *filter.CategoryID {
			continue
		}
		if start, end, ok := filter.DateRange(); ok {
			if exp.CreatedAt.Before(start) || exp.CreatedAt.After(end) {
				continue
			}
		}
		copied := *exp
		result = append(result, &copied)
	}
	// newest-first, ties by descending id
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (m *mockExpenseRepository) Update(_ context.Context, exp *expense.Expense) error {
	if m.updateError != nil {
		return m.updateError
	}
	stored := *exp
	m.expenses[exp.ID] = &stored
	return nil
}

func (m *mockExpenseRepository) Delete(_ context.Context, id int64) error {
	if m.deleteError != nil {
		return m.deleteError
	}
	delete(m.expenses, id)
	return nil
}

// Mock catalog checker for testing
type mockCatalogChecker struct {
	validCategories     map[int64]bool
	validPaymentMethods map[int64]bool
}

func newMockCatalogChecker() *mockCatalogChecker {
	return &mockCatalogChecker{
		validCategories:     map[int64]bool{1: true, 2: true},
		validPaymentMethods: map[int64]bool{1: true},
	}
}

func (m *mockCatalogChecker) IsValidCategory(_ context.Context, id int64) bool {
	return m.validCategories[id]
}

func (m *mockCatalogChecker) IsValidPaymentMethod(_ context.Context, id int64) bool {
	return m.validPaymentMethods[id]
}

var _ = Describe("ExpenseService", func() {
	var (
		service *expense.Service
		repo    *mockExpenseRepository
		owner   *auth.Actor
		other   *auth.Actor
	)

	amount := func(s string) decimal.Decimal {
		return decimal.RequireFromString(s)
	}

	BeforeEach(func() {
		repo = newMockExpenseRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = expense.NewService(repo, newMockCatalogChecker(), logger)
		owner = &auth.Actor{ID: 1, Username: "maria", Role: auth.RoleStandard}
		other = &auth.Actor{ID: 2, Username: "pedro", Role: auth.RoleStandard}
	})

	Describe("CreateExpense", func() {
		Context("with a valid form", func() {
			It("records the expense owned by the actor", func() {
				dto := expense.CreateExpenseDTO{
					Amount:      amount("12.50"),
					Description: "almuerzo",
					CategoryID:  1,
				}

				result, err := service.CreateExpense(context.Background(), owner, dto)

				Expect(err).ToNot(HaveOccurred())
				Expect(result.ID).To(BeNumerically(">", 0))
				Expect(result.UserID).To(Equal(owner.ID))
				Expect(result.CreatedAt).ToNot(BeZero())
			})

			It("is immediately visible in the owner's listing with its amount in the total", func() {
				dto := expense.CreateExpenseDTO{
					Amount:      amount("30.00"),
					Description: "taxi",
					CategoryID:  2,
				}

				created, err := service.CreateExpense(context.Background(), owner, dto)
				Expect(err).ToNot(HaveOccurred())

				listed, err := service.ListExpenses(context.Background(), owner, expense.ListFilter{})
				Expect(err).ToNot(HaveOccurred())
				Expect(listed).To(HaveLen(1))
				Expect(listed[0].ID).To(Equal(created.ID))
				Expect(listed[0].Amount.StringFixed(2)).To(Equal("30.00"))
			})
		})

		Context("with invalid input", func() {
			It("rejects a non-positive amount", func() {
				dto := expense.CreateExpenseDTO{
					Amount:      amount("0"),
					Description: "nada",
					CategoryID:  1,
				}

				_, err := service.CreateExpense(context.Background(), owner, dto)

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidAmount))
			})

			It("rejects an unknown category", func() {
				dto := expense.CreateExpenseDTO{
					Amount:      amount("5"),
					Description: "algo",
					CategoryID:  99,
				}

				_, err := service.CreateExpense(context.Background(), owner, dto)

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidCategory))
			})

			It("rejects an anonymous actor", func() {
				dto := expense.CreateExpenseDTO{
					Amount:      amount("5"),
					Description: "algo",
					CategoryID:  1,
				}

				_, err := service.CreateExpense(context.Background(), nil, dto)

				Expect(err).To(MatchError(internal.ErrSessionRequired))
			})
		})
	})

	Describe("UpdateExpense", func() {
		var created *expense.Expense

		BeforeEach(func() {
			var err error
			created, err = service.CreateExpense(context.Background(), owner, expense.CreateExpenseDTO{
				Amount:      amount("10.00"),
				Description: "cine",
				CategoryID:  1,
			})
			Expect(err).ToNot(HaveOccurred())
		})

		It("mutates amount, description and category only", func() {
			updated, err := service.UpdateExpense(context.Background(), owner, created.ID, expense.UpdateExpenseDTO{
				Amount:      amount("15.00"),
				Description: "cine y palomitas",
				CategoryID:  2,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(updated.Amount.StringFixed(2)).To(Equal("15.00"))
			Expect(updated.Description).To(Equal("cine y palomitas"))
			Expect(updated.CategoryID).To(Equal(int64(2)))
			// owner and id remain untouched
			Expect(updated.ID).To(Equal(created.ID))
			Expect(updated.UserID).To(Equal(owner.ID))
		})

		It("denies a foreign actor and leaves the row unchanged", func() {
			_, err := service.UpdateExpense(context.Background(), other, created.ID, expense.UpdateExpenseDTO{
				Amount:      amount("999.00"),
				Description: "hackeado",
				CategoryID:  1,
			})

			Expect(err).To(MatchError(internal.ErrAccessDenied))

			unchanged, err := service.GetExpense(context.Background(), owner, created.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(unchanged.Amount.StringFixed(2)).To(Equal("10.00"))
			Expect(unchanged.Description).To(Equal("cine"))
		})

		It("fails with not-found for an unknown id", func() {
			_, err := service.UpdateExpense(context.Background(), owner, 9999, expense.UpdateExpenseDTO{
				Amount:      amount("1.00"),
				Description: "fantasma",
				CategoryID:  1,
			})

			Expect(err).To(MatchError(internal.ErrExpenseNotFound))
		})

		It("surfaces a storage failure as an internal error, not not-found", func() {
			repo.getError = errors.New("connection reset")

			_, err := service.UpdateExpense(context.Background(), owner, created.ID, expense.UpdateExpenseDTO{
				Amount:      amount("1.00"),
				Description: "cine",
				CategoryID:  1,
			})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeInternal))
		})
	})

	Describe("DeleteExpense", func() {
		var created *expense.Expense

		BeforeEach(func() {
			var err error
			created, err = service.CreateExpense(context.Background(), owner, expense.CreateExpenseDTO{
				Amount:      amount("20.00"),
				Description: "farmacia",
				CategoryID:  1,
			})
			Expect(err).ToNot(HaveOccurred())
		})

		It("removes an owned expense", func() {
			Expect(service.DeleteExpense(context.Background(), owner, created.ID)).To(Succeed())

			listed, err := service.ListExpenses(context.Background(), owner, expense.ListFilter{})
			Expect(err).ToNot(HaveOccurred())
			Expect(listed).To(BeEmpty())
		})

		It("denies a foreign actor and keeps the row", func() {
			err := service.DeleteExpense(context.Background(), other, created.ID)

			Expect(err).To(MatchError(internal.ErrAccessDenied))
			Expect(repo.expenses).To(HaveKey(created.ID))
		})

		It("fails with not-found for an unknown id", func() {
			Expect(service.DeleteExpense(context.Background(), owner, 9999)).To(MatchError(internal.ErrExpenseNotFound))
		})

		It("surfaces a storage failure as an internal error, not not-found", func() {
			repo.getError = errors.New("connection reset")

			err := service.DeleteExpense(context.Background(), owner, created.ID)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeInternal))
			Expect(repo.expenses).To(HaveKey(created.ID))
		})
	})

	Describe("ListExpenses date range", func() {
		day := func(d int) time.Time {
			return time.Date(2026, time.March, d, 12, 0, 0, 0, time.UTC)
		}

		BeforeEach(func() {
			for i, d := range []int{1, 10, 20} {
				exp := &expense.Expense{
					Amount:      amount("10"),
					Description: "gasto",
					CreatedAt:   day(d),
					UserID:      owner.ID,
					CategoryID:  1,
				}
				exp.ID = int64(i + 1)
				repo.expenses[exp.ID] = exp
				repo.nextID = exp.ID + 1
			}
		})

		It("applies the filter when both bounds are present", func() {
			start := day(5)
			end := day(15)
			listed, err := service.ListExpenses(context.Background(), owner, expense.ListFilter{
				Start: &start,
				End:   &end,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(listed).To(HaveLen(1))
			Expect(listed[0].CreatedAt).To(Equal(day(10)))
		})

		It("ignores the range entirely when only one bound is present", func() {
			end := day(15)
			withEndOnly, err := service.ListExpenses(context.Background(), owner, expense.ListFilter{End: &end})
			Expect(err).ToNot(HaveOccurred())

			unfiltered, err := service.ListExpenses(context.Background(), owner, expense.ListFilter{})
			Expect(err).ToNot(HaveOccurred())

			Expect(withEndOnly).To(HaveLen(len(unfiltered)))
		})

		It("returns newest first", func() {
			listed, err := service.ListExpenses(context.Background(), owner, expense.ListFilter{})

			Expect(err).ToNot(HaveOccurred())
			Expect(listed).To(HaveLen(3))
			Expect(listed[0].CreatedAt).To(Equal(day(20)))
			Expect(listed[2].CreatedAt).To(Equal(day(1)))
		})
	})
})
