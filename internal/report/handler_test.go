package report_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/simplefinance/simplefinance/internal/auth"
	"github.com/simplefinance/simplefinance/internal/budget"
	budgetStorage "github.com/simplefinance/simplefinance/internal/budget/storage"
	"github.com/simplefinance/simplefinance/internal/catalog"
	catalogStorage "github.com/simplefinance/simplefinance/internal/catalog/storage"
	"github.com/simplefinance/simplefinance/internal/expense"
	expenseStorage "github.com/simplefinance/simplefinance/internal/expense/storage"
	"github.com/simplefinance/simplefinance/internal/report"
	"github.com/simplefinance/simplefinance/internal/user"
	userStorage "github.com/simplefinance/simplefinance/internal/user/storage"
)

type failingBudgetGetter struct{}

func (failingBudgetGetter) GetBudget(_ context.Context, _ int64) (*budget.Budget, error) {
	return nil, errors.New("connection reset")
}

var _ = Describe("Report Handler Integration", func() {
	var (
		db      *gorm.DB
		handler *report.Handler
		slogger *slog.Logger

		maria *auth.Actor
		admin *auth.Actor

		budgetService  *budget.Service
		catalogService *catalog.Service
		expenseService *expense.Service
		reportService  *report.Service
	)

	request := func(target string, actor *auth.Actor) *http.Request {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		if actor != nil {
			req = req.WithContext(auth.ContextWithActor(req.Context(), actor))
		}
		return req
	}

	addExpense := func(ownerID, categoryID int64, amt string, createdAt time.Time) {
		exp := &expense.Expense{
			Amount:      amount(amt),
			Description: "gasto",
			CreatedAt:   createdAt,
			UserID:      ownerID,
			CategoryID:  categoryID,
		}
		Expect(db.Create(exp).Error).To(Succeed())
	}

	BeforeEach(func() {
		var err error
		slogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&user.User{}, &catalog.Category{}, &catalog.PaymentMethod{},
			&budget.Budget{}, &expense.Expense{})
		Expect(err).NotTo(HaveOccurred())

		Expect(db.Create([]*user.User{
			{ID: 1, Username: "admin", PasswordHash: "x", Role: auth.RoleAdmin},
			{ID: 2, Username: "maria", PasswordHash: "x", Role: auth.RoleStandard},
		}).Error).To(Succeed())
		Expect(db.Create([]*catalog.Category{
			{ID: 1, Name: "Comida"},
			{ID: 2, Name: "Transporte"},
		}).Error).To(Succeed())
		Expect(db.Create(&catalog.PaymentMethod{ID: 1, Name: "Efectivo"}).Error).To(Succeed())

		admin = &auth.Actor{ID: 1, Username: "admin", Role: auth.RoleAdmin}
		maria = &auth.Actor{ID: 2, Username: "maria", Role: auth.RoleStandard}

		expenseRepo := expenseStorage.NewExpenseRepository(db)
		userRepo := userStorage.NewUserRepository(db)
		catalogRepo := catalogStorage.NewCatalogRepository(db)
		budgetRepo := budgetStorage.NewBudgetRepository(db)

		catalogService = catalog.NewService(catalogRepo, slogger)
		expenseService = expense.NewService(expenseRepo, catalogService, slogger)
		budgetService = budget.NewService(budgetRepo, slogger)
		reportService = report.NewService(expenseRepo, userRepo, slogger)

		handler = report.NewHandler(reportService, expenseService, catalogService, budgetService)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	Describe("GET /", func() {
		It("serves an empty unauthenticated view to anonymous visitors", func() {
			w := httptest.NewRecorder()

			handler.Index(w, request("/", nil))

			Expect(w.Code).To(Equal(http.StatusOK))
			var view report.IndexView
			Expect(json.NewDecoder(w.Body).Decode(&view)).To(Succeed())
			Expect(view.Authenticated).To(BeFalse())
			Expect(view.Expenses).To(BeEmpty())
		})

		It("redirects admins to the dashboard", func() {
			w := httptest.NewRecorder()

			handler.Index(w, request("/", admin))

			Expect(w.Code).To(Equal(http.StatusFound))
			Expect(w.Header().Get("Location")).To(Equal("/dashboard"))
		})

		It("serves the actor's expenses, catalogs and running total", func() {
			addExpense(maria.ID, 1, "10.00", time.Now().Add(-time.Hour))
			addExpense(maria.ID, 2, "5.50", time.Now())
			addExpense(admin.ID, 1, "99.00", time.Now())

			w := httptest.NewRecorder()
			handler.Index(w, request("/", maria))

			Expect(w.Code).To(Equal(http.StatusOK))
			var view report.IndexView
			Expect(json.NewDecoder(w.Body).Decode(&view)).To(Succeed())
			Expect(view.Authenticated).To(BeTrue())
			Expect(view.Username).To(Equal("maria"))
			Expect(view.Expenses).To(HaveLen(2))
			Expect(view.Expenses[0].Amount.StringFixed(2)).To(Equal("5.50"))
			Expect(view.Categories).To(HaveLen(2))
			Expect(view.PaymentMethods).To(HaveLen(1))
			Expect(view.Total.StringFixed(2)).To(Equal("15.50"))
			Expect(view.Budget).To(BeNil())
		})

		It("includes the budget balance once a limit is set", func() {
			addExpense(maria.ID, 1, "120.00", time.Now())
			_, err := budgetService.SetBudget(request("/", maria).Context(), maria, amount("100.00"))
			Expect(err).NotTo(HaveOccurred())

			w := httptest.NewRecorder()
			handler.Index(w, request("/", maria))

			var view report.IndexView
			Expect(json.NewDecoder(w.Body).Decode(&view)).To(Succeed())
			Expect(view.Budget).NotTo(BeNil())
			Expect(view.Budget.Limit.StringFixed(2)).To(Equal("100.00"))
			Expect(view.Budget.Remaining.StringFixed(2)).To(Equal("-20.00"))
		})

		It("narrows the listing and total by category", func() {
			addExpense(maria.ID, 1, "10.00", time.Now())
			addExpense(maria.ID, 2, "5.00", time.Now())

			w := httptest.NewRecorder()
			handler.Index(w, request("/?categoria_id=1", maria))

			var view report.IndexView
			Expect(json.NewDecoder(w.Body).Decode(&view)).To(Succeed())
			Expect(view.Expenses).To(HaveLen(1))
			Expect(view.Total.StringFixed(2)).To(Equal("10.00"))
		})

		It("treats the fin date as inclusive", func() {
			addExpense(maria.ID, 1, "10.00", time.Date(2026, time.May, 10, 23, 30, 0, 0, time.UTC))
			addExpense(maria.ID, 1, "20.00", time.Date(2026, time.May, 11, 0, 30, 0, 0, time.UTC))

			w := httptest.NewRecorder()
			handler.Index(w, request("/?inicio=2026-05-01&fin=2026-05-10", maria))

			var view report.IndexView
			Expect(json.NewDecoder(w.Body).Decode(&view)).To(Succeed())
			Expect(view.Expenses).To(HaveLen(1))
			Expect(view.Total.StringFixed(2)).To(Equal("10.00"))
		})

		It("still serves the listing when the budget lookup fails", func() {
			addExpense(maria.ID, 1, "10.00", time.Now())
			broken := report.NewHandler(reportService, expenseService, catalogService, failingBudgetGetter{})

			w := httptest.NewRecorder()
			broken.Index(w, request("/", maria))

			Expect(w.Code).To(Equal(http.StatusOK))
			var view report.IndexView
			Expect(json.NewDecoder(w.Body).Decode(&view)).To(Succeed())
			Expect(view.Expenses).To(HaveLen(1))
			Expect(view.Budget).To(BeNil())
		})

		It("rejects a malformed date", func() {
			w := httptest.NewRecorder()

			handler.Index(w, request("/?inicio=ayer&fin=2026-05-10", maria))

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("GET /dashboard", func() {
		It("serves the global KPIs to an admin", func() {
			addExpense(maria.ID, 1, "30.00", time.Now())
			addExpense(admin.ID, 2, "10.00", time.Now())

			w := httptest.NewRecorder()
			handler.Dashboard(w, request("/dashboard", admin))

			Expect(w.Code).To(Equal(http.StatusOK))
			var kpis report.KPIs
			Expect(json.NewDecoder(w.Body).Decode(&kpis)).To(Succeed())
			Expect(kpis.TotalAllExpenses.StringFixed(2)).To(Equal("40.00"))
			Expect(kpis.UserCount).To(Equal(int64(2)))
			Expect(kpis.AveragePerUser.StringFixed(2)).To(Equal("20.00"))
			Expect(kpis.MostRecent).To(HaveLen(2))
		})

		It("refuses a standard user", func() {
			w := httptest.NewRecorder()

			handler.Dashboard(w, request("/dashboard", maria))

			Expect(w.Code).To(Equal(http.StatusForbidden))
		})
	})

	Describe("GET /chart-data", func() {
		It("shapes the actor's category breakdown for the pie chart", func() {
			addExpense(maria.ID, 1, "10.50", time.Now())
			addExpense(maria.ID, 1, "4.50", time.Now())
			addExpense(maria.ID, 2, "7.00", time.Now())
			addExpense(admin.ID, 1, "100.00", time.Now())

			w := httptest.NewRecorder()
			handler.ChartData(w, request("/chart-data", maria))

			Expect(w.Code).To(Equal(http.StatusOK))
			var payload struct {
				Labels []string  `json:"labels"`
				Values []float64 `json:"values"`
			}
			Expect(json.NewDecoder(w.Body).Decode(&payload)).To(Succeed())
			Expect(payload.Labels).To(Equal([]string{"Comida", "Transporte"}))
			Expect(payload.Values).To(Equal([]float64{15, 7}))
		})

		It("refuses an anonymous visitor", func() {
			w := httptest.NewRecorder()

			handler.ChartData(w, request("/chart-data", nil))

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})
	})
})
