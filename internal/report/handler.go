package report

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/simplefinance/simplefinance/internal"
	"github.com/simplefinance/simplefinance/internal/auth"
	"github.com/simplefinance/simplefinance/internal/budget"
	"github.com/simplefinance/simplefinance/internal/catalog"
	"github.com/simplefinance/simplefinance/internal/expense"
	"github.com/simplefinance/simplefinance/internal/transport"
)

// ExpenseLister is the listing side of the expense service.
type ExpenseLister interface {
	ListExpenses(ctx context.Context, actor *auth.Actor, filter expense.ListFilter) ([]*expense.Expense, error)
}

// CatalogLister exposes the shared reference lists for the index view.
type CatalogLister interface {
	ListCategories(ctx context.Context) ([]catalog.Category, error)
	ListPaymentMethods(ctx context.Context) ([]catalog.PaymentMethod, error)
}

// BudgetGetter returns the user's budget, nil when unset.
type BudgetGetter interface {
	GetBudget(ctx context.Context, userID int64) (*budget.Budget, error)
}

type Handler struct {
	*transport.BaseHandler
	service  *Service
	expenses ExpenseLister
	catalogs CatalogLister
	budgets  BudgetGetter
}

func NewHandler(service *Service, expenses ExpenseLister, catalogs CatalogLister, budgets BudgetGetter) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(nil),
		service:     service,
		expenses:    expenses,
		catalogs:    catalogs,
		budgets:     budgets,
	}
}

// BudgetView pairs the configured limit with the remaining balance. The
// balance goes negative on overspend.
type BudgetView struct {
	Limit     decimal.Decimal `json:"limit"`
	Remaining decimal.Decimal `json:"remaining"`
}

// IndexView is the view model behind GET /.
type IndexView struct {
	Authenticated  bool                    `json:"authenticated"`
	Username       string                  `json:"username,omitempty"`
	Expenses       []*expense.Expense      `json:"expenses,omitempty"`
	Categories     []catalog.Category      `json:"categories,omitempty"`
	PaymentMethods []catalog.PaymentMethod `json:"payment_methods,omitempty"`
	Total          decimal.Decimal         `json:"total"`
	Budget         *BudgetView             `json:"budget,omitempty"`
}

// Index handles GET /. Anonymous visitors get an empty view, admins are
// redirected to the dashboard, everyone else gets their own filtered
// expense listing with totals and budget balance.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	actor := auth.ActorFromContext(r.Context())
	if actor == nil {
		h.WriteJSON(w, http.StatusOK, IndexView{Authenticated: false, Total: decimal.Zero})
		return
	}
	if auth.IsAdmin(actor) {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}

	filter, err := parseListFilter(r)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	expenses, err := h.expenses.ListExpenses(r.Context(), actor, filter)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	categories, err := h.catalogs.ListCategories(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	methods, err := h.catalogs.ListPaymentMethods(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	view := IndexView{
		Authenticated:  true,
		Username:       actor.Username,
		Expenses:       expenses,
		Categories:     categories,
		PaymentMethods: methods,
		Total:          Total(expenses),
	}

	b, err := h.budgets.GetBudget(r.Context(), actor.ID)
	switch {
	case err != nil:
		// Budget is a side panel of the index; the listing still renders.
		h.Logger.Error("failed to load budget for index view", "error", err, "user_id", actor.ID)
	case b != nil:
		view.Budget = &BudgetView{
			Limit:     b.LimitAmount,
			Remaining: BudgetRemaining(b.LimitAmount, expenses),
		}
	}

	h.WriteJSON(w, http.StatusOK, view)
}

// Dashboard handles GET /dashboard, the admin-only global KPI view.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	actor := auth.ActorFromContext(r.Context())

	kpis, err := h.service.GlobalKPIs(r.Context(), actor)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, kpis)
}

// ChartData handles GET /chart-data: the current actor's category breakdown
// shaped for the pie chart. Values are floats rounded to two decimals; the
// conversion happens only at this display edge.
func (h *Handler) ChartData(w http.ResponseWriter, r *http.Request) {
	actor := auth.ActorFromContext(r.Context())
	if actor == nil {
		h.HandleServiceError(w, internal.ErrSessionRequired)
		return
	}

	sums, err := h.service.CategoryBreakdown(r.Context(), actor.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	labels := make([]string, 0, len(sums))
	values := make([]float64, 0, len(sums))
	for _, s := range sums {
		labels = append(labels, s.Category)
		values = append(values, s.Total.Round(2).InexactFloat64())
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"labels": labels,
		"values": values,
	})
}

// parseListFilter reads the optional categoria_id, inicio and fin query
// params. Dates are yyyy-mm-dd; the fin bound covers the whole end day so
// the comparison against created_at stays inclusive. A single bound leaves
// Start or End nil and the range filter inactive.
func parseListFilter(r *http.Request) (expense.ListFilter, error) {
	var filter expense.ListFilter

	if raw := r.URL.Query().Get("categoria_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, internal.NewValidationError("invalid category filter", internal.ErrCodeInvalidCategory)
		}
		filter.CategoryID = &id
	}

	if raw := r.URL.Query().Get("inicio"); raw != "" {
		start, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, internal.NewValidationError("invalid start date", internal.ErrCodeInvalidDateRange)
		}
		filter.Start = &start
	}

	if raw := r.URL.Query().Get("fin"); raw != "" {
		end, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, internal.NewValidationError("invalid end date", internal.ErrCodeInvalidDateRange)
		}
		endOfDay := end.AddDate(0, 0, 1).Add(-time.Nanosecond)
		filter.End = &endOfDay
	}

	return filter, nil
}
