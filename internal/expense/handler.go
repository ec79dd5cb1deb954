package expense

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"
	"github.com/simplefinance/simplefinance/internal"
	"github.com/simplefinance/simplefinance/internal/auth"
	"github.com/simplefinance/simplefinance/internal/transport"
)

type Handler struct {
	*transport.BaseHandler
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(nil),
		service:     service,
	}
}

// Create handles POST /agregar and redirects back to the listing.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor := auth.ActorFromContext(r.Context())

	dto, err := parseExpenseForm(r)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if _, err := h.service.CreateExpense(r.Context(), actor, dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.Redirect(w, r, "/")
}

// Update handles POST /editar/{id}. Only amount, description, category and
// payment method can change.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	actor := auth.ActorFromContext(r.Context())

	id, err := parseID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid expense id")
		return
	}

	dto, err := parseExpenseForm(r)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	update := UpdateExpenseDTO{
		Amount:          dto.Amount,
		Description:     dto.Description,
		CategoryID:      dto.CategoryID,
		PaymentMethodID: dto.PaymentMethodID,
	}
	if _, err := h.service.UpdateExpense(r.Context(), actor, id, update); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.Redirect(w, r, "/")
}

// Delete handles GET /eliminar/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := auth.ActorFromContext(r.Context())

	id, err := parseID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid expense id")
		return
	}

	if err := h.service.DeleteExpense(r.Context(), actor, id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.Redirect(w, r, "/")
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// parseExpenseForm reads the add/edit form fields: monto, descripcion,
// categoria_id and the optional metodo_pago_id.
func parseExpenseForm(r *http.Request) (CreateExpenseDTO, error) {
	if err := r.ParseForm(); err != nil {
		return CreateExpenseDTO{}, internal.NewValidationError("invalid form submission", internal.ErrCodeValidationFailed)
	}

	amount, err := decimal.NewFromString(r.FormValue("monto"))
	if err != nil {
		return CreateExpenseDTO{}, internal.NewValidationError("invalid amount", internal.ErrCodeInvalidAmount)
	}

	categoryID, err := strconv.ParseInt(r.FormValue("categoria_id"), 10, 64)
	if err != nil {
		return CreateExpenseDTO{}, internal.NewValidationError("invalid category", internal.ErrCodeInvalidCategory)
	}

	dto := CreateExpenseDTO{
		Amount:      amount,
		Description: r.FormValue("descripcion"),
		CategoryID:  categoryID,
	}

	if raw := r.FormValue("metodo_pago_id"); raw != "" {
		methodID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return CreateExpenseDTO{}, internal.NewValidationError("invalid payment method", internal.ErrCodeValidationFailed)
		}
		dto.PaymentMethodID = &methodID
	}

	return dto, nil
}
