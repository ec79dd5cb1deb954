package budget

import (
	"net/http"

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

// SetBudget handles POST /definir_presupuesto. The form carries a single
// "limite" field.
func (h *Handler) SetBudget(w http.ResponseWriter, r *http.Request) {
	actor := auth.ActorFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		h.HandleServiceError(w, internal.NewValidationError("invalid form submission", internal.ErrCodeValidationFailed))
		return
	}

	limit, err := decimal.NewFromString(r.FormValue("limite"))
	if err != nil {
		h.HandleServiceError(w, internal.NewValidationError("invalid budget limit", internal.ErrCodeInvalidLimit))
		return
	}

	if _, err := h.service.SetBudget(r.Context(), actor, limit); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.Redirect(w, r, "/")
}
