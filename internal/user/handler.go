package user

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
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

// DeleteUser handles GET /eliminar_usuario/{id}. Admin only; the target's
// expenses and budget go with the user row.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	actor := auth.ActorFromContext(r.Context())

	idStr := chi.URLParam(r, "id")
	targetID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.service.DeleteUser(r.Context(), actor, targetID); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.Redirect(w, r, "/dashboard")
}
