package bootstrap

import (
	"net/http"

	"github.com/simplefinance/simplefinance/internal/transport"
	"gorm.io/gorm"
)

type Handler struct {
	*transport.BaseHandler
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(nil),
		db:          db,
	}
}

// Setup handles GET /setup: idempotent schema init plus seed, safe to hit
// repeatedly.
func (h *Handler) Setup(w http.ResponseWriter, r *http.Request) {
	if err := InitializeSchema(h.db); err != nil {
		h.Logger.Error("schema initialization failed", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "schema initialization failed")
		return
	}

	if err := SeedDefaults(h.db, h.Logger); err != nil {
		h.Logger.Error("seeding failed", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "seeding failed")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("SimpleFinance: base de datos inicializada correctamente.\n"))
}
