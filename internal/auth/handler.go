package auth

import (
	"net/http"

	"github.com/simplefinance/simplefinance/internal"
	"github.com/simplefinance/simplefinance/internal/transport"
)

type Handler struct {
	*transport.BaseHandler
	service  *Service
	sessions *SessionManager
}

func NewHandler(service *Service, sessions *SessionManager) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(nil),
		service:     service,
		sessions:    sessions,
	}
}

// RegisterForm serves the empty registration view model.
func (h *Handler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, map[string]string{"view": "register"})
}

// Register creates an account from the submitted form and redirects to the
// login page. A duplicate username surfaces as a conflict rather than a
// second row.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.HandleServiceError(w, internal.NewValidationError("invalid form submission", internal.ErrCodeValidationFailed))
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")

	actor, err := h.service.Register(r.Context(), username, password)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("user registered", "user_id", actor.ID, "username", actor.Username)
	h.Redirect(w, r, "/login")
}

// LoginForm serves the empty login view model.
func (h *Handler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if actor := h.sessions.Current(r); actor != nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{"view": "login"})
}

// Login authenticates the submitted credentials and establishes the session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.HandleServiceError(w, internal.NewValidationError("invalid form submission", internal.ErrCodeValidationFailed))
		return
	}

	actor, err := h.service.Authenticate(r.Context(), r.FormValue("username"), r.FormValue("password"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if err := h.sessions.Establish(w, actor); err != nil {
		h.Logger.Error("failed to establish session", "error", err, "user_id", actor.ID)
		h.WriteError(w, http.StatusInternalServerError, "failed to establish session")
		return
	}

	h.Logger.Info("user logged in", "user_id", actor.ID, "username", actor.Username)
	h.Redirect(w, r, "/")
}

// Logout terminates the session and redirects to the login page.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Terminate(w)
	http.Redirect(w, r, "/login", http.StatusFound)
}
