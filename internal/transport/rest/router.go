package rest

import (
	"database/sql"
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/simplefinance/simplefinance/internal/auth"
	"github.com/simplefinance/simplefinance/internal/bootstrap"
	"github.com/simplefinance/simplefinance/internal/budget"
	"github.com/simplefinance/simplefinance/internal/expense"
	"github.com/simplefinance/simplefinance/internal/report"
	"github.com/simplefinance/simplefinance/internal/transport/middleware"
	"github.com/simplefinance/simplefinance/internal/user"
)

// RegisterAllRoutes wires every handler onto the router.
func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	sessions *auth.SessionManager,
	authHandler *auth.Handler,
	expenseHandler *expense.Handler,
	budgetHandler *budget.Handler,
	reportHandler *report.Handler,
	userHandler *user.Handler,
	setupHandler *bootstrap.Handler,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// Operational endpoints, no session.
	router.Get("/health", healthHandler.healthCheckHandler)
	router.Get("/ping", healthHandler.pingHandler)
	router.Get("/setup", setupHandler.Setup)

	// Auth surface.
	router.Get("/register", authHandler.RegisterForm)
	router.Post("/register", authHandler.Register)
	router.Get("/login", authHandler.LoginForm)
	router.Post("/login", authHandler.Login)
	router.Get("/logout", authHandler.Logout)

	// Index is session-optional: anonymous visitors get the empty view.
	router.Group(func(r chi.Router) {
		r.Use(sessions.WithSession)
		r.Get("/", reportHandler.Index)
	})

	// Routes requiring an authenticated actor.
	router.Group(func(r chi.Router) {
		r.Use(sessions.RequireSession)

		r.Post("/agregar", expenseHandler.Create)
		r.Post("/editar/{id}", expenseHandler.Update)
		r.Get("/eliminar/{id}", expenseHandler.Delete)
		r.Post("/definir_presupuesto", budgetHandler.SetBudget)
		r.Get("/chart-data", reportHandler.ChartData)
	})

	// Admin-only surface.
	router.Group(func(r chi.Router) {
		r.Use(sessions.RequireAdmin)

		r.Get("/dashboard", reportHandler.Dashboard)
		r.Get("/eliminar_usuario/{id}", userHandler.DeleteUser)
	})
}
