package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/simplefinance/simplefinance/internal"
	"github.com/simplefinance/simplefinance/internal/auth"
	authstorage "github.com/simplefinance/simplefinance/internal/auth/storage"
	"github.com/simplefinance/simplefinance/internal/bootstrap"
	"github.com/simplefinance/simplefinance/internal/budget"
	budgetstorage "github.com/simplefinance/simplefinance/internal/budget/storage"
	"github.com/simplefinance/simplefinance/internal/catalog"
	catalogstorage "github.com/simplefinance/simplefinance/internal/catalog/storage"
	"github.com/simplefinance/simplefinance/internal/expense"
	expensestorage "github.com/simplefinance/simplefinance/internal/expense/storage"
	"github.com/simplefinance/simplefinance/internal/report"
	"github.com/simplefinance/simplefinance/internal/transport/rest"
	"github.com/simplefinance/simplefinance/internal/user"
	userstorage "github.com/simplefinance/simplefinance/internal/user/storage"
	"github.com/simplefinance/simplefinance/pkg/logger"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server that serves the web application.`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if sqlDB, err := deps.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				deps.Logger.Error("database close error", "error", err)
			}
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func setupRoutes(deps *Dependencies) {
	lg := deps.Logger
	db := deps.DB

	sessions := auth.NewSessionManager(
		deps.Config.Security.SessionSecret,
		deps.Config.Security.SessionTTL,
		os.Getenv("APP_ENV") == "production",
	)

	accountRepo := authstorage.NewAccountRepository(db)
	userRepo := userstorage.NewUserRepository(db)
	catalogRepo := catalogstorage.NewCatalogRepository(db)
	expenseRepo := expensestorage.NewExpenseRepository(db)
	budgetRepo := budgetstorage.NewBudgetRepository(db)

	authService := auth.NewService(accountRepo, deps.Config.Security.BCryptCost, lg)
	catalogService := catalog.NewService(catalogRepo, lg)
	expenseService := expense.NewService(expenseRepo, catalogService, lg)
	budgetService := budget.NewService(budgetRepo, lg)
	userService := user.NewService(userRepo, lg)
	reportService := report.NewService(expenseRepo, userRepo, lg)

	sqlDB, err := db.DB()
	if err != nil {
		lg.Error("failed to get sql.DB for health checks", "error", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(
		deps.Router,
		sqlDB,
		sessions,
		auth.NewHandler(authService, sessions),
		expense.NewHandler(expenseService),
		budget.NewHandler(budgetService),
		report.NewHandler(reportService, expenseService, catalogService, budgetService),
		user.NewHandler(userService),
		bootstrap.NewHandler(db),
		lg,
	)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Dependencies{
		Config: config,
		Logger: logger.LoggerWrapper(),
		DB:     db,
		Router: chi.NewRouter(),
	}, nil
}

// initDB opens the backing store: the embedded sqlite file by default, the
// networked postgres store when the source says so.
func initDB(cfg internal.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if cfg.IsPostgres() {
		dialector = postgres.Open(cfg.DSN())
	} else {
		dialector = sqlite.Open(cfg.DSN())
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
