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

	"github.com/marcelchiarello/Meepot/internal"
	"github.com/marcelchiarello/Meepot/internal/auth"
	authPostgres "github.com/marcelchiarello/Meepot/internal/auth/postgres"
	"github.com/marcelchiarello/Meepot/internal/balance"
	"github.com/marcelchiarello/Meepot/internal/core/events"
	"github.com/marcelchiarello/Meepot/internal/event"
	eventPostgres "github.com/marcelchiarello/Meepot/internal/event/postgres"
	"github.com/marcelchiarello/Meepot/internal/expense"
	expensePostgres "github.com/marcelchiarello/Meepot/internal/expense/postgres"
	"github.com/marcelchiarello/Meepot/internal/transport/rest"
	"github.com/marcelchiarello/Meepot/internal/transport/swagger"
	"github.com/marcelchiarello/Meepot/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	GormDB *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger

	AuthHandler    *auth.Handler
	EventHandler   *event.Handler
	ExpenseHandler *expense.Handler
	BalanceHandler *balance.Handler
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, deps.AuthHandler, deps.EventHandler, deps.ExpenseHandler, deps.BalanceHandler, deps.Config.Server.AllowedOrigins, deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
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
		deps.Logger.Info("Received signal, shutting down...", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	appLogger := logger.Default()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// GORM shares the pgx pool instead of opening a second one.
	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	if err := swagger.ValidateSpec(context.Background(), "./api/openapi.yml"); err != nil {
		appLogger.Warn("openapi spec validation failed, swagger UI may be broken", "error", err)
	}

	bus := events.NewEventBus(appLogger)
	registerActivityFeed(bus, appLogger)

	userRepo := authPostgres.NewUserRepository(gormDB)
	authService := auth.NewService(userRepo, config.Security.TokenSecret, config.Security.AccessTokenDuration, appLogger)
	authHandler := auth.NewHandler(authService)

	eventRepo := eventPostgres.NewEventRepository(gormDB)
	eventService := event.NewService(eventRepo, appLogger)
	eventHandler := event.NewHandler(eventService)

	expenseRepo := expensePostgres.NewExpenseRepository(gormDB)
	expenseService := expense.NewService(expenseRepo, eventService, bus, appLogger)
	expenseHandler := expense.NewHandler(expenseService)

	balanceService := balance.NewService(expenseService, eventService, appLogger)
	balanceHandler := balance.NewHandler(balanceService)

	return &Dependencies{
		Config: config,
		Logger: appLogger,
		DB:     db,
		GormDB: gormDB,
		Router: chi.NewRouter(),

		AuthHandler:    authHandler,
		EventHandler:   eventHandler,
		ExpenseHandler: expenseHandler,
		BalanceHandler: balanceHandler,
	}, nil
}

// registerActivityFeed wires the expense lifecycle events into the activity
// log so approvals and rejections show up in the feed.
func registerActivityFeed(bus *events.EventBus, appLogger *slog.Logger) {
	logActivity := func(ctx context.Context, e events.Event) error {
		appLogger.Info("activity",
			"activity_type", e.EventType(),
			"event_id", e.EventID(),
			"occurred_at", e.OccurredAt(),
			"payload", e.Payload())
		return nil
	}

	bus.Subscribe(events.ExpenseSubmitted, logActivity)
	bus.Subscribe(events.ExpenseApproved, logActivity)
	bus.Subscribe(events.ExpenseRejected, logActivity)
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
