package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/marcelchiarello/Meepot/internal/auth"
	"github.com/marcelchiarello/Meepot/internal/balance"
	"github.com/marcelchiarello/Meepot/internal/event"
	"github.com/marcelchiarello/Meepot/internal/expense"
	"github.com/marcelchiarello/Meepot/internal/transport/middleware"
	"github.com/marcelchiarello/Meepot/internal/transport/swagger"
)

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, authHandler *auth.Handler, eventHandler *event.Handler, expenseHandler *expense.Handler, balanceHandler *balance.Handler, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS(allowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		// Health check routes
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		if authHandler != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/login", authHandler.Login)
			})
		}

		if authHandler != nil {
			// Protected routes that require authentication
			r.Group(func(pr chi.Router) {
				pr.Use(authHandler.AuthMiddleware)

				if eventHandler != nil {
					pr.Route("/events", func(er chi.Router) {
						er.Post("/", eventHandler.CreateEvent) // POST /events
						er.Get("/", eventHandler.ListEvents)   // GET /events
						er.Get("/{id}", eventHandler.GetEvent) // GET /events/:id

						er.Post("/{id}/participants", eventHandler.AddParticipant) // POST /events/:id/participants
						er.Get("/{id}/participants", eventHandler.GetParticipants) // GET /events/:id/participants

						if expenseHandler != nil {
							er.Post("/{id}/expenses", expenseHandler.SubmitExpense) // POST /events/:id/expenses
							er.Get("/{id}/expenses", expenseHandler.ListExpenses)   // GET /events/:id/expenses
						}

						if balanceHandler != nil {
							er.Get("/{id}/balances", balanceHandler.GetBalances)                 // GET /events/:id/balances
							er.Get("/{id}/settlement", balanceHandler.GetSettlementSuggestions) // GET /events/:id/settlement
						}
					})
				}

				if expenseHandler != nil {
					pr.Route("/expenses", func(xr chi.Router) {
						xr.Get("/{expenseID}", expenseHandler.GetExpense)             // GET /expenses/:id
						xr.Patch("/{expenseID}/approve", expenseHandler.ApproveExpense) // PATCH /expenses/:id/approve
						xr.Patch("/{expenseID}/reject", expenseHandler.RejectExpense)   // PATCH /expenses/:id/reject
					})
				}
			})
		}
	})
}
