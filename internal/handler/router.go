package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/segyhp/loan-tracker/pkg/response"
)

// NewRouter wires every route to its handler
func NewRouter(loanHandler *LoanHandler, healthHandler *HealthHandler, logger *zap.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(response.RecoveryMiddleware(logger), response.LoggingMiddleware(logger), response.CORSMiddleware)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})

	// Health check
	router.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods(http.MethodGet)

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/users", loanHandler.CreateUser).Methods(http.MethodPost)
	api.HandleFunc("/users/{userId}", loanHandler.GetUser).Methods(http.MethodGet)
	api.HandleFunc("/users/{userId}/loans", loanHandler.ListUserLoans).Methods(http.MethodGet)

	api.HandleFunc("/loans", loanHandler.CreateLoan).Methods(http.MethodPost)
	api.HandleFunc("/loans/{loanId}", loanHandler.GetLoan).Methods(http.MethodGet)
	api.HandleFunc("/loans/{loanId}/share", loanHandler.ShareLoan).Methods(http.MethodPost)
	api.HandleFunc("/loans/{loanId}/users", loanHandler.ListLoanUsers).Methods(http.MethodGet)
	api.HandleFunc("/loans/{loanId}/schedule", loanHandler.GetSchedule).Methods(http.MethodGet)
	api.HandleFunc("/loans/{loanId}/summary/{month}", loanHandler.GetSummary).Methods(http.MethodGet)

	return router
}
