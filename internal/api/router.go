package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/stakemesh/wagerd/internal/api/handler"
	"github.com/stakemesh/wagerd/internal/api/middleware"
	"github.com/stakemesh/wagerd/internal/ledger"
	"github.com/stakemesh/wagerd/internal/services/admission"
	"github.com/stakemesh/wagerd/internal/services/auth"
	"github.com/stakemesh/wagerd/internal/services/session"
	"github.com/stakemesh/wagerd/internal/services/settlement"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger              *slog.Logger
	AuthService         *auth.Service
	Ledger              ledger.Ledger
	SessionController   *session.Controller
	AdmissionController *admission.Controller
	SettlementEngine    *settlement.Engine
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	identityHandler := handler.NewIdentityHandler(cfg.AuthService, cfg.Ledger)
	sessionHandler := handler.NewSessionHandler(cfg.SessionController, cfg.AdmissionController)
	settlementHandler := handler.NewSettlementHandler(cfg.SessionController, cfg.SettlementEngine)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Identity routes (no auth required for registering/logging in)
	api.HandleFunc("/identities/register", identityHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/identities/login", identityHandler.Login).Methods(http.MethodPost)

	// Account routes (require auth)
	accounts := api.PathPrefix("/accounts").Subrouter()
	accounts.Use(authMiddleware)
	accounts.HandleFunc("/deposit", identityHandler.Deposit).Methods(http.MethodPost)
	accounts.HandleFunc("/me/balance", identityHandler.GetBalance).Methods(http.MethodGet)

	// Session routes (all require auth)
	sessions := api.PathPrefix("/sessions").Subrouter()
	sessions.Use(authMiddleware)
	sessions.HandleFunc("", sessionHandler.Create).Methods(http.MethodPost)
	sessions.HandleFunc("", sessionHandler.List).Methods(http.MethodGet)
	sessions.HandleFunc("/{id}", sessionHandler.Get).Methods(http.MethodGet)
	sessions.HandleFunc("/{id}", sessionHandler.Close).Methods(http.MethodDelete)
	sessions.HandleFunc("/{id}/join", sessionHandler.Join).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/spawns", sessionHandler.PayToSpawn).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/kills", sessionHandler.RecordKill).Methods(http.MethodPost)

	// Settlement routes
	sessions.HandleFunc("/{id}/settle", settlementHandler.Settle).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/settle-by-spawns", settlementHandler.SettleBySpawns).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/refund", settlementHandler.Refund).Methods(http.MethodPost)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
