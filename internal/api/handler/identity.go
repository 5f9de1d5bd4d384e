package handler

import (
	"encoding/json"
	"net/http"

	"github.com/stakemesh/wagerd/internal/api/middleware"
	"github.com/stakemesh/wagerd/internal/api/request"
	"github.com/stakemesh/wagerd/internal/api/response"
	"github.com/stakemesh/wagerd/internal/ledger"
	"github.com/stakemesh/wagerd/internal/model"
	"github.com/stakemesh/wagerd/internal/services/auth"
)

// IdentityHandler handles identity and account endpoints
type IdentityHandler struct {
	authService *auth.Service
	ledger      ledger.Ledger
}

// NewIdentityHandler creates a new identity handler
func NewIdentityHandler(authService *auth.Service, ledger ledger.Ledger) *IdentityHandler {
	return &IdentityHandler{
		authService: authService,
		ledger:      ledger,
	}
}

// Register handles POST /api/v1/identities/register
func (h *IdentityHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Account == "" {
		WriteError(w, NewInvalidRequestError("account is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	token, err := h.authService.Register(model.AccountID(req.Account), req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AuthResponseFromToken(token))
}

// Login handles POST /api/v1/identities/login
func (h *IdentityHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Account == "" {
		WriteError(w, NewInvalidRequestError("account is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	token, err := h.authService.Login(model.AccountID(req.Account), req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponseFromToken(token))
}

// Deposit handles POST /api/v1/accounts/deposit
func (h *IdentityHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	account := middleware.MustGetAccount(r.Context())

	var req request.DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Amount == 0 {
		WriteError(w, NewInvalidRequestError("amount must be non-zero"))
		return
	}

	if err := h.ledger.Deposit(r.Context(), account, model.Amount(req.Amount)); err != nil {
		WriteError(w, err)
		return
	}

	balance, err := h.ledger.Balance(r.Context(), account)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Balance{
		Account: string(account),
		Balance: uint64(balance),
	})
}

// GetBalance handles GET /api/v1/accounts/me/balance
func (h *IdentityHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	account := middleware.MustGetAccount(r.Context())

	balance, err := h.ledger.Balance(r.Context(), account)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Balance{
		Account: string(account),
		Balance: uint64(balance),
	})
}
