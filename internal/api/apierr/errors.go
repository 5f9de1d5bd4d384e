package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/stakemesh/wagerd/internal/model"
	"github.com/stakemesh/wagerd/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest           = "INVALID_REQUEST"
	CodeInvalidSessionID         = "INVALID_SESSION_ID"
	CodeSessionExists            = "SESSION_EXISTS"
	CodeSessionNotFound          = "SESSION_NOT_FOUND"
	CodeSessionNotTerminal       = "SESSION_NOT_TERMINAL"
	CodeSessionNotActive         = "SESSION_NOT_ACTIVE"
	CodeAlreadySettled           = "ALREADY_SETTLED"
	CodeInvalidGameMode          = "INVALID_GAME_MODE"
	CodeInvalidBetAmount         = "INVALID_BET_AMOUNT"
	CodeInvalidTeam              = "INVALID_TEAM"
	CodeTeamFull                 = "TEAM_FULL"
	CodeDuplicatePlayer          = "DUPLICATE_PLAYER"
	CodePlayerNotFound           = "PLAYER_NOT_FOUND"
	CodeArithmeticOverflow       = "ARITHMETIC_OVERFLOW"
	CodeArithmeticUnderflow      = "ARITHMETIC_UNDERFLOW"
	CodeInvalidWinners           = "INVALID_WINNERS"
	CodeAccountOrderMismatch     = "ACCOUNT_ORDER_MISMATCH"
	CodeInsufficientVaultBalance = "INSUFFICIENT_VAULT_BALANCE"
	CodeTransferFailed           = "TRANSFER_FAILED"
	CodeForbidden                = "FORBIDDEN"
	CodeUnauthorized             = "UNAUTHORIZED"
	CodeIdentityExists           = "IDENTITY_EXISTS"
	CodeInvalidCredentials       = "INVALID_CREDENTIALS"
	CodeInternalError            = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrInvalidSessionID):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidSessionID, "Invalid session identifier"}}
	case errors.Is(err, model.ErrSessionAlreadyExists):
		return &httpError{http.StatusConflict, APIError{CodeSessionExists, "A live session with this id already exists"}}
	case errors.Is(err, model.ErrSessionNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSessionNotFound, "Session not found"}}
	case errors.Is(err, model.ErrSessionNotTerminal):
		return &httpError{http.StatusConflict, APIError{CodeSessionNotTerminal, "Session has not been settled or refunded"}}
	case errors.Is(err, model.ErrSessionNotActive):
		return &httpError{http.StatusConflict, APIError{CodeSessionNotActive, "Session is not active"}}
	case errors.Is(err, model.ErrAlreadySettled):
		return &httpError{http.StatusConflict, APIError{CodeAlreadySettled, "Session is already settled or refunded"}}
	case errors.Is(err, model.ErrInvalidGameMode):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidGameMode, "Unknown game mode"}}
	case errors.Is(err, model.ErrInvalidBetAmount):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidBetAmount, "Bet amount must be non-zero"}}
	case errors.Is(err, model.ErrInvalidTeam):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidTeam, "Team index out of range"}}
	case errors.Is(err, model.ErrTeamFull):
		return &httpError{http.StatusConflict, APIError{CodeTeamFull, "Team is full"}}
	case errors.Is(err, model.ErrDuplicatePlayer):
		return &httpError{http.StatusConflict, APIError{CodeDuplicatePlayer, "Player already joined this session"}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found in this session"}}
	case errors.Is(err, model.ErrArithmeticOverflow):
		return &httpError{http.StatusBadRequest, APIError{CodeArithmeticOverflow, "Amount arithmetic would overflow"}}
	case errors.Is(err, model.ErrArithmeticUnderflow):
		return &httpError{http.StatusConflict, APIError{CodeArithmeticUnderflow, "Amount arithmetic would underflow"}}
	case errors.Is(err, model.ErrInvalidWinners):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidWinners, "Winner list does not match the session"}}
	case errors.Is(err, model.ErrAccountOrderMismatch):
		return &httpError{http.StatusBadRequest, APIError{CodeAccountOrderMismatch, "Recipients are not in recorded slot order"}}
	case errors.Is(err, model.ErrInsufficientVaultBalance):
		return &httpError{http.StatusInternalServerError, APIError{CodeInsufficientVaultBalance, "Vault balance does not cover the payout"}}
	case errors.Is(err, model.ErrTransferFailed):
		return &httpError{http.StatusPaymentRequired, APIError{CodeTransferFailed, "Stake transfer failed"}}
	case errors.Is(err, model.ErrUnauthorized):
		return &httpError{http.StatusForbidden, APIError{CodeForbidden, "Caller is not permitted to perform this action"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid account or password"}}
	case errors.Is(err, auth.ErrInvalidToken):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired token"}}
	case errors.Is(err, auth.ErrIdentityExists):
		return &httpError{http.StatusConflict, APIError{CodeIdentityExists, "Identity already exists"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
