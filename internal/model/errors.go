package model

import "errors"

// Common errors used across the application
var (
	// Identifier errors
	ErrInvalidSessionID = errors.New("invalid session identifier")

	// Session lifecycle errors
	ErrSessionAlreadyExists = errors.New("session already exists")
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionNotTerminal   = errors.New("session is not in a terminal state")
	ErrSessionNotActive     = errors.New("session is not active")
	ErrAlreadySettled       = errors.New("session is already settled")
	ErrInvalidGameMode      = errors.New("invalid game mode")
	ErrInvalidBetAmount     = errors.New("bet amount must be greater than zero")

	// Join admission errors
	ErrInvalidTeam     = errors.New("invalid team index")
	ErrTeamFull        = errors.New("team is full")
	ErrDuplicatePlayer = errors.New("player already joined this session")
	ErrPlayerNotFound  = errors.New("player not found in session")

	// Arithmetic guard errors
	ErrArithmeticOverflow  = errors.New("arithmetic overflow")
	ErrArithmeticUnderflow = errors.New("arithmetic underflow")

	// Settlement errors
	ErrInvalidWinners           = errors.New("invalid winner set")
	ErrAccountOrderMismatch     = errors.New("payout recipients do not match recorded slot order")
	ErrInsufficientVaultBalance = errors.New("vault balance does not cover the required payout")
	ErrTransferFailed           = errors.New("transfer failed")

	// Access control errors
	ErrUnauthorized = errors.New("caller is not authorized for this operation")
)
