package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/stakemesh/wagerd/internal/model"
)

// Errors
var (
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Transfer is a single movement of funds between two accounts
type Transfer struct {
	From   model.AccountID
	To     model.AccountID
	Amount model.Amount
}

// Entry is an applied transfer as recorded in the journal
type Entry struct {
	ID     uuid.UUID
	From   model.AccountID
	To     model.AccountID
	Amount model.Amount
	At     time.Time
}

// Ledger is the token-transfer primitive the escrow engine is built on.
// Implementations must apply Apply's batch all-or-nothing: if any transfer
// in the batch cannot be satisfied, no balance changes.
type Ledger interface {
	// Transfer moves funds between two accounts
	Transfer(ctx context.Context, from, to model.AccountID, amount model.Amount) error

	// Apply executes a batch of transfers atomically
	Apply(ctx context.Context, transfers []Transfer) error

	// Balance returns the current balance of an account
	Balance(ctx context.Context, account model.AccountID) (model.Amount, error)

	// Deposit credits an account from outside the ledger (an on-chain
	// deposit, in production)
	Deposit(ctx context.Context, account model.AccountID, amount model.Amount) error
}
