package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/stakemesh/wagerd/internal/dependencies/clock"
	"github.com/stakemesh/wagerd/internal/model"
)

// MemoryLedger is an in-process implementation of the ledger. It stands in
// for the external token program: balances live in a map and every applied
// transfer is journaled.
type MemoryLedger struct {
	mu       sync.RWMutex
	balances map[model.AccountID]model.Amount
	journal  []Entry
	clock    clock.Clock
}

var _ Ledger = (*MemoryLedger)(nil)

// NewMemory creates an empty in-memory ledger
func NewMemory(clk clock.Clock) *MemoryLedger {
	return &MemoryLedger{
		balances: make(map[model.AccountID]model.Amount),
		clock:    clk,
	}
}

// Transfer moves funds between two accounts
func (l *MemoryLedger) Transfer(ctx context.Context, from, to model.AccountID, amount model.Amount) error {
	return l.Apply(ctx, []Transfer{{From: from, To: to, Amount: amount}})
}

// Apply executes a batch of transfers atomically: balances are validated
// for the whole batch before any of it is committed
func (l *MemoryLedger) Apply(ctx context.Context, transfers []Transfer) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Dry run against a scratch copy of the touched balances
	scratch := make(map[model.AccountID]model.Amount)
	balance := func(a model.AccountID) model.Amount {
		if b, ok := scratch[a]; ok {
			return b
		}
		return l.balances[a]
	}

	for _, t := range transfers {
		b := balance(t.From)
		if t.Amount > b {
			return fmt.Errorf("%w: account %s holds %d, needs %d", ErrInsufficientFunds, t.From, b, t.Amount)
		}
		next, err := balance(t.To).Add(t.Amount)
		if err != nil {
			return err
		}
		scratch[t.From] = b - t.Amount
		scratch[t.To] = next
	}

	// Commit
	now := l.clock.Now()
	for a, b := range scratch {
		l.balances[a] = b
	}
	for _, t := range transfers {
		l.journal = append(l.journal, Entry{
			ID:     uuid.New(),
			From:   t.From,
			To:     t.To,
			Amount: t.Amount,
			At:     now,
		})
	}
	return nil
}

// Balance returns the current balance of an account. Unknown accounts have
// a zero balance rather than being an error; account creation is implicit.
func (l *MemoryLedger) Balance(ctx context.Context, account model.AccountID) (model.Amount, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balances[account], nil
}

// Deposit credits an account from outside the ledger
func (l *MemoryLedger) Deposit(ctx context.Context, account model.AccountID, amount model.Amount) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	next, err := l.balances[account].Add(amount)
	if err != nil {
		return err
	}
	l.balances[account] = next
	l.journal = append(l.journal, Entry{
		ID:     uuid.New(),
		To:     account,
		Amount: amount,
		At:     l.clock.Now(),
	})
	return nil
}

// Journal returns a copy of all applied entries in order
func (l *MemoryLedger) Journal() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	entries := make([]Entry, len(l.journal))
	copy(entries, l.journal)
	return entries
}
