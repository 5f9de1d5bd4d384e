package settlement

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/stakemesh/wagerd/internal/dependencies/clock"
	"github.com/stakemesh/wagerd/internal/ledger"
	"github.com/stakemesh/wagerd/internal/model"
	"github.com/stakemesh/wagerd/internal/storage"
)

// Engine computes payouts and refunds and issues the transfers that drain
// a session's vault. Both settlement paths and refund are terminal,
// single-shot, and restricted to the session's authority.
type Engine struct {
	storage storage.Storage
	ledger  ledger.Ledger
	clock   clock.Clock
	logger  *slog.Logger
}

// NewEngine creates a new settlement Engine
func NewEngine(storage storage.Storage, ledger ledger.Ledger, clock clock.Clock, logger *slog.Logger) *Engine {
	return &Engine{
		storage: storage,
		ledger:  ledger,
		clock:   clock,
		logger:  logger,
	}
}

// Settle distributes the whole pot to the winning team of a
// winner-takes-all session, splitting it evenly across the team's members
// with any remainder going to the first winner in slot order.
//
// recipients must list the winning team's members in the session's
// recorded slot order. The engine validates the caller-supplied ordering
// against its own records before any transfer is issued: a wrong set fails
// with ErrInvalidWinners, the right set in the wrong order with
// ErrAccountOrderMismatch.
func (e *Engine) Settle(
	ctx context.Context,
	caller model.AccountID,
	id model.SessionID,
	winningTeam int,
	recipients []model.AccountID,
) error {
	session, err := e.storage.GetSession(ctx, id)
	if err != nil {
		return err
	}

	if session.Authority != caller {
		return model.ErrUnauthorized
	}
	if session.State.IsTerminal() {
		return model.ErrAlreadySettled
	}
	if session.Mode.IsPayToSpawn() {
		return model.ErrInvalidWinners
	}
	if winningTeam < 0 || winningTeam >= session.Mode.TeamCount() {
		return model.ErrInvalidTeam
	}

	winners := session.TeamMembers(winningTeam)
	if len(winners) == 0 {
		return model.ErrInvalidWinners
	}
	if err := validateRecipients(winners, recipients); err != nil {
		return err
	}

	pot := session.VaultBalance
	share, remainder, err := pot.Split(len(winners))
	if err != nil {
		return err
	}

	vault := model.VaultAddress(id)
	transfers := make([]ledger.Transfer, 0, len(winners))
	for i, winner := range winners {
		payout := share
		if i == 0 {
			// Remainder goes to the first winner rather than being dropped
			if payout, err = share.Add(remainder); err != nil {
				return err
			}
		}
		if payout == 0 {
			continue
		}
		transfers = append(transfers, ledger.Transfer{From: vault, To: winner, Amount: payout})
	}

	if err := e.ledger.Apply(ctx, transfers); err != nil {
		return fmt.Errorf("%w: %w", model.ErrTransferFailed, err)
	}

	session.VaultBalance = 0
	session.State = model.SessionStateCompleted
	session.UpdatedAt = e.clock.Now()

	if err := e.storage.SaveSession(ctx, session); err != nil {
		return err
	}

	e.logger.Info("session settled",
		slog.String("session_id", string(id)),
		slog.Int("winning_team", winningTeam),
		slog.Uint64("pot", uint64(pot)),
		slog.Int("winners", len(winners)),
	)

	return nil
}

// SettleBySpawns distributes a pay-to-spawn session's pot by performance:
// each player earns (kills + remaining spawns) x bet / 10. Any residue
// left after all earnings are computed goes to the first occupied slot so
// the vault drains to zero exactly.
//
// recipients must list every player in the session's recorded slot order.
func (e *Engine) SettleBySpawns(
	ctx context.Context,
	caller model.AccountID,
	id model.SessionID,
	recipients []model.AccountID,
) error {
	session, err := e.storage.GetSession(ctx, id)
	if err != nil {
		return err
	}

	if session.Authority != caller {
		return model.ErrUnauthorized
	}
	if session.State.IsTerminal() {
		return model.ErrAlreadySettled
	}
	if !session.Mode.IsPayToSpawn() {
		return model.ErrInvalidWinners
	}
	if len(session.Slots) == 0 {
		return model.ErrInvalidWinners
	}
	if err := validateRecipients(session.Players(), recipients); err != nil {
		return err
	}

	pot := session.VaultBalance
	distributed := model.Amount(0)

	payouts := make([]model.Amount, len(session.Slots))
	for i := range session.Slots {
		slot := &session.Slots[i]
		earnings, err := session.BetAmount.Mul(uint64(slot.Kills) + uint64(slot.Spawns))
		if err != nil {
			return err
		}
		earnings /= model.InitialSpawns
		if distributed, err = distributed.Add(earnings); err != nil {
			return err
		}
		payouts[i] = earnings
	}

	// Earnings can never exceed the pot: every spawn unit was paid for
	// with bet/10, and kills only move units between players. A shortfall
	// here means an upstream accounting bug.
	residue, err := pot.Sub(distributed)
	if err != nil {
		return model.ErrInsufficientVaultBalance
	}
	if payouts[0], err = payouts[0].Add(residue); err != nil {
		return err
	}

	vault := model.VaultAddress(id)
	transfers := make([]ledger.Transfer, 0, len(payouts))
	for i, payout := range payouts {
		if payout == 0 {
			continue
		}
		transfers = append(transfers, ledger.Transfer{From: vault, To: session.Slots[i].Player, Amount: payout})
	}

	if err := e.ledger.Apply(ctx, transfers); err != nil {
		return fmt.Errorf("%w: %w", model.ErrTransferFailed, err)
	}

	session.VaultBalance = 0
	session.State = model.SessionStateCompleted
	session.UpdatedAt = e.clock.Now()

	if err := e.storage.SaveSession(ctx, session); err != nil {
		return err
	}

	e.logger.Info("session settled by spawns",
		slog.String("session_id", string(id)),
		slog.Uint64("pot", uint64(pot)),
		slog.Int("players", len(session.Slots)),
	)

	return nil
}

// Refund cancels a session, returning exactly one stake to every occupied
// slot's player. Legal from Created or Active; terminal afterwards.
func (e *Engine) Refund(ctx context.Context, caller model.AccountID, id model.SessionID) error {
	session, err := e.storage.GetSession(ctx, id)
	if err != nil {
		return err
	}

	if session.Authority != caller {
		return model.ErrUnauthorized
	}
	if session.State.IsTerminal() {
		return model.ErrAlreadySettled
	}

	// The standing invariant says the vault holds exactly one stake per
	// occupied slot. Pay-to-spawn purchases add whole stakes, so the vault
	// may exceed the base amount there; it must never be short.
	expected, err := session.BetAmount.Mul(uint64(len(session.Slots)))
	if err != nil {
		return err
	}
	if session.VaultBalance < expected {
		return model.ErrInsufficientVaultBalance
	}
	if !session.Mode.IsPayToSpawn() && session.VaultBalance != expected {
		return model.ErrInsufficientVaultBalance
	}

	vault := model.VaultAddress(id)
	transfers := make([]ledger.Transfer, 0, len(session.Slots))
	remaining := session.VaultBalance
	for i := range session.Slots {
		refund := session.BetAmount
		if i == len(session.Slots)-1 {
			// Last refund carries any spawn-purchase surplus so the vault
			// drains to zero
			refund = remaining
		}
		transfers = append(transfers, ledger.Transfer{From: vault, To: session.Slots[i].Player, Amount: refund})
		if remaining, err = remaining.Sub(refund); err != nil {
			return err
		}
	}

	if len(transfers) > 0 {
		if err := e.ledger.Apply(ctx, transfers); err != nil {
			return fmt.Errorf("%w: %w", model.ErrTransferFailed, err)
		}
	}

	session.VaultBalance = 0
	session.State = model.SessionStateRefunded
	session.UpdatedAt = e.clock.Now()

	if err := e.storage.SaveSession(ctx, session); err != nil {
		return err
	}

	e.logger.Info("session refunded",
		slog.String("session_id", string(id)),
		slog.Int("players", len(session.Slots)),
	)

	return nil
}

// validateRecipients checks the caller-supplied payout ordering against
// the recorded slot order. A wrong set (missing, extra or duplicate
// identities) is ErrInvalidWinners; the right set in the wrong order is
// ErrAccountOrderMismatch.
func validateRecipients(expected, supplied []model.AccountID) error {
	if len(supplied) != len(expected) {
		return model.ErrInvalidWinners
	}

	seen := make(map[model.AccountID]bool, len(supplied))
	members := make(map[model.AccountID]bool, len(expected))
	for _, m := range expected {
		members[m] = true
	}
	for _, r := range supplied {
		if seen[r] || !members[r] {
			return model.ErrInvalidWinners
		}
		seen[r] = true
	}

	for i := range expected {
		if supplied[i] != expected[i] {
			return model.ErrAccountOrderMismatch
		}
	}
	return nil
}
