package admission

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/stakemesh/wagerd/internal/dependencies/clock"
	"github.com/stakemesh/wagerd/internal/ledger"
	"github.com/stakemesh/wagerd/internal/model"
	"github.com/stakemesh/wagerd/internal/storage"
)

// Controller decides whether join requests may proceed and moves stakes
// into the session vault. It also handles the in-match stake operations of
// pay-to-spawn sessions: spawn purchases and kill recording.
type Controller struct {
	storage storage.Storage
	ledger  ledger.Ledger
	clock   clock.Clock
	logger  *slog.Logger
}

// NewController creates a new admission Controller
func NewController(storage storage.Storage, ledger ledger.Ledger, clock clock.Clock, logger *slog.Logger) *Controller {
	return &Controller{
		storage: storage,
		ledger:  ledger,
		clock:   clock,
		logger:  logger,
	}
}

// Join admits a player into a session on the given team.
//
// Preconditions are checked in order, first failure wins: session live,
// team index in range, team has capacity, player not already seated, stake
// transferable. The stake moves into the vault before the slot is
// persisted; a failed transfer leaves the session untouched.
func (c *Controller) Join(ctx context.Context, player model.AccountID, id model.SessionID, team int) error {
	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return err
	}

	if session.State.IsTerminal() {
		return model.ErrAlreadySettled
	}
	if team < 0 || team >= session.Mode.TeamCount() {
		return model.ErrInvalidTeam
	}
	if session.TeamSize(team) >= session.Mode.PlayersPerTeam() {
		return model.ErrTeamFull
	}
	if session.Slot(player) != nil {
		return model.ErrDuplicatePlayer
	}

	newBalance, err := session.VaultBalance.Add(session.BetAmount)
	if err != nil {
		return err
	}

	if err := c.ledger.Transfer(ctx, player, model.VaultAddress(id), session.BetAmount); err != nil {
		return fmt.Errorf("%w: %w", model.ErrTransferFailed, err)
	}

	var spawns uint16
	if session.Mode.IsPayToSpawn() {
		spawns = model.InitialSpawns
	}

	now := c.clock.Now()
	session.Slots = append(session.Slots, model.PlayerSlot{
		Player:   player,
		Team:     team,
		Spawns:   spawns,
		JoinedAt: now,
	})
	session.VaultBalance = newBalance
	if session.IsFull() {
		session.State = model.SessionStateActive
	}
	session.UpdatedAt = now

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return err
	}

	c.logger.Info("player joined",
		slog.String("session_id", string(id)),
		slog.String("player", string(player)),
		slog.Int("team", team),
		slog.String("state", string(session.State)),
	)

	return nil
}

// PayToSpawn lets an admitted player buy another spawn allowance for one
// additional stake, growing the pot. Only legal in pay-to-spawn modes while
// the match is underway.
func (c *Controller) PayToSpawn(ctx context.Context, player model.AccountID, id model.SessionID) error {
	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return err
	}

	if session.State.IsTerminal() {
		return model.ErrAlreadySettled
	}
	if !session.Mode.IsPayToSpawn() || session.State != model.SessionStateActive {
		return model.ErrSessionNotActive
	}

	slot := session.Slot(player)
	if slot == nil {
		return model.ErrPlayerNotFound
	}

	newBalance, err := session.VaultBalance.Add(session.BetAmount)
	if err != nil {
		return err
	}

	if err := c.ledger.Transfer(ctx, player, model.VaultAddress(id), session.BetAmount); err != nil {
		return fmt.Errorf("%w: %w", model.ErrTransferFailed, err)
	}

	slot.Spawns += model.InitialSpawns
	session.VaultBalance = newBalance
	session.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return err
	}

	c.logger.Info("spawns purchased",
		slog.String("session_id", string(id)),
		slog.String("player", string(player)),
		slog.Int("spawns", int(slot.Spawns)),
	)

	return nil
}

// RecordKill credits the killer with a kill and consumes one of the
// victim's spawns. Restricted to the session's authority; legal only while
// the match is underway.
func (c *Controller) RecordKill(
	ctx context.Context,
	caller model.AccountID,
	id model.SessionID,
	killerTeam int, killer model.AccountID,
	victimTeam int, victim model.AccountID,
) error {
	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return err
	}

	if session.Authority != caller {
		return model.ErrUnauthorized
	}
	if session.State != model.SessionStateActive {
		return model.ErrSessionNotActive
	}

	killerSlot, err := c.slotOnTeam(session, killerTeam, killer)
	if err != nil {
		return err
	}
	victimSlot, err := c.slotOnTeam(session, victimTeam, victim)
	if err != nil {
		return err
	}

	if victimSlot.Spawns == 0 {
		return model.ErrArithmeticUnderflow
	}

	killerSlot.Kills++
	victimSlot.Spawns--
	session.UpdatedAt = c.clock.Now()

	return c.storage.SaveSession(ctx, session)
}

func (c *Controller) slotOnTeam(session *model.Session, team int, player model.AccountID) (*model.PlayerSlot, error) {
	if team < 0 || team >= session.Mode.TeamCount() {
		return nil, model.ErrInvalidTeam
	}
	slot := session.Slot(player)
	if slot == nil || slot.Team != team {
		return nil, model.ErrPlayerNotFound
	}
	return slot, nil
}
