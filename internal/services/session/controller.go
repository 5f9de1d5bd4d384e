package session

import (
	"context"
	"log/slog"

	"github.com/stakemesh/wagerd/internal/dependencies/clock"
	"github.com/stakemesh/wagerd/internal/model"
	"github.com/stakemesh/wagerd/internal/storage"
)

// Controller manages the session registry: creation, lookup and archival.
// Join admission and settlement live in their own services.
type Controller struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// NewController creates a new session Controller
func NewController(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Controller {
	return &Controller{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// CreateSession registers a new session in state Created with an empty slot
// sequence and an empty vault. The caller becomes the session's authority.
func (c *Controller) CreateSession(
	ctx context.Context,
	authority model.AccountID,
	id model.SessionID,
	betAmount model.Amount,
	mode model.GameMode,
) (*model.Session, error) {
	if err := model.ValidateSessionID(id); err != nil {
		return nil, err
	}
	if !mode.Valid() {
		return nil, model.ErrInvalidGameMode
	}
	if betAmount == 0 {
		return nil, model.ErrInvalidBetAmount
	}

	// The maximum achievable pot must be representable. In pay-to-spawn
	// modes the pot also grows by spawn purchases, but each purchase passes
	// through the arithmetic guard again at join time, so the creation-time
	// bound only covers the base stakes.
	if _, err := betAmount.Mul(uint64(mode.Capacity())); err != nil {
		return nil, err
	}

	exists, err := c.storage.SessionExists(ctx, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, model.ErrSessionAlreadyExists
	}

	now := c.clock.Now()
	session := &model.Session{
		ID:           id,
		Authority:    authority,
		BetAmount:    betAmount,
		Mode:         mode,
		Slots:        []model.PlayerSlot{},
		State:        model.SessionStateCreated,
		VaultBalance: 0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	c.logger.Info("session created",
		slog.String("session_id", string(id)),
		slog.String("authority", string(authority)),
		slog.Uint64("bet_amount", uint64(betAmount)),
		slog.String("mode", string(mode)),
	)

	return session, nil
}

// GetSession retrieves a session by id
func (c *Controller) GetSession(ctx context.Context, id model.SessionID) (*model.Session, error) {
	return c.storage.GetSession(ctx, id)
}

// ListSessions returns all live sessions
func (c *Controller) ListSessions(ctx context.Context) ([]*model.Session, error) {
	return c.storage.ListSessions(ctx)
}

// CloseSession removes a settled or refunded session so its identifier can
// be reused. Only the session's authority may close it, and only from a
// terminal state.
func (c *Controller) CloseSession(ctx context.Context, caller model.AccountID, id model.SessionID) error {
	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return err
	}

	if session.Authority != caller {
		return model.ErrUnauthorized
	}
	if !session.State.IsTerminal() {
		return model.ErrSessionNotTerminal
	}

	if err := c.storage.DeleteSession(ctx, id); err != nil {
		return err
	}

	c.logger.Info("session closed",
		slog.String("session_id", string(id)),
		slog.String("state", string(session.State)),
	)

	return nil
}
