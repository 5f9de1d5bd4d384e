package storage

import (
	"context"

	"github.com/stakemesh/wagerd/internal/model"
)

// Storage defines the interface for session persistence.
//
// One record exists per live session, addressable by its identifier. The
// surrounding execution environment guarantees operations against the same
// session run one at a time, so implementations only need to be safe for
// concurrent access across different sessions.
type Storage interface {
	// SaveSession persists a session record, overwriting any existing record
	SaveSession(ctx context.Context, session *model.Session) error

	// GetSession loads the session with the given id
	GetSession(ctx context.Context, id model.SessionID) (*model.Session, error)

	// DeleteSession removes the session record so its id can be reclaimed
	DeleteSession(ctx context.Context, id model.SessionID) error

	// SessionExists reports whether a live session with the given id exists
	SessionExists(ctx context.Context, id model.SessionID) (bool, error)

	// ListSessions returns all live sessions
	ListSessions(ctx context.Context) ([]*model.Session, error)
}
