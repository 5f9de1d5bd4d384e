package redis

import (
	"fmt"

	"github.com/stakemesh/wagerd/internal/model"
)

// Key prefix for all escrow data
const keyPrefix = "wagerd"

// sessionKey returns the Redis key for a session record. The key embeds
// the derived session address rather than the raw id so the storage
// location matches the addressing scheme callers derive independently.
func sessionKey(id model.SessionID) string {
	return fmt.Sprintf("%s:%s", keyPrefix, model.SessionAddress(id))
}

// sessionIndexKey returns the Redis key for the SET of live session ids
func sessionIndexKey() string {
	return fmt.Sprintf("%s:idx:sessions", keyPrefix)
}
