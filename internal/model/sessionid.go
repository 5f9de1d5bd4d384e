package model

// SessionID is the caller-chosen identifier for a wager session
type SessionID string

// MaxSessionIDLength bounds identifiers so derived account addresses and
// storage keys stay well-formed
const MaxSessionIDLength = 64

// ValidateSessionID rejects empty identifiers, identifiers longer than
// MaxSessionIDLength, and identifiers containing characters outside the
// allow-list (alphanumerics, '-' and '_'). It is a pure function of the
// string.
func ValidateSessionID(id SessionID) error {
	if len(id) == 0 || len(id) > MaxSessionIDLength {
		return ErrInvalidSessionID
	}
	for _, c := range []byte(id) {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-' || c == '_':
		default:
			return ErrInvalidSessionID
		}
	}
	return nil
}
