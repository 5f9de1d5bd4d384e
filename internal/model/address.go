package model

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Namespaces for derived account addresses. Keeping session and vault
// derivations in separate namespaces guarantees the two addresses can
// never collide for the same identifier.
const (
	sessionNamespace = "game_session"
	vaultNamespace   = "vault"
)

func deriveAddress(namespace string, id SessionID) AccountID {
	sum := blake2b.Sum256([]byte(namespace + ":" + string(id)))
	return AccountID(namespace + ":" + hex.EncodeToString(sum[:16]))
}

// SessionAddress derives the storage address for a session record from its
// identifier. The derivation is deterministic, so callers and the engine
// agree on the account being referenced without a lookup table.
func SessionAddress(id SessionID) AccountID {
	return deriveAddress(sessionNamespace, id)
}

// VaultAddress derives the ledger account holding a session's escrowed
// funds. The vault is owned by the session's authority domain, never by an
// individual player; funds leave it only through settlement or refund.
func VaultAddress(id SessionID) AccountID {
	return deriveAddress(vaultNamespace, id)
}
