package response

import (
	"time"

	"github.com/stakemesh/wagerd/internal/model"
	"github.com/stakemesh/wagerd/internal/services/auth"
)

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Account   string    `json:"account"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AuthResponseFromToken creates an AuthResponse from a token
func AuthResponseFromToken(t *auth.Token) AuthResponse {
	return AuthResponse{
		Account:   string(t.Account),
		Token:     t.Value,
		ExpiresAt: t.ExpiresAt,
	}
}

// Balance is the response for balance endpoints
type Balance struct {
	Account string `json:"account"`
	Balance uint64 `json:"balance"`
}

// PlayerSlot represents an occupied slot in API responses
type PlayerSlot struct {
	Player   string    `json:"player"`
	Team     int       `json:"team"`
	Spawns   uint16    `json:"spawns"`
	Kills    uint16    `json:"kills"`
	JoinedAt time.Time `json:"joined_at"`
}

// Session represents a session in API responses
type Session struct {
	ID           string       `json:"id"`
	Authority    string       `json:"authority"`
	BetAmount    uint64       `json:"bet_amount"`
	Mode         string       `json:"mode"`
	State        string       `json:"state"`
	VaultAddress string       `json:"vault_address"`
	VaultBalance uint64       `json:"vault_balance"`
	Slots        []PlayerSlot `json:"slots"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// SessionFromModel converts a model.Session to a response Session
func SessionFromModel(s *model.Session) Session {
	slots := make([]PlayerSlot, len(s.Slots))
	for i, slot := range s.Slots {
		slots[i] = PlayerSlot{
			Player:   string(slot.Player),
			Team:     slot.Team,
			Spawns:   slot.Spawns,
			Kills:    slot.Kills,
			JoinedAt: slot.JoinedAt,
		}
	}

	return Session{
		ID:           string(s.ID),
		Authority:    string(s.Authority),
		BetAmount:    uint64(s.BetAmount),
		Mode:         string(s.Mode),
		State:        string(s.State),
		VaultAddress: string(model.VaultAddress(s.ID)),
		VaultBalance: uint64(s.VaultBalance),
		Slots:        slots,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

// SessionList is the response for listing sessions
type SessionList struct {
	Sessions []Session `json:"sessions"`
}

// SessionListFromModel converts a slice of model sessions
func SessionListFromModel(sessions []*model.Session) SessionList {
	out := make([]Session, len(sessions))
	for i, s := range sessions {
		out[i] = SessionFromModel(s)
	}
	return SessionList{Sessions: out}
}
