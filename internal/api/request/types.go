package request

// RegisterRequest is the request body for registering an identity
type RegisterRequest struct {
	Account  string `json:"account"`
	Password string `json:"password"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Account  string `json:"account"`
	Password string `json:"password"`
}

// DepositRequest is the request body for funding the caller's account
type DepositRequest struct {
	Amount uint64 `json:"amount"`
}

// CreateSessionRequest is the request body for creating a session
type CreateSessionRequest struct {
	SessionID string `json:"session_id"`
	BetAmount uint64 `json:"bet_amount"`
	Mode      string `json:"mode"`
}

// JoinRequest is the request body for joining a session
type JoinRequest struct {
	Team int `json:"team"`
}

// KillRequest is the request body for recording a kill
type KillRequest struct {
	KillerTeam int    `json:"killer_team"`
	Killer     string `json:"killer"`
	VictimTeam int    `json:"victim_team"`
	Victim     string `json:"victim"`
}

// SettleRequest is the request body for settling a winner-takes-all session.
// Recipients must list the winning team's members in recorded slot order.
type SettleRequest struct {
	WinningTeam int      `json:"winning_team"`
	Recipients  []string `json:"recipients"`
}

// SettleBySpawnsRequest is the request body for settling a pay-to-spawn
// session. Recipients must list every player in recorded slot order.
type SettleBySpawnsRequest struct {
	Recipients []string `json:"recipients"`
}
