package model

import "time"

// AccountID identifies a party that can hold funds: a player, a game server
// authority, or a session vault
type AccountID string

// SessionState represents the lifecycle state of a wager session
type SessionState string

const (
	SessionStateCreated   SessionState = "created"   // Accepting joins
	SessionStateActive    SessionState = "active"    // All slots filled, match underway
	SessionStateCompleted SessionState = "completed" // Pot distributed to winners
	SessionStateRefunded  SessionState = "refunded"  // Stakes returned, session cancelled
)

// IsTerminal reports whether no further transition may leave this state
func (s SessionState) IsTerminal() bool {
	return s == SessionStateCompleted || s == SessionStateRefunded
}

// GameMode defines team sizes and the payout policy for a session
type GameMode string

const (
	ModeWinnerTakesAllOneVsOne     GameMode = "wta-1v1"
	ModeWinnerTakesAllThreeVsThree GameMode = "wta-3v3"
	ModeWinnerTakesAllFiveVsFive   GameMode = "wta-5v5"
	ModePayToSpawnOneVsOne         GameMode = "pts-1v1"
	ModePayToSpawnThreeVsThree     GameMode = "pts-3v3"
	ModePayToSpawnFiveVsFive       GameMode = "pts-5v5"
)

// InitialSpawns is the spawn allowance granted per stake payment in
// pay-to-spawn modes
const InitialSpawns = 10

// Valid reports whether m is a known game mode
func (m GameMode) Valid() bool {
	switch m {
	case ModeWinnerTakesAllOneVsOne, ModeWinnerTakesAllThreeVsThree, ModeWinnerTakesAllFiveVsFive,
		ModePayToSpawnOneVsOne, ModePayToSpawnThreeVsThree, ModePayToSpawnFiveVsFive:
		return true
	}
	return false
}

// TeamCount returns the number of teams; every supported mode is two-sided
func (m GameMode) TeamCount() int {
	return 2
}

// PlayersPerTeam returns the required number of players per team
func (m GameMode) PlayersPerTeam() int {
	switch m {
	case ModeWinnerTakesAllOneVsOne, ModePayToSpawnOneVsOne:
		return 1
	case ModeWinnerTakesAllThreeVsThree, ModePayToSpawnThreeVsThree:
		return 3
	case ModeWinnerTakesAllFiveVsFive, ModePayToSpawnFiveVsFive:
		return 5
	}
	return 0
}

// Capacity returns the total player capacity of a session in this mode
func (m GameMode) Capacity() int {
	return m.TeamCount() * m.PlayersPerTeam()
}

// IsPayToSpawn reports whether payouts are earned per kill/spawn rather
// than winner-takes-all
func (m GameMode) IsPayToSpawn() bool {
	switch m {
	case ModePayToSpawnOneVsOne, ModePayToSpawnThreeVsThree, ModePayToSpawnFiveVsFive:
		return true
	}
	return false
}

// PlayerSlot is one occupied position in a session, bound to a team.
// Slot order is join order and is the canonical payout ordering.
type PlayerSlot struct {
	Player   AccountID
	Team     int
	Spawns   uint16 // Pay-to-spawn modes only
	Kills    uint16 // Pay-to-spawn modes only
	JoinedAt time.Time
}

// Session is one wagering match: a fixed stake, a mode, an authority and
// the escrowed pot
type Session struct {
	ID           SessionID
	Authority    AccountID
	BetAmount    Amount
	Mode         GameMode
	Slots        []PlayerSlot // Occupied slots in join order
	State        SessionState
	VaultBalance Amount
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Slot returns the slot occupied by the given player, or nil
func (s *Session) Slot(player AccountID) *PlayerSlot {
	for i := range s.Slots {
		if s.Slots[i].Player == player {
			return &s.Slots[i]
		}
	}
	return nil
}

// TeamSize returns the number of occupied slots on the given team
func (s *Session) TeamSize(team int) int {
	n := 0
	for i := range s.Slots {
		if s.Slots[i].Team == team {
			n++
		}
	}
	return n
}

// TeamMembers returns the players on the given team in slot order
func (s *Session) TeamMembers(team int) []AccountID {
	var members []AccountID
	for i := range s.Slots {
		if s.Slots[i].Team == team {
			members = append(members, s.Slots[i].Player)
		}
	}
	return members
}

// Players returns all occupied slots' players in slot order
func (s *Session) Players() []AccountID {
	players := make([]AccountID, len(s.Slots))
	for i := range s.Slots {
		players[i] = s.Slots[i].Player
	}
	return players
}

// IsFull reports whether every team has reached its capacity
func (s *Session) IsFull() bool {
	return len(s.Slots) == s.Mode.Capacity()
}
