package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGameModePlayersPerTeam(t *testing.T) {
	cases := []struct {
		mode     GameMode
		perTeam  int
		capacity int
		payspawn bool
	}{
		{ModeWinnerTakesAllOneVsOne, 1, 2, false},
		{ModeWinnerTakesAllThreeVsThree, 3, 6, false},
		{ModeWinnerTakesAllFiveVsFive, 5, 10, false},
		{ModePayToSpawnOneVsOne, 1, 2, true},
		{ModePayToSpawnThreeVsThree, 3, 6, true},
		{ModePayToSpawnFiveVsFive, 5, 10, true},
	}

	for _, c := range cases {
		assert.True(t, c.mode.Valid())
		assert.Equal(t, 2, c.mode.TeamCount())
		assert.Equal(t, c.perTeam, c.mode.PlayersPerTeam(), "mode %s", c.mode)
		assert.Equal(t, c.capacity, c.mode.Capacity(), "mode %s", c.mode)
		assert.Equal(t, c.payspawn, c.mode.IsPayToSpawn(), "mode %s", c.mode)
	}
}

func TestGameModeInvalid(t *testing.T) {
	assert.False(t, GameMode("7v7").Valid())
	assert.False(t, GameMode("").Valid())
	assert.Equal(t, 0, GameMode("7v7").PlayersPerTeam())
}

func TestSessionStateTerminal(t *testing.T) {
	assert.False(t, SessionStateCreated.IsTerminal())
	assert.False(t, SessionStateActive.IsTerminal())
	assert.True(t, SessionStateCompleted.IsTerminal())
	assert.True(t, SessionStateRefunded.IsTerminal())
}

func newTestSession() *Session {
	return &Session{
		ID:        "GAME1",
		Authority: "server-1",
		BetAmount: 100,
		Mode:      ModeWinnerTakesAllThreeVsThree,
		State:     SessionStateCreated,
		Slots: []PlayerSlot{
			{Player: "alice", Team: 0},
			{Player: "bob", Team: 1},
			{Player: "carol", Team: 0},
		},
	}
}

func TestSessionSlotLookup(t *testing.T) {
	s := newTestSession()

	slot := s.Slot("bob")
	assert.NotNil(t, slot)
	assert.Equal(t, 1, slot.Team)

	assert.Nil(t, s.Slot("mallory"))
}

func TestSessionTeamHelpers(t *testing.T) {
	s := newTestSession()

	assert.Equal(t, 2, s.TeamSize(0))
	assert.Equal(t, 1, s.TeamSize(1))
	assert.Equal(t, []AccountID{"alice", "carol"}, s.TeamMembers(0))
	assert.Equal(t, []AccountID{"bob"}, s.TeamMembers(1))
	assert.Equal(t, []AccountID{"alice", "bob", "carol"}, s.Players())
}

func TestSessionIsFull(t *testing.T) {
	s := newTestSession()
	assert.False(t, s.IsFull())

	s.Mode = ModeWinnerTakesAllOneVsOne
	s.Slots = s.Slots[:2]
	assert.True(t, s.IsFull())
}

func TestAddressDerivation(t *testing.T) {
	// Deterministic per id, distinct across ids and namespaces
	assert.Equal(t, SessionAddress("GAME1"), SessionAddress("GAME1"))
	assert.NotEqual(t, SessionAddress("GAME1"), SessionAddress("GAME2"))
	assert.NotEqual(t, SessionAddress("GAME1"), VaultAddress("GAME1"))

	assert.Contains(t, string(VaultAddress("GAME1")), "vault:")
}
