package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSessionID(t *testing.T) {
	valid := []SessionID{
		"GAME1",
		"a",
		"match_2024-01-01",
		"ABCdef123-_",
		SessionID(strings.Repeat("x", MaxSessionIDLength)),
	}
	for _, id := range valid {
		assert.NoError(t, ValidateSessionID(id), "expected %q to be valid", id)
	}
}

func TestValidateSessionIDRejectsEmpty(t *testing.T) {
	assert.ErrorIs(t, ValidateSessionID(""), ErrInvalidSessionID)
}

func TestValidateSessionIDRejectsOverlong(t *testing.T) {
	id := SessionID(strings.Repeat("x", MaxSessionIDLength+1))
	assert.ErrorIs(t, ValidateSessionID(id), ErrInvalidSessionID)
}

func TestValidateSessionIDRejectsDisallowedCharacters(t *testing.T) {
	invalid := []SessionID{
		"GAME 1",
		"game/1",
		"game.1",
		"game:1",
		"g\x00me",
		"gämé",
	}
	for _, id := range invalid {
		assert.ErrorIs(t, ValidateSessionID(id), ErrInvalidSessionID, "expected %q to be rejected", id)
	}
}
