package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAcceptsPredictions(t *testing.T) {
	kickoff := time.Now().Add(1 * time.Hour)
	match := Match{Status: MatchPendiente, Fecha: kickoff}

	assert.True(t, match.AcceptsPredictions(time.Now()))
	// exactly at kickoff the window is closed
	assert.False(t, match.AcceptsPredictions(kickoff))
	assert.False(t, match.AcceptsPredictions(kickoff.Add(time.Minute)))

	match.Status = MatchFinalizado
	assert.False(t, match.AcceptsPredictions(time.Now()))

	match.Status = MatchCancelado
	assert.False(t, match.AcceptsPredictions(time.Now()))
}

func TestIsFinalizado(t *testing.T) {
	goals := 2
	match := Match{Status: MatchFinalizado, HomeGoals: &goals, AwayGoals: &goals}
	assert.True(t, match.IsFinalizado())

	// FINALIZADO without both goal counts is not a usable result
	match.AwayGoals = nil
	assert.False(t, match.IsFinalizado())

	match.AwayGoals = &goals
	match.Status = MatchPendiente
	assert.False(t, match.IsFinalizado())
}
