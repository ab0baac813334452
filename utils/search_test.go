package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSearch(t *testing.T) {
	assert.Equal(t, "tunez", NormalizeSearch("Túnez"))
	assert.Equal(t, "perez", NormalizeSearch("  PÉREZ "))
	assert.Equal(t, "espana", NormalizeSearch("España"))
}

func TestMatchesSearch(t *testing.T) {
	assert.True(t, MatchesSearch("María González", "gonzalez"))
	assert.True(t, MatchesSearch("Arabia Saudí", "saudi"))
	assert.True(t, MatchesSearch("whatever", ""))
	assert.False(t, MatchesSearch("Brasil", "argentina"))
}
