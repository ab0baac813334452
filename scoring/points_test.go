package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointsExactScore(t *testing.T) {
	assert.Equal(t, 3, Points(2, 1, 2, 1))
	assert.Equal(t, 3, Points(0, 0, 0, 0))
	assert.Equal(t, 3, Points(4, 4, 4, 4))
}

func TestPointsCorrectOutcome(t *testing.T) {
	// both home wins, different score
	assert.Equal(t, 1, Points(2, 1, 3, 0))
	// both draws, different score
	assert.Equal(t, 1, Points(1, 1, 2, 2))
	// both away wins
	assert.Equal(t, 1, Points(0, 1, 1, 3))
}

func TestPointsMiss(t *testing.T) {
	// opposite outcome
	assert.Equal(t, 0, Points(2, 1, 1, 2))
	// predicted draw, home won
	assert.Equal(t, 0, Points(1, 1, 2, 0))
	// predicted home win, draw
	assert.Equal(t, 0, Points(3, 1, 2, 2))
}

// Points must return exactly one of {0, 1, 3} over the whole domain,
// exact lines always 3, and matching outcome classes always 1.
func TestPointsProperties(t *testing.T) {
	const maxGoals = 6
	for ph := 0; ph <= maxGoals; ph++ {
		for pa := 0; pa <= maxGoals; pa++ {
			for ah := 0; ah <= maxGoals; ah++ {
				for aa := 0; aa <= maxGoals; aa++ {
					got := Points(ph, pa, ah, aa)
					assert.Contains(t, []int{0, 1, 3}, got)

					switch {
					case ph == ah && pa == aa:
						assert.Equal(t, 3, got)
					case OutcomeOf(ph, pa) == OutcomeOf(ah, aa):
						assert.Equal(t, 1, got)
					default:
						assert.Equal(t, 0, got)
					}
				}
			}
		}
	}
}

func TestOutcomeOf(t *testing.T) {
	assert.Equal(t, HomeWin, OutcomeOf(2, 0))
	assert.Equal(t, Draw, OutcomeOf(1, 1))
	assert.Equal(t, AwayWin, OutcomeOf(0, 3))
}
