// Package scoring holds the prode's point rules and leaderboard computation.
// Everything in this package is pure: callers load snapshots from the
// database, this package only does arithmetic and sorting over them.
package scoring

// Point values. Exact score beats correct outcome; they never add up.
const (
	PointsExact   = 3
	PointsOutcome = 1
	PointsMiss    = 0
)

// Outcome is the three-way result class of a score line.
type Outcome int

const (
	AwayWin Outcome = iota - 1
	Draw
	HomeWin
)

// OutcomeOf classifies a score line into home win, draw or away win.
func OutcomeOf(homeGoals, awayGoals int) Outcome {
	switch {
	case homeGoals > awayGoals:
		return HomeWin
	case homeGoals < awayGoals:
		return AwayWin
	default:
		return Draw
	}
}

// Points scores a single prediction against the final result:
// exact score → 3, correct outcome → 1, anything else → 0.
// Only call once the match is FINALIZADO and both actual goals are known.
func Points(predHome, predAway, actualHome, actualAway int) int {
	if predHome == actualHome && predAway == actualAway {
		return PointsExact
	}
	if OutcomeOf(predHome, predAway) == OutcomeOf(actualHome, actualAway) {
		return PointsOutcome
	}
	return PointsMiss
}
