package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rankingFixture() ([]UserSnapshot, []ScoredPrediction) {
	users := []UserSnapshot{
		{ID: "u1", Nombre: "Juan", Apellido: "Pérez", Area: "Tecnología"},
		{ID: "u2", Nombre: "María", Apellido: "González", Area: "Marketing"},
		{ID: "u3", Nombre: "Carlos", Apellido: "Rodríguez", Area: "Ventas"},
		{ID: "u4", Nombre: "Ana", Apellido: "Martínez", Area: "Tecnología"},
	}
	predictions := []ScoredPrediction{
		{UserID: "u1", Points: 3},
		{UserID: "u1", Points: 1},
		{UserID: "u2", Points: 3},
		{UserID: "u2", Points: 0},
		{UserID: "u3", Points: 1},
		// u4 has no scored predictions
	}
	return users, predictions
}

func TestGlobalRankingOrderAndPositions(t *testing.T) {
	users, predictions := rankingFixture()
	ranking := GlobalRanking(users, predictions)

	require.Len(t, ranking, len(users))
	assert.Equal(t, []string{"u1", "u2", "u3", "u4"},
		[]string{ranking[0].UserID, ranking[1].UserID, ranking[2].UserID, ranking[3].UserID})
	for i, entry := range ranking {
		assert.Equal(t, i+1, entry.Posicion)
	}
	assert.Equal(t, 4, ranking[0].Puntos)
	assert.Equal(t, 2, ranking[0].TotalPredictions)
	assert.Equal(t, 0, ranking[3].Puntos)
}

// Equal totals get strictly increasing positions, lower user ID first —
// never a shared rank.
func TestGlobalRankingTieBreak(t *testing.T) {
	users := []UserSnapshot{
		{ID: "b", Area: "X"},
		{ID: "a", Area: "X"},
		{ID: "c", Area: "X"},
	}
	predictions := []ScoredPrediction{
		{UserID: "a", Points: 10},
		{UserID: "b", Points: 10},
		{UserID: "c", Points: 5},
	}

	ranking := GlobalRanking(users, predictions)
	require.Len(t, ranking, 3)
	assert.Equal(t, "a", ranking[0].UserID)
	assert.Equal(t, 1, ranking[0].Posicion)
	assert.Equal(t, "b", ranking[1].UserID)
	assert.Equal(t, 2, ranking[1].Posicion)
	assert.Equal(t, "c", ranking[2].UserID)
	assert.Equal(t, 3, ranking[2].Posicion)
}

func TestGlobalRankingPointConservation(t *testing.T) {
	users, predictions := rankingFixture()
	ranking := GlobalRanking(users, predictions)

	wantTotal := 0
	for _, p := range predictions {
		wantTotal += p.Points
	}
	gotTotal := 0
	for _, entry := range ranking {
		gotTotal += entry.Puntos
	}
	assert.Equal(t, wantTotal, gotTotal)
}

func TestGlobalRankingDeterministic(t *testing.T) {
	users, predictions := rankingFixture()
	assert.Equal(t, GlobalRanking(users, predictions), GlobalRanking(users, predictions))
}

func TestGlobalRankingEmptyInputs(t *testing.T) {
	assert.Empty(t, GlobalRanking(nil, nil))

	users, _ := rankingFixture()
	ranking := GlobalRanking(users, nil)
	require.Len(t, ranking, len(users))
	for _, entry := range ranking {
		assert.Equal(t, 0, entry.Puntos)
	}
}

// Adding a positive-point prediction never worsens that user's position.
func TestGlobalRankingMonotonicity(t *testing.T) {
	users, predictions := rankingFixture()

	before, err := UserPosition("u3", users, predictions)
	require.NoError(t, err)

	after, err := UserPosition("u3", users, append(predictions, ScoredPrediction{UserID: "u3", Points: 3}))
	require.NoError(t, err)

	assert.LessOrEqual(t, after.Posicion, before.Posicion)
}

func TestAreaRankings(t *testing.T) {
	users, predictions := rankingFixture()
	areas := AreaRankings(users, predictions)

	require.Len(t, areas, 3)
	// Spanish collation: Marketing, Tecnología, Ventas
	assert.Equal(t, "Marketing", areas[0].Area)
	assert.Equal(t, "Tecnología", areas[1].Area)
	assert.Equal(t, "Ventas", areas[2].Area)

	tec := areas[1]
	assert.Equal(t, 2, tec.Participantes)
	require.Len(t, tec.TopUsers, 2)
	assert.Equal(t, "u1", tec.TopUsers[0].UserID)
	assert.Equal(t, 1, tec.TopUsers[0].Posicion)
	assert.Equal(t, "u4", tec.TopUsers[1].UserID)
	assert.Equal(t, 2, tec.TopUsers[1].Posicion)
}

func TestAreaRankingsTruncatesToTopThree(t *testing.T) {
	users := []UserSnapshot{
		{ID: "a", Area: "Ventas"},
		{ID: "b", Area: "Ventas"},
		{ID: "c", Area: "Ventas"},
		{ID: "d", Area: "Ventas"},
		{ID: "e", Area: "Ventas"},
	}
	predictions := []ScoredPrediction{
		{UserID: "d", Points: 7},
		{UserID: "e", Points: 5},
	}

	areas := AreaRankings(users, predictions)
	require.Len(t, areas, 1)
	assert.Equal(t, 5, areas[0].Participantes)
	require.Len(t, areas[0].TopUsers, AreaTopSize)
	assert.Equal(t, "d", areas[0].TopUsers[0].UserID)
	assert.Equal(t, "e", areas[0].TopUsers[1].UserID)
	assert.Equal(t, "a", areas[0].TopUsers[2].UserID)
}

func TestUserPosition(t *testing.T) {
	users, predictions := rankingFixture()

	got, err := UserPosition("u2", users, predictions)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Posicion)
	assert.Equal(t, 3, got.Puntos)
	assert.Equal(t, 4, got.TotalParticipants)
}

func TestUserPositionNotFound(t *testing.T) {
	users, predictions := rankingFixture()

	_, err := UserPosition("nope", users, predictions)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
