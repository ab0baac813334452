package scoring

import (
	"errors"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ErrUserNotFound is returned by UserPosition for an unknown user ID.
var ErrUserNotFound = errors.New("scoring: user not found")

// AreaTopSize limits how many users each area ranking reports.
const AreaTopSize = 3

// UserSnapshot is the slice of a user the ranking needs.
type UserSnapshot struct {
	ID       string
	Nombre   string
	Apellido string
	Area     string
}

// ScoredPrediction is a prediction whose match already finished.
// Callers must filter out predictions with unknown points.
type ScoredPrediction struct {
	UserID string
	Points int
}

// Entry is one leaderboard row. Not persisted — recomputed on demand.
type Entry struct {
	UserID           string `json:"id"`
	Nombre           string `json:"nombre"`
	Apellido         string `json:"apellido"`
	Area             string `json:"area"`
	Puntos           int    `json:"puntos"`
	TotalPredictions int    `json:"totalPredictions"`
	Posicion         int    `json:"posicion"`
}

// AreaRanking is the leaderboard of a single corporate area.
// Participantes counts everyone in the area, not just the reported top.
type AreaRanking struct {
	Area          string  `json:"area"`
	Participantes int     `json:"participantes"`
	TopUsers      []Entry `json:"topUsers"`
}

// UserRanking is one user's position within the global ranking.
type UserRanking struct {
	Entry
	TotalParticipants int `json:"totalParticipants"`
}

// GlobalRanking sums points per user, sorts descending and assigns 1-based
// positions. Users with no scored predictions rank with 0 points. The
// tie-break is ascending user ID, so equal totals still get strictly
// increasing positions and the output is deterministic for a given input.
func GlobalRanking(users []UserSnapshot, predictions []ScoredPrediction) []Entry {
	entries := buildEntries(users, predictions)
	for i := range entries {
		entries[i].Posicion = i + 1
	}
	return entries
}

// AreaRankings groups users by area and computes each area's top entries
// (up to AreaTopSize) plus its full participant count. Areas come back
// ordered by label under Spanish collation so output order is stable.
func AreaRankings(users []UserSnapshot, predictions []ScoredPrediction) []AreaRanking {
	byArea := make(map[string][]UserSnapshot)
	for _, u := range users {
		byArea[u.Area] = append(byArea[u.Area], u)
	}

	areas := make([]string, 0, len(byArea))
	for area := range byArea {
		areas = append(areas, area)
	}
	col := collate.New(language.Spanish)
	col.SortStrings(areas)

	rankings := make([]AreaRanking, 0, len(areas))
	for _, area := range areas {
		entries := buildEntries(byArea[area], predictions)
		top := entries
		if len(top) > AreaTopSize {
			top = top[:AreaTopSize]
		}
		for i := range top {
			top[i].Posicion = i + 1
		}
		rankings = append(rankings, AreaRanking{
			Area:          area,
			Participantes: len(entries),
			TopUsers:      top,
		})
	}
	return rankings
}

// UserPosition computes the global ranking and returns one user's row plus
// the total participant count. ErrUserNotFound if the ID is not in users.
func UserPosition(userID string, users []UserSnapshot, predictions []ScoredPrediction) (UserRanking, error) {
	ranking := GlobalRanking(users, predictions)
	for _, entry := range ranking {
		if entry.UserID == userID {
			return UserRanking{Entry: entry, TotalParticipants: len(ranking)}, nil
		}
	}
	return UserRanking{}, ErrUserNotFound
}

// buildEntries does the shared sum + sort. Positions are left unset so each
// caller can number within its own scope (global vs per-area).
func buildEntries(users []UserSnapshot, predictions []ScoredPrediction) []Entry {
	totals := make(map[string]int, len(users))
	counts := make(map[string]int, len(users))
	for _, p := range predictions {
		totals[p.UserID] += p.Points
		counts[p.UserID]++
	}

	entries := make([]Entry, 0, len(users))
	for _, u := range users {
		entries = append(entries, Entry{
			UserID:           u.ID,
			Nombre:           u.Nombre,
			Apellido:         u.Apellido,
			Area:             u.Area,
			Puntos:           totals[u.ID],
			TotalPredictions: counts[u.ID],
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Puntos != entries[j].Puntos {
			return entries[i].Puntos > entries[j].Puntos
		}
		return entries[i].UserID < entries[j].UserID
	})
	return entries
}
