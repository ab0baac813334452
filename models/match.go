package models

import (
	"time"
)

// Match lifecycle statuses
const (
	MatchPendiente  = "PENDIENTE"
	MatchFinalizado = "FINALIZADO"
	MatchCancelado  = "CANCELADO"
)

// Tournament phases
const (
	FaseGrupos    = "GRUPOS"
	FaseOctavos   = "OCTAVOS"
	FaseCuartos   = "CUARTOS"
	FaseSemifinal = "SEMIFINAL"
	FaseFinal     = "FINAL"
)

// Match is a scheduled fixture. HomeGoals/AwayGoals stay nil until the match
// transitions to FINALIZADO; once finalized the result is only ever touched
// again for administrative corrections (which re-run the scoring pass).
type Match struct {
	ID         string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Fecha      time.Time `gorm:"not null;index" json:"fecha"` // kickoff time
	Fase       string    `gorm:"type:varchar(16);default:'GRUPOS';check:fase IN ('GRUPOS','OCTAVOS','CUARTOS','SEMIFINAL','FINAL')" json:"fase"`
	Status     string    `gorm:"type:varchar(16);default:'PENDIENTE';index;check:status IN ('PENDIENTE','FINALIZADO','CANCELADO')" json:"status"`
	HomeTeamID string    `gorm:"index;not null" json:"homeTeamId"`
	AwayTeamID string    `gorm:"index;not null" json:"awayTeamId"`
	HomeGoals  *int      `json:"homeGoals"`
	AwayGoals  *int      `json:"awayGoals"`

	// Relationships
	HomeTeam    Team         `json:"homeTeam,omitempty" gorm:"foreignKey:HomeTeamID"`
	AwayTeam    Team         `json:"awayTeam,omitempty" gorm:"foreignKey:AwayTeamID"`
	Predictions []Prediction `json:"predictions,omitempty" gorm:"foreignKey:MatchID"`

	Timestamps
}

// AcceptsPredictions reports whether predictions can still be created,
// edited or deleted: the match must be PENDIENTE and strictly before kickoff.
func (m *Match) AcceptsPredictions(now time.Time) bool {
	return m.Status == MatchPendiente && now.Before(m.Fecha)
}

// IsFinalizado reports whether a final result is recorded.
func (m *Match) IsFinalizado() bool {
	return m.Status == MatchFinalizado && m.HomeGoals != nil && m.AwayGoals != nil
}
