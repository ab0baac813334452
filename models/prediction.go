package models

// Prediction is a user's guessed final score for one match. Points is nil
// until the match is FINALIZADO, then holds the value computed by the scoring
// package (never hand-edited). One prediction per (user, match).
type Prediction struct {
	ID                 string  `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID             string  `gorm:"not null;uniqueIndex:idx_prediction_user_match" json:"userId"`
	MatchID            string  `gorm:"not null;uniqueIndex:idx_prediction_user_match" json:"matchId"`
	HomeGoalsPredicted int     `gorm:"not null" json:"homeGoalsPredicted"`
	AwayGoalsPredicted int     `gorm:"not null" json:"awayGoalsPredicted"`
	Comentario         *string `json:"comentario,omitempty"`
	Points             *int    `json:"points"`

	// Relationships
	User  User  `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Match Match `json:"match,omitempty" gorm:"foreignKey:MatchID"`

	Timestamps
}
