package models

import (
	"time"
)

// User is a pool participant. Area is the corporate department the user
// belongs to ("Tecnología", "Marketing", ...) and drives the per-area ranking.
type User struct {
	ID        string  `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Email     string  `gorm:"uniqueIndex;not null" json:"email"`
	Password  string  `gorm:"not null" json:"-"` // bcrypt hash, never serialized
	Nombre    string  `gorm:"not null" json:"nombre"`
	Apellido  string  `gorm:"not null" json:"apellido"`
	Area      string  `gorm:"index;not null" json:"area"`
	AvatarURL *string `json:"avatar_url,omitempty"`

	IsActive  bool       `gorm:"default:true" json:"isActive"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`

	// Relationships
	Predictions []Prediction `json:"predictions,omitempty" gorm:"foreignKey:UserID"`

	Timestamps
}

// UserSession backs the JWT tokens. Every issued token references a session
// row; deleting the row (logout, expiry cleanup) revokes the token.
type UserSession struct {
	ID        string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID    string    `gorm:"index;not null" json:"user_id"`
	Token     string    `gorm:"uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time `gorm:"index;not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}
