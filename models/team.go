package models

// Team is a competing national team. Slug is derived from Name with
// gosimple/slug ("Arabia Saudí" → "arabia-saudi") and doubles as the
// accent-insensitive search key.
type Team struct {
	ID       string  `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Name     string  `gorm:"uniqueIndex;not null" json:"name"`
	Country  string  `gorm:"not null" json:"country"`
	Slug     string  `gorm:"uniqueIndex;not null" json:"slug"`
	CrestURL *string `json:"crest_url,omitempty"`

	Timestamps
}
