package models

import "time"

// CheckTemplate is a team-scoped form definition. Structure holds the raw
// JSON column list; internal/schema decodes it.
type CheckTemplate struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time

	Name      string `gorm:"size:255;not null"`
	Team      string `gorm:"size:100;not null"`
	Structure string `gorm:"type:text;not null"`

	CreatedBy uint
	Creator   User `gorm:"foreignKey:CreatedBy"`
}
