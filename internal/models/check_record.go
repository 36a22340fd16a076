package models

import "time"

// CheckRecord is one filled-in form. Data is the raw JSON payload keyed by
// field name; it is stored as submitted, not validated against the template.
type CheckRecord struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time

	TemplateID uint          `gorm:"not null"`
	Template   CheckTemplate `gorm:"foreignKey:TemplateID"`
	Data       string        `gorm:"type:text;not null"`

	CreatedBy uint
	Creator   User `gorm:"foreignKey:CreatedBy"`
}
