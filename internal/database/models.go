package database

import (
	"time"

	"gorm.io/gorm"
)

// Setting represents a key-value store for application settings.
// The session snapshot lives under a single key.
type Setting struct {
	Key       string    `gorm:"primaryKey"`
	Value     string    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"index:idx_settings_updated_at;default:CURRENT_TIMESTAMP"`
}

// TableName overrides the table name
func (Setting) TableName() string {
	return "settings"
}

// Migrate runs GORM auto migrations
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Setting{})
}
