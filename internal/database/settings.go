package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingsKV is a key/value store backed by the settings table
type SettingsKV struct {
	db *gorm.DB
}

// NewSettingsKV creates a settings store on db
func NewSettingsKV(db *gorm.DB) *SettingsKV {
	return &SettingsKV{db: db}
}

// Get returns the value stored under key. The bool is false when the key is unset.
func (s *SettingsKV) Get(ctx context.Context, key string) (string, bool, error) {
	setting, ok, err := s.find(ctx, key)
	if err != nil || !ok {
		return "", ok, err
	}
	return setting.Value, true, nil
}

// Set stores value under key, overwriting any previous value
func (s *SettingsKV) Set(ctx context.Context, key, value string) error {
	setting := Setting{Key: key, Value: value, UpdatedAt: time.Now()}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		return fmt.Errorf("failed to save setting %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *SettingsKV) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Where("key = ?", key).Delete(&Setting{}).Error; err != nil {
		return fmt.Errorf("failed to delete setting %s: %w", key, err)
	}
	return nil
}

// UpdatedAt reports when key was last written
func (s *SettingsKV) UpdatedAt(ctx context.Context, key string) (time.Time, bool, error) {
	setting, ok, err := s.find(ctx, key)
	if err != nil || !ok {
		return time.Time{}, ok, err
	}
	return setting.UpdatedAt, true, nil
}

func (s *SettingsKV) find(ctx context.Context, key string) (Setting, bool, error) {
	var setting Setting
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Setting{}, false, nil
		}
		return Setting{}, false, fmt.Errorf("failed to load setting %s: %w", key, err)
	}
	return setting, true, nil
}
