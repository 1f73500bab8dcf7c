package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	model "study-planner.com/study-planner/internal/models"
)

// ErrNotFound is returned when a user has no settings row yet.
var ErrNotFound = errors.New("record not found")

// SettingsRepository stores the one-row-per-user preferences and profile
// records. Both are written with an upsert keyed by user_id.
type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) FindPreferences(ctx context.Context, userID string) (*model.Preferences, error) {
	var prefs model.Preferences
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&prefs).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get preferences: %w", err)
	}
	return &prefs, nil
}

func (r *SettingsRepository) UpsertPreferences(ctx context.Context, prefs *model.Preferences) error {
	if prefs.ID == "" {
		prefs.ID = uuid.NewString()
	}
	prefs.UpdatedAt = time.Now().UTC()

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email_notifications", "push_notifications", "dark_mode", "updated_at"}),
	}).Create(prefs).Error
	if err != nil {
		return fmt.Errorf("upsert preferences: %w", err)
	}
	return nil
}

func (r *SettingsRepository) FindProfile(ctx context.Context, userID string) (*model.Profile, error) {
	var profile model.Profile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &profile, nil
}

func (r *SettingsRepository) UpsertProfile(ctx context.Context, profile *model.Profile) error {
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	profile.UpdatedAt = time.Now().UTC()

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"full_name", "bio", "email", "avatar_url", "updated_at"}),
	}).Create(profile).Error
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}
