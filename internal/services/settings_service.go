package services

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"study-planner.com/study-planner/internal/auth"
	dto "study-planner.com/study-planner/internal/data_models"
	model "study-planner.com/study-planner/internal/models"
	repository "study-planner.com/study-planner/internal/repositories"
)

type SettingsStore interface {
	FindPreferences(ctx context.Context, userID string) (*model.Preferences, error)
	UpsertPreferences(ctx context.Context, prefs *model.Preferences) error
	FindProfile(ctx context.Context, userID string) (*model.Profile, error)
	UpsertProfile(ctx context.Context, profile *model.Profile) error
}

type SettingsService struct {
	repo SettingsStore
	log  *zap.Logger
}

func NewSettingsService(repo SettingsStore, log *zap.Logger) *SettingsService {
	return &SettingsService{repo: repo, log: log}
}

// GetPreferences never fails: a missing row or a read error yields the
// built-in defaults.
func (s *SettingsService) GetPreferences(ctx context.Context, userID string) model.Preferences {
	prefs, err := s.repo.FindPreferences(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Warn("preferences read failed, using defaults", zap.String("user_id", userID), zap.Error(err))
		}
		return model.DefaultPreferences(userID)
	}
	return *prefs
}

func (s *SettingsService) SavePreferences(ctx context.Context, userID string, req dto.PreferencesRequest) (*model.Preferences, error) {
	prefs := &model.Preferences{
		UserID:             userID,
		EmailNotifications: req.EmailNotifications,
		PushNotifications:  req.PushNotifications,
		DarkMode:           req.DarkMode,
	}
	if err := s.repo.UpsertPreferences(ctx, prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}

// GetProfile returns an empty profile carrying the caller's email when none
// has been saved yet.
func (s *SettingsService) GetProfile(ctx context.Context, identity auth.Identity) (*model.Profile, error) {
	profile, err := s.repo.FindProfile(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &model.Profile{UserID: identity.UserID, Email: identity.Email}, nil
		}
		return nil, err
	}
	return profile, nil
}

func (s *SettingsService) SaveProfile(ctx context.Context, identity auth.Identity, req dto.ProfileRequest) (*model.Profile, error) {
	profile := &model.Profile{
		UserID:    identity.UserID,
		FullName:  strings.TrimSpace(req.FullName),
		Bio:       strings.TrimSpace(req.Bio),
		Email:     identity.Email,
		AvatarURL: req.AvatarURL,
	}
	if err := s.repo.UpsertProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
