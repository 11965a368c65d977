package service

import (
	"context"

	"vitrine/internal/models"
	"vitrine/internal/repository"
)

type SettingsService struct {
	settingsRepo repository.SettingsRepository
}

func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// Get returns the profile settings. Secrets never leave this layer; they are
// tagged out of the JSON encoding on the model.
func (s *SettingsService) Get(ctx context.Context) (*models.Settings, error) {
	return s.settingsRepo.Get(ctx)
}

// Patch applies the non-empty fields of the patch atomically and returns the
// updated settings.
func (s *SettingsService) Patch(ctx context.Context, patch models.SettingsPatch) (*models.Settings, error) {
	return s.settingsRepo.Patch(ctx, patch)
}
