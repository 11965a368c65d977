package repository

import (
	"context"
	"errors"

	"vitrine/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingsRepository defines persistence operations for the single profile
// settings record.
type SettingsRepository interface {
	Get(ctx context.Context) (*models.Settings, error)
	Patch(ctx context.Context, patch models.SettingsPatch) (*models.Settings, error)
}

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository returns a new SettingsRepository implementation.
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// Get returns the settings row, creating the default record on first access.
func (r *settingsRepository) Get(ctx context.Context) (*models.Settings, error) {
	var settings models.Settings
	err := r.db.WithContext(ctx).First(&settings, models.SettingsID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.Settings{ID: models.SettingsID}
		if createErr := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&settings).Error; createErr != nil {
			return nil, models.NewInternalError(createErr)
		}
		return &settings, nil
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &settings, nil
}

// Patch applies the non-empty fields of the patch inside one transaction, so
// concurrent writers cannot interleave a read-modify-write and lose updates.
func (r *settingsRepository) Patch(ctx context.Context, patch models.SettingsPatch) (*models.Settings, error) {
	cols := patch.Columns()

	var updated models.Settings
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.Settings
		err := tx.First(&current, models.SettingsID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			current = models.Settings{ID: models.SettingsID}
			if createErr := tx.Create(&current).Error; createErr != nil {
				return createErr
			}
		} else if err != nil {
			return err
		}

		if len(cols) > 0 {
			if err := tx.Model(&models.Settings{ID: models.SettingsID}).
				Updates(cols).Error; err != nil {
				return err
			}
		}
		return tx.First(&updated, models.SettingsID).Error
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &updated, nil
}
