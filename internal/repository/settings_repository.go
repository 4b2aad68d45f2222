package repository

import (
	"context"
	"local_delivery/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsRepository interface {
	CreateSettings(ctx context.Context, setting *models.PricingSetting) error
	// GetSettings returns the setting only while it is active.
	GetSettings(ctx context.Context, settingName string) (*models.PricingSetting, error)
	// FindSetting returns the setting whether or not it is active.
	FindSetting(ctx context.Context, settingName string) (*models.PricingSetting, error)
	UpsertSettings(ctx context.Context, setting *models.PricingSetting) error
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) CreateSettings(ctx context.Context, setting *models.PricingSetting) error {
	return translate(r.db.WithContext(ctx).Create(setting).Error)
}

func (r *settingsRepository) GetSettings(ctx context.Context, settingName string) (*models.PricingSetting, error) {
	var setting models.PricingSetting
	err := r.db.WithContext(ctx).Where("setting_name = ? AND is_active = ?", settingName, true).First(&setting).Error
	if err != nil {
		return nil, translate(err)
	}
	return &setting, nil
}

func (r *settingsRepository) FindSetting(ctx context.Context, settingName string) (*models.PricingSetting, error) {
	var setting models.PricingSetting
	err := r.db.WithContext(ctx).Where("setting_name = ?", settingName).First(&setting).Error
	if err != nil {
		return nil, translate(err)
	}
	return &setting, nil
}

func (r *settingsRepository) UpsertSettings(ctx context.Context, setting *models.PricingSetting) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "setting_name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "is_active", "updated_at"}),
	}).Create(setting).Error
}
