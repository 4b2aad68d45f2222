package migrations

import (
	"context"
	"errors"
	"fmt"
	"log"

	"local_delivery/internal/models"
	"local_delivery/internal/repository"
)

// DefaultPricing is the initial value of each pricing setting.
type DefaultPricing struct {
	TaxRatePercent   float64
	DeliveryFee      float64
	DeliveryRadiusKm float64
}

// SeedPricingSettings creates any pricing setting that does not exist yet.
// Existing rows, active or not, are left alone so operator changes survive restarts.
func SeedPricingSettings(ctx context.Context, settingsRepo repository.SettingsRepository, defaults DefaultPricing) error {
	log.Println("Ensuring default pricing settings...")

	settings := []models.PricingSetting{
		{SettingName: models.SettingTaxRate, Value: defaults.TaxRatePercent, IsActive: true},
		{SettingName: models.SettingDeliveryFee, Value: defaults.DeliveryFee, IsActive: true},
		{SettingName: models.SettingDeliveryRadiusKm, Value: defaults.DeliveryRadiusKm, IsActive: true},
	}

	for i := range settings {
		setting := &settings[i]
		_, err := settingsRepo.FindSetting(ctx, setting.SettingName)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		if err := settingsRepo.CreateSettings(ctx, setting); err != nil {
			return fmt.Errorf("failed to create %s setting: %w", setting.SettingName, err)
		}
		log.Printf("Created %s setting = %g", setting.SettingName, setting.Value)
	}
	return nil
}
