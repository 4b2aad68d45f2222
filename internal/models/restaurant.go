package models

import (
	"time"

	"gorm.io/gorm"
)

type Restaurant struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	OwnerID   uint      `json:"owner_id" gorm:"uniqueIndex;not null"`
	Name      string    `json:"name" gorm:"not null"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Location  Location  `json:"location" gorm:"embedded;embeddedPrefix:location_"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Restaurant) OwnedBy(userID uint) bool {
	return r != nil && r.OwnerID == userID
}

type MenuItem struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	RestaurantID uint           `json:"restaurant_id" gorm:"not null;index"`
	Name         string         `json:"name" gorm:"not null"`
	Price        float64        `json:"price" gorm:"not null"`
	Description  string         `json:"description" gorm:"type:text"`
	Image        string         `json:"image"`
	IsVeg        bool           `json:"is_veg"`
	IsBestSeller bool           `json:"is_best_seller"`
	IsAvailable  bool           `json:"is_available"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

// PricingSetting overrides a pricing default. Value is a percentage for
// tax_rate and an absolute amount for the others.
type PricingSetting struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	SettingName string    `json:"setting_name" gorm:"uniqueIndex;not null"` // tax_rate, delivery_fee, delivery_radius_km
	Value       float64   `json:"value"`
	IsActive    bool      `json:"is_active" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

const (
	SettingTaxRate          = "tax_rate"
	SettingDeliveryFee      = "delivery_fee"
	SettingDeliveryRadiusKm = "delivery_radius_km"
)
