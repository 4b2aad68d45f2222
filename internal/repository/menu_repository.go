package repository

import (
	"context"
	"local_delivery/internal/models"

	"gorm.io/gorm"
)

type MenuRepository interface {
	Create(ctx context.Context, item *models.MenuItem) error
	GetByID(ctx context.Context, id uint) (*models.MenuItem, error)
	GetAvailableByRestaurant(ctx context.Context, restaurantID uint) ([]models.MenuItem, error)
	GetByIDs(ctx context.Context, restaurantID uint, ids []uint) ([]models.MenuItem, error)
	Delete(ctx context.Context, id uint) error
}

type menuRepository struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{db: db}
}

func (r *menuRepository) Create(ctx context.Context, item *models.MenuItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *menuRepository) GetByID(ctx context.Context, id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	err := r.db.WithContext(ctx).First(&item, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (r *menuRepository) GetAvailableByRestaurant(ctx context.Context, restaurantID uint) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND is_available = ?", restaurantID, true).
		Order("id ASC").
		Find(&items).Error
	return items, err
}

// GetByIDs returns the restaurant's items among ids, available or not.
func (r *menuRepository) GetByIDs(ctx context.Context, restaurantID uint, ids []uint) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if len(ids) == 0 {
		return items, nil
	}
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND id IN ?", restaurantID, ids).
		Find(&items).Error
	return items, err
}

func (r *menuRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.MenuItem{}, id).Error
}
