package repository

import (
	"context"
	"local_delivery/internal/models"

	"gorm.io/gorm"
)

type RestaurantRepository interface {
	Create(ctx context.Context, restaurant *models.Restaurant) error
	GetByID(ctx context.Context, id uint) (*models.Restaurant, error)
	GetByOwnerID(ctx context.Context, ownerID uint) (*models.Restaurant, error)
	GetAll(ctx context.Context) ([]models.Restaurant, error)
	Update(ctx context.Context, restaurant *models.Restaurant) error
}

type restaurantRepository struct {
	db *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) RestaurantRepository {
	return &restaurantRepository{db: db}
}

func (r *restaurantRepository) Create(ctx context.Context, restaurant *models.Restaurant) error {
	return translate(r.db.WithContext(ctx).Create(restaurant).Error)
}

func (r *restaurantRepository) GetByID(ctx context.Context, id uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	err := r.db.WithContext(ctx).First(&restaurant, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &restaurant, nil
}

func (r *restaurantRepository) GetByOwnerID(ctx context.Context, ownerID uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&restaurant).Error
	if err != nil {
		return nil, translate(err)
	}
	return &restaurant, nil
}

func (r *restaurantRepository) GetAll(ctx context.Context) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	err := r.db.WithContext(ctx).Order("id ASC").Find(&restaurants).Error
	return restaurants, err
}

func (r *restaurantRepository) Update(ctx context.Context, restaurant *models.Restaurant) error {
	return r.db.WithContext(ctx).Save(restaurant).Error
}
