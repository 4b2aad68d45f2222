package services

import (
	"context"
	"errors"
	"local_delivery/internal/models"
	"local_delivery/internal/repository"
	"strings"
)

type MenuService interface {
	ListAvailable(ctx context.Context, restaurantID uint) ([]models.MenuItem, error)
	AddItem(ctx context.Context, actor *models.Actor, req MenuItemRequest) (*models.MenuItem, error)
	DeleteItem(ctx context.Context, actor *models.Actor, itemID uint) error
}

type menuService struct {
	menuRepo       repository.MenuRepository
	restaurantRepo repository.RestaurantRepository
}

func NewMenuService(menuRepo repository.MenuRepository, restaurantRepo repository.RestaurantRepository) MenuService {
	return &menuService{menuRepo: menuRepo, restaurantRepo: restaurantRepo}
}

func (s *menuService) ListAvailable(ctx context.Context, restaurantID uint) ([]models.MenuItem, error) {
	if _, err := s.restaurantRepo.GetByID(ctx, restaurantID); err != nil {
		return nil, lookupError(err, "Restaurant not found", "failed to get restaurant")
	}
	items, err := s.menuRepo.GetAvailableByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, storage("failed to fetch menu", err)
	}
	return items, nil
}

// AddItem adds an item to the actor's own restaurant. Items are vegetarian
// unless stated otherwise.
func (s *menuService) AddItem(ctx context.Context, actor *models.Actor, req MenuItemRequest) (*models.MenuItem, error) {
	if err := requireRestaurantRole(actor); err != nil {
		return nil, err
	}
	restaurant, err := s.restaurantRepo.GetByOwnerID(ctx, actor.ID)
	if err != nil {
		return nil, lookupError(err, "Restaurant not found", "failed to get restaurant")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, validation("Name is required")
	}
	if req.Price <= 0 {
		return nil, validation("Price must be greater than zero")
	}

	isVeg := true
	if req.IsVeg != nil {
		isVeg = *req.IsVeg
	}

	item := &models.MenuItem{
		RestaurantID: restaurant.ID,
		Name:         name,
		Price:        req.Price,
		Description:  strings.TrimSpace(req.Description),
		Image:        strings.TrimSpace(req.Image),
		IsVeg:        isVeg,
		IsBestSeller: req.IsBestSeller,
		IsAvailable:  true,
	}
	if err := s.menuRepo.Create(ctx, item); err != nil {
		return nil, storage("failed to add menu item", err)
	}
	return item, nil
}

func (s *menuService) DeleteItem(ctx context.Context, actor *models.Actor, itemID uint) error {
	if err := requireRestaurantRole(actor); err != nil {
		return err
	}

	item, err := s.menuRepo.GetByID(ctx, itemID)
	if err != nil {
		return lookupError(err, "Menu item not found", "failed to get menu item")
	}
	restaurant, err := s.restaurantRepo.GetByOwnerID(ctx, actor.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return accessDenied("You can only delete items from your own menu")
	}
	if err != nil {
		return storage("failed to get restaurant", err)
	}
	if item.RestaurantID != restaurant.ID {
		return accessDenied("You can only delete items from your own menu")
	}

	if err := s.menuRepo.Delete(ctx, itemID); err != nil {
		return storage("failed to delete menu item", err)
	}
	return nil
}
