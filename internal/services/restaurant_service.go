package services

import (
	"context"
	"errors"
	"local_delivery/internal/models"
	"local_delivery/internal/repository"
	"local_delivery/pkg/geo"
	"strings"
)

type RestaurantService interface {
	List(ctx context.Context) ([]models.Restaurant, error)
	GetByID(ctx context.Context, id uint) (*models.Restaurant, error)
	GetMine(ctx context.Context, actor *models.Actor) (*models.Restaurant, error)
	Create(ctx context.Context, actor *models.Actor, req RestaurantRequest) (*models.Restaurant, error)
	Update(ctx context.Context, actor *models.Actor, req RestaurantRequest) (*models.Restaurant, error)
	CheckDelivery(ctx context.Context, actor *models.Actor, restaurantID uint) (geo.Eligibility, error)
}

type restaurantService struct {
	restaurantRepo repository.RestaurantRepository
	userRepo       repository.UserRepository
	pricing        PricingService
}

func NewRestaurantService(restaurantRepo repository.RestaurantRepository, userRepo repository.UserRepository, pricing PricingService) RestaurantService {
	return &restaurantService{restaurantRepo: restaurantRepo, userRepo: userRepo, pricing: pricing}
}

func (s *restaurantService) List(ctx context.Context) ([]models.Restaurant, error) {
	restaurants, err := s.restaurantRepo.GetAll(ctx)
	if err != nil {
		return nil, storage("failed to list restaurants", err)
	}
	return restaurants, nil
}

func (s *restaurantService) GetByID(ctx context.Context, id uint) (*models.Restaurant, error) {
	restaurant, err := s.restaurantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Restaurant not found", "failed to get restaurant")
	}
	return restaurant, nil
}

func (s *restaurantService) GetMine(ctx context.Context, actor *models.Actor) (*models.Restaurant, error) {
	if err := requireRestaurantRole(actor); err != nil {
		return nil, err
	}
	restaurant, err := s.restaurantRepo.GetByOwnerID(ctx, actor.ID)
	if err != nil {
		return nil, lookupError(err, "No restaurant found for this owner", "failed to get restaurant")
	}
	return restaurant, nil
}

// Create registers the actor's restaurant. Each owner has at most one.
func (s *restaurantService) Create(ctx context.Context, actor *models.Actor, req RestaurantRequest) (*models.Restaurant, error) {
	if err := requireRestaurantRole(actor); err != nil {
		return nil, err
	}

	name, address, phone := strings.TrimSpace(req.Name), strings.TrimSpace(req.Address), strings.TrimSpace(req.Phone)
	if name == "" || address == "" || phone == "" {
		return nil, validation("Name, address, and phone are required")
	}

	_, err := s.restaurantRepo.GetByOwnerID(ctx, actor.ID)
	if err == nil {
		return nil, validation("You have already created a restaurant")
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, storage("failed to check existing restaurant", err)
	}

	restaurant := &models.Restaurant{
		OwnerID: actor.ID,
		Name:    name,
		Address: address,
		Phone:   phone,
	}
	if req.Location != nil {
		if req.Location.Lat == nil || req.Location.Lng == nil {
			return nil, validation("Location must have lat and lng")
		}
		restaurant.Location = req.Location.toModel()
	}

	if err := s.restaurantRepo.Create(ctx, restaurant); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, validation("You have already created a restaurant")
		}
		return nil, storage("failed to create restaurant", err)
	}
	return restaurant, nil
}

func (s *restaurantService) Update(ctx context.Context, actor *models.Actor, req RestaurantRequest) (*models.Restaurant, error) {
	if err := requireRestaurantRole(actor); err != nil {
		return nil, err
	}

	restaurant, err := s.restaurantRepo.GetByOwnerID(ctx, actor.ID)
	if err != nil {
		return nil, lookupError(err, "No restaurant found. Please create one first.", "failed to get restaurant")
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		restaurant.Name = name
	}
	if address := strings.TrimSpace(req.Address); address != "" {
		restaurant.Address = address
	}
	if phone := strings.TrimSpace(req.Phone); phone != "" {
		restaurant.Phone = phone
	}
	if req.Location != nil {
		if req.Location.Lat == nil || req.Location.Lng == nil {
			return nil, validation("Location must have lat and lng")
		}
		restaurant.Location = req.Location.toModel()
	}

	if err := s.restaurantRepo.Update(ctx, restaurant); err != nil {
		return nil, storage("failed to update restaurant", err)
	}
	return restaurant, nil
}

// CheckDelivery runs the delivery range gate between the actor's saved
// location and the restaurant.
func (s *restaurantService) CheckDelivery(ctx context.Context, actor *models.Actor, restaurantID uint) (geo.Eligibility, error) {
	if actor == nil {
		return geo.Eligibility{}, ErrUnauthenticated
	}

	restaurant, err := s.GetByID(ctx, restaurantID)
	if err != nil {
		return geo.Eligibility{}, err
	}
	user, err := s.userRepo.GetByID(ctx, actor.ID)
	if err != nil {
		return geo.Eligibility{}, lookupError(err, "User not found", "failed to get user")
	}
	rules, err := s.pricing.Rules(ctx)
	if err != nil {
		return geo.Eligibility{}, err
	}

	return geo.CheckEligibility(user.Location.Point(), restaurant.Location.Point(), rules.DeliveryRadiusKm), nil
}
