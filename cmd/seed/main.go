package main

import (
	"context"
	"fmt"
	"log"

	"local_delivery/internal/auth"
	"local_delivery/internal/config"
	"local_delivery/internal/database"
	"local_delivery/internal/migrations"
	"local_delivery/internal/models"
	"local_delivery/internal/repository"
	"local_delivery/internal/services"
)

// Demo data: one customer near a restaurant with a small menu.
var (
	customerLat, customerLng     = 12.9716, 77.5946
	restaurantLat, restaurantLng = 12.9800, 77.6000
	demoMenu                     = []services.MenuItemRequest{
		{Name: "Paneer Tikka", Price: 180, Description: "Chargrilled cottage cheese", IsBestSeller: true},
		{Name: "Masala Dosa", Price: 90, Description: "Rice crepe with potato filling"},
		{Name: "Mango Lassi", Price: 60},
	}
)

func main() {
	fmt.Println("Seeding database...")
	ctx := context.Background()

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL, cfg.DBLogLevel)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Close(db)

	userRepo := repository.NewUserRepository(db)
	restaurantRepo := repository.NewRestaurantRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	err = migrations.SeedPricingSettings(ctx, settingsRepo, migrations.DefaultPricing{
		TaxRatePercent:   cfg.TaxRatePercent,
		DeliveryFee:      cfg.DeliveryFee,
		DeliveryRadiusKm: cfg.DeliveryRadiusKm,
	})
	if err != nil {
		log.Fatal("Failed to seed pricing settings:", err)
	}

	userService := services.NewUserService(userRepo)
	pricing := services.NewPricingService(settingsRepo, services.PricingRules{})
	restaurantService := services.NewRestaurantService(restaurantRepo, userRepo, pricing)
	menuService := services.NewMenuService(repository.NewMenuRepository(db), restaurantRepo)

	customer, err := userService.Provision(ctx, &models.User{
		Name:  "Demo Customer",
		Email: "customer@example.com",
		Role:  models.RoleUser,
		Location: models.Location{
			Address: "MG Road, Bengaluru",
			Lat:     &customerLat,
			Lng:     &customerLng,
		},
	})
	if err != nil {
		log.Fatal("Failed to create demo customer:", err)
	}

	owner, err := userService.Provision(ctx, &models.User{
		Name:  "Demo Owner",
		Email: "owner@example.com",
		Role:  models.RoleRestaurant,
	})
	if err != nil {
		log.Fatal("Failed to create demo owner:", err)
	}
	ownerActor := &models.Actor{ID: owner.ID, Role: owner.Role}

	restaurant, err := restaurantService.GetMine(ctx, ownerActor)
	if services.KindOf(err) == services.KindNotFound {
		restaurant, err = restaurantService.Create(ctx, ownerActor, services.RestaurantRequest{
			Name:    "Demo Kitchen",
			Address: "Brigade Road, Bengaluru",
			Phone:   "080-5550100",
			Location: &services.LocationRequest{
				Address: "Brigade Road, Bengaluru",
				Lat:     &restaurantLat,
				Lng:     &restaurantLng,
			},
		})
		if err != nil {
			log.Fatal("Failed to create demo restaurant:", err)
		}
		for _, item := range demoMenu {
			if _, err := menuService.AddItem(ctx, ownerActor, item); err != nil {
				log.Printf("Warning: Failed to add %s: %v", item.Name, err)
			}
		}
		fmt.Println("Demo restaurant created")
	} else if err != nil {
		log.Fatal("Failed to look up demo restaurant:", err)
	} else {
		fmt.Println("Demo restaurant already exists")
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	for _, u := range []*models.User{customer, owner} {
		token, err := tokens.Issue(u)
		if err != nil {
			log.Fatal("Failed to issue token:", err)
		}
		fmt.Printf("%s (%s): %s\n", u.Email, u.Role, token)
	}

	fmt.Printf("Restaurant ID: %d\n", restaurant.ID)
	fmt.Println("Seeding completed successfully!")
}
