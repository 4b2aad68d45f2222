package main

import (
	"context"
	"fmt"
	"log"

	"local_delivery/internal/config"
	"local_delivery/internal/database"
	"local_delivery/internal/handlers"
	"local_delivery/internal/redis"
	"local_delivery/internal/repository"
	"local_delivery/internal/repository/memory"
	"local_delivery/internal/services"
)

type storage struct {
	users       repository.UserRepository
	restaurants repository.RestaurantRepository
	menu        repository.MenuRepository
	orders      repository.OrderRepository
	settings    repository.SettingsRepository
	carts       services.CartStore
	checks      map[string]handlers.HealthCheck
	close       func()
}

func openStorage(cfg *config.Config) (*storage, error) {
	switch cfg.StorageDriver {
	case "memory":
		log.Println("Using in-memory storage; data is lost on restart")
		store := memory.NewStore()
		return &storage{
			users:       memory.NewUserRepository(store),
			restaurants: memory.NewRestaurantRepository(store),
			menu:        memory.NewMenuRepository(store),
			orders:      memory.NewOrderRepository(store),
			settings:    memory.NewSettingsRepository(store),
			carts:       memory.NewCartStore(store),
			checks:      map[string]handlers.HealthCheck{},
			close:       func() {},
		}, nil

	case "postgres":
		db, err := database.Initialize(cfg.DatabaseURL, cfg.DBLogLevel)
		if err != nil {
			return nil, err
		}
		redisClient, err := redis.Initialize(cfg.RedisURL)
		if err != nil {
			database.Close(db)
			return nil, err
		}
		return &storage{
			users:       repository.NewUserRepository(db),
			restaurants: repository.NewRestaurantRepository(db),
			menu:        repository.NewMenuRepository(db),
			orders:      repository.NewOrderRepository(db),
			settings:    repository.NewSettingsRepository(db),
			carts:       redisClient,
			checks: map[string]handlers.HealthCheck{
				"postgres": func(ctx context.Context) error { return database.Ping(ctx, db) },
				"redis":    redisClient.Ping,
			},
			close: func() {
				if err := redisClient.Close(); err != nil {
					log.Printf("Warning: Error closing Redis: %v", err)
				}
				if err := database.Close(db); err != nil {
					log.Printf("Warning: Error closing database: %v", err)
				}
			},
		}, nil

	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q (want postgres or memory)", cfg.StorageDriver)
	}
}
