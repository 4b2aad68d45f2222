package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"local_delivery/internal/auth"
	"local_delivery/internal/config"
	"local_delivery/internal/handlers"
	"local_delivery/internal/migrations"
	"local_delivery/internal/services"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load configuration
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize storage
	store, err := openStorage(cfg)
	if err != nil {
		log.Fatal("Failed to initialize storage:", err)
	}
	defer store.close()

	err = migrations.SeedPricingSettings(ctx, store.settings, migrations.DefaultPricing{
		TaxRatePercent:   cfg.TaxRatePercent,
		DeliveryFee:      cfg.DeliveryFee,
		DeliveryRadiusKm: cfg.DeliveryRadiusKm,
	})
	if err != nil {
		log.Printf("Warning: Failed to seed pricing settings: %v", err)
	}

	// Initialize services
	pricing := services.NewPricingService(store.settings, services.PricingRules{
		TaxRatePercent:   cfg.TaxRatePercent,
		DeliveryFee:      cfg.DeliveryFee,
		DeliveryRadiusKm: cfg.DeliveryRadiusKm,
	})
	userService := services.NewUserService(store.users)
	restaurantService := services.NewRestaurantService(store.restaurants, store.users, pricing)
	menuService := services.NewMenuService(store.menu, store.restaurants)
	orderService := services.NewOrderService(store.orders, store.restaurants, store.menu, store.users, pricing, services.OrderOptions{
		EnforceDeliveryRadius: cfg.EnforceDeliveryRadius,
	})
	cartService := services.NewCartService(store.carts, store.menu, pricing, orderService, cfg.CartTTL)

	// Setup routes
	router := (&handlers.Router{
		Orders:      handlers.NewOrderHandler(orderService),
		Restaurants: handlers.NewRestaurantHandler(restaurantService, menuService),
		Profile:     handlers.NewProfileHandler(userService),
		Carts:       handlers.NewCartHandler(cartService),
		Tokens:      auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL),
		Checks:      store.checks,
	}).Setup()

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("Server starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Printf("Server stopped with error: %v", err)
		return
	}
	log.Println("Server stopped")
}
