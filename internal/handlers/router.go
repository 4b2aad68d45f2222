package handlers

import (
	"context"
	"net/http"
	"time"

	"local_delivery/internal/auth"

	"github.com/gin-gonic/gin"
)

// HealthCheck reports whether a backing store is reachable.
type HealthCheck func(ctx context.Context) error

type Router struct {
	Orders      *OrderHandler
	Restaurants *RestaurantHandler
	Profile     *ProfileHandler
	Carts       *CartHandler
	Tokens      *auth.TokenManager
	Checks      map[string]HealthCheck
}

func (r *Router) Setup() *gin.Engine {
	router := gin.Default()

	router.GET("/healthz", r.health)

	api := router.Group("/api")

	// Public catalog
	api.GET("/restaurants", r.Restaurants.ListRestaurants)
	api.GET("/menu/:restaurantId", r.Restaurants.GetMenu)

	authed := api.Group("", auth.Authentication(r.Tokens))
	{
		orders := authed.Group("/orders")
		orders.POST("", r.Orders.PlaceOrder)
		orders.GET("/my-orders", r.Orders.GetMyOrders)
		orders.GET("/restaurant/:id", r.Orders.GetRestaurantOrders)
		orders.GET("/:id", r.Orders.GetOrder)
		orders.GET("/:id/history", r.Orders.GetOrderHistory)
		orders.PATCH("/:id/status", r.Orders.UpdateStatus)
		orders.PATCH("/:id/cancel", r.Orders.CancelOrder)
		orders.PATCH("/:id/restaurant-cancel", r.Orders.RestaurantCancelOrder)

		restaurants := authed.Group("/restaurants")
		restaurants.GET("/my", r.Restaurants.GetMyRestaurant)
		restaurants.POST("/create", r.Restaurants.CreateRestaurant)
		restaurants.PUT("/update", r.Restaurants.UpdateRestaurant)
		restaurants.GET("/:id/delivery-check", r.Restaurants.CheckDelivery)

		authed.POST("/menu/add", r.Restaurants.AddMenuItem)
		authed.DELETE("/menu/:id", r.Restaurants.DeleteMenuItem)

		authed.GET("/profile/me", r.Profile.GetMe)
		authed.PUT("/profile/update", r.Profile.UpdateProfile)

		cart := authed.Group("/cart")
		cart.GET("/:restaurantId", r.Carts.GetCart)
		cart.PUT("/:restaurantId", r.Carts.ReplaceCart)
		cart.DELETE("/:restaurantId", r.Carts.ClearCart)
		cart.POST("/:restaurantId/checkout", r.Carts.Checkout)
	}

	return router
}

func (r *Router) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := gin.H{}
	for name, check := range r.Checks {
		if err := check(ctx); err != nil {
			status = http.StatusServiceUnavailable
			checks[name] = err.Error()
			continue
		}
		checks[name] = "ok"
	}
	c.JSON(status, gin.H{"status": http.StatusText(status), "checks": checks})
}
