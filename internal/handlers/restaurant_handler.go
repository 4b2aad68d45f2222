package handlers

import (
	"net/http"

	"local_delivery/internal/auth"
	"local_delivery/internal/services"

	"github.com/gin-gonic/gin"
)

type RestaurantHandler struct {
	restaurantService services.RestaurantService
	menuService       services.MenuService
}

func NewRestaurantHandler(restaurantService services.RestaurantService, menuService services.MenuService) *RestaurantHandler {
	return &RestaurantHandler{restaurantService: restaurantService, menuService: menuService}
}

func (h *RestaurantHandler) ListRestaurants(c *gin.Context) {
	restaurants, err := h.restaurantService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "restaurants": restaurants})
}

func (h *RestaurantHandler) GetMyRestaurant(c *gin.Context) {
	restaurant, err := h.restaurantService.GetMine(c.Request.Context(), auth.ActorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "restaurant": restaurant})
}

func (h *RestaurantHandler) CreateRestaurant(c *gin.Context) {
	var req services.RestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format")
		return
	}

	restaurant, err := h.restaurantService.Create(c.Request.Context(), auth.ActorFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"message":    "Restaurant created successfully",
		"restaurant": restaurant,
	})
}

func (h *RestaurantHandler) UpdateRestaurant(c *gin.Context) {
	var req services.RestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format")
		return
	}

	restaurant, err := h.restaurantService.Update(c.Request.Context(), auth.ActorFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Restaurant updated successfully",
		"restaurant": restaurant,
	})
}

func (h *RestaurantHandler) CheckDelivery(c *gin.Context) {
	restaurantID, ok := paramID(c, "id")
	if !ok {
		return
	}

	eligibility, err := h.restaurantService.CheckDelivery(c.Request.Context(), auth.ActorFrom(c), restaurantID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"eligible":    eligibility.Eligible,
		"distance_km": eligibility.DistanceKm,
	})
}

func (h *RestaurantHandler) GetMenu(c *gin.Context) {
	restaurantID, ok := paramID(c, "restaurantId")
	if !ok {
		return
	}

	items, err := h.menuService.ListAvailable(c.Request.Context(), restaurantID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "menu": items})
}

func (h *RestaurantHandler) AddMenuItem(c *gin.Context) {
	var req services.MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Name and a positive price are required")
		return
	}

	item, err := h.menuService.AddItem(c.Request.Context(), auth.ActorFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "item": item})
}

func (h *RestaurantHandler) DeleteMenuItem(c *gin.Context) {
	itemID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.menuService.DeleteItem(c.Request.Context(), auth.ActorFrom(c), itemID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Menu item deleted"})
}
