package handlers

import (
	"net/http"

	"local_delivery/internal/auth"
	"local_delivery/internal/services"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	cartService services.CartService
}

func NewCartHandler(cartService services.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

func (h *CartHandler) GetCart(c *gin.Context) {
	restaurantID, ok := paramID(c, "restaurantId")
	if !ok {
		return
	}

	view, err := h.cartService.Get(c.Request.Context(), auth.ActorFrom(c), restaurantID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "cart": view.Cart, "quote": view.Quote})
}

func (h *CartHandler) ReplaceCart(c *gin.Context) {
	restaurantID, ok := paramID(c, "restaurantId")
	if !ok {
		return
	}

	var req services.CartUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Every item needs a menu_item_id and a quantity of at least 1")
		return
	}

	view, err := h.cartService.Replace(c.Request.Context(), auth.ActorFrom(c), restaurantID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "cart": view.Cart, "quote": view.Quote})
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	restaurantID, ok := paramID(c, "restaurantId")
	if !ok {
		return
	}

	if err := h.cartService.Clear(c.Request.Context(), auth.ActorFrom(c), restaurantID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart cleared"})
}

func (h *CartHandler) Checkout(c *gin.Context) {
	restaurantID, ok := paramID(c, "restaurantId")
	if !ok {
		return
	}

	var req services.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Total is required")
		return
	}

	order, err := h.cartService.Checkout(c.Request.Context(), auth.ActorFrom(c), restaurantID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Order placed successfully",
		"order":   order,
	})
}
