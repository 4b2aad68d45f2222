package handlers

import (
	"net/http"

	"local_delivery/internal/auth"
	"local_delivery/internal/services"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderService services.OrderService
}

func NewOrderHandler(orderService services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req services.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Missing required order information")
		return
	}

	order, err := h.orderService.Place(c.Request.Context(), auth.ActorFrom(c), req)
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

func (h *OrderHandler) GetMyOrders(c *gin.Context) {
	orders, err := h.orderService.ListForUser(c.Request.Context(), auth.ActorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}

func (h *OrderHandler) GetRestaurantOrders(c *gin.Context) {
	restaurantID, ok := paramID(c, "id")
	if !ok {
		return
	}

	orders, err := h.orderService.ListForRestaurant(c.Request.Context(), auth.ActorFrom(c), restaurantID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.Get(c.Request.Context(), auth.ActorFrom(c), orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

func (h *OrderHandler) GetOrderHistory(c *gin.Context) {
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}

	history, err := h.orderService.History(c.Request.Context(), auth.ActorFrom(c), orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "history": history})
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Status is required")
		return
	}

	order, err := h.orderService.AdvanceStatus(c.Request.Context(), auth.ActorFrom(c), orderID, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order status updated to " + string(order.Status),
		"order":   order,
	})
}

func (h *OrderHandler) CancelOrder(c *gin.Context) {
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.CancelByUser(c.Request.Context(), auth.ActorFrom(c), orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order cancelled successfully",
		"order":   order,
	})
}

func (h *OrderHandler) RestaurantCancelOrder(c *gin.Context) {
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}

	// The body is optional; a missing reason falls back to the default.
	var req services.RestaurantCancelRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request format")
			return
		}
	}

	order, err := h.orderService.CancelByRestaurant(c.Request.Context(), auth.ActorFrom(c), orderID, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order cancelled by restaurant",
		"order":   order,
	})
}
