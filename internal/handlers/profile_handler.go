package handlers

import (
	"net/http"

	"local_delivery/internal/auth"
	"local_delivery/internal/services"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	userService services.UserService
}

func NewProfileHandler(userService services.UserService) *ProfileHandler {
	return &ProfileHandler{userService: userService}
}

func (h *ProfileHandler) GetMe(c *gin.Context) {
	user, err := h.userService.Me(c.Request.Context(), auth.ActorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req services.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Location must have valid lat and lng")
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), auth.ActorFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated",
		"user":    user,
	})
}
