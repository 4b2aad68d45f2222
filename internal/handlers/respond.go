package handlers

import (
	"log"
	"net/http"
	"strconv"

	"local_delivery/internal/services"

	"github.com/gin-gonic/gin"
)

var statusByKind = map[services.ErrorKind]int{
	services.KindUnauthenticated:   http.StatusUnauthorized,
	services.KindAccessDenied:      http.StatusForbidden,
	services.KindNotFound:          http.StatusNotFound,
	services.KindValidation:        http.StatusBadRequest,
	services.KindInvalidTransition: http.StatusBadRequest,
	services.KindStorage:           http.StatusInternalServerError,
}

// respondError writes a service error as {"error": message} with the
// status of its kind.
func respondError(c *gin.Context, err error) {
	kind := services.KindOf(err)
	if kind == services.KindStorage {
		log.Printf("Error handling %s %s: %v", c.Request.Method, c.FullPath(), err)
	}
	c.JSON(statusByKind[kind], gin.H{"error": services.MessageOf(err)})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}
