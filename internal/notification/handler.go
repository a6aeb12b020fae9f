package notification

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/John-Akins/jago-backend/internal/auth"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List returns the authenticated user's notifications, newest first.
func (h *Handler) List(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	records := h.service.ListByUser(userID)
	if records == nil {
		records = []Record{}
	}

	c.JSON(http.StatusOK, records)
}
