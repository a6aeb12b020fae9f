package kyc

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/John-Akins/jago-backend/internal/auth"
	"github.com/John-Akins/jago-backend/internal/user"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// @Summary      Submit KYC details for verification
// @Tags         kyc
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      201 {object} Record
// @Failure      400 {object} api.ErrorResponse
// @Router       /kyc [post]
func (h *Handler) Submit(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bvn and a valid identificationType are required"})
		return
	}

	rec, err := h.service.Submit(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidBVN), errors.Is(err, ErrKycExists):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, user.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit kyc"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "KYC verified successfully",
		"kyc":     rec,
	})
}

// @Summary      Fetch the caller's KYC record
// @Tags         kyc
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} Record
// @Failure      404 {object} api.ErrorResponse
// @Router       /kyc [get]
func (h *Handler) Get(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	rec, err := h.service.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrKycNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": ErrKycNotFound.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load kyc record"})
		return
	}

	c.JSON(http.StatusOK, rec)
}
