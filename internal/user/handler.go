package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/John-Akins/jago-backend/internal/auth"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      201 {object} gin.H
// @Failure      400 {object} api.ErrorResponse
// @Router       /auth/signup [post]
func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email, name and a password of at least 8 characters are required"})
		return
	}

	u, err := h.service.Signup(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": ErrEmailExists.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"userId":  u.ID,
	})
}

// @Summary      Sign in and receive a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      200 {object} gin.H
// @Failure      401 {object} api.ErrorResponse
// @Router       /auth/signin [post]
func (h *Handler) Signin(c *gin.Context) {
	var req SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	u, token, err := h.service.Signin(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": ErrInvalidCredentials.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign in"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User signed in successfully",
		"userId":  u.ID,
		"email":   u.Email,
		"token":   token,
	})
}

// @Summary      Current user profile
// @Tags         auth
// @Produce      json
// @Success      200 {object} User
// @Router       /me [get]
func (h *Handler) Me(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	u, err := h.service.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": ErrUserNotFound.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user"})
		return
	}

	c.JSON(http.StatusOK, u)
}
