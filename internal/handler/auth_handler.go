package handler

import (
	"errors"
	"net/http"

	"travel_booking/internal/model"
	"travel_booking/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	service service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(s service.AuthService) *AuthHandler {
	return &AuthHandler{service: s}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req model.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "Username, email, and password are required")
		return
	}

	_, err := h.service.Signup(c.Request.Context(), req)
	if err != nil {
		var vErr *model.ValidationError
		switch {
		case errors.As(err, &vErr):
			respondError(c, http.StatusBadRequest, vErr.Message)
		case errors.Is(err, service.ErrEmailTaken):
			respondError(c, http.StatusConflict, "This email is already registered.")
		default:
			respondInternal(c, err, "Error creating user")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "Email and password are required")
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		var vErr *model.ValidationError
		switch {
		case errors.As(err, &vErr):
			respondError(c, http.StatusBadRequest, vErr.Message)
		case errors.Is(err, service.ErrUserNotFound):
			respondError(c, http.StatusNotFound, "User not found")
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, http.StatusUnauthorized, "Invalid credentials")
		default:
			respondInternal(c, err, "Error logging in")
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}
