package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vastraverse/storefront-api/internal/dto"
	"github.com/vastraverse/storefront-api/internal/middleware"
	"github.com/vastraverse/storefront-api/internal/service"
)

type AuthHandler struct {
	svc *service.AuthService
	log *slog.Logger
}

func NewAuthHandler(svc *service.AuthService, log *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: log}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	user, token, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			respondError(c, http.StatusConflict, "User with this email already exists")
			return
		}
		respondInternal(c, h.log, err, "Internal server error during registration")
		return
	}

	respondOK(c, http.StatusCreated, "User registered successfully", dto.AuthResponse{
		User:  toUserResponse(user),
		Token: token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	user, token, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		respondInternal(c, h.log, err, "Internal server error during login")
		return
	}

	respondOK(c, http.StatusOK, "Login successful", dto.AuthResponse{
		User:  toUserResponse(user),
		Token: token,
	})
}

// Logout is stateless; clients drop the token themselves.
func (h *AuthHandler) Logout(c *gin.Context) {
	respondOK(c, http.StatusOK, "Logout successful. Please remove token from client storage.", nil)
}

func (h *AuthHandler) Profile(c *gin.Context) {
	user, err := h.svc.Profile(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}
		respondInternal(c, h.log, err, "Internal server error while fetching profile")
		return
	}

	respondOK(c, http.StatusOK, "Profile retrieved successfully", gin.H{"user": toUserResponse(user)})
}
