package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mateus-ssouza/sevencc-bank/internal/cqrs"
	"github.com/mateus-ssouza/sevencc-bank/internal/middleware"
)

// Authenticator defines the token operations used by AuthHandler.
type Authenticator interface {
	Login(ctx context.Context, cmd cqrs.LoginCommand) (string, error)
	RefreshToken(ctx context.Context, cmd cqrs.RefreshTokenCommand) (string, error)
}

type AuthHandler struct {
	auth Authenticator
}

type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

type RefreshRequest struct {
	Token string `json:"token" validate:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

func NewAuthHandler(auth Authenticator) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	token, err := h.auth.Login(c.Request.Context(), cqrs.LoginCommand{
		Login:    req.Login,
		Password: req.Password,
	})
	if err != nil {
		middleware.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	c.JSON(http.StatusOK, TokenResponse{Token: token})
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	token, err := h.auth.RefreshToken(c.Request.Context(), cqrs.RefreshTokenCommand{Token: req.Token})
	if err != nil {
		middleware.RespondWithError(c, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	c.JSON(http.StatusOK, TokenResponse{Token: token})
}
