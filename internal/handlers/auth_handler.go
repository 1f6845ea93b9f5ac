package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lessonforge/lessonforge-api/internal/middleware"
	"github.com/lessonforge/lessonforge-api/internal/models"
	"github.com/lessonforge/lessonforge-api/internal/services"
)

// AuthHandler handles account registration, login and API key management
type AuthHandler struct {
	service services.AuthServiceInterface
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service services.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{service: service}
}

// Signup handles POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	resp, err := h.service.Signup(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			respondError(c, http.StatusBadRequest, "Email already registered", err)
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to create account", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "Invalid email or password", err)
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to log in", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Profile handles GET /api/auth/profile
func (h *AuthHandler) Profile(c *gin.Context) {
	user, err := middleware.GetAuthUser(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Not authenticated", err)
		return
	}

	c.JSON(http.StatusOK, user.Profile())
}

// ValidateAPIKey handles POST /api/auth/validate-api-key
func (h *AuthHandler) ValidateAPIKey(c *gin.Context) {
	user, err := middleware.GetAuthUser(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Not authenticated", err)
		return
	}

	var req models.APIKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	if err := h.service.ValidateAPIKey(c.Request.Context(), user, req.APIKey); err != nil {
		if errors.Is(err, services.ErrAPIKeyRejected) {
			respondError(c, http.StatusBadRequest, "Invalid API key or failed to connect to Gemini API", err)
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to save API key", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "API key validated and saved successfully",
	})
}
