package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lessonforge/lessonforge-api/internal/models"
	"github.com/lessonforge/lessonforge-api/internal/services"
)

// StatusHandler handles client status check pings
type StatusHandler struct {
	service services.StatusServiceInterface
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(service services.StatusServiceInterface) *StatusHandler {
	return &StatusHandler{service: service}
}

// Create handles POST /api/status
func (h *StatusHandler) Create(c *gin.Context) {
	var req models.StatusCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	check, err := h.service.CreateStatusCheck(c.Request.Context(), req.ClientName)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to create status check", err)
		return
	}

	c.JSON(http.StatusOK, check)
}

// List handles GET /api/status
func (h *StatusHandler) List(c *gin.Context) {
	checks, err := h.service.ListStatusChecks(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch status checks", err)
		return
	}

	c.JSON(http.StatusOK, checks)
}
