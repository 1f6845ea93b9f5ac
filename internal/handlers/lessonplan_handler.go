package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lessonforge/lessonforge-api/internal/middleware"
	"github.com/lessonforge/lessonforge-api/internal/models"
	"github.com/lessonforge/lessonforge-api/internal/services"
	errs "github.com/lessonforge/lessonforge-api/pkg/errors"
	"github.com/lessonforge/lessonforge-api/pkg/gemini"
)

// LessonPlanHandler handles lesson plan generation and PDF download
type LessonPlanHandler struct {
	service services.LessonPlanServiceInterface
}

// NewLessonPlanHandler creates a new lesson plan handler
func NewLessonPlanHandler(service services.LessonPlanServiceInterface) *LessonPlanHandler {
	return &LessonPlanHandler{service: service}
}

// Generate handles POST /api/generate-lesson-plan
func (h *LessonPlanHandler) Generate(c *gin.Context) {
	user, err := middleware.GetAuthUser(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Not authenticated", err)
		return
	}

	var req models.LessonPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	plan, err := h.service.Generate(c.Request.Context(), user, &req)
	if err != nil {
		switch {
		case errors.Is(err, gemini.ErrNoAPIKey):
			respondError(c, http.StatusInternalServerError, "LLM API key not configured", err)
		case errors.Is(err, services.ErrGenerationFailed):
			respondError(c, http.StatusInternalServerError, err.Error(), err)
		default:
			respondError(c, http.StatusInternalServerError, fmt.Sprintf("Failed to generate lesson plan: %v", err), err)
		}
		return
	}

	c.JSON(http.StatusOK, plan)
}

// Download handles GET /api/download-lesson-plan/:plan_id
func (h *LessonPlanHandler) Download(c *gin.Context) {
	planID := c.Param("plan_id")

	pdf, filename, err := h.service.Download(c.Request.Context(), planID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Lesson plan not found", err)
			return
		}
		respondError(c, http.StatusInternalServerError, fmt.Sprintf("Failed to generate PDF: %v", err), err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
