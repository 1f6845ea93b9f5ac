package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lessonforge/lessonforge-api/internal/models"
)

// MetaHandler serves the API greeting and the lesson plan option sets
type MetaHandler struct{}

// NewMetaHandler creates a new meta handler
func NewMetaHandler() *MetaHandler {
	return &MetaHandler{}
}

// Root handles GET /api/
func (h *MetaHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "LLM Lesson Plan Builder API"})
}

// Options handles GET /api/options
func (h *MetaHandler) Options(c *gin.Context) {
	c.JSON(http.StatusOK, models.DefaultLessonPlanOptions())
}
