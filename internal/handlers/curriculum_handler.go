package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lessonforge/lessonforge-api/internal/middleware"
	"github.com/lessonforge/lessonforge-api/internal/services"
	"github.com/lessonforge/lessonforge-api/pkg/gemini"
	"github.com/lessonforge/lessonforge-api/pkg/metrics"
	"github.com/lessonforge/lessonforge-api/pkg/pdftext"
)

// CurriculumHandler handles subject outline uploads
type CurriculumHandler struct {
	service services.CurriculumServiceInterface
}

// NewCurriculumHandler creates a new curriculum handler
func NewCurriculumHandler(service services.CurriculumServiceInterface) *CurriculumHandler {
	return &CurriculumHandler{service: service}
}

// UploadPDF handles POST /api/upload-pdf
func (h *CurriculumHandler) UploadPDF(c *gin.Context) {
	user, err := middleware.GetAuthUser(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Not authenticated", err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		metrics.PDFUploads.WithLabelValues("invalid_file").Inc()
		respondError(c, http.StatusBadRequest, "No file uploaded", err)
		return
	}

	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".pdf") {
		metrics.PDFUploads.WithLabelValues("invalid_file").Inc()
		respondError(c, http.StatusBadRequest, "File must be a PDF", nil)
		return
	}

	// Buffer the upload in a temp file; removal is guaranteed even on
	// error paths.
	tmp, err := os.CreateTemp("", "lessonforge-upload-*.pdf")
	if err != nil {
		metrics.PDFUploads.WithLabelValues("error").Inc()
		respondError(c, http.StatusInternalServerError, fmt.Sprintf("Failed to process PDF: %v", err), err)
		return
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := c.SaveUploadedFile(fileHeader, tmpPath); err != nil {
		metrics.PDFUploads.WithLabelValues("error").Inc()
		respondError(c, http.StatusInternalServerError, fmt.Sprintf("Failed to process PDF: %v", err), err)
		return
	}

	text, err := pdftext.ExtractFile(tmpPath)
	if err != nil {
		switch {
		case errors.Is(err, pdftext.ErrNoReadableText):
			metrics.PDFUploads.WithLabelValues("unreadable").Inc()
			respondError(c, http.StatusBadRequest, "No readable text found in the PDF. Please ensure the PDF contains text content and is not a scanned image.", err)
		case errors.Is(err, pdftext.ErrUnsupportedFormat):
			metrics.PDFUploads.WithLabelValues("unreadable").Inc()
			respondError(c, http.StatusBadRequest, "Unable to process this PDF format. The file may be corrupted, password-protected, or use unsupported encoding.", err)
		default:
			metrics.PDFUploads.WithLabelValues("error").Inc()
			respondError(c, http.StatusInternalServerError, fmt.Sprintf("Failed to process PDF: %v", err), err)
		}
		return
	}

	extraction, err := h.service.ExtractCurriculum(c.Request.Context(), user, fileHeader.Filename, text)
	if err != nil {
		switch {
		case errors.Is(err, gemini.ErrNoAPIKey):
			respondError(c, http.StatusInternalServerError, "LLM API key not configured", err)
		case errors.Is(err, services.ErrEmptyExtraction):
			respondError(c, http.StatusBadRequest, err.Error(), err)
		case errors.Is(err, services.ErrResponseParse), errors.Is(err, services.ErrExtractionFailed):
			respondError(c, http.StatusInternalServerError, err.Error(), err)
		default:
			respondError(c, http.StatusInternalServerError, fmt.Sprintf("Failed to process PDF: %v", err), err)
		}
		return
	}

	c.JSON(http.StatusOK, extraction)
}
