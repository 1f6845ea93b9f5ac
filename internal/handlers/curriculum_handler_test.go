package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lessonforge/lessonforge-api/internal/models"
	"github.com/lessonforge/lessonforge-api/internal/services"
)

func uploadRouter(service *MockCurriculumService) *gin.Engine {
	handler := NewCurriculumHandler(service)
	router := gin.New()
	router.POST("/api/upload-pdf", withAuthUser(testUser()), handler.UploadPDF)
	return router
}

// buildOutlinePDF produces a small subject-outline PDF with the given lines.
func buildOutlinePDF(t *testing.T, lines ...string) []byte {
	t.Helper()

	doc := fpdf.New("P", "pt", "Letter", "")
	doc.AddPage()
	doc.SetFont("Helvetica", "", 12)
	for _, line := range lines {
		doc.CellFormat(0, 16, line, "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))
	return buf.Bytes()
}

// performUpload posts content as a multipart file named filename.
func performUpload(t *testing.T, router *gin.Engine, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/upload-pdf", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	router.ServeHTTP(w, req)
	return w
}

func TestCurriculumHandler_UploadPDF(t *testing.T) {
	service := new(MockCurriculumService)
	router := uploadRouter(service)

	extraction := &models.CurriculumExtraction{
		ID:                  "e1",
		Filename:            "outline.pdf",
		SubjectNames:        []string{"Biology 101"},
		LectureTopics:       []string{"Cells"},
		LectureFocusMapping: map[string][]string{"Cells": {"Mitosis"}},
		ExtractedAt:         time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
	}

	// The handler extracts the PDF text itself; the service receives the
	// plain text, not the bytes.
	service.On("ExtractCurriculum",
		mock.Anything,
		mock.MatchedBy(func(user *models.User) bool { return user.ID == testUser().ID }),
		"outline.pdf",
		mock.MatchedBy(func(text string) bool { return strings.Contains(text, "Week 1: Cells") }),
	).Return(extraction, nil).Once()

	pdf := buildOutlinePDF(t, "BIOL1001 Subject Outline", "Week 1: Cells")
	w := performUpload(t, router, "outline.pdf", pdf)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Biology 101")
	assert.Contains(t, w.Body.String(), `"lecture_focus_mapping":{"Cells":["Mitosis"]}`)
	service.AssertExpectations(t)
}

func TestCurriculumHandler_UploadPDF_WrongExtension(t *testing.T) {
	service := new(MockCurriculumService)
	router := uploadRouter(service)

	w := performUpload(t, router, "outline.txt", []byte("plain text"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"detail": "File must be a PDF"}`, w.Body.String())
	service.AssertNotCalled(t, "ExtractCurriculum")
}

func TestCurriculumHandler_UploadPDF_UppercaseExtension(t *testing.T) {
	service := new(MockCurriculumService)
	router := uploadRouter(service)

	extraction := &models.CurriculumExtraction{ID: "e1", Filename: "OUTLINE.PDF"}
	service.On("ExtractCurriculum", mock.Anything, mock.Anything, "OUTLINE.PDF", mock.Anything).
		Return(extraction, nil).Once()

	pdf := buildOutlinePDF(t, "Week 1: Cells")
	w := performUpload(t, router, "OUTLINE.PDF", pdf)

	assert.Equal(t, http.StatusOK, w.Code)
	service.AssertExpectations(t)
}

func TestCurriculumHandler_UploadPDF_MissingFile(t *testing.T) {
	service := new(MockCurriculumService)
	router := uploadRouter(service)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/upload-pdf", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"detail": "No file uploaded"}`, w.Body.String())
	service.AssertNotCalled(t, "ExtractCurriculum")
}

func TestCurriculumHandler_UploadPDF_CorruptedPDF(t *testing.T) {
	service := new(MockCurriculumService)
	router := uploadRouter(service)

	w := performUpload(t, router, "broken.pdf", []byte("not actually pdf bytes"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Unable to process this PDF format")
	service.AssertNotCalled(t, "ExtractCurriculum")
}

func TestCurriculumHandler_UploadPDF_EmptyExtraction(t *testing.T) {
	service := new(MockCurriculumService)
	router := uploadRouter(service)

	service.On("ExtractCurriculum", mock.Anything, mock.Anything, "outline.pdf", mock.Anything).
		Return(nil, services.ErrEmptyExtraction).Once()

	pdf := buildOutlinePDF(t, "blank-ish outline")
	w := performUpload(t, router, "outline.pdf", pdf)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"detail": "Could not extract meaningful data from PDF"}`, w.Body.String())
}

func TestCurriculumHandler_UploadPDF_NoSession(t *testing.T) {
	handler := NewCurriculumHandler(new(MockCurriculumService))
	router := gin.New()
	router.POST("/api/upload-pdf", handler.UploadPDF)

	pdf := buildOutlinePDF(t, "Week 1: Cells")
	w := performUpload(t, router, "outline.pdf", pdf)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"detail": "Not authenticated"}`, w.Body.String())
}
