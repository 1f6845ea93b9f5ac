package services

import (
	"context"

	"github.com/lessonforge/lessonforge-api/internal/models"
)

// TextCompleter is the LLM gateway capability the services depend on.
// operation is a short label ("extract", "generate", "probe") used for
// metrics and logging.
type TextCompleter interface {
	Complete(ctx context.Context, operation, apiKey, prompt string) (string, error)
}

// AuthServiceInterface defines the interface for account and session operations
type AuthServiceInterface interface {
	Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	ValidateAPIKey(ctx context.Context, user *models.User, candidateKey string) error
}

// CurriculumServiceInterface defines the interface for curriculum extraction
type CurriculumServiceInterface interface {
	ExtractCurriculum(ctx context.Context, user *models.User, filename, documentText string) (*models.CurriculumExtraction, error)
}

// LessonPlanServiceInterface defines the interface for lesson plan generation and download
type LessonPlanServiceInterface interface {
	Generate(ctx context.Context, user *models.User, req *models.LessonPlanRequest) (*models.LessonPlan, error)
	Download(ctx context.Context, planID string) ([]byte, string, error)
}

// StatusServiceInterface defines the interface for status check operations
type StatusServiceInterface interface {
	CreateStatusCheck(ctx context.Context, clientName string) (*models.StatusCheck, error)
	ListStatusChecks(ctx context.Context) ([]*models.StatusCheck, error)
}

// Ensure services implement their interfaces
var _ AuthServiceInterface = (*AuthService)(nil)
var _ CurriculumServiceInterface = (*CurriculumService)(nil)
var _ LessonPlanServiceInterface = (*LessonPlanService)(nil)
var _ StatusServiceInterface = (*StatusService)(nil)
