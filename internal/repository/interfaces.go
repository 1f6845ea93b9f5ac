package repository

import (
	"context"

	"github.com/lessonforge/lessonforge-api/internal/models"
)

// UserRepository defines user account persistence
type UserRepository interface {
	// Create inserts a new user; returns a conflict error when the email
	// is already registered
	Create(ctx context.Context, user *models.User) error

	// GetByEmail fetches a user by exact email
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID fetches a user by ID
	GetByID(ctx context.Context, id string) (*models.User, error)

	// UpdateAPIKey stores a validated Gemini API key on the user
	UpdateAPIKey(ctx context.Context, id, apiKey string) error
}

// ExtractionRepository persists curriculum extraction results
type ExtractionRepository interface {
	Create(ctx context.Context, extraction *models.CurriculumExtraction) error
}

// LessonPlanRepository persists generated lesson plans
type LessonPlanRepository interface {
	Create(ctx context.Context, plan *models.LessonPlan) error
	GetByID(ctx context.Context, id string) (*models.LessonPlan, error)
}

// StatusCheckRepository persists client status pings
type StatusCheckRepository interface {
	Create(ctx context.Context, check *models.StatusCheck) error
	List(ctx context.Context, limit int) ([]*models.StatusCheck, error)
}

// Compile-time interface checks
var (
	_ UserRepository        = (*PostgresUserRepository)(nil)
	_ ExtractionRepository  = (*PostgresExtractionRepository)(nil)
	_ LessonPlanRepository  = (*PostgresLessonPlanRepository)(nil)
	_ StatusCheckRepository = (*PostgresStatusCheckRepository)(nil)
)
