package services_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/lessonforge/lessonforge-api/internal/models"
)

// MockUserRepository is a mock implementation of repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateAPIKey(ctx context.Context, id, apiKey string) error {
	args := m.Called(ctx, id, apiKey)
	return args.Error(0)
}

// MockExtractionRepository is a mock implementation of repository.ExtractionRepository
type MockExtractionRepository struct {
	mock.Mock
}

func (m *MockExtractionRepository) Create(ctx context.Context, extraction *models.CurriculumExtraction) error {
	args := m.Called(ctx, extraction)
	return args.Error(0)
}

// MockLessonPlanRepository is a mock implementation of repository.LessonPlanRepository
type MockLessonPlanRepository struct {
	mock.Mock
}

func (m *MockLessonPlanRepository) Create(ctx context.Context, plan *models.LessonPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockLessonPlanRepository) GetByID(ctx context.Context, id string) (*models.LessonPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LessonPlan), args.Error(1)
}

// MockStatusCheckRepository is a mock implementation of repository.StatusCheckRepository
type MockStatusCheckRepository struct {
	mock.Mock
}

func (m *MockStatusCheckRepository) Create(ctx context.Context, check *models.StatusCheck) error {
	args := m.Called(ctx, check)
	return args.Error(0)
}

func (m *MockStatusCheckRepository) List(ctx context.Context, limit int) ([]*models.StatusCheck, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.StatusCheck), args.Error(1)
}

// MockTextCompleter is a mock implementation of services.TextCompleter
type MockTextCompleter struct {
	mock.Mock
}

func (m *MockTextCompleter) Complete(ctx context.Context, operation, apiKey, prompt string) (string, error) {
	args := m.Called(ctx, operation, apiKey, prompt)
	return args.String(0), args.Error(1)
}
