package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/lessonforge/lessonforge-api/internal/models"
)

// MockAuthService is a mock implementation of services.AuthServiceInterface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthResponse), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthResponse), args.Error(1)
}

func (m *MockAuthService) ValidateAPIKey(ctx context.Context, user *models.User, candidateKey string) error {
	args := m.Called(ctx, user, candidateKey)
	return args.Error(0)
}

// MockCurriculumService is a mock implementation of services.CurriculumServiceInterface
type MockCurriculumService struct {
	mock.Mock
}

func (m *MockCurriculumService) ExtractCurriculum(ctx context.Context, user *models.User, filename, documentText string) (*models.CurriculumExtraction, error) {
	args := m.Called(ctx, user, filename, documentText)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CurriculumExtraction), args.Error(1)
}

// MockLessonPlanService is a mock implementation of services.LessonPlanServiceInterface
type MockLessonPlanService struct {
	mock.Mock
}

func (m *MockLessonPlanService) Generate(ctx context.Context, user *models.User, req *models.LessonPlanRequest) (*models.LessonPlan, error) {
	args := m.Called(ctx, user, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LessonPlan), args.Error(1)
}

func (m *MockLessonPlanService) Download(ctx context.Context, planID string) ([]byte, string, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

// MockStatusService is a mock implementation of services.StatusServiceInterface
type MockStatusService struct {
	mock.Mock
}

func (m *MockStatusService) CreateStatusCheck(ctx context.Context, clientName string) (*models.StatusCheck, error) {
	args := m.Called(ctx, clientName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StatusCheck), args.Error(1)
}

func (m *MockStatusService) ListStatusChecks(ctx context.Context) ([]*models.StatusCheck, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.StatusCheck), args.Error(1)
}
