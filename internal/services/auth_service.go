package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/lessonforge/lessonforge-api/config"
	"github.com/lessonforge/lessonforge-api/internal/models"
	"github.com/lessonforge/lessonforge-api/internal/repository"
	errs "github.com/lessonforge/lessonforge-api/pkg/errors"
	"github.com/lessonforge/lessonforge-api/pkg/jwt"
	"github.com/lessonforge/lessonforge-api/pkg/logger"
	"github.com/lessonforge/lessonforge-api/pkg/metrics"
)

// Sentinel texts double as response details, so they are sentence-cased.
var (
	ErrEmailTaken         = errors.New("Email already registered")
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrAPIKeyRejected     = errors.New("Invalid API key or failed to connect to Gemini API")
)

// apiKeyProbePrompt is the minimal completion used to verify a candidate
// Gemini key actually works before storing it.
const apiKeyProbePrompt = "Hello"

// AuthService handles account registration, credential login and per-user
// Gemini API key management.
type AuthService struct {
	userRepo     repository.UserRepository
	tokenManager *jwt.TokenManager
	llm          TextCompleter
	config       *config.Config
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, tokenManager *jwt.TokenManager, llm TextCompleter, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		tokenManager: tokenManager,
		llm:          llm,
		config:       cfg,
	}
}

// Signup registers a new account and returns a session token for it.
func (s *AuthService) Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		metrics.Signups.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Institution:  req.Institution,
		Department:   req.Department,
		Newsletter:   req.Newsletter,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, errs.ErrConflict) {
			metrics.Signups.WithLabelValues("duplicate_email").Inc()
			return nil, ErrEmailTaken
		}
		metrics.Signups.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokenManager.GenerateToken(user.ID, user.Email)
	if err != nil {
		metrics.Signups.WithLabelValues("error").Inc()
		logger.Error("Failed to generate session token after signup",
			zap.String("user_id", user.ID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to generate session: %w", err)
	}

	metrics.Signups.WithLabelValues("success").Inc()
	logger.Info("User registered", zap.String("user_id", user.ID))

	return &models.AuthResponse{
		Success: true,
		Token:   token,
		User:    user.Profile(),
	}, nil
}

// Login verifies credentials and returns a session token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			metrics.Logins.WithLabelValues("unknown_email").Inc()
			return nil, ErrInvalidCredentials
		}
		metrics.Logins.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		metrics.Logins.WithLabelValues("wrong_password").Inc()
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokenManager.GenerateToken(user.ID, user.Email)
	if err != nil {
		metrics.Logins.WithLabelValues("error").Inc()
		logger.Error("Failed to generate session token",
			zap.String("user_id", user.ID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to generate session: %w", err)
	}

	metrics.Logins.WithLabelValues("success").Inc()
	logger.Info("User logged in", zap.String("user_id", user.ID))

	return &models.AuthResponse{
		Success: true,
		Token:   token,
		User:    user.Profile(),
	}, nil
}

// ValidateAPIKey probes the candidate key against the configured Gemini
// model and persists it on the user only when the probe succeeds. The
// previously stored key is untouched on failure.
func (s *AuthService) ValidateAPIKey(ctx context.Context, user *models.User, candidateKey string) error {
	if _, err := s.llm.Complete(ctx, "probe", candidateKey, apiKeyProbePrompt); err != nil {
		metrics.APIKeyValidations.WithLabelValues("rejected").Inc()
		logger.Warn("API key probe failed",
			zap.String("user_id", user.ID),
			zap.Error(err))
		return ErrAPIKeyRejected
	}

	if err := s.userRepo.UpdateAPIKey(ctx, user.ID, candidateKey); err != nil {
		metrics.APIKeyValidations.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to store API key: %w", err)
	}

	metrics.APIKeyValidations.WithLabelValues("success").Inc()
	logger.Info("API key validated and saved", zap.String("user_id", user.ID))
	return nil
}
