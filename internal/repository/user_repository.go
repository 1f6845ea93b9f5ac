package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/lessonforge/lessonforge-api/internal/models"
	errs "github.com/lessonforge/lessonforge-api/pkg/errors"
	"github.com/lessonforge/lessonforge-api/pkg/logger"
	"github.com/lessonforge/lessonforge-api/pkg/metrics"
)

const userColumns = `id, first_name, last_name, email, institution, department, newsletter, password_hash, api_key, created_at`

// PostgresUserRepository handles user persistence in PostgreSQL
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{
		pool: pool,
	}
}

// Create inserts a new user. A unique-constraint violation on email is
// surfaced as a conflict error.
func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) error {
	start := time.Now()
	operation := "create_user"

	query := `
		INSERT INTO users (id, first_name, last_name, email, institution, department, newsletter, password_hash, api_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		user.ID, user.FirstName, user.LastName, user.Email,
		user.Institution, user.Department, user.Newsletter,
		user.PasswordHash, user.APIKey, user.CreatedAt,
	)
	duration := metrics.MeasureDuration(start)
	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return errs.ConflictError("email already registered")
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration)
	return nil
}

// GetByEmail fetches a user by exact email match
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.getUser(ctx, "get_user_by_email", query, email)
}

// GetByID fetches a user by ID
func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	// Reject malformed IDs before they reach the uuid column.
	if uuid.Validate(id) != nil {
		return nil, errs.NotFoundError("user")
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.getUser(ctx, "get_user_by_id", query, id)
}

// UpdateAPIKey stores a validated Gemini API key on the user record
func (r *PostgresUserRepository) UpdateAPIKey(ctx context.Context, id, apiKey string) error {
	start := time.Now()
	operation := "update_user_api_key"

	if uuid.Validate(id) != nil {
		return errs.NotFoundError("user")
	}

	query := `UPDATE users SET api_key = $2 WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id, apiKey)
	duration := metrics.MeasureDuration(start)
	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return fmt.Errorf("failed to update api key: %w", err)
	}
	if tag.RowsAffected() == 0 {
		recordMetrics(operation, "not_found", duration)
		logger.LogAPICall("postgres", operation, "not_found", duration)
		return errs.NotFoundError("user")
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration)
	return nil
}

func (r *PostgresUserRepository) getUser(ctx context.Context, operation, query string, arg any) (*models.User, error) {
	start := time.Now()

	var user models.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID, &user.FirstName, &user.LastName, &user.Email,
		&user.Institution, &user.Department, &user.Newsletter,
		&user.PasswordHash, &user.APIKey, &user.CreatedAt,
	)
	duration := metrics.MeasureDuration(start)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			recordMetrics(operation, "not_found", duration)
			logger.LogAPICall("postgres", operation, "not_found", duration)
			return nil, errs.NotFoundError("user")
		}
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration)
	return &user, nil
}
