package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/lessonforge/lessonforge-api/internal/models"
	"github.com/lessonforge/lessonforge-api/pkg/logger"
	"github.com/lessonforge/lessonforge-api/pkg/metrics"
)

// PostgresStatusCheckRepository persists client status pings
type PostgresStatusCheckRepository struct {
	pool *pgxpool.Pool
}

// NewStatusCheckRepository creates a new status check repository
func NewStatusCheckRepository(pool *pgxpool.Pool) *PostgresStatusCheckRepository {
	return &PostgresStatusCheckRepository{
		pool: pool,
	}
}

// Create stores a status ping
func (r *PostgresStatusCheckRepository) Create(ctx context.Context, check *models.StatusCheck) error {
	start := time.Now()
	operation := "create_status_check"

	query := `INSERT INTO status_checks (id, client_name, checked_at) VALUES ($1, $2, $3)`

	_, err := r.pool.Exec(ctx, query, check.ID, check.ClientName, check.Timestamp)
	duration := metrics.MeasureDuration(start)
	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return fmt.Errorf("failed to create status check: %w", err)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration)
	return nil
}

// List returns the most recent status pings, newest first
func (r *PostgresStatusCheckRepository) List(ctx context.Context, limit int) ([]*models.StatusCheck, error) {
	start := time.Now()
	operation := "list_status_checks"

	query := `SELECT id, client_name, checked_at FROM status_checks ORDER BY checked_at DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query status checks: %w", err)
	}
	defer rows.Close()

	checks := make([]*models.StatusCheck, 0)
	for rows.Next() {
		var check models.StatusCheck
		if err := rows.Scan(&check.ID, &check.ClientName, &check.Timestamp); err != nil {
			duration := metrics.MeasureDuration(start)
			recordMetrics(operation, "error", duration)
			logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
			return nil, fmt.Errorf("failed to scan status check row: %w", err)
		}
		checks = append(checks, &check)
	}

	if err := rows.Err(); err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("error iterating status check rows: %w", err)
	}

	duration := metrics.MeasureDuration(start)
	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration, zap.Int("count", len(checks)))

	return checks, nil
}
