package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/lessonforge/lessonforge-api/internal/models"
	errs "github.com/lessonforge/lessonforge-api/pkg/errors"
	"github.com/lessonforge/lessonforge-api/pkg/logger"
	"github.com/lessonforge/lessonforge-api/pkg/metrics"
)

// PostgresLessonPlanRepository persists generated lesson plans
type PostgresLessonPlanRepository struct {
	pool *pgxpool.Pool
}

// NewLessonPlanRepository creates a new lesson plan repository
func NewLessonPlanRepository(pool *pgxpool.Pool) *PostgresLessonPlanRepository {
	return &PostgresLessonPlanRepository{
		pool: pool,
	}
}

// Create stores a lesson plan. The originating request is kept verbatim in
// a jsonb column so the rendered document can always be reproduced.
func (r *PostgresLessonPlanRepository) Create(ctx context.Context, plan *models.LessonPlan) error {
	start := time.Now()
	operation := "create_lesson_plan"

	query := `
		INSERT INTO lesson_plans (id, request_data, content, generated_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query,
		plan.ID, plan.RequestData, plan.Content, plan.GeneratedAt,
	)
	duration := metrics.MeasureDuration(start)
	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return fmt.Errorf("failed to create lesson plan: %w", err)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration,
		zap.String("plan_id", plan.ID))
	return nil
}

// GetByID fetches a lesson plan by ID
func (r *PostgresLessonPlanRepository) GetByID(ctx context.Context, id string) (*models.LessonPlan, error) {
	start := time.Now()
	operation := "get_lesson_plan"

	if uuid.Validate(id) != nil {
		return nil, errs.NotFoundError("lesson plan")
	}

	query := `SELECT id, request_data, content, generated_at FROM lesson_plans WHERE id = $1`

	var plan models.LessonPlan
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&plan.ID, &plan.RequestData, &plan.Content, &plan.GeneratedAt,
	)
	duration := metrics.MeasureDuration(start)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			recordMetrics(operation, "not_found", duration)
			logger.LogAPICall("postgres", operation, "not_found", duration, zap.String("plan_id", id))
			return nil, errs.NotFoundError("lesson plan")
		}
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to fetch lesson plan: %w", err)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration)
	return &plan, nil
}
