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

// PostgresExtractionRepository persists curriculum extraction results
type PostgresExtractionRepository struct {
	pool *pgxpool.Pool
}

// NewExtractionRepository creates a new extraction repository
func NewExtractionRepository(pool *pgxpool.Pool) *PostgresExtractionRepository {
	return &PostgresExtractionRepository{
		pool: pool,
	}
}

// Create stores an extraction result. The list and mapping fields land in
// jsonb columns; pgx marshals them directly.
func (r *PostgresExtractionRepository) Create(ctx context.Context, extraction *models.CurriculumExtraction) error {
	start := time.Now()
	operation := "create_extraction"

	extraction.Normalize()

	query := `
		INSERT INTO pdf_extractions (id, filename, subject_names, lecture_topics, lecture_focus_mapping, extracted_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		extraction.ID, extraction.Filename,
		extraction.SubjectNames, extraction.LectureTopics, extraction.LectureFocusMapping,
		extraction.ExtractedAt,
	)
	duration := metrics.MeasureDuration(start)
	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return fmt.Errorf("failed to create extraction: %w", err)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration,
		zap.Int("subjects", len(extraction.SubjectNames)),
		zap.Int("topics", len(extraction.LectureTopics)))
	return nil
}
