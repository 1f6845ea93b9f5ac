package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"github.com/lessonforge/lessonforge-api/config"
	"github.com/lessonforge/lessonforge-api/internal/cache"
	"github.com/lessonforge/lessonforge-api/internal/models"
	"github.com/lessonforge/lessonforge-api/internal/render"
	"github.com/lessonforge/lessonforge-api/internal/repository"
	errs "github.com/lessonforge/lessonforge-api/pkg/errors"
	"github.com/lessonforge/lessonforge-api/pkg/logger"
	"github.com/lessonforge/lessonforge-api/pkg/metrics"
)

var ErrGenerationFailed = errors.New("Failed to generate lesson plan")

// LessonPlanService generates lesson plans via the LLM gateway and renders
// stored plans to downloadable PDFs.
type LessonPlanService struct {
	planRepo    repository.LessonPlanRepository
	llm         TextCompleter
	renderCache *cache.RenderCache
	config      *config.Config
}

// NewLessonPlanService creates a new LessonPlanService
func NewLessonPlanService(planRepo repository.LessonPlanRepository, llm TextCompleter, renderCache *cache.RenderCache, cfg *config.Config) *LessonPlanService {
	return &LessonPlanService{
		planRepo:    planRepo,
		llm:         llm,
		renderCache: renderCache,
		config:      cfg,
	}
}

// Generate prompts the model with the validated request and persists the
// returned plan text verbatim.
func (s *LessonPlanService) Generate(ctx context.Context, user *models.User, req *models.LessonPlanRequest) (*models.LessonPlan, error) {
	prompt := BuildGenerationPrompt(req)

	content, err := s.llm.Complete(ctx, "generate", resolveAPIKey(user, s.config.LLM.APIKey), prompt)
	if err != nil {
		metrics.LessonPlansGenerated.WithLabelValues("llm_error").Inc()
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	plan := &models.LessonPlan{
		ID:          uuid.NewString(),
		RequestData: *req,
		Content:     content,
		GeneratedAt: time.Now().UTC(),
	}

	if err := s.planRepo.Create(ctx, plan); err != nil {
		metrics.LessonPlansGenerated.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to save lesson plan: %w", err)
	}

	metrics.LessonPlansGenerated.WithLabelValues("success").Inc()
	logger.Info("Lesson plan generated",
		zap.String("plan_id", plan.ID),
		zap.String("user_id", user.ID),
		zap.String("lecture_topic", req.LectureTopic),
		zap.Int("content_chars", len(content)))

	return plan, nil
}

// Download renders the stored plan to PDF bytes and a download filename.
// Rendering is deterministic, so cached bytes are byte-identical to a fresh
// render of the same plan.
func (s *LessonPlanService) Download(ctx context.Context, planID string) ([]byte, string, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			metrics.LessonPlanDownloads.WithLabelValues("not_found").Inc()
		} else {
			metrics.LessonPlanDownloads.WithLabelValues("error").Inc()
		}
		return nil, "", err
	}
	filename := downloadFilename(plan)

	if pdf, ok := s.renderCache.Get(plan.ID); ok {
		metrics.LessonPlanDownloads.WithLabelValues("success").Inc()
		return pdf, filename, nil
	}

	pdf, err := render.LessonPlanPDF(plan)
	if err != nil {
		metrics.LessonPlanDownloads.WithLabelValues("error").Inc()
		logger.Error("Failed to render lesson plan PDF",
			zap.String("plan_id", plan.ID),
			zap.Error(err))
		return nil, "", fmt.Errorf("failed to render PDF: %w", err)
	}
	s.renderCache.Set(plan.ID, pdf)

	metrics.LessonPlanDownloads.WithLabelValues("success").Inc()
	logger.Info("Lesson plan rendered",
		zap.String("plan_id", plan.ID),
		zap.Int("pdf_bytes", len(pdf)))

	return pdf, filename, nil
}

// downloadFilename builds lesson_plan_<subject-slug>_<id-prefix>.pdf.
func downloadFilename(plan *models.LessonPlan) string {
	idPrefix := plan.ID
	if len(idPrefix) > 8 {
		idPrefix = idPrefix[:8]
	}
	return fmt.Sprintf("lesson_plan_%s_%s.pdf", slug.Make(plan.RequestData.SubjectName), idPrefix)
}
