package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lessonforge/lessonforge-api/config"
	"github.com/lessonforge/lessonforge-api/internal/models"
	"github.com/lessonforge/lessonforge-api/internal/repository"
	"github.com/lessonforge/lessonforge-api/pkg/logger"
	"github.com/lessonforge/lessonforge-api/pkg/metrics"
)

var (
	ErrExtractionFailed = errors.New("Failed to process PDF")
	ErrResponseParse    = errors.New("Failed to parse LLM response")
	ErrEmptyExtraction  = errors.New("Could not extract meaningful data from PDF")
)

// CurriculumService turns extracted subject-outline text into structured
// curriculum data via the LLM gateway.
type CurriculumService struct {
	extractionRepo repository.ExtractionRepository
	llm            TextCompleter
	config         *config.Config
}

// NewCurriculumService creates a new CurriculumService
func NewCurriculumService(extractionRepo repository.ExtractionRepository, llm TextCompleter, cfg *config.Config) *CurriculumService {
	return &CurriculumService{
		extractionRepo: extractionRepo,
		llm:            llm,
		config:         cfg,
	}
}

// ExtractCurriculum prompts the model with the document text and parses its
// JSON reply into a persisted CurriculumExtraction. The user's stored API
// key takes precedence over the platform key.
func (s *CurriculumService) ExtractCurriculum(ctx context.Context, user *models.User, filename, documentText string) (*models.CurriculumExtraction, error) {
	prompt := BuildExtractionPrompt(documentText)

	raw, err := s.llm.Complete(ctx, "extract", resolveAPIKey(user, s.config.LLM.APIKey), prompt)
	if err != nil {
		metrics.PDFUploads.WithLabelValues("llm_error").Inc()
		return nil, fmt.Errorf("%w: %w", ErrExtractionFailed, err)
	}

	var parsed struct {
		SubjectNames        []string        `json:"subject_names"`
		LectureTopics       []string        `json:"lecture_topics"`
		LectureFocusMapping json.RawMessage `json:"lecture_focus_mapping"`
	}
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &parsed); err != nil {
		metrics.PDFUploads.WithLabelValues("parse_error").Inc()
		logger.Warn("LLM returned unparseable extraction JSON",
			zap.String("filename", filename),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrResponseParse, err)
	}

	if len(parsed.SubjectNames) == 0 && len(parsed.LectureTopics) == 0 {
		metrics.PDFUploads.WithLabelValues("empty").Inc()
		return nil, ErrEmptyExtraction
	}

	extraction := &models.CurriculumExtraction{
		ID:                  uuid.NewString(),
		Filename:            filename,
		SubjectNames:        parsed.SubjectNames,
		LectureTopics:       parsed.LectureTopics,
		LectureFocusMapping: decodeFocusMapping(parsed.LectureFocusMapping, parsed.LectureTopics),
		ExtractedAt:         time.Now().UTC(),
	}
	extraction.Normalize()

	if err := s.extractionRepo.Create(ctx, extraction); err != nil {
		metrics.PDFUploads.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to save extraction: %w", err)
	}

	metrics.PDFUploads.WithLabelValues("success").Inc()
	logger.Info("Curriculum extracted",
		zap.String("extraction_id", extraction.ID),
		zap.String("user_id", user.ID),
		zap.String("filename", filename),
		zap.Int("subjects", len(extraction.SubjectNames)),
		zap.Int("topics", len(extraction.LectureTopics)))

	return extraction, nil
}

// decodeFocusMapping decodes the mapping field leniently: anything that is
// not an object of string lists degrades to an empty mapping instead of
// failing the extraction. Keys for unknown lecture topics are dropped so the
// mapping always stays a subset of the topic list.
func decodeFocusMapping(raw json.RawMessage, topics []string) map[string][]string {
	mapping := make(map[string][]string)
	if len(raw) == 0 {
		return mapping
	}

	var decoded map[string][]string
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return mapping
	}

	known := make(map[string]bool, len(topics))
	for _, topic := range topics {
		known[topic] = true
	}
	for topic, focuses := range decoded {
		if !known[topic] {
			continue
		}
		if focuses == nil {
			focuses = []string{}
		}
		mapping[topic] = focuses
	}
	return mapping
}

// stripCodeFences removes Markdown code-fence markers the model sometimes
// wraps its JSON reply in. All fence occurrences are removed, not just the
// outer pair.
func stripCodeFences(s string) string {
	text := strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(text, "```json"):
		text = strings.ReplaceAll(text, "```json", "")
		text = strings.ReplaceAll(text, "```", "")
	case strings.HasPrefix(text, "```"):
		text = strings.ReplaceAll(text, "```", "")
	}
	return strings.TrimSpace(text)
}

// resolveAPIKey prefers the user's own Gemini key over the platform key.
func resolveAPIKey(user *models.User, platformKey string) string {
	if user != nil && user.APIKey != "" {
		return user.APIKey
	}
	return platformKey
}
