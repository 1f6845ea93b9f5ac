package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lessonforge/lessonforge-api/internal/models"
	"github.com/lessonforge/lessonforge-api/internal/repository"
)

// statusListLimit caps how many recent status checks a single list call
// returns.
const statusListLimit = 1000

// StatusService records and lists client status pings.
type StatusService struct {
	statusRepo repository.StatusCheckRepository
}

// NewStatusService creates a new StatusService
func NewStatusService(statusRepo repository.StatusCheckRepository) *StatusService {
	return &StatusService{statusRepo: statusRepo}
}

// CreateStatusCheck stores a ping from the named client.
func (s *StatusService) CreateStatusCheck(ctx context.Context, clientName string) (*models.StatusCheck, error) {
	check := &models.StatusCheck{
		ID:         uuid.NewString(),
		ClientName: clientName,
		Timestamp:  time.Now().UTC(),
	}

	if err := s.statusRepo.Create(ctx, check); err != nil {
		return nil, fmt.Errorf("failed to save status check: %w", err)
	}
	return check, nil
}

// ListStatusChecks returns the most recent status checks, newest first.
func (s *StatusService) ListStatusChecks(ctx context.Context) ([]*models.StatusCheck, error) {
	checks, err := s.statusRepo.List(ctx, statusListLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list status checks: %w", err)
	}
	return checks, nil
}
