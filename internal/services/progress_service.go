package services

import (
	"context"
	"errors"
	"strings"

	"github.com/lessonforge/backend/internal/apperr"
	"github.com/lessonforge/backend/internal/models"
	"github.com/lessonforge/backend/internal/repositories"
	"go.uber.org/zap"
)

// LessonProgressRepository is the interface that wraps lesson completion access.
type LessonProgressRepository interface {
	// Method GetByID retrieves a lesson.
	//
	// Returns repositories.ErrNotFound if the lesson does not exist.
	GetByID(ctx context.Context, id string) (*models.Lesson, error)
	// Method SetCompleted sets the completion flag of a lesson.
	SetCompleted(ctx context.Context, id string, completed bool) error
}

type progressService struct {
	repo   LessonProgressRepository
	logger *zap.Logger
}

// NewProgressService creates a new progress tracking service
func NewProgressService(repo LessonProgressRepository, logger *zap.Logger) *progressService {
	return &progressService{
		repo:   repo,
		logger: logger,
	}
}

// ToggleCompletion sets the completion flag to explicit when given, otherwise flips it.
// Returns the new value.
func (s *progressService) ToggleCompletion(ctx context.Context, lessonID string, explicit *bool) (bool, error) {
	lessonID = strings.TrimSpace(lessonID)
	if lessonID == "" {
		return false, apperr.Validation("lesson id is required")
	}

	lesson, err := s.repo.GetByID(ctx, lessonID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return false, apperr.NotFound("lesson not found")
		}
		s.logger.Error("failed to get lesson", zap.Error(err), zap.String("lesson_id", lessonID))
		return false, apperr.Persistence("failed to load lesson", err)
	}

	completed := !lesson.IsCompleted
	if explicit != nil {
		completed = *explicit
	}

	if err := s.repo.SetCompleted(ctx, lessonID, completed); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return false, apperr.NotFound("lesson not found")
		}
		s.logger.Error("failed to update lesson completion", zap.Error(err), zap.String("lesson_id", lessonID))
		return false, apperr.Persistence("failed to update lesson", err)
	}

	return completed, nil
}
