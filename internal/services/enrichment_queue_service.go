package services

import (
	"context"
	"errors"

	"github.com/lessonforge/backend/internal/apperr"
	"github.com/lessonforge/backend/internal/tasks"
	"go.uber.org/zap"
)

// EnrichmentEnqueuer is the interface that wraps scheduling of background enrichment.
type EnrichmentEnqueuer interface {
	// Method EnqueueEnrichLesson schedules enrichment of one lesson.
	//
	// Returns the task ID, or tasks.ErrAlreadyQueued if the lesson already has a pending task.
	EnqueueEnrichLesson(ctx context.Context, payload tasks.EnrichLessonPayload) (string, error)
}

// LessonExistenceRepository is the interface that wraps lesson existence checks.
type LessonExistenceRepository interface {
	ExistsByID(ctx context.Context, id string) (bool, error)
}

type enrichmentQueueService struct {
	queue  EnrichmentEnqueuer
	repo   LessonExistenceRepository
	logger *zap.Logger
}

// NewEnrichmentQueueService creates a service that schedules enrichment on the background worker
func NewEnrichmentQueueService(queue EnrichmentEnqueuer, repo LessonExistenceRepository, logger *zap.Logger) *enrichmentQueueService {
	return &enrichmentQueueService{
		queue:  queue,
		repo:   repo,
		logger: logger,
	}
}

// EnqueueEnrichment validates the request and schedules it. Returns the task ID.
func (s *enrichmentQueueService) EnqueueEnrichment(ctx context.Context, req EnrichLessonRequest) (string, error) {
	req, err := normalizeEnrichRequest(req)
	if err != nil {
		return "", err
	}

	exists, err := s.repo.ExistsByID(ctx, req.LessonID)
	if err != nil {
		s.logger.Error("failed to check lesson existence", zap.Error(err), zap.String("lesson_id", req.LessonID))
		return "", apperr.Persistence("failed to load lesson", err)
	}
	if !exists {
		return "", apperr.NotFound("lesson not found")
	}

	taskID, err := s.queue.EnqueueEnrichLesson(ctx, tasks.EnrichLessonPayload{
		LessonID:    req.LessonID,
		CourseTitle: req.CourseTitle,
		ModuleTitle: req.ModuleTitle,
		LessonTitle: req.LessonTitle,
		Language:    req.Language,
	})
	if errors.Is(err, tasks.ErrAlreadyQueued) {
		return "", apperr.Conflict("lesson enrichment is already queued")
	}
	if err != nil {
		s.logger.Error("failed to enqueue lesson enrichment", zap.Error(err), zap.String("lesson_id", req.LessonID))
		return "", apperr.UpstreamUnavailable("failed to queue lesson enrichment", err)
	}

	s.logger.Info("lesson enrichment queued", zap.String("lesson_id", req.LessonID), zap.String("task_id", taskID))
	return taskID, nil
}
