package main

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/lessonforge/backend/internal/apperr"
	"github.com/lessonforge/backend/internal/models"
	"github.com/lessonforge/backend/internal/services"
	"github.com/lessonforge/backend/internal/tasks"
	"go.uber.org/zap"
)

// LessonEnricher defines the enrichment operation the worker runs
type LessonEnricher interface {
	// EnrichLesson generates and stores content blocks for one lesson
	//
	// If generation, validation or persistence fails, the error is returned and the lesson is left unchanged.
	EnrichLesson(ctx context.Context, req services.EnrichLessonRequest) (*models.Lesson, error)
}

// Worker handles enrichment tasks
type Worker struct {
	logger   *zap.Logger
	enricher LessonEnricher
}

// NewWorker creates a new worker instance
func NewWorker(logger *zap.Logger, enricher LessonEnricher) *Worker {
	return &Worker{
		logger:   logger,
		enricher: enricher,
	}
}

// HandleEnrichLesson processes a lesson:enrich task
func (w *Worker) HandleEnrichLesson(ctx context.Context, t *asynq.Task) error {
	payload, err := tasks.ParseEnrichLessonPayload(t)
	if err != nil {
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	lesson, err := w.enricher.EnrichLesson(ctx, services.EnrichLessonRequest{
		LessonID:    payload.LessonID,
		CourseTitle: payload.CourseTitle,
		ModuleTitle: payload.ModuleTitle,
		LessonTitle: payload.LessonTitle,
		Language:    payload.Language,
	})
	if err != nil {
		w.logger.Error("Lesson enrichment task failed",
			zap.String("lesson_id", payload.LessonID),
			zap.String("kind", string(apperr.KindOf(err))),
			zap.Error(err),
		)
		return taskError(err)
	}

	w.logger.Info("Lesson enrichment task completed",
		zap.String("lesson_id", lesson.ID),
		zap.Int("blocks", len(lesson.ContentBlocks)),
	)
	return nil
}

// taskError marks failures that another attempt cannot fix so asynq archives the task at once
func taskError(err error) error {
	switch apperr.KindOf(err) {
	case apperr.KindValidation, apperr.KindNotFound, apperr.KindConflict, apperr.KindUpstreamParse:
		return fmt.Errorf("%w: %w", asynq.SkipRetry, err)
	default:
		return err
	}
}
