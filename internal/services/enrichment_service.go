package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/lessonforge/backend/internal/apperr"
	"github.com/lessonforge/backend/internal/lock"
	"github.com/lessonforge/backend/internal/models"
	"github.com/lessonforge/backend/internal/repositories"
	"github.com/lessonforge/backend/internal/schema"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// DefaultLessonLanguage is used when an enrichment request names no language
const DefaultLessonLanguage = "English"

const defaultGenerationTimeout = 2 * time.Minute

// LessonContentRepository is the interface that wraps lesson reads and content replacement.
type LessonContentRepository interface {
	// Method ExistsByID checks whether a lesson exists.
	//
	// "ctx" is the context for the request.
	// "id" is the lesson ID.
	// Returns true if the lesson exists and an error if any.
	ExistsByID(ctx context.Context, id string) (bool, error)
	// Method GetByID retrieves a lesson with its content blocks.
	//
	// Returns repositories.ErrNotFound if the lesson does not exist.
	GetByID(ctx context.Context, id string) (*models.Lesson, error)
	// Method UpdateContent replaces the content blocks of a lesson and marks it enriched.
	//
	// "blocks" replaces the whole sequence; there is no partial merge.
	// Returns repositories.ErrNotFound if the lesson does not exist.
	UpdateContent(ctx context.Context, id string, blocks models.ContentBlocks) error
}

// Locker is the interface that wraps non-blocking keyed locks.
type Locker interface {
	// Method TryLock acquires key for ttl without waiting.
	//
	// Returns lock.ErrLocked if another owner holds the key.
	TryLock(ctx context.Context, key string, ttl time.Duration) (lock.Releaser, error)
}

// EnrichLessonRequest holds the lesson identity and the denormalized titles used as generation context
type EnrichLessonRequest struct {
	LessonID    string
	CourseTitle string
	ModuleTitle string
	LessonTitle string
	Language    string
}

type enrichmentService struct {
	generator TextGenerator
	repo      LessonContentRepository
	locker    Locker
	lockTTL   time.Duration
	group     singleflight.Group
	logger    *zap.Logger
}

// NewEnrichmentService creates a new lesson enrichment service.
// lockTTL bounds how long a crashed generation can block other attempts on the same lesson.
func NewEnrichmentService(generator TextGenerator, repo LessonContentRepository, locker Locker, lockTTL time.Duration, logger *zap.Logger) *enrichmentService {
	return &enrichmentService{
		generator: generator,
		repo:      repo,
		locker:    locker,
		lockTTL:   lockTTL,
		logger:    logger,
	}
}

// normalizeEnrichRequest trims the request and applies the default language
func normalizeEnrichRequest(req EnrichLessonRequest) (EnrichLessonRequest, error) {
	req.LessonID = strings.TrimSpace(req.LessonID)
	req.CourseTitle = strings.TrimSpace(req.CourseTitle)
	req.ModuleTitle = strings.TrimSpace(req.ModuleTitle)
	req.LessonTitle = strings.TrimSpace(req.LessonTitle)
	req.Language = strings.TrimSpace(req.Language)

	if req.LessonID == "" || req.CourseTitle == "" || req.ModuleTitle == "" || req.LessonTitle == "" {
		return req, apperr.Validation("courseTitle, moduleTitle, lessonTitle, and lessonId are required")
	}
	if req.Language == "" {
		req.Language = DefaultLessonLanguage
	}
	return req, nil
}

// EnrichLesson generates content blocks for a lesson and replaces its content.
// Concurrent identical requests in this process share one generation; a generation running
// in another process makes the call fail with a conflict. A caller that gives up does not cancel
// the shared generation for the others.
func (s *enrichmentService) EnrichLesson(ctx context.Context, req EnrichLessonRequest) (*models.Lesson, error) {
	req, err := normalizeEnrichRequest(req)
	if err != nil {
		return nil, err
	}

	key := req.LessonID + "|" + strings.ToLower(req.Language)
	ch := s.group.DoChan(key, func() (any, error) {
		// the shared call outlives any single caller, bounded by the lock lifetime
		sharedCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.generationTimeout())
		defer cancel()
		return s.enrich(sharedCtx, req)
	})

	select {
	case <-ctx.Done():
		return nil, apperr.UpstreamUnavailable("lesson generation was cancelled", ctx.Err())
	case res := <-ch:
		if res.Shared {
			s.logger.Debug("enrichment result shared", zap.String("lesson_id", req.LessonID))
		}
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*models.Lesson), nil
	}
}

func (s *enrichmentService) generationTimeout() time.Duration {
	if s.lockTTL > 0 {
		return s.lockTTL
	}
	return defaultGenerationTimeout
}

func (s *enrichmentService) enrich(ctx context.Context, req EnrichLessonRequest) (*models.Lesson, error) {
	exists, err := s.repo.ExistsByID(ctx, req.LessonID)
	if err != nil {
		s.logger.Error("failed to check lesson existence", zap.Error(err), zap.String("lesson_id", req.LessonID))
		return nil, apperr.Persistence("failed to load lesson", err)
	}
	if !exists {
		return nil, apperr.NotFound("lesson not found")
	}

	release, err := s.locker.TryLock(ctx, "lesson:enrich:"+req.LessonID, s.lockTTL)
	switch {
	case errors.Is(err, lock.ErrLocked):
		return nil, apperr.Conflict("lesson enrichment is already in progress")
	case err != nil:
		// lock store outage should not block generation
		s.logger.Warn("enrichment lock unavailable, continuing without it", zap.Error(err), zap.String("lesson_id", req.LessonID))
	default:
		defer func() {
			if err := release(context.WithoutCancel(ctx)); err != nil {
				s.logger.Warn("failed to release enrichment lock", zap.Error(err), zap.String("lesson_id", req.LessonID))
			}
		}()
	}

	prompt := lessonPrompt(req.CourseTitle, req.ModuleTitle, req.LessonTitle, req.Language)
	raw, err := s.generator.Generate(ctx, lessonInstruction, prompt)
	if err != nil {
		s.logger.Error("lesson generation call failed", zap.Error(err), zap.String("lesson_id", req.LessonID))
		return nil, upstreamError("lesson generation failed", err)
	}

	blocks, err := schema.ParseLessonContent(raw)
	if err != nil {
		s.logger.Error("failed to parse generated lesson",
			zap.Error(err),
			zap.String("lesson_id", req.LessonID),
			zap.String("language", req.Language),
			zap.String("raw", rawText(err)),
		)
		return nil, err
	}

	if err := s.repo.UpdateContent(ctx, req.LessonID, blocks); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.NotFound("lesson not found")
		}
		s.logger.Error("failed to save lesson content", zap.Error(err), zap.String("lesson_id", req.LessonID))
		return nil, apperr.Persistence("failed to save lesson content", err)
	}

	lesson, err := s.repo.GetByID(ctx, req.LessonID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.NotFound("lesson not found")
		}
		s.logger.Error("failed to reload lesson", zap.Error(err), zap.String("lesson_id", req.LessonID))
		return nil, apperr.Persistence("failed to load lesson", err)
	}

	s.logger.Info("lesson enriched",
		zap.String("lesson_id", req.LessonID),
		zap.String("language", req.Language),
		zap.Int("blocks", len(blocks)),
	)

	return lesson, nil
}
