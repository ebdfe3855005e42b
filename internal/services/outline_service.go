package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/lessonforge/backend/internal/apperr"
	"github.com/lessonforge/backend/internal/models"
	"github.com/lessonforge/backend/internal/repositories"
	"github.com/lessonforge/backend/internal/schema"
	"go.uber.org/zap"
)

// TextGenerator is the interface that wraps the generative text model.
type TextGenerator interface {
	// Method Generate sends a system instruction and user content to the model and returns its text response.
	//
	// "ctx" is the context for the request.
	// "instruction" is the system instruction describing the expected output.
	// "content" is the user content, for example the topic.
	// Returns the raw, unvalidated response text and an error if the call itself failed.
	Generate(ctx context.Context, instruction, content string) (string, error)
}

// CourseGraphStore is the interface that wraps transactional creation of a course graph.
type CourseGraphStore interface {
	// Method WithinTransaction runs fn with a writer whose writes commit together or not at all.
	//
	// "ctx" is the context for the request.
	// "fn" creates the graph entities; returning an error discards every write made through the writer.
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, w repositories.GraphWriter) error) error
}

// maxOwnerIDLength matches the width of courses.owner_id
const maxOwnerIDLength = 64

type outlineService struct {
	generator TextGenerator
	store     CourseGraphStore
	logger    *zap.Logger
}

// NewOutlineService creates a new outline generation service
func NewOutlineService(generator TextGenerator, store CourseGraphStore, logger *zap.Logger) *outlineService {
	return &outlineService{
		generator: generator,
		store:     store,
		logger:    logger,
	}
}

// GenerateOutline generates a course outline for topic and persists it as a course graph.
// Lessons are created first, then modules, then the course. Returns the course ID.
func (s *outlineService) GenerateOutline(ctx context.Context, topic string, ownerID *string) (string, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return "", apperr.Validation("topic is required")
	}
	if ownerID != nil && utf8.RuneCountInString(strings.TrimSpace(*ownerID)) > maxOwnerIDLength {
		return "", apperr.Validation("userId is too long")
	}

	raw, err := s.generator.Generate(ctx, outlineInstruction, topic)
	if err != nil {
		s.logger.Error("outline generation call failed", zap.Error(err), zap.String("topic", topic))
		return "", upstreamError("outline generation failed", err)
	}

	outline, err := schema.ParseOutline(raw)
	if err != nil {
		s.logger.Error("failed to parse generated outline",
			zap.Error(err),
			zap.String("topic", topic),
			zap.String("raw", rawText(err)),
		)
		return "", err
	}

	if ownerID != nil {
		trimmed := strings.TrimSpace(*ownerID)
		if trimmed == "" {
			ownerID = nil
		} else {
			ownerID = &trimmed
		}
	}

	var courseID string
	err = s.store.WithinTransaction(ctx, func(ctx context.Context, w repositories.GraphWriter) error {
		id, err := createCourseGraph(ctx, w, outline, ownerID)
		courseID = id
		return err
	})
	if err != nil {
		s.logger.Error("failed to persist course graph", zap.Error(err), zap.String("topic", topic))
		return "", apperr.Persistence("failed to save course", err)
	}

	s.logger.Info("course generated",
		zap.String("course_id", courseID),
		zap.Int("modules", len(outline.Modules)),
		zap.Int("lessons", outline.LessonCount()),
	)

	return courseID, nil
}

// createCourseGraph writes the outline bottom-up so no parent ever references a missing child
func createCourseGraph(ctx context.Context, w repositories.GraphWriter, outline *models.Outline, ownerID *string) (string, error) {
	moduleIDs := make([]string, 0, len(outline.Modules))

	for _, m := range outline.Modules {
		lessonIDs := make([]string, 0, len(m.Lessons))
		for _, title := range m.Lessons {
			lesson := &models.Lesson{
				Title:         title,
				ContentBlocks: models.ContentBlocks{},
			}
			if err := w.CreateLesson(ctx, lesson); err != nil {
				return "", err
			}
			lessonIDs = append(lessonIDs, lesson.ID)
		}

		module := &models.Module{
			Title:     m.Title,
			LessonIDs: lessonIDs,
		}
		if err := w.CreateModule(ctx, module); err != nil {
			return "", err
		}
		moduleIDs = append(moduleIDs, module.ID)
	}

	course := &models.Course{
		Title:       outline.Title,
		Description: outline.Description,
		Tags:        outline.Tags,
		ModuleIDs:   moduleIDs,
		OwnerID:     ownerID,
	}
	if err := w.CreateCourse(ctx, course); err != nil {
		return "", err
	}

	return course.ID, nil
}
