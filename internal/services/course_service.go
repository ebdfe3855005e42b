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

// CourseRepository is the interface that wraps course reads.
type CourseRepository interface {
	// Method GetByID retrieves a course by its ID.
	//
	// Returns repositories.ErrNotFound if the course does not exist.
	GetByID(ctx context.Context, id string) (*models.Course, error)
	// Method List retrieves id and title of courses sorted by creation time, newest first.
	//
	// "ownerID" filters by owner when not nil.
	// "page" is 1-based and "count" is the page size.
	List(ctx context.Context, ownerID *string, page, count int) ([]models.CourseListItem, error)
}

// ModuleRepository is the interface that wraps module reads.
type ModuleRepository interface {
	// Method GetByIDs retrieves modules in the order of ids, skipping ids that do not resolve.
	GetByIDs(ctx context.Context, ids []string) ([]models.Module, error)
}

// LessonReadRepository is the interface that wraps lesson reads.
type LessonReadRepository interface {
	GetByID(ctx context.Context, id string) (*models.Lesson, error)
	// Method GetSummariesByIDs retrieves lessons without content blocks in the order of ids.
	GetSummariesByIDs(ctx context.Context, ids []string) ([]models.LessonSummary, error)
}

type courseService struct {
	courseRepo CourseRepository
	moduleRepo ModuleRepository
	lessonRepo LessonReadRepository
	logger     *zap.Logger
}

// NewCourseService creates a new course query service
func NewCourseService(courseRepo CourseRepository, moduleRepo ModuleRepository, lessonRepo LessonReadRepository, logger *zap.Logger) *courseService {
	return &courseService{
		courseRepo: courseRepo,
		moduleRepo: moduleRepo,
		lessonRepo: lessonRepo,
		logger:     logger,
	}
}

// GetCourse retrieves a course with its modules and their lesson summaries populated in order
func (s *courseService) GetCourse(ctx context.Context, id string) (*models.CourseDetailResponse, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperr.Validation("course id is required")
	}

	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.NotFound("course not found")
		}
		s.logger.Error("failed to get course", zap.Error(err), zap.String("course_id", id))
		return nil, apperr.Persistence("failed to load course", err)
	}

	modules, err := s.moduleRepo.GetByIDs(ctx, course.ModuleIDs)
	if err != nil {
		s.logger.Error("failed to get course modules", zap.Error(err), zap.String("course_id", id))
		return nil, apperr.Persistence("failed to load course modules", err)
	}

	var lessonIDs []string
	for _, m := range modules {
		lessonIDs = append(lessonIDs, m.LessonIDs...)
	}
	lessons, err := s.lessonRepo.GetSummariesByIDs(ctx, lessonIDs)
	if err != nil {
		s.logger.Error("failed to get course lessons", zap.Error(err), zap.String("course_id", id))
		return nil, apperr.Persistence("failed to load course lessons", err)
	}
	lessonsByID := make(map[string]models.LessonSummary, len(lessons))
	for _, l := range lessons {
		lessonsByID[l.ID] = l
	}

	response := &models.CourseDetailResponse{
		ID:          course.ID,
		Title:       course.Title,
		Description: course.Description,
		Tags:        course.Tags,
		OwnerID:     course.OwnerID,
		Modules:     make([]models.ModuleDetailResponse, 0, len(modules)),
		CreatedAt:   course.CreatedAt,
		UpdatedAt:   course.UpdatedAt,
	}
	for _, m := range modules {
		detail := models.ModuleDetailResponse{
			ID:      m.ID,
			Title:   m.Title,
			Lessons: make([]models.LessonSummary, 0, len(m.LessonIDs)),
		}
		for _, lessonID := range m.LessonIDs {
			if l, ok := lessonsByID[lessonID]; ok {
				detail.Lessons = append(detail.Lessons, l)
			}
		}
		response.Modules = append(response.Modules, detail)
	}

	return response, nil
}

// ListCourses retrieves a page of courses, newest first, optionally filtered by owner
func (s *courseService) ListCourses(ctx context.Context, ownerID *string, page, count int) ([]models.CourseListItem, error) {
	if page < 1 {
		return nil, apperr.Validation("page must be positive")
	}
	if count < 1 || count > 100 {
		return nil, apperr.Validation("count must be between 1 and 100")
	}
	if ownerID != nil && strings.TrimSpace(*ownerID) == "" {
		ownerID = nil
	}

	courses, err := s.courseRepo.List(ctx, ownerID, page, count)
	if err != nil {
		s.logger.Error("failed to list courses", zap.Error(err))
		return nil, apperr.Persistence("failed to list courses", err)
	}

	return courses, nil
}

// GetLesson retrieves a lesson with its content blocks
func (s *courseService) GetLesson(ctx context.Context, id string) (*models.Lesson, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperr.Validation("lesson id is required")
	}

	lesson, err := s.lessonRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.NotFound("lesson not found")
		}
		s.logger.Error("failed to get lesson", zap.Error(err), zap.String("lesson_id", id))
		return nil, apperr.Persistence("failed to load lesson", err)
	}

	return lesson, nil
}
