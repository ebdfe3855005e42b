package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lessonforge/backend/internal/apperr"
	"github.com/lessonforge/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCourseService_GetCourse(t *testing.T) {
	now := time.Now()
	course := &models.Course{
		ID:          "c-1",
		Title:       "Photosynthesis",
		Description: "d",
		Tags:        []string{"bio"},
		ModuleIDs:   []string{"m-1", "m-2"},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	modules := []models.Module{
		{ID: "m-1", Title: "Foundations", LessonIDs: []string{"l-1", "l-2"}},
		{ID: "m-2", Title: "Light", LessonIDs: []string{"l-3"}},
	}
	summaries := []models.LessonSummary{
		{ID: "l-3", Title: "Light Reactions", IsEnriched: true},
		{ID: "l-1", Title: "Intro"},
		{ID: "l-2", Title: "Chloroplasts", IsCompleted: true},
	}

	tests := []struct {
		name         string
		id           string
		courseRepo   *mockCourseRepository
		moduleRepo   *mockModuleRepository
		lessonRepo   *mockLessonRepository
		expectedKind apperr.Kind
		validateFunc func(*testing.T, *models.CourseDetailResponse)
	}{
		{
			name:       "populates modules and lessons in order",
			id:         "c-1",
			courseRepo: &mockCourseRepository{course: course},
			moduleRepo: &mockModuleRepository{modules: modules},
			lessonRepo: &mockLessonRepository{summaries: summaries},
			validateFunc: func(t *testing.T, resp *models.CourseDetailResponse) {
				assert.Equal(t, "Photosynthesis", resp.Title)
				require.Len(t, resp.Modules, 2)
				require.Len(t, resp.Modules[0].Lessons, 2)
				assert.Equal(t, "Intro", resp.Modules[0].Lessons[0].Title)
				assert.True(t, resp.Modules[0].Lessons[1].IsCompleted)
				require.Len(t, resp.Modules[1].Lessons, 1)
				assert.True(t, resp.Modules[1].Lessons[0].IsEnriched)
			},
		},
		{
			name:         "course not found",
			id:           "c-404",
			courseRepo:   &mockCourseRepository{},
			moduleRepo:   &mockModuleRepository{},
			lessonRepo:   &mockLessonRepository{},
			expectedKind: apperr.KindNotFound,
		},
		{
			name:         "module read fails",
			id:           "c-1",
			courseRepo:   &mockCourseRepository{course: course},
			moduleRepo:   &mockModuleRepository{err: errors.New("db down")},
			lessonRepo:   &mockLessonRepository{},
			expectedKind: apperr.KindPersistence,
		},
		{
			name:         "lesson read fails",
			id:           "c-1",
			courseRepo:   &mockCourseRepository{course: course},
			moduleRepo:   &mockModuleRepository{modules: modules},
			lessonRepo:   &mockLessonRepository{summaryErr: errors.New("db down")},
			expectedKind: apperr.KindPersistence,
		},
		{
			name:         "empty id",
			id:           "",
			courseRepo:   &mockCourseRepository{course: course},
			moduleRepo:   &mockModuleRepository{},
			lessonRepo:   &mockLessonRepository{},
			expectedKind: apperr.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := zap.NewDevelopment()
			svc := NewCourseService(tt.courseRepo, tt.moduleRepo, tt.lessonRepo, logger)

			resp, err := svc.GetCourse(context.Background(), tt.id)

			if tt.expectedKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.expectedKind, apperr.KindOf(err))
				return
			}
			require.NoError(t, err)
			tt.validateFunc(t, resp)
		})
	}
}

func TestCourseService_ListCourses(t *testing.T) {
	owner := "user-1"
	blank := ""

	tests := []struct {
		name          string
		ownerID       *string
		page          int
		count         int
		repo          *mockCourseRepository
		expectedKind  apperr.Kind
		expectedOwner *string
	}{
		{name: "all courses", page: 1, count: 20, repo: &mockCourseRepository{courses: []models.CourseListItem{{ID: "c-1", Title: "A"}}}},
		{name: "owner filter", ownerID: &owner, page: 1, count: 20, repo: &mockCourseRepository{}, expectedOwner: &owner},
		{name: "blank owner ignored", ownerID: &blank, page: 1, count: 20, repo: &mockCourseRepository{}},
		{name: "invalid page", page: 0, count: 20, repo: &mockCourseRepository{}, expectedKind: apperr.KindValidation},
		{name: "count too large", page: 1, count: 500, repo: &mockCourseRepository{}, expectedKind: apperr.KindValidation},
		{name: "repository error", page: 1, count: 20, repo: &mockCourseRepository{err: errors.New("db down")}, expectedKind: apperr.KindPersistence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := zap.NewDevelopment()
			svc := NewCourseService(tt.repo, &mockModuleRepository{}, &mockLessonRepository{}, logger)

			courses, err := svc.ListCourses(context.Background(), tt.ownerID, tt.page, tt.count)

			if tt.expectedKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.expectedKind, apperr.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.repo.courses, courses)
			assert.Equal(t, tt.expectedOwner, tt.repo.ownerID)
		})
	}
}

func TestCourseService_GetLesson(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	repo := newMockLessonRepository(&models.Lesson{ID: "l-1", Title: "Light Reactions"})
	svc := NewCourseService(&mockCourseRepository{}, &mockModuleRepository{}, repo, logger)

	lesson, err := svc.GetLesson(context.Background(), "l-1")
	require.NoError(t, err)
	assert.Equal(t, "Light Reactions", lesson.Title)

	_, err = svc.GetLesson(context.Background(), "missing")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}
