package handlers

import (
	"context"

	"github.com/lessonforge/backend/internal/models"
	"github.com/lessonforge/backend/internal/services"
)

type mockOutlineService struct {
	courseID   string
	err        error
	gotTopic   string
	gotOwnerID *string
}

func (m *mockOutlineService) GenerateOutline(ctx context.Context, topic string, ownerID *string) (string, error) {
	m.gotTopic = topic
	m.gotOwnerID = ownerID
	return m.courseID, m.err
}

type mockCourseService struct {
	course     *models.CourseDetailResponse
	courses    []models.CourseListItem
	lesson     *models.Lesson
	err        error
	gotOwnerID *string
	gotPage    int
	gotCount   int
}

func (m *mockCourseService) GetCourse(ctx context.Context, id string) (*models.CourseDetailResponse, error) {
	return m.course, m.err
}

func (m *mockCourseService) ListCourses(ctx context.Context, ownerID *string, page, count int) ([]models.CourseListItem, error) {
	m.gotOwnerID = ownerID
	m.gotPage = page
	m.gotCount = count
	return m.courses, m.err
}

func (m *mockCourseService) GetLesson(ctx context.Context, id string) (*models.Lesson, error) {
	return m.lesson, m.err
}

type mockEnrichmentService struct {
	lesson *models.Lesson
	err    error
	got    services.EnrichLessonRequest
}

func (m *mockEnrichmentService) EnrichLesson(ctx context.Context, req services.EnrichLessonRequest) (*models.Lesson, error) {
	m.got = req
	return m.lesson, m.err
}

type mockQueueService struct {
	taskID string
	err    error
}

func (m *mockQueueService) EnqueueEnrichment(ctx context.Context, req services.EnrichLessonRequest) (string, error) {
	return m.taskID, m.err
}

type mockProgressService struct {
	completed   bool
	err         error
	gotLessonID string
	gotExplicit *bool
}

func (m *mockProgressService) ToggleCompletion(ctx context.Context, lessonID string, explicit *bool) (bool, error) {
	m.gotLessonID = lessonID
	m.gotExplicit = explicit
	return m.completed, m.err
}

type mockNarrationService struct {
	result *models.NarrationResult
	err    error
	got    models.NarrateRequest
}

func (m *mockNarrationService) Narrate(ctx context.Context, req models.NarrateRequest) (*models.NarrationResult, error) {
	m.got = req
	return m.result, m.err
}

type mockVideoService struct {
	videoID string
	err     error
}

func (m *mockVideoService) ResolveVideo(ctx context.Context, query string) (string, error) {
	return m.videoID, m.err
}
