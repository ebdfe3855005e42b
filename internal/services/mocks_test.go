package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lessonforge/backend/internal/lock"
	"github.com/lessonforge/backend/internal/models"
	"github.com/lessonforge/backend/internal/repositories"
	"github.com/lessonforge/backend/internal/tasks"
)

// mockGenerator is a mock implementation of TextGenerator
type mockGenerator struct {
	responses   []string
	err         error
	calls       int32
	instruction string
	content     string
	started     chan struct{}
	release     chan struct{}
	mu          sync.Mutex
}

func (m *mockGenerator) Generate(ctx context.Context, instruction, content string) (string, error) {
	n := atomic.AddInt32(&m.calls, 1)
	m.mu.Lock()
	m.instruction = instruction
	m.content = content
	m.mu.Unlock()

	if m.started != nil {
		m.started <- struct{}{}
	}
	if m.release != nil {
		select {
		case <-m.release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if m.err != nil {
		return "", m.err
	}
	idx := int(n) - 1
	if idx >= len(m.responses) {
		idx = len(m.responses) - 1
	}
	return m.responses[idx], nil
}

func (m *mockGenerator) callCount() int {
	return int(atomic.LoadInt32(&m.calls))
}

// mockGraphStore stages writes and publishes them only when the transaction function succeeds
type mockGraphStore struct {
	lessons map[string]*models.Lesson
	modules map[string]*models.Module
	courses map[string]*models.Course
	failOn  string
	seq     int
}

func newMockGraphStore() *mockGraphStore {
	return &mockGraphStore{
		lessons: map[string]*models.Lesson{},
		modules: map[string]*models.Module{},
		courses: map[string]*models.Course{},
	}
}

func (m *mockGraphStore) WithinTransaction(ctx context.Context, fn func(ctx context.Context, w repositories.GraphWriter) error) error {
	tx := &mockGraphTx{store: m, lessons: map[string]*models.Lesson{}, modules: map[string]*models.Module{}, courses: map[string]*models.Course{}}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	for id, l := range tx.lessons {
		m.lessons[id] = l
	}
	for id, mod := range tx.modules {
		m.modules[id] = mod
	}
	for id, c := range tx.courses {
		m.courses[id] = c
	}
	return nil
}

func (m *mockGraphStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

type mockGraphTx struct {
	store   *mockGraphStore
	lessons map[string]*models.Lesson
	modules map[string]*models.Module
	courses map[string]*models.Course
}

func (t *mockGraphTx) CreateLesson(ctx context.Context, lesson *models.Lesson) error {
	if t.store.failOn == "lesson" {
		return fmt.Errorf("failed to create lesson: database error")
	}
	lesson.ID = t.store.nextID("lesson")
	t.lessons[lesson.ID] = lesson
	return nil
}

func (t *mockGraphTx) CreateModule(ctx context.Context, module *models.Module) error {
	if t.store.failOn == "module" {
		return fmt.Errorf("failed to create module: database error")
	}
	for _, id := range module.LessonIDs {
		if _, ok := t.lessons[id]; !ok {
			return fmt.Errorf("module references missing lesson %s", id)
		}
	}
	module.ID = t.store.nextID("module")
	t.modules[module.ID] = module
	return nil
}

func (t *mockGraphTx) CreateCourse(ctx context.Context, course *models.Course) error {
	if t.store.failOn == "course" {
		return fmt.Errorf("failed to create course: database error")
	}
	for _, id := range course.ModuleIDs {
		if _, ok := t.modules[id]; !ok {
			return fmt.Errorf("course references missing module %s", id)
		}
	}
	course.ID = t.store.nextID("course")
	t.courses[course.ID] = course
	return nil
}

// mockLessonRepository is a mock implementation of the lesson repository interfaces
type mockLessonRepository struct {
	mu         sync.Mutex
	lessons    map[string]*models.Lesson
	existsErr  error
	getErr     error
	updateErr  error
	updates    int
	summaries  []models.LessonSummary
	summaryErr error
}

func newMockLessonRepository(lessons ...*models.Lesson) *mockLessonRepository {
	m := &mockLessonRepository{lessons: map[string]*models.Lesson{}}
	for _, l := range lessons {
		m.lessons[l.ID] = l
	}
	return m
}

func (m *mockLessonRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.existsErr != nil {
		return false, m.existsErr
	}
	_, ok := m.lessons[id]
	return ok, nil
}

func (m *mockLessonRepository) GetByID(ctx context.Context, id string) (*models.Lesson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	lesson, ok := m.lessons[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *lesson
	return &copied, nil
}

func (m *mockLessonRepository) UpdateContent(ctx context.Context, id string, blocks models.ContentBlocks) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return m.updateErr
	}
	lesson, ok := m.lessons[id]
	if !ok {
		return repositories.ErrNotFound
	}
	m.updates++
	lesson.ContentBlocks = blocks
	lesson.IsEnriched = true
	return nil
}

func (m *mockLessonRepository) SetCompleted(ctx context.Context, id string, completed bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return m.updateErr
	}
	lesson, ok := m.lessons[id]
	if !ok {
		return repositories.ErrNotFound
	}
	lesson.IsCompleted = completed
	return nil
}

func (m *mockLessonRepository) GetSummariesByIDs(ctx context.Context, ids []string) ([]models.LessonSummary, error) {
	if m.summaryErr != nil {
		return nil, m.summaryErr
	}
	return m.summaries, nil
}

// mockLocker is a mock implementation of Locker
type mockLocker struct {
	err      error
	acquired int32
	released int32
}

func (m *mockLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (lock.Releaser, error) {
	if m.err != nil {
		return nil, m.err
	}
	atomic.AddInt32(&m.acquired, 1)
	return func(context.Context) error {
		atomic.AddInt32(&m.released, 1)
		return nil
	}, nil
}

// mockSynthesizer is a mock implementation of SpeechSynthesizer
type mockSynthesizer struct {
	segments     [][]byte
	err          error
	text         string
	languageCode string
	voice        string
}

func (m *mockSynthesizer) Synthesize(ctx context.Context, text, languageCode, voice string) ([][]byte, error) {
	m.text = text
	m.languageCode = languageCode
	m.voice = voice
	if m.err != nil {
		return nil, m.err
	}
	return m.segments, nil
}

// mockCourseRepository is a mock implementation of CourseRepository
type mockCourseRepository struct {
	course  *models.Course
	courses []models.CourseListItem
	err     error
	ownerID *string
}

func (m *mockCourseRepository) GetByID(ctx context.Context, id string) (*models.Course, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.course == nil {
		return nil, repositories.ErrNotFound
	}
	return m.course, nil
}

func (m *mockCourseRepository) List(ctx context.Context, ownerID *string, page, count int) ([]models.CourseListItem, error) {
	m.ownerID = ownerID
	if m.err != nil {
		return nil, m.err
	}
	return m.courses, nil
}

// mockModuleRepository is a mock implementation of ModuleRepository
type mockModuleRepository struct {
	modules []models.Module
	err     error
}

func (m *mockModuleRepository) GetByIDs(ctx context.Context, ids []string) ([]models.Module, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.modules, nil
}

// mockSearcher is a mock implementation of VideoSearcher
type mockSearcher struct {
	videoID string
	err     error
}

func (m *mockSearcher) SearchVideo(ctx context.Context, query string) (string, error) {
	return m.videoID, m.err
}

// mockEnqueuer is a mock implementation of EnrichmentEnqueuer
type mockEnqueuer struct {
	payload tasks.EnrichLessonPayload
	taskID  string
	err     error
}

func (m *mockEnqueuer) EnqueueEnrichLesson(ctx context.Context, payload tasks.EnrichLessonPayload) (string, error) {
	m.payload = payload
	return m.taskID, m.err
}

// mockAuditRepository is a mock implementation of OrphanAuditRepository
type mockAuditRepository struct {
	modules int
	lessons int
	err     error
}

func (m *mockAuditRepository) CountOrphanModules(ctx context.Context) (int, error) {
	return m.modules, m.err
}

func (m *mockAuditRepository) CountOrphanLessons(ctx context.Context) (int, error) {
	return m.lessons, m.err
}

var errNotFoundWrapped = fmt.Errorf("update: %w", repositories.ErrNotFound)
