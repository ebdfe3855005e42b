package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lessonforge/backend/internal/models"
)

// GraphWriter creates the entities of a course graph.
// Children must be created before the parent that references them.
type GraphWriter interface {
	CreateLesson(ctx context.Context, lesson *models.Lesson) error
	CreateModule(ctx context.Context, module *models.Module) error
	CreateCourse(ctx context.Context, course *models.Course) error
}

type graphStore struct {
	db *sql.DB
}

// NewGraphStore creates a store that writes whole course graphs in one transaction
func NewGraphStore(db *sql.DB) *graphStore {
	return &graphStore{
		db: db,
	}
}

// WithinTransaction runs fn with a writer bound to a single transaction.
// The transaction commits only if fn returns nil.
func (s *graphStore) WithinTransaction(ctx context.Context, fn func(ctx context.Context, w GraphWriter) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(ctx, newTxGraphWriter(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

type txGraphWriter struct {
	lessons *lessonRepository
	modules *moduleRepository
	courses *courseRepository
}

func newTxGraphWriter(tx DBTX) *txGraphWriter {
	return &txGraphWriter{
		lessons: NewLessonRepository(tx),
		modules: NewModuleRepository(tx),
		courses: NewCourseRepository(tx),
	}
}

func (w *txGraphWriter) CreateLesson(ctx context.Context, lesson *models.Lesson) error {
	return w.lessons.Create(ctx, lesson)
}

func (w *txGraphWriter) CreateModule(ctx context.Context, module *models.Module) error {
	return w.modules.Create(ctx, module)
}

func (w *txGraphWriter) CreateCourse(ctx context.Context, course *models.Course) error {
	return w.courses.Create(ctx, course)
}
