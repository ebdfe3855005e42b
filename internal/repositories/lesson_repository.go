package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lessonforge/backend/internal/models"
)

type lessonRepository struct {
	db DBTX
}

// NewLessonRepository creates a new lesson repository
func NewLessonRepository(db DBTX) *lessonRepository {
	return &lessonRepository{
		db: db,
	}
}

// Create inserts an empty lesson shell and fills in its generated ID and timestamps
func (r *lessonRepository) Create(ctx context.Context, lesson *models.Lesson) error {
	if lesson.ContentBlocks == nil {
		lesson.ContentBlocks = models.ContentBlocks{}
	}
	blocks, err := json.Marshal(lesson.ContentBlocks)
	if err != nil {
		return fmt.Errorf("failed to encode content blocks: %w", err)
	}

	now := time.Now().UTC()
	lesson.ID = uuid.NewString()
	lesson.CreatedAt = now
	lesson.UpdatedAt = now

	query := `
		INSERT INTO lessons (id, title, content_blocks, is_enriched, is_completed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		lesson.ID,
		lesson.Title,
		blocks,
		lesson.IsEnriched,
		lesson.IsCompleted,
		lesson.CreatedAt,
		lesson.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create lesson: %w", err)
	}

	return nil
}

// GetByID retrieves a lesson with its content blocks
func (r *lessonRepository) GetByID(ctx context.Context, id string) (*models.Lesson, error) {
	query := `
		SELECT id, title, content_blocks, is_enriched, is_completed, created_at, updated_at
		FROM lessons
		WHERE id = ?
		LIMIT 1
	`

	var lesson models.Lesson
	var blocks []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&lesson.ID,
		&lesson.Title,
		&blocks,
		&lesson.IsEnriched,
		&lesson.IsCompleted,
		&lesson.CreatedAt,
		&lesson.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson by id: %w", err)
	}

	lesson.ContentBlocks = models.ContentBlocks{}
	if len(blocks) > 0 {
		if err := json.Unmarshal(blocks, &lesson.ContentBlocks); err != nil {
			return nil, fmt.Errorf("failed to decode content blocks: %w", err)
		}
	}

	return &lesson, nil
}

// ExistsByID checks whether a lesson exists
func (r *lessonRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM lessons WHERE id = ?)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check lesson existence: %w", err)
	}

	return exists, nil
}

// GetSummariesByIDs retrieves lessons without content blocks, in the order of ids.
// IDs that do not resolve are skipped.
func (r *lessonRepository) GetSummariesByIDs(ctx context.Context, ids []string) ([]models.LessonSummary, error) {
	if len(ids) == 0 {
		return []models.LessonSummary{}, nil
	}

	query := `
		SELECT id, title, is_enriched, is_completed
		FROM lessons
		WHERE id IN (` + placeholders(len(ids)) + `)
	`

	rows, err := r.db.QueryContext(ctx, query, stringArgs(ids)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query lessons: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]models.LessonSummary, len(ids))
	for rows.Next() {
		var lesson models.LessonSummary
		if err := rows.Scan(&lesson.ID, &lesson.Title, &lesson.IsEnriched, &lesson.IsCompleted); err != nil {
			return nil, fmt.Errorf("failed to scan lesson: %w", err)
		}
		byID[lesson.ID] = lesson
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	lessons := make([]models.LessonSummary, 0, len(ids))
	for _, id := range ids {
		if lesson, ok := byID[id]; ok {
			lessons = append(lessons, lesson)
		}
	}

	return lessons, nil
}

// UpdateContent replaces the content blocks of a lesson and marks it enriched in a single statement
func (r *lessonRepository) UpdateContent(ctx context.Context, id string, blocks models.ContentBlocks) error {
	data, err := json.Marshal(blocks)
	if err != nil {
		return fmt.Errorf("failed to encode content blocks: %w", err)
	}

	query := `
		UPDATE lessons
		SET content_blocks = ?, is_enriched = TRUE, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, data, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update lesson content: %w", err)
	}

	return checkRowsAffected(result)
}

// SetCompleted sets the completion flag of a lesson
func (r *lessonRepository) SetCompleted(ctx context.Context, id string, completed bool) error {
	query := `
		UPDATE lessons
		SET is_completed = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, completed, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update lesson completion: %w", err)
	}

	return checkRowsAffected(result)
}
