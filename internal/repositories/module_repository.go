package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lessonforge/backend/internal/models"
)

type moduleRepository struct {
	db DBTX
}

// NewModuleRepository creates a new module repository
func NewModuleRepository(db DBTX) *moduleRepository {
	return &moduleRepository{
		db: db,
	}
}

// Create inserts a module referencing already persisted lessons
func (r *moduleRepository) Create(ctx context.Context, module *models.Module) error {
	lessonIDs, err := encodeStrings(module.LessonIDs)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	module.ID = uuid.NewString()
	module.CreatedAt = now
	module.UpdatedAt = now

	query := `
		INSERT INTO modules (id, title, lesson_ids, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query, module.ID, module.Title, lessonIDs, module.CreatedAt, module.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create module: %w", err)
	}

	return nil
}

// GetByIDs retrieves modules in the order of ids. IDs that do not resolve are skipped.
func (r *moduleRepository) GetByIDs(ctx context.Context, ids []string) ([]models.Module, error) {
	if len(ids) == 0 {
		return []models.Module{}, nil
	}

	query := `
		SELECT id, title, lesson_ids, created_at, updated_at
		FROM modules
		WHERE id IN (` + placeholders(len(ids)) + `)
	`

	rows, err := r.db.QueryContext(ctx, query, stringArgs(ids)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query modules: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]models.Module, len(ids))
	for rows.Next() {
		var module models.Module
		var lessonIDs []byte
		if err := rows.Scan(&module.ID, &module.Title, &lessonIDs, &module.CreatedAt, &module.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan module: %w", err)
		}
		if module.LessonIDs, err = decodeStrings(lessonIDs); err != nil {
			return nil, err
		}
		byID[module.ID] = module
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	modules := make([]models.Module, 0, len(ids))
	for _, id := range ids {
		if module, ok := byID[id]; ok {
			modules = append(modules, module)
		}
	}

	return modules, nil
}
