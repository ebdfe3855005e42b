package repositories

import (
	"context"
	"fmt"
)

type auditRepository struct {
	db DBTX
}

// NewAuditRepository creates a repository for read-only graph consistency checks
func NewAuditRepository(db DBTX) *auditRepository {
	return &auditRepository{
		db: db,
	}
}

// CountOrphanModules counts modules not referenced by any course
func (r *auditRepository) CountOrphanModules(ctx context.Context) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM modules m
		WHERE NOT EXISTS (
			SELECT 1 FROM courses c WHERE JSON_CONTAINS(c.module_ids, JSON_QUOTE(m.id))
		)
	`

	var count int
	if err := r.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count orphan modules: %w", err)
	}

	return count, nil
}

// CountOrphanLessons counts lessons not referenced by any module
func (r *auditRepository) CountOrphanLessons(ctx context.Context) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM lessons l
		WHERE NOT EXISTS (
			SELECT 1 FROM modules m WHERE JSON_CONTAINS(m.lesson_ids, JSON_QUOTE(l.id))
		)
	`

	var count int
	if err := r.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count orphan lessons: %w", err)
	}

	return count, nil
}
