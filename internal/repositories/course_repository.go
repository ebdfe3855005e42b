package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lessonforge/backend/internal/models"
)

type courseRepository struct {
	db DBTX
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db DBTX) *courseRepository {
	return &courseRepository{
		db: db,
	}
}

// Create inserts a course referencing already persisted modules
func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	tags, err := encodeStrings(course.Tags)
	if err != nil {
		return err
	}
	moduleIDs, err := encodeStrings(course.ModuleIDs)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	course.ID = uuid.NewString()
	course.CreatedAt = now
	course.UpdatedAt = now

	query := `
		INSERT INTO courses (id, title, description, tags, module_ids, owner_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	var ownerID sql.NullString
	if course.OwnerID != nil {
		ownerID = sql.NullString{String: *course.OwnerID, Valid: true}
	}

	_, err = r.db.ExecContext(ctx, query,
		course.ID,
		course.Title,
		course.Description,
		tags,
		moduleIDs,
		ownerID,
		course.CreatedAt,
		course.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}

	return nil
}

// GetByID retrieves a course by its ID
func (r *courseRepository) GetByID(ctx context.Context, id string) (*models.Course, error) {
	query := `
		SELECT id, title, description, tags, module_ids, owner_id, created_at, updated_at
		FROM courses
		WHERE id = ?
		LIMIT 1
	`

	var course models.Course
	var tags, moduleIDs []byte
	var ownerID sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&course.ID,
		&course.Title,
		&course.Description,
		&tags,
		&moduleIDs,
		&ownerID,
		&course.CreatedAt,
		&course.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get course by id: %w", err)
	}

	if course.Tags, err = decodeStrings(tags); err != nil {
		return nil, err
	}
	if course.ModuleIDs, err = decodeStrings(moduleIDs); err != nil {
		return nil, err
	}
	if ownerID.Valid {
		course.OwnerID = &ownerID.String
	}

	return &course, nil
}

// List retrieves id and title of courses, newest first, optionally filtered by owner
func (r *courseRepository) List(ctx context.Context, ownerID *string, page, count int) ([]models.CourseListItem, error) {
	query := `
		SELECT id, title
		FROM courses
	`
	args := []any{}

	if ownerID != nil {
		query += " WHERE owner_id = ?"
		args = append(args, *ownerID)
	}

	query += " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, count, (page-1)*count)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	courses := []models.CourseListItem{}
	for rows.Next() {
		var course models.CourseListItem
		if err := rows.Scan(&course.ID, &course.Title); err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return courses, nil
}
