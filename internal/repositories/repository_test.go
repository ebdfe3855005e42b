package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lessonforge/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a mock database connection
func setupTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
	}

	return db, mock, cleanup
}

func TestNewLessonRepository(t *testing.T) {
	db := &sql.DB{}

	repo := NewLessonRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "", placeholders(0))
	assert.Equal(t, "?", placeholders(1))
	assert.Equal(t, "?, ?, ?", placeholders(3))
}

func TestLessonRepository_Create(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO lessons \(id, title, content_blocks, is_enriched, is_completed, created_at, updated_at\)`).
					WithArgs(sqlmock.AnyArg(), "Light Reactions", []byte("[]"), false, false, sqlmock.AnyArg(), sqlmock.AnyArg()).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO lessons`).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, cleanup := setupTestDB(t)
			defer cleanup()
			repo := NewLessonRepository(db)
			tt.setupMock(mock)

			lesson := &models.Lesson{Title: "Light Reactions"}
			err := repo.Create(context.Background(), lesson)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, lesson.ID)
				assert.False(t, lesson.CreatedAt.IsZero())
				assert.NotNil(t, lesson.ContentBlocks)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestLessonRepository_GetByID(t *testing.T) {
	now := time.Now()
	columns := []string{"id", "title", "content_blocks", "is_enriched", "is_completed", "created_at", "updated_at"}

	tests := []struct {
		name          string
		id            string
		setupMock     func(sqlmock.Sqlmock)
		expectedError error
		validateFunc  func(*testing.T, *models.Lesson)
	}{
		{
			name: "success enriched",
			id:   "l-1",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(columns).
					AddRow("l-1", "Light Reactions", []byte(`[{"type":"heading","text":"Intro"},{"type":"video","query":"q"}]`), true, false, now, now)
				mock.ExpectQuery(`SELECT id, title, content_blocks, is_enriched, is_completed, created_at, updated_at FROM lessons WHERE id = \? LIMIT 1`).
					WithArgs("l-1").
					WillReturnRows(rows)
			},
			validateFunc: func(t *testing.T, lesson *models.Lesson) {
				assert.Equal(t, "Light Reactions", lesson.Title)
				assert.True(t, lesson.IsEnriched)
				require.Len(t, lesson.ContentBlocks, 2)
				assert.Equal(t, models.HeadingBlock{Text: "Intro"}, lesson.ContentBlocks[0])
			},
		},
		{
			name: "success empty shell",
			id:   "l-2",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(columns).
					AddRow("l-2", "Chloroplasts", []byte(`[]`), false, false, now, now)
				mock.ExpectQuery(`SELECT id, title, content_blocks`).
					WithArgs("l-2").
					WillReturnRows(rows)
			},
			validateFunc: func(t *testing.T, lesson *models.Lesson) {
				assert.False(t, lesson.IsEnriched)
				assert.NotNil(t, lesson.ContentBlocks)
				assert.Empty(t, lesson.ContentBlocks)
			},
		},
		{
			name: "not found",
			id:   "missing",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, title, content_blocks`).
					WithArgs("missing").
					WillReturnError(sql.ErrNoRows)
			},
			expectedError: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, cleanup := setupTestDB(t)
			defer cleanup()
			repo := NewLessonRepository(db)
			tt.setupMock(mock)

			lesson, err := repo.GetByID(context.Background(), tt.id)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, lesson)
			} else {
				require.NoError(t, err)
				tt.validateFunc(t, lesson)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestLessonRepository_ExistsByID(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewLessonRepository(db)

	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM lessons WHERE id = \?\)`).
		WithArgs("l-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByID(context.Background(), "l-1")

	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLessonRepository_GetSummariesByIDs(t *testing.T) {
	t.Run("preserves requested order and skips missing", func(t *testing.T) {
		db, mock, cleanup := setupTestDB(t)
		defer cleanup()
		repo := NewLessonRepository(db)

		rows := sqlmock.NewRows([]string{"id", "title", "is_enriched", "is_completed"}).
			AddRow("b", "Second", false, false).
			AddRow("a", "First", true, true)
		mock.ExpectQuery(`SELECT id, title, is_enriched, is_completed FROM lessons WHERE id IN \(\?, \?, \?\)`).
			WithArgs("a", "b", "gone").
			WillReturnRows(rows)

		lessons, err := repo.GetSummariesByIDs(context.Background(), []string{"a", "b", "gone"})

		require.NoError(t, err)
		require.Len(t, lessons, 2)
		assert.Equal(t, "First", lessons[0].Title)
		assert.True(t, lessons[0].IsCompleted)
		assert.Equal(t, "Second", lessons[1].Title)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no ids skips query", func(t *testing.T) {
		db, mock, cleanup := setupTestDB(t)
		defer cleanup()
		repo := NewLessonRepository(db)

		lessons, err := repo.GetSummariesByIDs(context.Background(), nil)

		require.NoError(t, err)
		assert.Empty(t, lessons)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLessonRepository_UpdateContent(t *testing.T) {
	blocks := models.ContentBlocks{models.ParagraphBlock{Text: "Hola"}}

	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError error
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE lessons SET content_blocks = \?, is_enriched = TRUE, updated_at = \? WHERE id = \?`).
					WithArgs([]byte(`[{"type":"paragraph","text":"Hola"}]`), sqlmock.AnyArg(), "l-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "lesson removed",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE lessons SET content_blocks`).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectedError: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, cleanup := setupTestDB(t)
			defer cleanup()
			repo := NewLessonRepository(db)
			tt.setupMock(mock)

			err := repo.UpdateContent(context.Background(), "l-1", blocks)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestLessonRepository_SetCompleted(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE lessons SET is_completed = \?, updated_at = \? WHERE id = \?`).
					WithArgs(true, sqlmock.AnyArg(), "l-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE lessons SET is_completed`).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, cleanup := setupTestDB(t)
			defer cleanup()
			repo := NewLessonRepository(db)
			tt.setupMock(mock)

			err := repo.SetCompleted(context.Background(), "l-1", true)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
