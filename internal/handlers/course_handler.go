package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/lessonforge/backend/internal/apperr"
	"github.com/lessonforge/backend/internal/models"
	"go.uber.org/zap"
)

// OutlineService is the interface that wraps course outline generation.
type OutlineService interface {
	// Method GenerateOutline asks the model for an outline of topic and persists the resulting course graph.
	//
	// "ownerID" optionally links the course to a user.
	// Returns the new course ID. Nothing is persisted when an error is returned.
	GenerateOutline(ctx context.Context, topic string, ownerID *string) (string, error)
}

// CourseService is the interface that wraps course and lesson reads.
type CourseService interface {
	// Method GetCourse retrieves a course with its modules and lesson summaries in outline order.
	GetCourse(ctx context.Context, id string) (*models.CourseDetailResponse, error)
	// Method ListCourses retrieves id and title of courses, newest first.
	//
	// "ownerID" filters by owner when not nil. "page" starts at 1.
	ListCourses(ctx context.Context, ownerID *string, page, count int) ([]models.CourseListItem, error)
	// Method GetLesson retrieves a lesson with its content blocks.
	GetLesson(ctx context.Context, id string) (*models.Lesson, error)
}

// CourseHandler handles HTTP requests for courses
type CourseHandler struct {
	BaseHandler
	outlines OutlineService
	courses  CourseService
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(outlines OutlineService, courses CourseService, logger *zap.Logger) *CourseHandler {
	return &CourseHandler{
		BaseHandler: BaseHandler{Logger: logger},
		outlines:    outlines,
		courses:     courses,
	}
}

// RegisterRoutes registers the course read routes. Generation routes are registered separately
// so the router can put them behind the tighter rate limit.
func (h *CourseHandler) RegisterRoutes(r chi.Router) {
	r.Route("/courses", func(r chi.Router) {
		r.Get("/", h.ListCourses)
		r.Get("/{id}", h.GetCourse)
	})
}

// RegisterGenerationRoutes registers the outline generation route
func (h *CourseHandler) RegisterGenerationRoutes(r chi.Router) {
	r.Post("/generate-course", h.GenerateCourse)
}

// GenerateCourse handles POST /api/generate-course
// @Summary Generate a course
// @Description Generate a course outline for a topic and persist its modules and lessons
// @Tags courses
// @Accept json
// @Produce json
// @Param request body models.GenerateCourseRequest true "Course topic"
// @Success 201 {object} models.GenerateCourseResponse
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/generate-course [post]
func (h *CourseHandler) GenerateCourse(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateCourseRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondAppError(w, r, err, "failed to generate course")
		return
	}
	if strings.TrimSpace(req.Topic) == "" {
		h.respondError(w, http.StatusBadRequest, "Topic is required")
		return
	}

	courseID, err := h.outlines.GenerateOutline(r.Context(), req.Topic, req.UserID)
	if err != nil {
		h.respondAppError(w, r, err, "failed to generate course")
		return
	}

	h.respondJSON(w, http.StatusCreated, models.GenerateCourseResponse{
		CourseID: courseID,
		Message:  "Course generated successfully",
	})
}

// GetCourse handles GET /api/courses/{id}
// @Summary Get a course
// @Description Get a course with its modules and lesson summaries
// @Tags courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} models.CourseDetailResponse
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/courses/{id} [get]
func (h *CourseHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	course, err := h.courses.GetCourse(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondAppError(w, r, err, "failed to get course")
		return
	}

	h.respondJSON(w, http.StatusOK, course)
}

// ListCourses handles GET /api/courses
// @Summary List courses
// @Description List course ids and titles, newest first
// @Tags courses
// @Produce json
// @Param userId query string false "Only courses owned by this user"
// @Param page query int false "Page number, default: 1"
// @Param count query int false "Items per page, default: 20, max: 100"
// @Success 200 {array} models.CourseListItem
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/courses [get]
func (h *CourseHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var ownerID *string
	if userID := strings.TrimSpace(query.Get("userId")); userID != "" {
		ownerID = &userID
	}

	page, err := intQuery(query.Get("page"), 1)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "page must be a number")
		return
	}
	count, err := intQuery(query.Get("count"), 20)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "count must be a number")
		return
	}

	courses, err := h.courses.ListCourses(r.Context(), ownerID, page, count)
	if err != nil {
		h.respondAppError(w, r, err, "failed to list courses")
		return
	}

	h.respondJSON(w, http.StatusOK, courses)
}

func intQuery(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.Validation("invalid number")
	}
	return n, nil
}
