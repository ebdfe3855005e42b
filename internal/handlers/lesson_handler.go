package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/lessonforge/backend/internal/models"
	"github.com/lessonforge/backend/internal/services"
	"go.uber.org/zap"
)

// EnrichmentService is the interface that wraps synchronous lesson enrichment.
type EnrichmentService interface {
	// Method EnrichLesson generates content blocks for the lesson and replaces its stored content.
	//
	// Returns the updated lesson. Nothing is persisted when an error is returned.
	EnrichLesson(ctx context.Context, req services.EnrichLessonRequest) (*models.Lesson, error)
}

// EnrichmentQueueService is the interface that wraps background lesson enrichment.
type EnrichmentQueueService interface {
	// Method EnqueueEnrichment schedules enrichment and returns the task ID.
	EnqueueEnrichment(ctx context.Context, req services.EnrichLessonRequest) (string, error)
}

// ProgressService is the interface that wraps lesson completion tracking.
type ProgressService interface {
	// Method ToggleCompletion sets completion to explicit, or flips it when explicit is nil.
	//
	// Returns the stored completion value.
	ToggleCompletion(ctx context.Context, lessonID string, explicit *bool) (bool, error)
}

// LessonHandler handles HTTP requests for lessons
type LessonHandler struct {
	BaseHandler
	enrichment EnrichmentService
	queue      EnrichmentQueueService
	progress   ProgressService
	lessons    CourseService
}

// NewLessonHandler creates a new lesson handler
func NewLessonHandler(
	enrichment EnrichmentService,
	queue EnrichmentQueueService,
	progress ProgressService,
	lessons CourseService,
	logger *zap.Logger,
) *LessonHandler {
	return &LessonHandler{
		BaseHandler: BaseHandler{Logger: logger},
		enrichment:  enrichment,
		queue:       queue,
		progress:    progress,
		lessons:     lessons,
	}
}

// RegisterRoutes registers the lesson read and progress routes
func (h *LessonHandler) RegisterRoutes(r chi.Router) {
	r.Route("/lessons/{id}", func(r chi.Router) {
		r.Get("/", h.GetLesson)
		r.Put("/complete", h.ToggleCompletion)
	})
}

// RegisterGenerationRoutes registers the enrichment routes
func (h *LessonHandler) RegisterGenerationRoutes(r chi.Router) {
	r.Post("/generate-lesson", h.GenerateLesson)
	if h.queue != nil {
		r.Post("/generate-lesson/async", h.EnqueueLesson)
	}
}

// GenerateLesson handles POST /api/generate-lesson
// @Summary Generate lesson content
// @Description Generate content blocks for a lesson and replace its stored content
// @Tags lessons
// @Accept json
// @Produce json
// @Param request body models.GenerateLessonRequest true "Lesson context"
// @Success 200 {object} models.GenerateLessonResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/generate-lesson [post]
func (h *LessonHandler) GenerateLesson(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeEnrichRequest(w, r)
	if !ok {
		return
	}

	lesson, err := h.enrichment.EnrichLesson(r.Context(), req)
	if err != nil {
		h.respondAppError(w, r, err, "failed to generate lesson content")
		return
	}

	h.respondJSON(w, http.StatusOK, models.GenerateLessonResponse{
		LessonID: lesson.ID,
		Message:  "Lesson content generated and saved successfully",
		Lesson:   lesson,
	})
}

// EnqueueLesson handles POST /api/generate-lesson/async
// @Summary Queue lesson content generation
// @Description Schedule content generation for a lesson on the background worker
// @Tags lessons
// @Accept json
// @Produce json
// @Param request body models.GenerateLessonRequest true "Lesson context"
// @Success 202 {object} models.EnqueueLessonResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/generate-lesson/async [post]
func (h *LessonHandler) EnqueueLesson(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeEnrichRequest(w, r)
	if !ok {
		return
	}

	taskID, err := h.queue.EnqueueEnrichment(r.Context(), req)
	if err != nil {
		h.respondAppError(w, r, err, "failed to queue lesson generation")
		return
	}

	h.respondJSON(w, http.StatusAccepted, models.EnqueueLessonResponse{
		LessonID: req.LessonID,
		TaskID:   taskID,
		Message:  "Lesson generation queued",
	})
}

// GetLesson handles GET /api/lessons/{id}
// @Summary Get a lesson
// @Description Get a lesson with its content blocks
// @Tags lessons
// @Produce json
// @Param id path string true "Lesson ID"
// @Success 200 {object} models.Lesson
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/lessons/{id} [get]
func (h *LessonHandler) GetLesson(w http.ResponseWriter, r *http.Request) {
	lesson, err := h.lessons.GetLesson(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondAppError(w, r, err, "failed to get lesson")
		return
	}

	h.respondJSON(w, http.StatusOK, lesson)
}

// ToggleCompletion handles PUT /api/lessons/{id}/complete
// @Summary Toggle lesson completion
// @Description Set the completion flag, or flip it when the body omits isCompleted
// @Tags lessons
// @Accept json
// @Produce json
// @Param id path string true "Lesson ID"
// @Param request body models.ToggleCompletionRequest false "Explicit completion value"
// @Success 200 {object} models.ToggleCompletionResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/lessons/{id}/complete [put]
func (h *LessonHandler) ToggleCompletion(w http.ResponseWriter, r *http.Request) {
	var req models.ToggleCompletionRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		h.respondAppError(w, r, err, "failed to update lesson")
		return
	}

	completed, err := h.progress.ToggleCompletion(r.Context(), chi.URLParam(r, "id"), req.IsCompleted)
	if err != nil {
		h.respondAppError(w, r, err, "failed to update lesson")
		return
	}

	message := "Lesson marked as incomplete"
	if completed {
		message = "Lesson marked as complete"
	}
	h.respondJSON(w, http.StatusOK, models.ToggleCompletionResponse{
		Message:     message,
		IsCompleted: completed,
	})
}

// decodeEnrichRequest reads and checks the lesson context shared by both generation routes
func (h *LessonHandler) decodeEnrichRequest(w http.ResponseWriter, r *http.Request) (services.EnrichLessonRequest, bool) {
	var body models.GenerateLessonRequest
	if err := decodeJSON(r, &body); err != nil {
		h.respondAppError(w, r, err, "failed to generate lesson content")
		return services.EnrichLessonRequest{}, false
	}

	req := services.EnrichLessonRequest{
		LessonID:    strings.TrimSpace(body.LessonID),
		CourseTitle: body.CourseTitle,
		ModuleTitle: body.ModuleTitle,
		LessonTitle: body.LessonTitle,
		Language:    body.Language,
	}
	if req.LessonID == "" || strings.TrimSpace(req.CourseTitle) == "" ||
		strings.TrimSpace(req.ModuleTitle) == "" || strings.TrimSpace(req.LessonTitle) == "" {
		h.respondError(w, http.StatusBadRequest, "Missing required lesson context")
		return services.EnrichLessonRequest{}, false
	}
	return req, true
}
