package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/lessonforge/backend/internal/apperr"
	"github.com/lessonforge/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newRouter(register ...func(chi.Router)) chi.Router {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		for _, fn := range register {
			fn(r)
		}
	})
	return r
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestCourseHandler_GenerateCourse(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockCourseID   string
		mockErr        error
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "success",
			body:           `{"topic":"Photosynthesis","userId":"user-1"}`,
			mockCourseID:   "course-1",
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "blank topic",
			body:           `{"topic":"   "}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Topic is required",
		},
		{
			name:           "malformed body",
			body:           `{"topic":`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid request body",
		},
		{
			name:           "unparseable model output",
			body:           `{"topic":"Photosynthesis"}`,
			mockErr:        apperr.UpstreamParse("invalid outline", "not json", nil),
			expectedStatus: http.StatusBadGateway,
			expectedError:  "failed to generate course",
		},
		{
			name:           "model unavailable",
			body:           `{"topic":"Photosynthesis"}`,
			mockErr:        apperr.UpstreamUnavailable("generator failed", errors.New("timeout")),
			expectedStatus: http.StatusServiceUnavailable,
			expectedError:  "failed to generate course",
		},
		{
			name:           "unclassified error",
			body:           `{"topic":"Photosynthesis"}`,
			mockErr:        errors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "failed to generate course",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outlines := &mockOutlineService{courseID: tt.mockCourseID, err: tt.mockErr}
			h := NewCourseHandler(outlines, &mockCourseService{}, zap.NewNop())
			router := newRouter(h.RegisterGenerationRoutes)

			w := doRequest(t, router, http.MethodPost, "/api/generate-course", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			body := decodeBody(t, w)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, body["error"])
				return
			}
			assert.Equal(t, tt.mockCourseID, body["courseId"])
			assert.NotEmpty(t, body["message"])
			assert.Equal(t, "Photosynthesis", outlines.gotTopic)
			require.NotNil(t, outlines.gotOwnerID)
			assert.Equal(t, "user-1", *outlines.gotOwnerID)
		})
	}
}

func TestCourseHandler_RawNeverReachesClient(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	outlines := &mockOutlineService{err: apperr.UpstreamParse("invalid outline", "SECRET MODEL TEXT", nil)}
	h := NewCourseHandler(outlines, &mockCourseService{}, zap.New(core))

	w := doRequest(t, newRouter(h.RegisterGenerationRoutes), http.MethodPost, "/api/generate-course", `{"topic":"Go"}`)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.NotContains(t, w.Body.String(), "SECRET MODEL TEXT")
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "SECRET MODEL TEXT", logs.All()[0].ContextMap()["raw"])
}

func TestCourseHandler_GetCourse(t *testing.T) {
	tests := []struct {
		name           string
		mockCourse     *models.CourseDetailResponse
		mockErr        error
		expectedStatus int
	}{
		{
			name: "success",
			mockCourse: &models.CourseDetailResponse{
				ID:    "course-1",
				Title: "Go",
				Modules: []models.ModuleDetailResponse{
					{ID: "m1", Title: "Basics", Lessons: []models.LessonSummary{{ID: "l1", Title: "Types"}}},
				},
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "not found",
			mockErr:        apperr.NotFound("course not found"),
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "persistence failure",
			mockErr:        apperr.Persistence("failed to get course", errors.New("db down")),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewCourseHandler(&mockOutlineService{}, &mockCourseService{course: tt.mockCourse, err: tt.mockErr}, zap.NewNop())

			w := doRequest(t, newRouter(h.RegisterRoutes), http.MethodGet, "/api/courses/course-1", "")

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.mockCourse != nil {
				var got models.CourseDetailResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
				assert.Equal(t, *tt.mockCourse, got)
			}
		})
	}
}

func TestCourseHandler_ListCourses(t *testing.T) {
	tests := []struct {
		name            string
		target          string
		expectedStatus  int
		expectedOwnerID *string
		expectedPage    int
		expectedCount   int
	}{
		{
			name:           "defaults",
			target:         "/api/courses",
			expectedStatus: http.StatusOK,
			expectedPage:   1,
			expectedCount:  20,
		},
		{
			name:            "owner filter and paging",
			target:          "/api/courses?userId=user-1&page=2&count=5",
			expectedStatus:  http.StatusOK,
			expectedOwnerID: strPtr("user-1"),
			expectedPage:    2,
			expectedCount:   5,
		},
		{
			name:           "invalid page",
			target:         "/api/courses?page=abc",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			courses := &mockCourseService{courses: []models.CourseListItem{{ID: "c1", Title: "Go"}}}
			h := NewCourseHandler(&mockOutlineService{}, courses, zap.NewNop())

			w := doRequest(t, newRouter(h.RegisterRoutes), http.MethodGet, tt.target, "")

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus != http.StatusOK {
				return
			}
			assert.Equal(t, tt.expectedOwnerID, courses.gotOwnerID)
			assert.Equal(t, tt.expectedPage, courses.gotPage)
			assert.Equal(t, tt.expectedCount, courses.gotCount)
			assert.JSONEq(t, `[{"id":"c1","title":"Go"}]`, w.Body.String())
		})
	}
}

func TestLessonHandler_GenerateLesson(t *testing.T) {
	validBody := `{"lessonId":"l1","courseTitle":"Go","moduleTitle":"Basics","lessonTitle":"Types"}`

	tests := []struct {
		name           string
		body           string
		mockErr        error
		expectedStatus int
	}{
		{name: "success", body: validBody, expectedStatus: http.StatusOK},
		{name: "missing lesson id", body: `{"courseTitle":"Go","moduleTitle":"Basics","lessonTitle":"Types"}`, expectedStatus: http.StatusBadRequest},
		{name: "missing module title", body: `{"lessonId":"l1","courseTitle":"Go","lessonTitle":"Types"}`, expectedStatus: http.StatusBadRequest},
		{name: "lesson not found", body: validBody, mockErr: apperr.NotFound("lesson not found"), expectedStatus: http.StatusNotFound},
		{name: "enrichment in flight", body: validBody, mockErr: apperr.Conflict("lesson enrichment already in progress"), expectedStatus: http.StatusConflict},
		{name: "contract violation", body: validBody, mockErr: apperr.UpstreamParse("need 4 mcq", "[]", nil), expectedStatus: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enrichment := &mockEnrichmentService{
				lesson: &models.Lesson{ID: "l1", Title: "Types", IsEnriched: true},
				err:    tt.mockErr,
			}
			h := NewLessonHandler(enrichment, nil, &mockProgressService{}, &mockCourseService{}, zap.NewNop())

			w := doRequest(t, newRouter(h.RegisterGenerationRoutes), http.MethodPost, "/api/generate-lesson", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus != http.StatusOK {
				return
			}
			var got models.GenerateLessonResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, "l1", got.LessonID)
			assert.Equal(t, "Lesson content generated and saved successfully", got.Message)
			require.NotNil(t, got.Lesson)
			assert.True(t, got.Lesson.IsEnriched)
			assert.Equal(t, "Basics", enrichment.got.ModuleTitle)
		})
	}
}

func TestLessonHandler_EnqueueLesson(t *testing.T) {
	body := `{"lessonId":"l1","courseTitle":"Go","moduleTitle":"Basics","lessonTitle":"Types"}`

	t.Run("accepted", func(t *testing.T) {
		h := NewLessonHandler(&mockEnrichmentService{}, &mockQueueService{taskID: "lesson:enrich:l1"}, &mockProgressService{}, &mockCourseService{}, zap.NewNop())

		w := doRequest(t, newRouter(h.RegisterGenerationRoutes), http.MethodPost, "/api/generate-lesson/async", body)

		assert.Equal(t, http.StatusAccepted, w.Code)
		got := decodeBody(t, w)
		assert.Equal(t, "l1", got["lessonId"])
		assert.Equal(t, "lesson:enrich:l1", got["taskId"])
	})

	t.Run("already queued", func(t *testing.T) {
		h := NewLessonHandler(&mockEnrichmentService{}, &mockQueueService{err: apperr.Conflict("lesson enrichment already queued")}, &mockProgressService{}, &mockCourseService{}, zap.NewNop())

		w := doRequest(t, newRouter(h.RegisterGenerationRoutes), http.MethodPost, "/api/generate-lesson/async", body)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("route absent without queue", func(t *testing.T) {
		h := NewLessonHandler(&mockEnrichmentService{}, nil, &mockProgressService{}, &mockCourseService{}, zap.NewNop())

		w := doRequest(t, newRouter(h.RegisterGenerationRoutes), http.MethodPost, "/api/generate-lesson/async", body)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestLessonHandler_ToggleCompletion(t *testing.T) {
	tests := []struct {
		name             string
		body             string
		mockCompleted    bool
		mockErr          error
		expectedStatus   int
		expectedExplicit *bool
		expectedMessage  string
	}{
		{
			name:            "flip without body",
			body:            "",
			mockCompleted:   true,
			expectedStatus:  http.StatusOK,
			expectedMessage: "Lesson marked as complete",
		},
		{
			name:             "explicit false",
			body:             `{"isCompleted":false}`,
			mockCompleted:    false,
			expectedStatus:   http.StatusOK,
			expectedExplicit: boolPtr(false),
			expectedMessage:  "Lesson marked as incomplete",
		},
		{
			name:           "malformed body",
			body:           `{"isCompleted":`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown lesson",
			body:           "",
			mockErr:        apperr.NotFound("lesson not found"),
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			progress := &mockProgressService{completed: tt.mockCompleted, err: tt.mockErr}
			h := NewLessonHandler(&mockEnrichmentService{}, nil, progress, &mockCourseService{}, zap.NewNop())

			w := doRequest(t, newRouter(h.RegisterRoutes), http.MethodPut, "/api/lessons/l1/complete", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus != http.StatusOK {
				return
			}
			assert.Equal(t, "l1", progress.gotLessonID)
			assert.Equal(t, tt.expectedExplicit, progress.gotExplicit)
			got := decodeBody(t, w)
			assert.Equal(t, tt.mockCompleted, got["isCompleted"])
			assert.Equal(t, tt.expectedMessage, got["message"])
		})
	}
}

func TestLessonHandler_GetLesson(t *testing.T) {
	lesson := &models.Lesson{
		ID:    "l1",
		Title: "Types",
		ContentBlocks: models.ContentBlocks{
			models.HeadingBlock{Text: "Types"},
			models.ParagraphBlock{Text: "Go is statically typed."},
		},
	}
	h := NewLessonHandler(&mockEnrichmentService{}, nil, &mockProgressService{}, &mockCourseService{lesson: lesson}, zap.NewNop())

	w := doRequest(t, newRouter(h.RegisterRoutes), http.MethodGet, "/api/lessons/l1", "")

	assert.Equal(t, http.StatusOK, w.Code)
	var got models.Lesson
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, lesson.ContentBlocks, got.ContentBlocks)
}

func TestMediaHandler_GenerateAudio(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockResult     *models.NarrationResult
		mockErr        error
		expectedStatus int
		expectedAudio  string
	}{
		{
			name:           "success",
			body:           `{"text":"Hello","targetLanguage":"Hindi"}`,
			mockResult:     &models.NarrationResult{Audio: []byte("mp3"), TranslatedText: "Namaste", LanguageCode: "hi"},
			expectedStatus: http.StatusOK,
			expectedAudio:  "bXAz",
		},
		{
			name:           "missing text",
			body:           `{"targetLanguage":"Hindi"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "synthesis unavailable",
			body:           `{"text":"Hello"}`,
			mockErr:        apperr.UpstreamUnavailable("speech synthesis failed", errors.New("quota")),
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			narration := &mockNarrationService{result: tt.mockResult, err: tt.mockErr}
			h := NewMediaHandler(narration, &mockVideoService{}, zap.NewNop())

			w := doRequest(t, newRouter(h.RegisterRoutes), http.MethodPost, "/api/generate-audio", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus != http.StatusOK {
				return
			}
			got := decodeBody(t, w)
			assert.Equal(t, tt.expectedAudio, got["audioBase64"])
			assert.Equal(t, "Namaste", got["translatedText"])
			assert.Equal(t, "Hindi", narration.got.TargetLanguage)
		})
	}
}

func TestMediaHandler_ResolveVideo(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		mockVideoID    string
		mockErr        error
		expectedStatus int
	}{
		{name: "found", target: "/api/youtube?query=go+channels", mockVideoID: "abc", expectedStatus: http.StatusOK},
		{name: "missing query", target: "/api/youtube", expectedStatus: http.StatusBadRequest},
		{name: "no result", target: "/api/youtube?query=zzz", mockErr: apperr.NotFound("no video found"), expectedStatus: http.StatusNotFound},
		{name: "not configured", target: "/api/youtube?query=go", mockErr: apperr.UpstreamUnavailable("video search is not configured", nil), expectedStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewMediaHandler(&mockNarrationService{}, &mockVideoService{videoID: tt.mockVideoID, err: tt.mockErr}, zap.NewNop())

			w := doRequest(t, newRouter(h.RegisterRoutes), http.MethodGet, tt.target, "")

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.JSONEq(t, `{"videoId":"abc"}`, w.Body.String())
			}
		})
	}
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }
