package handlers

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/lessonforge/backend/internal/models"
	"go.uber.org/zap"
)

// NarrationService is the interface that wraps translation plus speech synthesis.
type NarrationService interface {
	// Method Narrate translates the text into the target language and synthesizes it.
	//
	// An empty target language means Hinglish.
	Narrate(ctx context.Context, req models.NarrateRequest) (*models.NarrationResult, error)
}

// VideoService is the interface that wraps video lookup for video blocks.
type VideoService interface {
	// Method ResolveVideo returns the ID of the best video for query.
	ResolveVideo(ctx context.Context, query string) (string, error)
}

// MediaHandler handles narration and video lookup requests
type MediaHandler struct {
	BaseHandler
	narration NarrationService
	videos    VideoService
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(narration NarrationService, videos VideoService, logger *zap.Logger) *MediaHandler {
	return &MediaHandler{
		BaseHandler: BaseHandler{Logger: logger},
		narration:   narration,
		videos:      videos,
	}
}

// RegisterRoutes registers the media routes
func (h *MediaHandler) RegisterRoutes(r chi.Router) {
	r.Post("/generate-audio", h.GenerateAudio)
	r.Get("/youtube", h.ResolveVideo)
}

// GenerateAudio handles POST /api/generate-audio
// @Summary Narrate text
// @Description Translate text into the target language and return MP3 narration as base64
// @Tags media
// @Accept json
// @Produce json
// @Param request body models.NarrateRequest true "Text to narrate"
// @Success 200 {object} models.NarrateResponse
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /api/generate-audio [post]
func (h *MediaHandler) GenerateAudio(w http.ResponseWriter, r *http.Request) {
	var req models.NarrateRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondAppError(w, r, err, "Failed to generate audio")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		h.respondError(w, http.StatusBadRequest, "Text is required")
		return
	}

	result, err := h.narration.Narrate(r.Context(), req)
	if err != nil {
		h.respondAppError(w, r, err, "Failed to generate audio")
		return
	}

	h.respondJSON(w, http.StatusOK, models.NarrateResponse{
		AudioBase64:    base64.StdEncoding.EncodeToString(result.Audio),
		TranslatedText: result.TranslatedText,
	})
}

// ResolveVideo handles GET /api/youtube
// @Summary Find a video
// @Description Resolve a video block query to a YouTube video ID
// @Tags media
// @Produce json
// @Param query query string true "Search query"
// @Success 200 {object} models.VideoResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /api/youtube [get]
func (h *MediaHandler) ResolveVideo(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		h.respondError(w, http.StatusBadRequest, "Query parameter is required")
		return
	}

	videoID, err := h.videos.ResolveVideo(r.Context(), query)
	if err != nil {
		h.respondAppError(w, r, err, "Internal server error while searching YouTube")
		return
	}

	h.respondJSON(w, http.StatusOK, models.VideoResponse{VideoID: videoID})
}
