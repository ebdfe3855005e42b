package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/lessonforge/backend/internal/apperr"
	"github.com/lessonforge/backend/internal/middleware"
	"go.uber.org/zap"
)

// BaseHandler holds the response helpers shared by all handlers
type BaseHandler struct {
	Logger *zap.Logger
}

// respondJSON sends a JSON response
func (h *BaseHandler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// respondError sends an error JSON response
func (h *BaseHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// respondAppError maps a classified error to its status.
// Client errors keep their own message; server-side failures answer with fallback so no internals leak.
func (h *BaseHandler) respondAppError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		appErr = apperr.Persistence(fallback, err)
	}

	fields := []zap.Field{
		zap.String("request_id", middleware.GetRequestID(r.Context())),
		zap.String("kind", string(appErr.Kind)),
		zap.Error(err),
	}
	if appErr.Raw != "" {
		fields = append(fields, zap.String("raw", appErr.Raw))
	}

	status := appErr.Status()
	if status >= http.StatusInternalServerError {
		h.Logger.Error(fallback, fields...)
		h.respondError(w, status, fallback)
		return
	}

	h.Logger.Warn(fallback, fields...)
	h.respondError(w, status, appErr.Message)
}

// decodeJSON reads the request body into dst
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Validation("invalid request body")
	}
	return nil
}

// decodeOptionalJSON is decodeJSON for endpoints whose body may be omitted
func decodeOptionalJSON(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return apperr.Validation("invalid request body")
}
