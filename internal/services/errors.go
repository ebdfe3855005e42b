package services

import (
	"errors"

	"github.com/lessonforge/backend/internal/apperr"
)

// upstreamError classifies a failed collaborator call, keeping an existing classification
func upstreamError(message string, err error) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperr.UpstreamUnavailable(message, err)
}

// rawText returns the diagnostic text attached to a parse failure
func rawText(err error) string {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return appErr.Raw
	}
	return ""
}
