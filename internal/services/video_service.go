package services

import (
	"context"
	"strings"

	"github.com/lessonforge/backend/internal/apperr"
	"go.uber.org/zap"
)

// VideoSearcher is the interface that wraps video search.
type VideoSearcher interface {
	// Method SearchVideo returns the ID of the best matching video, or an empty string if none matched.
	SearchVideo(ctx context.Context, query string) (string, error)
}

type videoService struct {
	searcher VideoSearcher
	logger   *zap.Logger
}

// NewVideoService creates a new video service. A nil searcher means video search is not configured.
func NewVideoService(searcher VideoSearcher, logger *zap.Logger) *videoService {
	return &videoService{
		searcher: searcher,
		logger:   logger,
	}
}

// ResolveVideo resolves a video block query to a video ID
func (s *videoService) ResolveVideo(ctx context.Context, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", apperr.Validation("query parameter is required")
	}
	if s.searcher == nil {
		return "", apperr.UpstreamUnavailable("video search is not configured", nil)
	}

	videoID, err := s.searcher.SearchVideo(ctx, query)
	if err != nil {
		s.logger.Error("video search failed", zap.Error(err), zap.String("query", query))
		return "", upstreamError("video search failed", err)
	}
	if videoID == "" {
		return "", apperr.NotFound("no video found")
	}

	return videoID, nil
}
