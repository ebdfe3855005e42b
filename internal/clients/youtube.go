package clients

import (
	"context"
	"fmt"
	"strings"

	"github.com/lessonforge/backend/internal/observability"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// YouTubeClient looks up videos with the YouTube Data API
type YouTubeClient struct {
	svc *youtube.Service
}

// NewYouTubeClient creates a search client authenticated with apiKey
func NewYouTubeClient(ctx context.Context, apiKey string, opts ...option.ClientOption) (*YouTubeClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("youtube api key is required")
	}

	svc, err := youtube.NewService(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}
	return &YouTubeClient{svc: svc}, nil
}

// SearchVideo returns the id of the top video for query, or "" when nothing matches
func (c *YouTubeClient) SearchVideo(ctx context.Context, query string) (videoID string, err error) {
	ctx, span := observability.StartSpan(ctx, "youtube.search", attribute.String("youtube.query", query))
	defer func() { observability.EndSpan(span, err) }()

	resp, err := c.svc.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("youtube search: %w", err)
	}

	for _, item := range resp.Items {
		if item != nil && item.Id != nil && item.Id.VideoId != "" {
			return item.Id.VideoId, nil
		}
	}
	return "", nil
}
