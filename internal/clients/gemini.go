// Package clients adapts Google APIs to the collaborator interfaces used by the services
package clients

import (
	"context"
	"fmt"
	"strings"

	"github.com/lessonforge/backend/internal/observability"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/api/generativelanguage/v1beta"
	"google.golang.org/api/option"
)

// GeminiClient generates text with a Gemini model through the Generative Language API
type GeminiClient struct {
	svc   *generativelanguage.Service
	model string
}

// NewGeminiClient creates a client bound to model. Extra options are appended after the API key.
func NewGeminiClient(ctx context.Context, apiKey, model string, opts ...option.ClientOption) (*GeminiClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("gemini model is required")
	}

	svc, err := generativelanguage.NewService(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create generative language service: %w", err)
	}

	return &GeminiClient{svc: svc, model: strings.TrimPrefix(model, "models/")}, nil
}

// Generate sends instruction as the system instruction and content as the single user turn.
// It returns the concatenated text of the first candidate, unvalidated.
func (c *GeminiClient) Generate(ctx context.Context, instruction, content string) (text string, err error) {
	ctx, span := observability.StartSpan(ctx, "gemini.generateContent",
		attribute.String("gemini.model", c.model),
		attribute.Int("gemini.prompt_chars", len(content)),
	)
	defer func() { observability.EndSpan(span, err) }()

	req := &generativelanguage.GenerateContentRequest{
		SystemInstruction: &generativelanguage.Content{
			Parts: []*generativelanguage.Part{{Text: instruction}},
		},
		Contents: []*generativelanguage.Content{
			{Role: "user", Parts: []*generativelanguage.Part{{Text: content}}},
		},
	}

	resp, err := c.svc.Models.GenerateContent("models/"+c.model, req).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("gemini blocked the prompt: %s", resp.PromptFeedback.BlockReason)
	}

	text = candidateText(resp)
	span.SetAttributes(attribute.Int("gemini.response_chars", len(text)))
	return text, nil
}

func candidateText(resp *generativelanguage.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}
