package clients

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/lessonforge/backend/internal/observability"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/option"
	"google.golang.org/api/texttospeech/v1"
)

const (
	// DefaultMaxChunkChars is the longest text sent in one synthesis request
	DefaultMaxChunkChars = 200
	speechEncoding       = "MP3"
	maxParallelSynthesis = 4
)

// SpeechClient synthesizes MP3 audio with Cloud Text-to-Speech
type SpeechClient struct {
	svc           *texttospeech.Service
	maxChunkChars int
}

// NewSpeechClient creates a text-to-speech client. maxChunkChars <= 0 selects DefaultMaxChunkChars.
func NewSpeechClient(ctx context.Context, apiKey string, maxChunkChars int, opts ...option.ClientOption) (*SpeechClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("text-to-speech api key is required")
	}
	if maxChunkChars <= 0 {
		maxChunkChars = DefaultMaxChunkChars
	}

	svc, err := texttospeech.NewService(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create text-to-speech service: %w", err)
	}

	return &SpeechClient{svc: svc, maxChunkChars: maxChunkChars}, nil
}

// Synthesize splits text at punctuation and returns one MP3 segment per chunk, in text order
func (c *SpeechClient) Synthesize(ctx context.Context, text, languageCode, voice string) (segments [][]byte, err error) {
	chunks := SplitText(text, c.maxChunkChars, SpeechSplitPunct)

	ctx, span := observability.StartSpan(ctx, "tts.synthesize",
		attribute.String("tts.language_code", languageCode),
		attribute.Int("tts.chunks", len(chunks)),
	)
	defer func() { observability.EndSpan(span, err) }()

	segments = make([][]byte, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelSynthesis)
	for i, chunk := range chunks {
		g.Go(func() error {
			audio, err := c.synthesizeChunk(gctx, chunk, languageCode, voice)
			if err != nil {
				return fmt.Errorf("chunk %d: %w", i, err)
			}
			segments[i] = audio
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return segments, nil
}

func (c *SpeechClient) synthesizeChunk(ctx context.Context, chunk, languageCode, voice string) ([]byte, error) {
	req := &texttospeech.SynthesizeSpeechRequest{
		Input: &texttospeech.SynthesisInput{Text: chunk},
		Voice: &texttospeech.VoiceSelectionParams{
			LanguageCode: languageCode,
			Name:         voice,
		},
		AudioConfig: &texttospeech.AudioConfig{AudioEncoding: speechEncoding},
	}

	resp, err := c.svc.Text.Synthesize(req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("text-to-speech synthesize: %w", err)
	}

	audio, err := base64.StdEncoding.DecodeString(resp.AudioContent)
	if err != nil {
		return nil, fmt.Errorf("failed to decode audio content: %w", err)
	}
	return audio, nil
}
