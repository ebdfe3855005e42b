package services

import (
	"bytes"
	"context"
	"strings"

	"github.com/lessonforge/backend/internal/apperr"
	"github.com/lessonforge/backend/internal/models"
	"go.uber.org/zap"
)

// DefaultNarrationLanguage is used when a narration request names no target language
const DefaultNarrationLanguage = "Hinglish"

// SpeechSynthesizer is the interface that wraps text-to-speech synthesis.
type SpeechSynthesizer interface {
	// Method Synthesize converts text to speech.
	//
	// "languageCode" is a speech locale code such as "hi" or "en".
	// "voice" optionally selects a voice; empty means the engine default.
	// Returns the audio segments in playback order and an error if any.
	Synthesize(ctx context.Context, text, languageCode, voice string) ([][]byte, error)
}

type narrationService struct {
	translator  TextGenerator
	synthesizer SpeechSynthesizer
	logger      *zap.Logger
}

// NewNarrationService creates a new narration service
func NewNarrationService(translator TextGenerator, synthesizer SpeechSynthesizer, logger *zap.Logger) *narrationService {
	return &narrationService{
		translator:  translator,
		synthesizer: synthesizer,
		logger:      logger,
	}
}

// Narrate translates text into the target language and synthesizes it as a single audio payload
func (s *narrationService) Narrate(ctx context.Context, req models.NarrateRequest) (*models.NarrationResult, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, apperr.Validation("text is required")
	}
	targetLanguage := strings.TrimSpace(req.TargetLanguage)
	if targetLanguage == "" {
		targetLanguage = DefaultNarrationLanguage
	}

	translated, err := s.translator.Generate(ctx, translationInstruction(targetLanguage), req.Text)
	if err != nil {
		s.logger.Error("translation call failed", zap.Error(err), zap.String("language", targetLanguage))
		return nil, upstreamError("translation failed", err)
	}
	translated = strings.TrimSpace(translated)
	if translated == "" {
		return nil, apperr.UpstreamParse("translation is empty", translated, nil)
	}

	code := ResolveLanguageCode(targetLanguage)
	segments, err := s.synthesizer.Synthesize(ctx, translated, code, strings.TrimSpace(req.VoiceName))
	if err != nil {
		s.logger.Error("speech synthesis failed", zap.Error(err), zap.String("language_code", code))
		return nil, upstreamError("speech synthesis failed", err)
	}
	if len(segments) == 0 {
		return nil, apperr.UpstreamUnavailable("speech synthesis returned no audio", nil)
	}

	return &models.NarrationResult{
		Audio:          bytes.Join(segments, nil),
		TranslatedText: translated,
		LanguageCode:   code,
	}, nil
}
