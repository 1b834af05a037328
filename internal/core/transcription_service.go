package core

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/deepanshu-striker/inter-chat/internal/speech"
)

// transcriptionService implements the TranscriptionService interface with a
// two-backend fallback: one attempt against the primary, and on any error
// one attempt against the secondary. No retry loop within a backend.
type transcriptionService struct {
	primary   speech.Transcriber
	secondary speech.Transcriber
	logger    *zap.Logger
}

// NewTranscriptionService creates a TranscriptionService with a fixed
// backend order. Which backend is primary is decided once at startup from
// configuration.
func NewTranscriptionService(primary, secondary speech.Transcriber, logger *zap.Logger) TranscriptionService {
	return &transcriptionService{primary: primary, secondary: secondary, logger: logger}
}

// Transcribe returns the first successful transcript. When the primary
// backend fails for any reason (network error, malformed response, missing
// credential) the failure is logged and the secondary is tried; when both
// fail the returned error carries both causes.
func (s *transcriptionService) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	text, primaryErr := s.primary.Transcribe(ctx, audio, filename)
	if primaryErr == nil {
		return text, nil
	}
	s.logger.Warn("primary transcription backend failed, falling back",
		zap.String("primary", s.primary.Name()),
		zap.String("secondary", s.secondary.Name()),
		zap.Error(primaryErr))

	text, secondaryErr := s.secondary.Transcribe(ctx, audio, filename)
	if secondaryErr == nil {
		return text, nil
	}
	return "", fmt.Errorf("%w: %s: %v; %s: %v",
		ErrTranscriptionFailed,
		s.primary.Name(), primaryErr,
		s.secondary.Name(), secondaryErr)
}
