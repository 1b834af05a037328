package speech

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const (
	defaultOpenAIURL = "https://api.openai.com/v1/audio/transcriptions"
	whisperModel     = "whisper-1"
)

// WhisperTranscriber calls OpenAI's Whisper transcription endpoint.
type WhisperTranscriber struct {
	httpClient *http.Client
	url        string
	apiKey     string
}

// NewWhisperTranscriber creates an OpenAI Whisper transcription client.
func NewWhisperTranscriber(apiKey string, timeout time.Duration) *WhisperTranscriber {
	return &WhisperTranscriber{
		httpClient: &http.Client{Timeout: timeout},
		url:        defaultOpenAIURL,
		apiKey:     apiKey,
	}
}

func (t *WhisperTranscriber) Name() string { return "openai-whisper" }

func (t *WhisperTranscriber) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	if t.apiKey == "" {
		return "", errors.New("openai-whisper: missing OPENAI_API_KEY")
	}
	body, contentType, err := buildTranscriptionForm(audio, filename, whisperModel)
	if err != nil {
		return "", fmt.Errorf("openai-whisper: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, body)
	if err != nil {
		return "", fmt.Errorf("openai-whisper: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+t.apiKey)

	return doTranscriptionRequest(t.httpClient, req, "openai-whisper")
}
