package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultElevenLabsBaseURL = "https://api.elevenlabs.io/v1"
	elevenLabsModel          = "eleven_multilingual_v2"
	elevenLabsOutputFormat   = "mp3_22050_32"

	// DefaultVoiceID is the "Adam" stock voice.
	DefaultVoiceID = "pNInz6obpgDQGcFmaJgB"
)

// ElevenLabsSynthesizer calls the ElevenLabs text-to-speech API and returns
// MP3 bytes.
type ElevenLabsSynthesizer struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewElevenLabsSynthesizer creates an ElevenLabs TTS client.
func NewElevenLabsSynthesizer(apiKey string, timeout time.Duration) *ElevenLabsSynthesizer {
	return &ElevenLabsSynthesizer{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    defaultElevenLabsBaseURL,
		apiKey:     apiKey,
	}
}

type synthesisRequest struct {
	Text    string `json:"text"`
	ModelID string `json:"model_id"`
}

// Synthesize converts text to MP3 audio with the given voice, defaulting to
// the Adam voice when voiceID is empty.
func (s *ElevenLabsSynthesizer) Synthesize(ctx context.Context, text, voiceID string) ([]byte, error) {
	if s.apiKey == "" {
		return nil, errors.New("elevenlabs: missing ELEVENLABS_API_KEY")
	}
	if voiceID == "" {
		voiceID = DefaultVoiceID
	}

	payload, err := json.Marshal(synthesisRequest{Text: text, ModelID: elevenLabsModel})
	if err != nil {
		return nil, fmt.Errorf("elevenlabs: %w", err)
	}

	url := fmt.Sprintf("%s/text-to-speech/%s?optimize_streaming_latency=0&output_format=%s",
		s.baseURL, voiceID, elevenLabsOutputFormat)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("elevenlabs: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("xi-api-key", s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("elevenlabs: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("elevenlabs: failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("elevenlabs: unexpected status %d: %s", resp.StatusCode, truncate(body, 256))
	}
	return body, nil
}
