package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"
)

const (
	defaultGroqURL = "https://api.groq.com/openai/v1/audio/transcriptions"
	groqModel      = "whisper-large-v3"
)

// GroqTranscriber calls Groq's OpenAI-compatible Whisper endpoint.
type GroqTranscriber struct {
	httpClient *http.Client
	url        string
	apiKey     string
}

// NewGroqTranscriber creates a Groq transcription client. An empty apiKey is
// accepted here and reported as an error at call time, so a misconfigured
// primary backend still lets the fallback engage.
func NewGroqTranscriber(apiKey string, timeout time.Duration) *GroqTranscriber {
	return &GroqTranscriber{
		httpClient: &http.Client{Timeout: timeout},
		url:        defaultGroqURL,
		apiKey:     apiKey,
	}
}

func (t *GroqTranscriber) Name() string { return "groq" }

// Transcribe uploads the audio as multipart form data with the model field
// and returns the text of the response body.
func (t *GroqTranscriber) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	if t.apiKey == "" {
		return "", errors.New("groq: missing GROQ_API_KEY")
	}
	body, contentType, err := buildTranscriptionForm(audio, filename, groqModel)
	if err != nil {
		return "", fmt.Errorf("groq: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, body)
	if err != nil {
		return "", fmt.Errorf("groq: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+t.apiKey)

	return doTranscriptionRequest(t.httpClient, req, "groq")
}

// buildTranscriptionForm writes the whisper-style multipart payload: the
// audio file with an explicit name and audio/wav content type, plus the
// model field.
func buildTranscriptionForm(audio []byte, filename, model string) (*bytes.Buffer, string, error) {
	if filename == "" {
		filename = "audio.wav"
	}
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	header.Set("Content-Type", "audio/wav")
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return nil, "", fmt.Errorf("failed to write audio bytes: %w", err)
	}
	if err := writer.WriteField("model", model); err != nil {
		return nil, "", fmt.Errorf("failed to write model field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize form: %w", err)
	}
	return &buf, writer.FormDataContentType(), nil
}

// doTranscriptionRequest executes the request and decodes the common
// `{"text": "..."}` response shape both Whisper APIs share.
func doTranscriptionRequest(client *http.Client, req *http.Request, backend string) (string, error) {
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: request failed: %w", backend, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%s: failed to read response: %w", backend, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s: unexpected status %d: %s", backend, resp.StatusCode, truncate(respBody, 256))
	}

	var parsed struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("%s: malformed response: %w", backend, err)
	}
	return parsed.Text, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
