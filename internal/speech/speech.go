// Package speech holds the HTTP clients for the external speech providers:
// the Groq and OpenAI Whisper transcription APIs and the ElevenLabs
// text-to-speech API.
package speech

import "context"

// Transcriber converts recorded audio into text. One call is one attempt
// against one backend; fallback between backends is the caller's policy.
type Transcriber interface {
	// Transcribe sends the audio bytes (a .wav upload) to the backend and
	// returns the recognized text.
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
	// Name identifies the backend in logs and aggregated errors.
	Name() string
}

// Synthesizer converts text into audio bytes.
type Synthesizer interface {
	// Synthesize returns encoded audio for the given text. An empty voiceID
	// selects the implementation's default voice.
	Synthesize(ctx context.Context, text, voiceID string) ([]byte, error)
}
