package speech

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestSynthesizer(srv *httptest.Server, apiKey string) *ElevenLabsSynthesizer {
	return &ElevenLabsSynthesizer{httpClient: srv.Client(), baseURL: srv.URL, apiKey: apiKey}
}

func TestSynthesize_RequestShape(t *testing.T) {
	mp3 := []byte{0xFF, 0xFB, 0x90, 0x00}
	var gotPath, gotKey, gotQuery string
	var gotBody synthesisRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotKey = r.Header.Get("xi-api-key")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write(mp3)
	}))
	defer srv.Close()

	audio, err := newTestSynthesizer(srv, "xi-key").Synthesize(context.Background(), "say this", "")
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	if string(audio) != string(mp3) {
		t.Errorf("audio bytes did not round-trip")
	}
	if gotPath != "/text-to-speech/"+DefaultVoiceID {
		t.Errorf("expected default voice path, got %q", gotPath)
	}
	if !strings.Contains(gotQuery, "output_format=mp3_22050_32") {
		t.Errorf("expected mp3_22050_32 output format, got query %q", gotQuery)
	}
	if gotKey != "xi-key" {
		t.Errorf("expected xi-api-key header, got %q", gotKey)
	}
	if gotBody.Text != "say this" || gotBody.ModelID != "eleven_multilingual_v2" {
		t.Errorf("unexpected request body: %+v", gotBody)
	}
}

func TestSynthesize_ExplicitVoice(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte{0x01})
	}))
	defer srv.Close()

	if _, err := newTestSynthesizer(srv, "k").Synthesize(context.Background(), "hi", "voice-123"); err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	if gotPath != "/text-to-speech/voice-123" {
		t.Errorf("expected explicit voice path, got %q", gotPath)
	}
}

func TestSynthesize_MissingKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be sent without an API key")
	}))
	defer srv.Close()

	_, err := newTestSynthesizer(srv, "").Synthesize(context.Background(), "hi", "")
	if err == nil || !strings.Contains(err.Error(), "ELEVENLABS_API_KEY") {
		t.Errorf("expected missing-key error, got %v", err)
	}
}

func TestSynthesize_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail": "voice not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestSynthesizer(srv, "k").Synthesize(context.Background(), "hi", "nope")
	if err == nil || !strings.Contains(err.Error(), "404") {
		t.Errorf("expected status error, got %v", err)
	}
}
