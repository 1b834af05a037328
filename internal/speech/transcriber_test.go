package speech

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestGroq(srv *httptest.Server, apiKey string) *GroqTranscriber {
	return &GroqTranscriber{httpClient: srv.Client(), url: srv.URL, apiKey: apiKey}
}

func newTestWhisper(srv *httptest.Server, apiKey string) *WhisperTranscriber {
	return &WhisperTranscriber{httpClient: srv.Client(), url: srv.URL, apiKey: apiKey}
}

func TestGroqTranscriber_SendsWhisperForm(t *testing.T) {
	var gotAuth, gotModel, gotFilename string
	var gotAudio []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("failed to parse multipart form: %v", err)
		}
		gotModel = r.FormValue("model")
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("missing file part: %v", err)
		} else {
			defer file.Close()
			gotFilename = header.Filename
			gotAudio, _ = io.ReadAll(file)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"text": "hello world"}`)
	}))
	defer srv.Close()

	text, err := newTestGroq(srv, "test-key").Transcribe(context.Background(), []byte("RIFFdata"), "clip.wav")
	if err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}
	if text != "hello world" {
		t.Errorf("expected %q, got %q", "hello world", text)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("expected bearer auth header, got %q", gotAuth)
	}
	if gotModel != "whisper-large-v3" {
		t.Errorf("expected model whisper-large-v3, got %q", gotModel)
	}
	if gotFilename != "clip.wav" {
		t.Errorf("expected filename clip.wav, got %q", gotFilename)
	}
	if string(gotAudio) != "RIFFdata" {
		t.Errorf("audio bytes did not round-trip: %q", gotAudio)
	}
}

func TestGroqTranscriber_MissingKeyFailsWithoutRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be sent without an API key")
	}))
	defer srv.Close()

	_, err := newTestGroq(srv, "").Transcribe(context.Background(), []byte("x"), "a.wav")
	if err == nil || !strings.Contains(err.Error(), "GROQ_API_KEY") {
		t.Errorf("expected missing-key error, got %v", err)
	}
}

func TestGroqTranscriber_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestGroq(srv, "k").Transcribe(context.Background(), []byte("x"), "a.wav")
	if err == nil || !strings.Contains(err.Error(), "429") {
		t.Errorf("expected status error, got %v", err)
	}
}

func TestWhisperTranscriber_UsesWhisper1Model(t *testing.T) {
	var gotModel string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("failed to parse multipart form: %v", err)
		}
		gotModel = r.FormValue("model")
		io.WriteString(w, `{"text": "bonjour"}`)
	}))
	defer srv.Close()

	text, err := newTestWhisper(srv, "k").Transcribe(context.Background(), []byte("x"), "")
	if err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}
	if text != "bonjour" {
		t.Errorf("expected %q, got %q", "bonjour", text)
	}
	if gotModel != "whisper-1" {
		t.Errorf("expected model whisper-1, got %q", gotModel)
	}
}

func TestTranscriber_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "not json at all")
	}))
	defer srv.Close()

	_, err := newTestWhisper(srv, "k").Transcribe(context.Background(), []byte("x"), "a.wav")
	if err == nil || !strings.Contains(err.Error(), "malformed response") {
		t.Errorf("expected malformed-response error, got %v", err)
	}
}

func TestTranscriber_ContextTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		io.WriteString(w, `{"text": "too late"}`)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := newTestGroq(srv, "k").Transcribe(ctx, []byte("x"), "a.wav"); err == nil {
		t.Error("expected a timeout error")
	}
}
