package agent

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestClient(srv *httptest.Server, systemPrompt string) *Client {
	c := NewClient(Config{
		BaseURL:      srv.URL,
		APIKey:       "agent-key",
		Model:        "test-model",
		SystemPrompt: systemPrompt,
		Timeout:      5 * time.Second,
	})
	c.httpClient = srv.Client()
	return c
}

func TestChat_RequestAndReply(t *testing.T) {
	var gotPath, gotAuth string
	var gotReq chatCompletionRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		io.WriteString(w, `{"choices": [{"message": {"role": "assistant", "content": "hello back"}}]}`)
	}))
	defer srv.Close()

	reply, err := newTestClient(srv, "be nice").Chat(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if reply != "hello back" {
		t.Errorf("expected %q, got %q", "hello back", reply)
	}
	if gotPath != "/chat/completions" {
		t.Errorf("expected /chat/completions, got %q", gotPath)
	}
	if gotAuth != "Bearer agent-key" {
		t.Errorf("expected bearer auth, got %q", gotAuth)
	}
	if gotReq.Model != "test-model" || gotReq.Stream {
		t.Errorf("unexpected request: %+v", gotReq)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" || gotReq.Messages[1].Content != "hello" {
		t.Errorf("unexpected messages: %+v", gotReq.Messages)
	}
}

func TestChat_NoSystemPrompt(t *testing.T) {
	var gotReq chatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		io.WriteString(w, `{"choices": [{"message": {"content": "ok"}}]}`)
	}))
	defer srv.Close()

	if _, err := newTestClient(srv, "").Chat(context.Background(), "hi"); err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if len(gotReq.Messages) != 1 || gotReq.Messages[0].Role != "user" {
		t.Errorf("expected a single user message, got %+v", gotReq.Messages)
	}
}

func TestChat_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "overloaded"}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestClient(srv, "").Chat(context.Background(), "hi")
	if err == nil || !strings.Contains(err.Error(), "503") {
		t.Errorf("expected status error, got %v", err)
	}
}

func TestChat_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"choices": []}`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv, "").Chat(context.Background(), "hi")
	if err == nil || !strings.Contains(err.Error(), "no choices") {
		t.Errorf("expected no-choices error, got %v", err)
	}
}
