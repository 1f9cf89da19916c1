package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func chatHandler(t *testing.T, answer string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected Authorization header %q", auth)
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[1].Role != "user" {
			t.Errorf("unexpected message shape %+v", req.Messages)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": answer}},
			},
		})
	}
}

// TestExtract_Basic verifies the request shape and answer extraction.
func TestExtract_Basic(t *testing.T) {
	server := httptest.NewServer(chatHandler(t, "  The price is $42.  "))
	defer server.Close()

	e := New(WithAPIKey("test-key"), WithBaseURL(server.URL))
	answer, err := e.Extract(context.Background(), "page text about prices", "what is the price?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != "The price is $42." {
		t.Errorf("expected trimmed answer, got %q", answer)
	}
}

// TestExtract_TruncatesLongInput verifies large pages are capped before the
// request is sent.
func TestExtract_TruncatesLongInput(t *testing.T) {
	var gotLen int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		json.NewDecoder(r.Body).Decode(&req)
		gotLen = len(req.Messages[1].Content)

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "ok"}},
			},
		})
	}))
	defer server.Close()

	e := New(WithAPIKey("test-key"), WithBaseURL(server.URL))
	if _, err := e.Extract(context.Background(), strings.Repeat("x", 200_000), "q"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLen > maxInputChars+1_000 {
		t.Errorf("expected input capped near %d chars, got %d", maxInputChars, gotLen)
	}
}

// TestExtract_Guards verifies the unconfigured and empty-query guards.
func TestExtract_Guards(t *testing.T) {
	if _, err := New(WithAPIKey("")).Extract(context.Background(), "text", "q"); err == nil {
		t.Error("expected error without API key")
	}
	if _, err := New(WithAPIKey("k")).Extract(context.Background(), "text", "   "); err == nil {
		t.Error("expected error for empty query")
	}
}

// TestExtract_EmptyResponse verifies empty or missing choices are errors so
// the engine can fall back to the normalized text.
func TestExtract_EmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(chatResponse{})
	}))
	defer server.Close()

	e := New(WithAPIKey("test-key"), WithBaseURL(server.URL))
	if _, err := e.Extract(context.Background(), "text", "q"); err == nil {
		t.Error("expected error for empty choices")
	}
}

// TestExtract_APIFailure verifies upstream errors surface to the caller.
func TestExtract_APIFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	e := New(WithAPIKey("test-key"), WithBaseURL(server.URL))
	if _, err := e.Extract(context.Background(), "text", "q"); err == nil {
		t.Error("expected error on 429")
	}
}

// TestWithModel verifies the model option and its default.
func TestWithModel(t *testing.T) {
	if e := New(WithAPIKey("k")); e.model == "" {
		t.Error("expected a default model")
	}
	if e := New(WithAPIKey("k"), WithModel("gpt-4o")); e.model != "gpt-4o" {
		t.Errorf("expected model override, got %q", e.model)
	}
}
