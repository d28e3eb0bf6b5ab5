package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	orchestration "github.com/parleylabs/parley/core"
	"github.com/parleylabs/parley/core/llms"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...llms.PromptOption) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient("test-key", opts...)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	client.url = server.URL
	return client
}

func completionResponse(content string) string {
	payload := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": content}},
		},
	}
	encoded, _ := json.Marshal(payload)
	return string(encoded)
}

func TestCompleteReturnsTrimmedContent(t *testing.T) {
	var received requestBody
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected authorization header: %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		w.Write([]byte(completionResponse("  hello there \n")))
	})

	content, err := client.Complete(context.Background(), "say hello", "gpt-4o")
	if err != nil {
		t.Fatalf("failed to complete prompt: %v", err)
	}
	if content != "hello there" {
		t.Fatalf("expected trimmed content, got %q", content)
	}
	if received.Model != "gpt-4o" {
		t.Fatalf("expected model to pass through, got %q", received.Model)
	}
	if len(received.Messages) != 1 || received.Messages[0].Role != messageRoleUser {
		t.Fatalf("expected a single user message, got %+v", received.Messages)
	}
}

func TestCompleteSendsInstructionsAsSystemMessage(t *testing.T) {
	var received requestBody
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		w.Write([]byte(completionResponse("ok")))
	}, llms.WithInstructions("reply briefly"))

	if _, err := client.Complete(context.Background(), "say hello", "gpt-4o"); err != nil {
		t.Fatalf("failed to complete prompt: %v", err)
	}
	if len(received.Messages) != 2 {
		t.Fatalf("expected system and user messages, got %+v", received.Messages)
	}
	if received.Messages[0].Role != messageRoleSystem || received.Messages[0].Content != "reply briefly" {
		t.Fatalf("expected instructions as system message, got %+v", received.Messages[0])
	}
}

func TestCompleteStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		status int
		kind   orchestration.CompletionErrorKind
	}{
		{"unauthorized", http.StatusUnauthorized, orchestration.CompletionUnauthorized},
		{"forbidden", http.StatusForbidden, orchestration.CompletionUnauthorized},
		{"rate limited", http.StatusTooManyRequests, orchestration.CompletionRateLimited},
		{"server error", http.StatusInternalServerError, orchestration.CompletionServiceUnreachable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			})

			_, err := client.Complete(context.Background(), "say hello", "gpt-4o")
			var cerr *orchestration.CompletionError
			if !errors.As(err, &cerr) || cerr.Kind != tc.kind {
				t.Fatalf("expected %s completion error, got %v", tc.kind, err)
			}
		})
	}
}

func TestCompleteEmptyChoicesIsEmptyResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	})

	_, err := client.Complete(context.Background(), "say hello", "gpt-4o")
	var cerr *orchestration.CompletionError
	if !errors.As(err, &cerr) || cerr.Kind != orchestration.CompletionEmptyResponse {
		t.Fatalf("expected empty response completion error, got %v", err)
	}
}

func TestCompleteWhitespaceContentIsEmptyResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(completionResponse("  \n\t ")))
	})

	_, err := client.Complete(context.Background(), "say hello", "gpt-4o")
	var cerr *orchestration.CompletionError
	if !errors.As(err, &cerr) || cerr.Kind != orchestration.CompletionEmptyResponse {
		t.Fatalf("expected empty response completion error, got %v", err)
	}
}

func TestCompleteUnreachableServer(t *testing.T) {
	client, err := NewClient("test-key")
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	client.url = "http://127.0.0.1:1"

	_, err = client.Complete(context.Background(), "say hello", "gpt-4o")
	var cerr *orchestration.CompletionError
	if !errors.As(err, &cerr) || cerr.Kind != orchestration.CompletionServiceUnreachable {
		t.Fatalf("expected service unreachable completion error, got %v", err)
	}
}
