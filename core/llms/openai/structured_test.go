package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	orchestration "github.com/parleylabs/parley/core"
)

func TestSuggestionClientDecodesStructuredPayload(t *testing.T) {
	var received requestBody
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		w.Write([]byte(completionResponse(`{"suggestion":"Could I see the menu?"}`)))
	})
	suggester := &SuggestionClient{client: client}

	suggestion, err := suggester.Complete(context.Background(), "Waiter: Welcome!\nUser:", "gpt-4o-mini")
	if err != nil {
		t.Fatalf("failed to complete suggestion: %v", err)
	}
	if suggestion != "Could I see the menu?" {
		t.Fatalf("unexpected suggestion: %q", suggestion)
	}

	if received.ResponseFormat == nil || received.ResponseFormat.Type != "json_schema" {
		t.Fatalf("expected a json_schema response format, got %+v", received.ResponseFormat)
	}
	if received.ResponseFormat.JSONSchema == nil || !received.ResponseFormat.JSONSchema.Strict {
		t.Fatalf("expected a strict schema, got %+v", received.ResponseFormat.JSONSchema)
	}
}

func TestSuggestionClientRejectsMalformedPayload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(completionResponse("not json at all")))
	})
	suggester := &SuggestionClient{client: client}

	_, err := suggester.Complete(context.Background(), "User:", "gpt-4o-mini")
	var cerr *orchestration.CompletionError
	if !errors.As(err, &cerr) || cerr.Kind != orchestration.CompletionEmptyResponse {
		t.Fatalf("expected empty response completion error, got %v", err)
	}
}
