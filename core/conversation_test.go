package orchestration

import (
	"strings"
	"testing"
)

func TestTranscriptAppendAlternation(t *testing.T) {
	transcript := NewTranscript()

	turns := 3
	for range turns {
		transcript.Append(SpeakerUser, "hello")
		transcript.Append(SpeakerAssistant, "hi there")
	}

	snapshot := transcript.Snapshot()
	if len(snapshot) != 2*turns {
		t.Fatalf("expected %d turns, got %d", 2*turns, len(snapshot))
	}
	for i, turn := range snapshot {
		expected := SpeakerUser
		if i%2 == 1 {
			expected = SpeakerAssistant
		}
		if turn.Speaker != expected {
			t.Fatalf("turn %d: expected speaker %s, got %s", i, expected, turn.Speaker)
		}
		if turn.ID == "" {
			t.Fatalf("turn %d: expected a non-empty ID", i)
		}
		if turn.Timestamp.IsZero() {
			t.Fatalf("turn %d: expected a timestamp", i)
		}
	}
}

func TestTranscriptRenderIsIdempotent(t *testing.T) {
	transcript := NewTranscript()
	transcript.SetPriming("You are a barista.")
	transcript.Append(SpeakerUser, "One coffee please")
	transcript.Append(SpeakerAssistant, "Coming right up")

	first := transcript.Render()
	second := transcript.Render()
	if first != second {
		t.Fatalf("expected identical renders, got %q then %q", first, second)
	}

	expected := "You are a barista.\nUser: One coffee please\nAssistant: Coming right up"
	if first != expected {
		t.Fatalf("expected render %q, got %q", expected, first)
	}
}

func TestTranscriptClearResetsEverything(t *testing.T) {
	transcript := NewTranscript()
	transcript.SetPriming("You are a tour guide.")
	transcript.Append(SpeakerUser, "Where should I go?")

	transcript.Clear()

	if rendered := transcript.Render(); rendered != "" {
		t.Fatalf("expected empty render after clear, got %q", rendered)
	}
	if transcript.Primed() {
		t.Fatalf("expected transcript to be unprimed after clear")
	}
	if transcript.Len() != 0 {
		t.Fatalf("expected no turns after clear, got %d", transcript.Len())
	}
}

func TestTranscriptPrimingAfterFirstAppendDoesNotRewriteHistory(t *testing.T) {
	transcript := NewTranscript()
	transcript.Append(SpeakerUser, "Bonjour")
	transcript.SetPriming("You are a French tutor.")

	rendered := transcript.Render()
	if strings.Contains(rendered, "French tutor") {
		t.Fatalf("late priming should not appear in render, got %q", rendered)
	}
}

func TestTranscriptSuggestionPromptEndsWithUserCue(t *testing.T) {
	transcript := NewTranscript()

	if prompt := transcript.RenderSuggestionPrompt(); prompt != "User:" {
		t.Fatalf("expected bare cue on empty transcript, got %q", prompt)
	}

	transcript.Append(SpeakerUser, "Hello")
	transcript.Append(SpeakerAssistant, "Hi")
	prompt := transcript.RenderSuggestionPrompt()
	if !strings.HasSuffix(prompt, "\nUser:") {
		t.Fatalf("expected trailing user cue, got %q", prompt)
	}
	if rendered := transcript.Render(); strings.HasSuffix(rendered, "User:") {
		t.Fatalf("plain render must not carry the cue, got %q", rendered)
	}
}

func TestTranscriptClearInvalidatesEarlierFork(t *testing.T) {
	transcript := NewTranscript()
	transcript.SetPriming("You are a barista.")
	transcript.Append(SpeakerUser, "One coffee please")

	fork, generation := transcript.fork()
	transcript.Clear()

	if got := fork.Render(); got != "You are a barista.\nUser: One coffee please" {
		t.Fatalf("fork must keep the pre-clear state, got %q", got)
	}
	if transcript.recordAt(generation, newTurn(SpeakerAssistant, "Coming right up")) {
		t.Fatalf("expected the fold to be dropped after a clear")
	}
	if transcript.Len() != 0 {
		t.Fatalf("cleared transcript must stay empty, got %d turns", transcript.Len())
	}
}

func TestTranscriptForkFoldsBackWithoutClear(t *testing.T) {
	transcript := NewTranscript()
	transcript.Append(SpeakerUser, "Hello")

	fork, generation := transcript.fork()
	turn := newTurn(SpeakerAssistant, "Hi")
	fork.record(turn)

	if !transcript.recordAt(generation, turn) {
		t.Fatalf("expected the fold to apply without an intervening clear")
	}
	if transcript.Len() != 2 {
		t.Fatalf("expected 2 turns after fold, got %d", transcript.Len())
	}
	if transcript.Render() != fork.Render() {
		t.Fatalf("expected transcript and fork to agree after fold")
	}
}

func TestTranscriptSnapshotIsACopy(t *testing.T) {
	transcript := NewTranscript()
	transcript.Append(SpeakerUser, "original")

	snapshot := transcript.Snapshot()
	snapshot[0].Text = "mutated"

	if got := transcript.Snapshot()[0].Text; got != "original" {
		t.Fatalf("snapshot mutation leaked into transcript: %q", got)
	}
}
