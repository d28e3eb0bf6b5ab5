package orchestration

import (
	"context"
	"time"

	"github.com/parleylabs/parley/core/events"
)

type OrchestratorOption func(*Orchestrator)

// SpeechToText captures one utterance from the audio input and returns its
// transcription. It blocks until speech ends or a silence threshold is
// reached. Errors surface as *RecognitionError.
type SpeechToText interface {
	RecognizeOnce(ctx context.Context, locale string) (string, error)
}

func WithSpeechToText(client SpeechToText) OrchestratorOption {
	return func(o *Orchestrator) { o.speechToText = client }
}

// TextCompletion sends a prompt to a completion endpoint and returns the
// generated continuation. Errors surface as *CompletionError.
type TextCompletion interface {
	Complete(ctx context.Context, prompt string, model string) (string, error)
}

func WithTextCompletion(client TextCompletion) OrchestratorOption {
	return func(o *Orchestrator) { o.textCompletion = client }
}

// WithSuggestionCompletion overrides the completion adapter used by the
// suggestion stage only, e.g. to constrain suggestions to structured
// output. Without it the suggestion stage shares the reply adapter.
func WithSuggestionCompletion(client TextCompletion) OrchestratorOption {
	return func(o *Orchestrator) { o.suggestionCompletion = client }
}

// TextToSpeech renders text to audio and plays it through the output
// device, blocking until playback completes. Errors surface as
// *SynthesisError.
type TextToSpeech interface {
	Speak(ctx context.Context, text string, locale string) error
}

func WithTextToSpeech(client TextToSpeech) OrchestratorOption {
	return func(o *Orchestrator) { o.textToSpeech = client }
}

// WithPreset selects the default model pair used when a TurnRequest leaves
// its model fields empty.
func WithPreset(p Preset) OrchestratorOption {
	return func(o *Orchestrator) {
		if _, ok := LookupPreset(p); ok {
			o.preset = p
		}
	}
}

// WithStageTimeout bounds each adapter call. Zero leaves calls unbounded,
// limited only by the request context.
func WithStageTimeout(d time.Duration) OrchestratorOption {
	return func(o *Orchestrator) { o.stageTimeout = d }
}

// WithEventSink attaches a callback invoked for every event, in emission
// order, from the orchestrator's single dispatch goroutine. Without a sink
// the events are consumed from Events().
func WithEventSink(sink func(events.Event)) OrchestratorOption {
	return func(o *Orchestrator) { o.sink = sink }
}

// WithTurnResultCallback attaches a callback invoked once per turn after
// its terminal event has been emitted.
func WithTurnResultCallback(callback func(TurnResult)) OrchestratorOption {
	return func(o *Orchestrator) { o.onTurnResult = callback }
}
