package orchestration

import (
	"errors"
	"fmt"
)

// ErrTurnInProgress is returned by RequestTurn while another turn holds the
// gate. Requests are rejected, never queued.
var ErrTurnInProgress = errors.New("a turn is already in progress")

// Stage identifies where in the pipeline a turn currently is, or where it
// stopped.
type Stage int

const (
	StageListening Stage = iota
	StageReplying
	StageSpeaking
	StageSuggesting
)

func (s Stage) String() string {
	switch s {
	case StageListening:
		return "listening"
	case StageReplying:
		return "replying"
	case StageSpeaking:
		return "speaking"
	case StageSuggesting:
		return "suggesting"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// RecognitionErrorKind classifies speech-to-text failures.
type RecognitionErrorKind string

const (
	RecognitionNoSpeech           RecognitionErrorKind = "no_speech"
	RecognitionDeviceUnavailable  RecognitionErrorKind = "device_unavailable"
	RecognitionServiceUnreachable RecognitionErrorKind = "service_unreachable"
)

// RecognitionError is the only error shape a SpeechToText adapter may
// surface past the orchestrator boundary.
type RecognitionError struct {
	Kind  RecognitionErrorKind
	cause error
}

func NewRecognitionError(kind RecognitionErrorKind, cause error) *RecognitionError {
	return &RecognitionError{Kind: kind, cause: cause}
}

func (e *RecognitionError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("recognition failed (%s): %v", e.Kind, e.cause)
	}
	return fmt.Sprintf("recognition failed (%s)", e.Kind)
}

func (e *RecognitionError) Unwrap() error { return e.cause }

// CompletionErrorKind classifies text completion failures.
type CompletionErrorKind string

const (
	CompletionUnauthorized       CompletionErrorKind = "unauthorized"
	CompletionRateLimited        CompletionErrorKind = "rate_limited"
	CompletionServiceUnreachable CompletionErrorKind = "service_unreachable"
	CompletionEmptyResponse      CompletionErrorKind = "empty_response"
)

// CompletionError is the only error shape a TextCompletion adapter may
// surface past the orchestrator boundary.
type CompletionError struct {
	Kind  CompletionErrorKind
	cause error
}

func NewCompletionError(kind CompletionErrorKind, cause error) *CompletionError {
	return &CompletionError{Kind: kind, cause: cause}
}

func (e *CompletionError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("completion failed (%s): %v", e.Kind, e.cause)
	}
	return fmt.Sprintf("completion failed (%s)", e.Kind)
}

func (e *CompletionError) Unwrap() error { return e.cause }

// SynthesisErrorKind classifies text-to-speech failures.
type SynthesisErrorKind string

const (
	SynthesisDeviceUnavailable  SynthesisErrorKind = "device_unavailable"
	SynthesisServiceUnreachable SynthesisErrorKind = "service_unreachable"
)

// SynthesisError is the only error shape a TextToSpeech adapter may
// surface past the orchestrator boundary.
type SynthesisError struct {
	Kind  SynthesisErrorKind
	cause error
}

func NewSynthesisError(kind SynthesisErrorKind, cause error) *SynthesisError {
	return &SynthesisError{Kind: kind, cause: cause}
}

func (e *SynthesisError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("synthesis failed (%s): %v", e.Kind, e.cause)
	}
	return fmt.Sprintf("synthesis failed (%s)", e.Kind)
}

func (e *SynthesisError) Unwrap() error { return e.cause }
