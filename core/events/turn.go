package events

const (
	// KindUserRecognized identifies a committed user utterance transcript.
	KindUserRecognized Kind = "turn.user_recognized"
	// KindAssistantReplied identifies generated assistant reply text.
	KindAssistantReplied Kind = "turn.assistant_replied"
	// KindTranscriptUpdated identifies a transcript change acknowledgement.
	KindTranscriptUpdated Kind = "turn.transcript_updated"
	// KindSuggestionReady identifies an advisory next-utterance suggestion.
	KindSuggestionReady Kind = "turn.suggestion_ready"
	// KindTurnFailed identifies a turn that stopped at a stage.
	KindTurnFailed Kind = "turn.failed"
)

// UserRecognized carries the transcribed user utterance for the turn.
type UserRecognized struct {
	Base
	Text string
}

// NewUserRecognized creates a user recognized event.
func NewUserRecognized(text string) UserRecognized {
	return UserRecognized{Base: NewBase(KindUserRecognized), Text: text}
}

// AssistantReplied carries the generated assistant reply text.
type AssistantReplied struct {
	Base
	Text string
}

// NewAssistantReplied creates an assistant replied event.
func NewAssistantReplied(text string) AssistantReplied {
	return AssistantReplied{Base: NewBase(KindAssistantReplied), Text: text}
}

// TranscriptUpdated acknowledges a transcript mutation with the rendered
// snapshot current at emission time.
type TranscriptUpdated struct {
	Base
	Rendered string
}

// NewTranscriptUpdated creates a transcript updated event.
func NewTranscriptUpdated(rendered string) TranscriptUpdated {
	return TranscriptUpdated{Base: NewBase(KindTranscriptUpdated), Rendered: rendered}
}

// SuggestionReady carries the suggested next user utterance.
type SuggestionReady struct {
	Base
	Text string
}

// NewSuggestionReady creates a suggestion ready event.
func NewSuggestionReady(text string) SuggestionReady {
	return SuggestionReady{Base: NewBase(KindSuggestionReady), Text: text}
}

// TurnFailed marks the turn as stopped at the named stage.
//
// Stage is the stage's string form so the events package stays free of
// orchestration types; Err is the adapter error converted at the
// orchestrator boundary, never a raw vendor error.
type TurnFailed struct {
	Base
	Stage string
	Err   error
}

// NewTurnFailed creates a turn failed event.
func NewTurnFailed(stage string, err error) TurnFailed {
	return TurnFailed{Base: NewBase(KindTurnFailed), Stage: stage, Err: err}
}
