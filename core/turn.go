package orchestration

// TurnRequest parameterizes one conversation turn. It is owned by the
// orchestrator for the duration of the turn and does not outlive it.
type TurnRequest struct {
	// Locale is the language/region tag used for recognition and
	// synthesis, e.g. "en-US". Changes take effect on the next turn,
	// never mid-turn.
	Locale string

	// ReplyModel and SuggestionModel identify the completion models to
	// use. Empty fields fall back to the orchestrator's configured
	// preset.
	ReplyModel      string
	SuggestionModel string
}

// TurnResult summarizes a finished turn: the texts produced by each stage
// that ran, and the stage the turn stopped at if it failed.
type TurnResult struct {
	Recognized string
	Reply      string
	Suggestion string

	// FailedStage is nil on full success.
	FailedStage *Stage
	Err         error
}

// Failed reports whether the turn stopped before completing all stages.
func (r TurnResult) Failed() bool { return r.FailedStage != nil }
