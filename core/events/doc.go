// Package events defines the typed turn event contract.
//
// Every state transition of a conversation turn emits exactly one event,
// and events are delivered to the sink in emission order. Kinds are
// namespaced under turn.*:
//
//   - UserRecognized (turn.user_recognized): the user's utterance was
//     transcribed and committed to the transcript.
//   - AssistantReplied (turn.assistant_replied): the completion service
//     produced the assistant's reply text. The reply is not part of the
//     transcript yet at this point; it is committed after synthesis is
//     attempted.
//   - TranscriptUpdated (turn.transcript_updated): the transcript changed;
//     carries the rendered snapshot so sinks never read shared state.
//   - SuggestionReady (turn.suggestion_ready): a suggested next user
//     utterance is available. Suggestions are advisory and never recorded
//     as turns.
//   - TurnFailed (turn.failed): the turn stopped at the named stage with
//     the given error. Terminal; the next turn requires a new request.
//
// Within a single turn UserRecognized precedes AssistantReplied, which
// precedes SuggestionReady or TurnFailed.
package events
