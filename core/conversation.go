package orchestration

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// Speaker attributes a turn to one side of the conversation.
type Speaker string

const (
	SpeakerUser      Speaker = "User"
	SpeakerAssistant Speaker = "Assistant"
)

// Turn is one utterance recorded in the transcript.
type Turn struct {
	ID        string
	Speaker   Speaker
	Text      string
	Timestamp time.Time
}

// Transcript owns the ordered, append-only turn history of a session.
//
// A turn in flight works against a fork and folds its appends back
// afterwards; everything else reads copies through Snapshot or Render.
type Transcript struct {
	mu sync.Mutex

	turns   []Turn
	priming string
	// primed marks that priming text was supplied while the history was
	// still empty, making it the base of every rendered prompt.
	primed bool
	// generation increments on Clear so folds from forks taken earlier
	// can be dropped.
	generation uint64
}

// NewTranscript creates an empty, unprimed transcript.
func NewTranscript() *Transcript {
	return &Transcript{}
}

// Append records a turn with the current timestamp. It never fails.
func (t *Transcript) Append(speaker Speaker, text string) {
	t.record(newTurn(speaker, text))
}

func newTurn(speaker Speaker, text string) Turn {
	return Turn{
		ID:        uuid.NewString(),
		Speaker:   speaker,
		Text:      text,
		Timestamp: time.Now(),
	}
}

func (t *Transcript) record(turn Turn) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.turns = append(t.turns, turn)
}

// fork copies the transcript for a turn to operate on, along with the
// generation recordAt needs to fold appends back.
func (t *Transcript) fork() (*Transcript, uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	forked := &Transcript{priming: t.priming, primed: t.primed}
	copier.Copy(&forked.turns, t.turns)
	return forked, t.generation
}

// recordAt folds back a turn recorded on a fork, unless the transcript
// was cleared after the fork was taken.
func (t *Transcript) recordAt(generation uint64, turn Turn) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.generation != generation {
		return false
	}
	t.turns = append(t.turns, turn)
	return true
}

// SetPriming stores the scenario text that seeds the completion prompt.
// Priming supplied while the history is empty becomes the prompt base;
// supplied later it is kept but does not rewrite history.
func (t *Transcript) SetPriming(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.priming = text
	if len(t.turns) == 0 {
		t.primed = text != ""
	}
}

// Clear resets the transcript to empty and unprimed. Safe at any time; a
// turn already in flight keeps operating on the fork it took.
func (t *Transcript) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.turns = nil
	t.priming = ""
	t.primed = false
	t.generation++
}

// Render flattens the history into the completion prompt: one
// "<Speaker>: <text>" line per turn in insertion order, based with the
// priming text when priming was set before any turn.
func (t *Transcript) Render() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.renderLocked()
}

// RenderSuggestionPrompt renders the history followed by a trailing cue
// line inviting the next user turn. Used only when generating suggestions.
func (t *Transcript) RenderSuggestionPrompt() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	rendered := t.renderLocked()
	if rendered == "" {
		return string(SpeakerUser) + ":"
	}
	return rendered + "\n" + string(SpeakerUser) + ":"
}

func (t *Transcript) renderLocked() string {
	lines := make([]string, 0, len(t.turns)+1)
	if t.primed && t.priming != "" {
		lines = append(lines, t.priming)
	}
	for _, turn := range t.turns {
		lines = append(lines, string(turn.Speaker)+": "+turn.Text)
	}
	return strings.Join(lines, "\n")
}

// Snapshot returns a deep copy of the recorded turns.
func (t *Transcript) Snapshot() []Turn {
	t.mu.Lock()
	defer t.mu.Unlock()

	turns := []Turn{}
	copier.Copy(&turns, t.turns)
	return turns
}

// Len reports the number of recorded turns.
func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.turns)
}

// Primed reports whether priming text is part of the rendered prompt base.
func (t *Transcript) Primed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.primed
}
