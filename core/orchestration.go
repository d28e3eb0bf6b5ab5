package orchestration

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/parleylabs/parley/core/events"
	"go.opentelemetry.io/otel/codes"
)

// ErrOrchestratorClosed is returned by RequestTurn after Close.
var ErrOrchestratorClosed = errors.New("orchestrator is closed")

const eventBufferSize = 64

// Orchestrator drives conversation turns through the
// listening/replying/speaking/suggesting pipeline against the configured
// service adapters, appending to the transcript and emitting one event per
// state transition.
//
// A single background worker executes one turn end to end; at most one turn
// is active at a time. Events cross back to the interactive side through an
// ordered FIFO channel, never reordered or dropped.
type Orchestrator struct {
	transcript *Transcript
	gate       turnGate

	speechToText         SpeechToText
	textCompletion       TextCompletion
	suggestionCompletion TextCompletion
	textToSpeech         TextToSpeech

	preset       Preset
	stageTimeout time.Duration

	eventCh      chan events.Event
	sink         func(events.Event)
	onTurnResult func(TurnResult)

	dispatchWG sync.WaitGroup
	turnWG     sync.WaitGroup
	closeOnce  sync.Once

	stateMu sync.RWMutex
	closed  bool

	emitMu       sync.RWMutex
	eventsClosed bool
}

func NewOrchestrator(opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		transcript: NewTranscript(),
		preset:     PresetHigh,
		eventCh:    make(chan events.Event, eventBufferSize),
	}

	for _, opt := range opts {
		opt(o)
	}

	if o.sink != nil {
		o.dispatchWG.Add(1)
		go o.dispatch()
	}

	return o
}

// Events exposes the ordered event stream. Only meaningful when no sink
// was configured with WithEventSink; with a sink the stream is drained
// internally.
func (o *Orchestrator) Events() <-chan events.Event { return o.eventCh }

// Transcript returns the session transcript shared with the orchestrator.
func (o *Orchestrator) Transcript() *Transcript { return o.transcript }

// SetPriming forwards scenario text to the transcript.
func (o *Orchestrator) SetPriming(text string) { o.transcript.SetPriming(text) }

// ClearTranscript resets the transcript and acknowledges the change on the
// event stream. A turn already in flight keeps its fork; subsequent turns
// operate on the cleared state.
func (o *Orchestrator) ClearTranscript() {
	o.transcript.Clear()
	o.emit(events.NewTranscriptUpdated(o.transcript.Render()))
}

// TurnActive reports whether a turn currently holds the gate.
func (o *Orchestrator) TurnActive() bool { return o.gate.isHeld() }

// RequestTurn admits one turn and runs it on the background worker. It
// returns ErrTurnInProgress without queuing when a turn is already active;
// the caller retries later.
func (o *Orchestrator) RequestTurn(ctx context.Context, req TurnRequest) error {
	o.stateMu.RLock()
	defer o.stateMu.RUnlock()

	if o.closed {
		return ErrOrchestratorClosed
	}

	if !o.gate.tryAcquire() {
		return ErrTurnInProgress
	}

	if pair, ok := LookupPreset(o.preset); ok {
		if req.ReplyModel == "" {
			req.ReplyModel = pair.ReplyModel
		}
		if req.SuggestionModel == "" {
			req.SuggestionModel = pair.SuggestionModel
		}
	}

	o.turnWG.Add(1)
	go o.runTurn(ctx, req)
	return nil
}

// Close waits for an in-flight turn, then stops event delivery. The
// orchestrator rejects further turn requests afterwards; events emitted
// afterwards, e.g. by ClearTranscript, are dropped.
func (o *Orchestrator) Close() {
	o.closeOnce.Do(func() {
		o.stateMu.Lock()
		o.closed = true
		o.stateMu.Unlock()

		o.turnWG.Wait()

		o.emitMu.Lock()
		o.eventsClosed = true
		close(o.eventCh)
		o.emitMu.Unlock()

		o.dispatchWG.Wait()
	})
}

func (o *Orchestrator) dispatch() {
	defer o.dispatchWG.Done()
	for event := range o.eventCh {
		o.sink(event)
	}
}

func (o *Orchestrator) emit(event events.Event) {
	o.emitMu.RLock()
	defer o.emitMu.RUnlock()

	if o.eventsClosed {
		return
	}
	o.eventCh <- event
}

// runTurn executes the stage sequence for one admitted turn. The gate is
// released on every path, success or failure.
func (o *Orchestrator) runTurn(ctx context.Context, req TurnRequest) {
	defer o.turnWG.Done()
	defer o.gate.release()

	ctx, span := tracer.Start(ctx, "conversation turn")
	defer span.End()

	result := TurnResult{}
	defer func() {
		if o.onTurnResult != nil {
			o.onTurnResult(result)
		}
	}()

	fail := func(stage Stage, err error) {
		result.FailedStage = &stage
		result.Err = err
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.WarnContext(ctx, "turn failed",
			"stage", stage.String(), "error", err)
		o.emit(events.NewTurnFailed(stage.String(), err))
	}

	// The turn works against its own fork; a concurrent Clear only
	// affects later turns, and appends fold back unless it happened.
	local, generation := o.transcript.fork()

	// Listening
	span.AddEvent("listening")
	recognized, err := o.recognize(ctx, req.Locale)
	if err != nil {
		fail(StageListening, err)
		return
	}
	result.Recognized = recognized

	userTurn := newTurn(SpeakerUser, recognized)
	local.record(userTurn)
	o.transcript.recordAt(generation, userTurn)
	o.emit(events.NewUserRecognized(recognized))
	o.emit(events.NewTranscriptUpdated(local.Render()))

	// Replying
	span.AddEvent("replying")
	reply, err := o.complete(ctx, o.textCompletion, local.Render(), req.ReplyModel)
	if err != nil {
		fail(StageReplying, err)
		return
	}
	result.Reply = reply
	o.emit(events.NewAssistantReplied(reply))

	// Speaking. The reply is committed to the transcript whether or not
	// playback succeeds: the text is what the system committed to saying.
	span.AddEvent("speaking")
	speakErr := o.speak(ctx, reply, req.Locale)
	assistantTurn := newTurn(SpeakerAssistant, reply)
	local.record(assistantTurn)
	o.transcript.recordAt(generation, assistantTurn)
	o.emit(events.NewTranscriptUpdated(local.Render()))
	if speakErr != nil {
		fail(StageSpeaking, speakErr)
		return
	}

	// Suggesting. Uses the transcript plus a next-user cue and never
	// mutates the transcript; suggestions are advisory.
	span.AddEvent("suggesting")
	suggestion, err := o.complete(ctx, o.suggestionClient(), local.RenderSuggestionPrompt(), req.SuggestionModel)
	if err != nil {
		fail(StageSuggesting, err)
		return
	}
	result.Suggestion = suggestion
	o.emit(events.NewSuggestionReady(suggestion))
}

func (o *Orchestrator) stageContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.stageTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, o.stageTimeout)
}

func (o *Orchestrator) recognize(ctx context.Context, locale string) (string, error) {
	if o.speechToText == nil {
		return "", NewRecognitionError(RecognitionServiceUnreachable,
			errors.New("no speech-to-text adapter configured"))
	}

	ctx, cancel := o.stageContext(ctx)
	defer cancel()

	text, err := o.speechToText.RecognizeOnce(ctx, locale)
	if err != nil {
		var rerr *RecognitionError
		if errors.As(err, &rerr) {
			return "", rerr
		}
		return "", NewRecognitionError(RecognitionServiceUnreachable, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", NewRecognitionError(RecognitionNoSpeech, nil)
	}
	return text, nil
}

func (o *Orchestrator) suggestionClient() TextCompletion {
	if o.suggestionCompletion != nil {
		return o.suggestionCompletion
	}
	return o.textCompletion
}

func (o *Orchestrator) complete(ctx context.Context, client TextCompletion, prompt, model string) (string, error) {
	if client == nil {
		return "", NewCompletionError(CompletionServiceUnreachable,
			errors.New("no text completion adapter configured"))
	}

	ctx, cancel := o.stageContext(ctx)
	defer cancel()

	text, err := client.Complete(ctx, prompt, model)
	if err != nil {
		var cerr *CompletionError
		if errors.As(err, &cerr) {
			return "", cerr
		}
		return "", NewCompletionError(CompletionServiceUnreachable, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", NewCompletionError(CompletionEmptyResponse, nil)
	}
	return text, nil
}

func (o *Orchestrator) speak(ctx context.Context, text, locale string) error {
	if o.textToSpeech == nil {
		return NewSynthesisError(SynthesisDeviceUnavailable,
			errors.New("no text-to-speech adapter configured"))
	}

	ctx, cancel := o.stageContext(ctx)
	defer cancel()

	if err := o.textToSpeech.Speak(ctx, text, locale); err != nil {
		var serr *SynthesisError
		if errors.As(err, &serr) {
			return serr
		}
		return NewSynthesisError(SynthesisServiceUnreachable, err)
	}
	return nil
}
