package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	orchestration "github.com/parleylabs/parley/core"
	"github.com/parleylabs/parley/core/events"
)

type language struct {
	name string
	tag  string
}

var languages = []language{
	{name: "Chinese", tag: "zh-CN"},
	{name: "English", tag: "en-US"},
	{name: "French", tag: "fr-FR"},
	{name: "Japanese", tag: "ja-JP"},
}

type chatLine struct {
	speaker orchestration.Speaker
	text    string
}

type eventMsg struct{ event events.Event }

// waitForEvent pulls the next orchestrator event; re-issued after every
// delivery so the stream stays ordered with a single consumer.
func waitForEvent(ch <-chan events.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return eventMsg{event: event}
	}
}

type chatModel struct {
	orchestrator *orchestration.Orchestrator
	events       <-chan events.Event

	lines      []chatLine
	suggestion string
	status     string
	errText    string

	priming        textinput.Model
	primingFocused bool

	langIdx    int
	presetIdx  int
	turnActive bool
	showText   bool

	width  int
	height int
}

func newChatModel(orchestrator *orchestration.Orchestrator) chatModel {
	priming := textinput.New()
	priming.Placeholder = "Enter the initial setting"
	priming.CharLimit = 500
	priming.Width = 60

	return chatModel{
		orchestrator: orchestrator,
		events:       orchestrator.Events(),
		priming:      priming,
		status:       "ready",
		showText:     true,
		width:        80,
	}
}

func (m chatModel) Init() tea.Cmd {
	return waitForEvent(m.events)
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case eventMsg:
		return m.handleEvent(msg.event)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m chatModel) handleEvent(event events.Event) (tea.Model, tea.Cmd) {
	switch event := event.(type) {
	case events.UserRecognized:
		m.lines = append(m.lines, chatLine{speaker: orchestration.SpeakerUser, text: event.Text})
		m.status = "thinking..."

	case events.AssistantReplied:
		m.lines = append(m.lines, chatLine{speaker: orchestration.SpeakerAssistant, text: event.Text})
		m.status = "speaking..."

	case events.SuggestionReady:
		m.suggestion = strings.ReplaceAll(event.Text, "\n", " ")
		m.turnActive = false
		m.status = "ready"

	case events.TurnFailed:
		m.errText = fmt.Sprintf("turn failed while %s: %v", event.Stage, event.Err)
		m.turnActive = false
		m.status = "ready"
	}

	return m, waitForEvent(m.events)
}

func (m chatModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.primingFocused {
		switch msg.String() {
		case "esc", "enter":
			m.primingFocused = false
			m.priming.Blur()
			return m, nil
		case "ctrl+c":
			return m, tea.Quit
		}

		var cmd tea.Cmd
		m.priming, cmd = m.priming.Update(msg)
		m.orchestrator.SetPriming(m.priming.Value())
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "s":
		return m.speak()

	case "c":
		m.orchestrator.ClearTranscript()
		// Priming outlives a clear: the next turn starts from the
		// scenario again.
		m.orchestrator.SetPriming(m.priming.Value())
		m.lines = nil
		m.suggestion = ""
		m.errText = ""
		return m, nil

	case "l":
		m.langIdx = (m.langIdx + 1) % len(languages)
		return m, nil

	case "i":
		m.presetIdx = (m.presetIdx + 1) % len(orchestration.Presets())
		return m, nil

	case "t":
		m.showText = !m.showText
		return m, nil

	case "p":
		m.primingFocused = true
		m.priming.Focus()
		return m, textinput.Blink
	}

	return m, nil
}

func (m chatModel) speak() (tea.Model, tea.Cmd) {
	if m.turnActive {
		m.status = "a turn is already running"
		return m, nil
	}

	preset := orchestration.Presets()[m.presetIdx]
	pair, _ := orchestration.LookupPreset(preset)
	err := m.orchestrator.RequestTurn(context.Background(), orchestration.TurnRequest{
		Locale:          languages[m.langIdx].tag,
		ReplyModel:      pair.ReplyModel,
		SuggestionModel: pair.SuggestionModel,
	})
	if err != nil {
		if errors.Is(err, orchestration.ErrTurnInProgress) {
			m.status = "a turn is already running"
			return m, nil
		}
		m.errText = err.Error()
		return m, nil
	}

	m.turnActive = true
	m.errText = ""
	m.status = "listening..."
	return m, nil
}

func (m chatModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Language Practice"))
	b.WriteString("\n\n")

	if m.showText {
		bubbleWidth := max(20, m.width-16)
		for _, line := range m.lines {
			text := wordwrap.String(line.text, bubbleWidth)
			if line.speaker == orchestration.SpeakerUser {
				b.WriteString(userBubbleStyle.Render("You: " + text))
			} else {
				b.WriteString(assistantBubbleStyle.Render("Partner: " + text))
			}
			b.WriteString("\n")
		}
		if len(m.lines) > 0 {
			b.WriteString("\n")
		}
	}

	if m.suggestion != "" {
		b.WriteString(suggestionStyle.Render(
			"Suggestion: " + wordwrap.String(m.suggestion, max(20, m.width-20))))
		b.WriteString("\n\n")
	}

	b.WriteString("Scenario: " + m.priming.View() + "\n\n")

	if m.errText != "" {
		b.WriteString(errorStyle.Render(m.errText) + "\n")
	}

	preset := orchestration.Presets()[m.presetIdx]
	b.WriteString(statusStyle.Render(fmt.Sprintf("%s • %s • %s",
		languages[m.langIdx].name, preset, m.status)))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(
		"s: speak • c: clear • l: language • i: intelligence • p: scenario • t: toggle transcript • q: quit"))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
