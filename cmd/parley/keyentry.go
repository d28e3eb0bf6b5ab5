package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var errKeyEntryAborted = errors.New("key entry aborted")

// runKeyEntry prompts for the missing API keys on first run and returns
// the completed credentials.
func runKeyEntry(creds credentials) (credentials, error) {
	m := newKeyEntryModel(creds)
	finalModel, err := tea.NewProgram(m).Run()
	if err != nil {
		return creds, fmt.Errorf("error running key entry: %w", err)
	}

	final, ok := finalModel.(keyEntryModel)
	if !ok || final.aborted {
		return creds, errKeyEntryAborted
	}

	creds.DeepgramKey = strings.TrimSpace(final.inputs[0].Value())
	creds.OpenAIKey = strings.TrimSpace(final.inputs[1].Value())
	if !creds.complete() {
		return creds, errKeyEntryAborted
	}
	return creds, nil
}

type keyEntryModel struct {
	inputs     [2]textinput.Model
	labels     [2]string
	focusIndex int
	aborted    bool
	done       bool
}

func newKeyEntryModel(creds credentials) keyEntryModel {
	m := keyEntryModel{
		labels: [2]string{"Deepgram API key", "OpenAI API key"},
	}

	for i := range m.inputs {
		input := textinput.New()
		input.EchoMode = textinput.EchoPassword
		input.CharLimit = 200
		input.Width = 48
		m.inputs[i] = input
	}
	m.inputs[0].SetValue(creds.DeepgramKey)
	m.inputs[1].SetValue(creds.OpenAIKey)
	m.inputs[0].Focus()

	return m
}

func (m keyEntryModel) Init() tea.Cmd { return textinput.Blink }

func (m keyEntryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "tab", "shift+tab":
			m.inputs[m.focusIndex].Blur()
			m.focusIndex = (m.focusIndex + 1) % len(m.inputs)
			m.inputs[m.focusIndex].Focus()
			return m, nil
		case "enter":
			if m.focusIndex < len(m.inputs)-1 {
				m.inputs[m.focusIndex].Blur()
				m.focusIndex++
				m.inputs[m.focusIndex].Focus()
				return m, nil
			}
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focusIndex], cmd = m.inputs[m.focusIndex].Update(msg)
	return m, cmd
}

func (m keyEntryModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("API keys"))
	b.WriteString("\n\n")
	for i, input := range m.inputs {
		b.WriteString(fmt.Sprintf("%s:\n%s\n\n", m.labels[i], input.View()))
	}
	b.WriteString(helpStyle.Render("enter: save • tab: next field • esc: abort"))
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
