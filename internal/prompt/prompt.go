// Package prompt asks yes/no questions on the terminal.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrAborted is returned when the user presses esc or ctrl+c.
var ErrAborted = errors.New("prompt aborted")

var (
	styleQuestion = lipgloss.NewStyle().Bold(true)
	styleInvalid  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	keyAbort = key.NewBinding(key.WithKeys("esc", "ctrl+c"))
	keyEnter = key.NewBinding(key.WithKeys("enter"))
)

// ParseYesNo accepts y/yes/n/no in any case, ignoring surrounding space.
func ParseYesNo(s string) (answer, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true, true
	case "n", "no":
		return false, true
	}
	return false, false
}

type model struct {
	question string
	input    textinput.Model
	invalid  bool
	done     bool
	aborted  bool
	answer   bool
}

func newModel(question string) model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 8
	ti.Focus()
	return model{question: question, input: ti}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keyAbort):
			m.aborted = true
			return m, tea.Quit
		case key.Matches(msg, keyEnter):
			// re-ask until the answer is understood
			if answer, ok := ParseYesNo(m.input.Value()); ok {
				m.answer = answer
				m.done = true
				return m, tea.Quit
			}
			m.invalid = true
			m.input.SetValue("")
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.done || m.aborted {
		return ""
	}
	var b strings.Builder
	if m.invalid {
		b.WriteString(styleInvalid.Render("Please answer y or n."))
		b.WriteString("\n")
	}
	b.WriteString(styleQuestion.Render(m.question + " (y/n)? "))
	b.WriteString(m.input.View())
	return b.String()
}

// Confirm asks question on the controlling terminal.
func Confirm(question string) (bool, error) {
	return run(question)
}

// ConfirmIO is Confirm with explicit input and output, for scripts and tests.
func ConfirmIO(in io.Reader, out io.Writer, question string) (bool, error) {
	return run(question, tea.WithInput(in), tea.WithOutput(out))
}

func run(question string, opts ...tea.ProgramOption) (bool, error) {
	final, err := tea.NewProgram(newModel(question), opts...).Run()
	if err != nil {
		return false, fmt.Errorf("prompt: %w", err)
	}
	fm := final.(model)
	if fm.aborted || !fm.done {
		return false, ErrAborted
	}
	return fm.answer, nil
}
