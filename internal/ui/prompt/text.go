package prompt

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// TextInputResult holds the result of a text input prompt.
type TextInputResult struct {
	Value     string
	Cancelled bool
}

type textInputModel struct {
	textInput textinput.Model
	prompt    string
	done      bool
	cancelled bool
}

func (m textInputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m textInputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter":
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m textInputModel) View() tea.View {
	if m.done {
		return tea.NewView("")
	}
	return tea.NewView(fmt.Sprintf("%s\n%s", m.prompt, m.textInput.View()))
}

// value returns the trimmed input, or the initial value when the input
// was cleared.
func (m textInputModel) value(initial string) string {
	if v := strings.TrimSpace(m.textInput.Value()); v != "" {
		return v
	}
	return initial
}

func newTextInputModel(prompt, initial string) textInputModel {
	ti := textinput.New()
	ti.Placeholder = initial
	ti.SetValue(initial)
	ti.Focus()
	ti.CharLimit = 156
	ti.SetWidth(50)

	return textInputModel{
		textInput: ti,
		prompt:    prompt,
	}
}

// TextInput shows a text input prompt prefilled with initial and returns
// the user's input.
func TextInput(prompt, initial string) (TextInputResult, error) {
	finalModel, err := run(newTextInputModel(prompt, initial))
	if err != nil {
		return TextInputResult{}, err
	}
	m := finalModel.(textInputModel)
	return TextInputResult{
		Value:     m.value(initial),
		Cancelled: m.cancelled,
	}, nil
}
