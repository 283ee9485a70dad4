package prompt

import (
	"strings"
	"testing"
)

func TestTextInputModel_Update(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		key       string
		done      bool
		cancelled bool
	}{
		{"enter accepts", "enter", true, false},
		{"esc cancels", "esc", true, true},
		{"ctrl+c cancels", "ctrl+c", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := newTextInputModel("Project title", "My App")
			updated, cmd := m.Update(keyPress(tt.key))
			um := updated.(textInputModel)

			if um.done != tt.done {
				t.Errorf("done = %v, want %v", um.done, tt.done)
			}
			if um.cancelled != tt.cancelled {
				t.Errorf("cancelled = %v, want %v", um.cancelled, tt.cancelled)
			}
			if cmd == nil {
				t.Error("expected quit cmd")
			}
		})
	}
}

func TestTextInputModel_Prefilled(t *testing.T) {
	t.Parallel()

	m := newTextInputModel("Project title", "My App")
	if got := m.textInput.Value(); got != "My App" {
		t.Errorf("initial value = %q, want %q", got, "My App")
	}
	if got := m.value("My App"); got != "My App" {
		t.Errorf("value() = %q, want %q", got, "My App")
	}
}

func TestTextInputModel_ClearedFallsBackToInitial(t *testing.T) {
	t.Parallel()

	m := newTextInputModel("Project title", "My App")
	m.textInput.SetValue("   ")
	if got := m.value("My App"); got != "My App" {
		t.Errorf("value() = %q, want %q", got, "My App")
	}

	m.textInput.SetValue(" Other Name ")
	if got := m.value("My App"); got != "Other Name" {
		t.Errorf("value() = %q, want %q", got, "Other Name")
	}
}

func TestTextInputModel_View(t *testing.T) {
	t.Parallel()

	m := newTextInputModel("Project title", "My App")
	if view := m.View(); !strings.Contains(view.Content, "Project title") {
		t.Errorf("View().Content = %q, want prompt", view.Content)
	}

	m.done = true
	if view := m.View(); view.Content != "" {
		t.Errorf("View().Content when done = %q, want empty", view.Content)
	}
}
