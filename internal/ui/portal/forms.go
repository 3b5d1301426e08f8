// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package portal

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/securebank-tui/internal/ui/styles"
)

// =============================================================================
// FORM HELPER
// =============================================================================

// fieldSpec describes one input in a form.
type fieldSpec struct {
	label       string
	placeholder string
	secret      bool
	limit       int
}

// form is a vertical stack of labelled text inputs with one focused field.
// The index one past the last input represents the submit button.
type form struct {
	labels []string
	inputs []textinput.Model
	focus  int
}

func newForm(fields ...fieldSpec) form {
	f := form{
		labels: make([]string, len(fields)),
		inputs: make([]textinput.Model, len(fields)),
	}
	for i, spec := range fields {
		in := textinput.New()
		in.Placeholder = spec.placeholder
		in.CharLimit = spec.limit
		if spec.limit == 0 {
			in.CharLimit = 64
		}
		in.Width = 32
		if spec.secret {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		f.labels[i] = spec.label
		f.inputs[i] = in
	}
	if len(f.inputs) > 0 {
		f.inputs[0].Focus()
	}
	return f
}

// onButton reports whether focus sits on the submit button.
func (f *form) onButton() bool {
	return f.focus == len(f.inputs)
}

// next moves focus forward, wrapping from the button back to the first field.
func (f *form) next() {
	f.setFocus((f.focus + 1) % (len(f.inputs) + 1))
}

// prev moves focus backward.
func (f *form) prev() {
	f.setFocus((f.focus + len(f.inputs)) % (len(f.inputs) + 1))
}

func (f *form) setFocus(i int) {
	f.focus = i
	for j := range f.inputs {
		if j == i {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

// update forwards the message to the focused input.
func (f *form) update(msg tea.Msg) tea.Cmd {
	if f.focus >= len(f.inputs) {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// value returns the trimmed content of field i.
func (f *form) value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

// rawValue returns field i without trimming (passwords keep their spaces).
func (f *form) rawValue(i int) string {
	return f.inputs[i].Value()
}

// setValue pre-fills field i, used when editing an existing record.
func (f *form) setValue(i int, v string) {
	f.inputs[i].SetValue(v)
}

// reset clears every field and refocuses the first.
func (f *form) reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
	}
	f.setFocus(0)
}

// view renders the labelled fields and the submit button.
func (f *form) view(theme *styles.Theme, buttonLabel string) string {
	var sb strings.Builder
	for i := range f.inputs {
		sb.WriteString(theme.FieldLabel.Render(f.labels[i]))
		sb.WriteString("\n")
		sb.WriteString(f.inputs[i].View())
		sb.WriteString("\n\n")
	}

	if f.onButton() {
		sb.WriteString(theme.ButtonFocused.Render(buttonLabel))
	} else {
		sb.WriteString(theme.ButtonIdle.Render(buttonLabel))
	}
	return sb.String()
}
