// Package input provides labelled text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/storesync-cli/internal/adapters/driving/tui/styles"
)

// Option configures a Field.
type Option func(*Field)

// WithPlaceholder sets the placeholder text.
func WithPlaceholder(p string) Option {
	return func(f *Field) {
		f.textinput.Placeholder = p
	}
}

// WithCharLimit caps the input length.
func WithCharLimit(n int) Option {
	return func(f *Field) {
		f.textinput.CharLimit = n
	}
}

// Masked hides the typed characters.
func Masked() Option {
	return func(f *Field) {
		f.textinput.EchoMode = textinput.EchoPassword
		f.textinput.EchoCharacter = '•'
	}
}

// Field wraps a bubbles textinput with a label above it.
type Field struct {
	textinput textinput.Model
	styles    *styles.Styles
	label     string
	width     int
}

// NewField creates a blurred field.
func NewField(s *styles.Styles, label string, opts ...Option) *Field {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40
	ti.Prompt = ""

	f := &Field{
		textinput: ti,
		styles:    s,
		label:     label,
		width:     40,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Init initialises the field.
func (f *Field) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (f *Field) Update(msg tea.Msg) (*Field, tea.Cmd) {
	var cmd tea.Cmd
	f.textinput, cmd = f.textinput.Update(msg)
	return f, cmd
}

// View renders the label and the input box.
func (f *Field) View() string {
	label := f.styles.Label.Render(f.label)
	box := f.styles.InputField
	if f.Focused() {
		label = f.styles.Focused.Render(f.label)
		box = f.styles.FocusedInput
	}
	return lipgloss.JoinVertical(lipgloss.Left, label, box.Render(f.textinput.View()))
}

// Label returns the field label.
func (f *Field) Label() string {
	return f.label
}

// Value returns the current input value.
func (f *Field) Value() string {
	return f.textinput.Value()
}

// SetValue sets the input value.
func (f *Field) SetValue(value string) {
	f.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (f *Field) Focus() tea.Cmd {
	return f.textinput.Focus()
}

// Blur removes focus from the input.
func (f *Field) Blur() {
	f.textinput.Blur()
}

// Focused returns whether the input is focused.
func (f *Field) Focused() bool {
	return f.textinput.Focused()
}

// SetWidth sets the width of the input.
func (f *Field) SetWidth(width int) {
	f.width = width
	inputWidth := width - 4
	if inputWidth < 20 {
		inputWidth = 20
	}
	f.textinput.Width = inputWidth
}

// Width returns the current width.
func (f *Field) Width() int {
	return f.width
}

// Reset clears the input.
func (f *Field) Reset() {
	f.textinput.Reset()
}
