// Package picker provides a filterable single-choice selector.
package picker

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/storesync-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/storesync-cli/internal/adapters/driving/tui/styles"
)

// maxVisible bounds how many options are listed under the filter.
const maxVisible = 4

// Picker lets the user narrow a fixed option list by typing and pick one
// with the arrow keys. Free values are not accepted.
type Picker struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	label   string
	filter  textinput.Model
	options []string
	matches []string
	cursor  int
	value   string
}

// New creates a blurred picker.
func New(s *styles.Styles, km *keymap.KeyMap, label string, options []string, value string) *Picker {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "type to filter"
	ti.CharLimit = 32
	ti.Width = 20

	p := &Picker{
		styles: s,
		keymap: km,
		label:  label,
		filter: ti,
	}
	p.SetOptions(options, value)
	return p
}

// SetOptions replaces the option list. The current value is kept when it
// is still offered, then value, then the first option.
func (p *Picker) SetOptions(options []string, value string) {
	p.options = append([]string(nil), options...)
	if !p.offers(p.value) {
		p.value = value
		if !p.offers(value) && len(p.options) > 0 {
			p.value = p.options[0]
		}
	}
	p.refilter()
}

// Update handles keys while focused.
func (p *Picker) Update(msg tea.Msg) (*Picker, tea.Cmd) {
	if !p.filter.Focused() {
		return p, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case keymap.Matches(keyMsg.String(), p.keymap.OptionUp):
			p.move(-1)
			return p, nil
		case keymap.Matches(keyMsg.String(), p.keymap.OptionDown):
			p.move(1)
			return p, nil
		}
	}

	var cmd tea.Cmd
	p.filter, cmd = p.filter.Update(msg)
	p.refilter()
	return p, cmd
}

// View renders the label, the current value and, while focused, the
// filtered options.
func (p *Picker) View() string {
	label := p.styles.Label.Render(p.label)
	box := p.styles.InputField
	if !p.Focused() {
		return lipgloss.JoinVertical(lipgloss.Left, label, box.Render(p.value))
	}

	label = p.styles.Focused.Render(p.label)
	box = p.styles.FocusedInput
	lines := []string{p.filter.View()}
	if len(p.matches) == 0 {
		lines = append(lines, p.styles.Muted.Render("no matching version"))
	}
	for _, opt := range p.visible() {
		if opt == p.value {
			lines = append(lines, p.styles.Selected.Render("> "+opt))
			continue
		}
		lines = append(lines, p.styles.Normal.Render("  "+opt))
	}
	return lipgloss.JoinVertical(lipgloss.Left, label, box.Render(strings.Join(lines, "\n")))
}

// Value returns the selected option.
func (p *Picker) Value() string {
	return p.value
}

// SetValue selects v if it is offered.
func (p *Picker) SetValue(v string) {
	if p.offers(v) {
		p.value = v
		p.refilter()
	}
}

// Options returns the full option list.
func (p *Picker) Options() []string {
	return append([]string(nil), p.options...)
}

// Matches returns the options that pass the current filter.
func (p *Picker) Matches() []string {
	return append([]string(nil), p.matches...)
}

// Focus clears the filter and takes focus.
func (p *Picker) Focus() tea.Cmd {
	p.filter.Reset()
	p.refilter()
	return p.filter.Focus()
}

// Blur drops focus.
func (p *Picker) Blur() {
	p.filter.Blur()
}

// Focused returns whether the picker is focused.
func (p *Picker) Focused() bool {
	return p.filter.Focused()
}

func (p *Picker) move(delta int) {
	if len(p.matches) == 0 {
		return
	}
	p.cursor = (p.cursor + delta + len(p.matches)) % len(p.matches)
	p.value = p.matches[p.cursor]
}

// refilter recomputes matches. When the selected value is filtered out the
// first match becomes selected.
func (p *Picker) refilter() {
	needle := strings.ToLower(strings.TrimSpace(p.filter.Value()))
	p.matches = p.matches[:0]
	for _, opt := range p.options {
		if needle == "" || strings.Contains(strings.ToLower(opt), needle) {
			p.matches = append(p.matches, opt)
		}
	}

	p.cursor = 0
	for i, m := range p.matches {
		if m == p.value {
			p.cursor = i
			return
		}
	}
	if len(p.matches) > 0 && needle != "" {
		p.value = p.matches[0]
	}
}

// visible returns the window of matches around the cursor.
func (p *Picker) visible() []string {
	if len(p.matches) <= maxVisible {
		return p.matches
	}
	start := p.cursor - maxVisible + 1
	if start < 0 {
		start = 0
	}
	return p.matches[start : start+maxVisible]
}

func (p *Picker) offers(v string) bool {
	for _, opt := range p.options {
		if opt == v {
			return true
		}
	}
	return false
}
