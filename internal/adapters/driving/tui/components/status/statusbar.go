// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/storesync-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/storesync-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/storesync-cli/internal/core/domain"
)

// State represents the current application state for display.
type State string

const (
	StateReady      State = "ready"
	StateFetching   State = "fetching"
	StateSyncing    State = "syncing"
	StateRefreshing State = "refreshing"
	StateError      State = "error"
	StateHelp       State = "help"
)

// StateFor maps the console state onto a bar state. Submissions take
// precedence over a running refresh.
func StateFor(s domain.ConsoleState) State {
	if kind, ok := s.Status.InFlight(); ok {
		if kind == domain.OperationSync {
			return StateSyncing
		}
		return StateFetching
	}
	if s.Refreshing {
		return StateRefreshing
	}
	if !s.Errors.Empty() {
		return StateError
	}
	return StateReady
}

// Bar displays application status and keybinding hints.
type Bar struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	state    State
	message  string
	rowCount int
	width    int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(_ tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	switch s.state {
	case StateFetching:
		return s.styles.Warning.Render("Fetching...")
	case StateSyncing:
		return s.styles.Warning.Render("Syncing...")
	case StateRefreshing:
		return s.styles.Muted.Render("Refreshing activity...")
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render(fmt.Sprintf("Error: %s", s.message))
		}
		return s.styles.Error.Render("Error")
	case StateHelp:
		return s.styles.Normal.Render("Help")
	case StateReady:
		if s.rowCount == 1 {
			return s.styles.Normal.Render("1 store")
		}
		if s.rowCount > 1 {
			return s.styles.Normal.Render(fmt.Sprintf("%d stores", s.rowCount))
		}
	}
	return s.styles.Muted.Render("Ready")
}

func (s *Bar) renderRight() string {
	bindings := s.keymap.ShortHelp()
	if s.state == StateFetching || s.state == StateSyncing {
		bindings = s.keymap.BusyHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// Sync copies state, error text and row count from the console.
func (s *Bar) Sync(cs domain.ConsoleState) {
	s.state = StateFor(cs)
	s.message = ""
	if s.state == StateError {
		s.message = cs.Errors[0]
	}
	s.rowCount = len(cs.Activity)
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets a custom message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetRowCount sets the number of activity rows.
func (s *Bar) SetRowCount(count int) {
	s.rowCount = count
}

// RowCount returns the number of activity rows.
func (s *Bar) RowCount() int {
	return s.rowCount
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to default state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
	s.rowCount = 0
}
