// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
// Letters are left free because most of the screen is text entry.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back returns to the console from another view.
	Back key.Binding

	// NextField moves focus forward.
	NextField key.Binding

	// PrevField moves focus backward.
	PrevField key.Binding

	// Activate presses the focused button or selects the highlighted option.
	Activate key.Binding

	// Toggle flips the full fetch and sync checkbox.
	Toggle key.Binding

	// Fetch submits a scoped fetch from anywhere on the form.
	Fetch key.Binding

	// Sync submits a sync from anywhere on the form.
	Sync key.Binding

	// Refresh reloads the activity table.
	Refresh key.Binding

	// Dismiss hides errors and the notification.
	Dismiss key.Binding

	// History opens the submission journal.
	History key.Binding

	// SwitchPane moves focus between the form and the activity table.
	SwitchPane key.Binding

	// OptionUp and OptionDown move through the API version options.
	OptionUp   key.Binding
	OptionDown key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "press"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle"),
		),
		Fetch: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("ctrl+f", "fetch"),
		),
		Sync: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "sync"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "refresh"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss"),
		),
		History: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "history"),
		),
		SwitchPane: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "form/table"),
		),
		OptionUp: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "previous option"),
		),
		OptionDown: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "next option"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Fetch, k.Sync, k.Refresh, k.Help, k.Quit}
}

// BusyHelp returns the hints shown while a submission is in flight.
func (k *KeyMap) BusyHelp() []key.Binding {
	return []key.Binding{k.Refresh, k.Quit}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextField, k.PrevField, k.Activate, k.Toggle},
		{k.OptionUp, k.OptionDown},
		{k.Fetch, k.Sync, k.Refresh, k.Dismiss},
		{k.SwitchPane, k.History, k.Back, k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
