package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/storesync-cli/internal/adapters/driving/tui/components/notice"
	"github.com/custodia-labs/storesync-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/storesync-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/storesync-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/storesync-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/storesync-cli/internal/adapters/driving/tui/views/activity"
	"github.com/custodia-labs/storesync-cli/internal/adapters/driving/tui/views/form"
	"github.com/custodia-labs/storesync-cli/internal/adapters/driving/tui/views/history"
	"github.com/custodia-labs/storesync-cli/internal/core/domain"
	"github.com/custodia-labs/storesync-cli/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	formView     *form.View
	activityView *activity.View
	historyView  *history.View
	banner       *notice.Banner
	statusBar    *status.Bar

	// currentView tracks which view is active.
	currentView messages.ViewType

	// tableFocused is true while arrow keys go to the activity table.
	tableFocused bool

	// err holds the last error that occurred.
	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	settings := loadSettings(ports)
	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		keymap:       km,
		formView:     form.NewView(s, km, ports.Console, settings.APIVersions),
		activityView: activity.NewView(s, km, ports.Console),
		historyView:  history.NewView(s, km, ports.Journal),
		banner:       notice.NewBanner(s, settings.Display.NotificationLifetime),
		statusBar:    status.NewBar(s, km),
		currentView:  messages.ViewConsole,
	}, nil
}

func loadSettings(ports *Ports) domain.ConsoleSettings {
	settings, err := ports.Settings.Get()
	if err != nil || settings == nil {
		logger.Warn("loading settings, using defaults: %v", err)
		return domain.DefaultConsoleSettings()
	}
	return *settings
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.formView.WithContext(ctx)
	a.activityView.WithContext(ctx)
	a.historyView.WithContext(ctx)
	return a
}

// Init implements tea.Model. The activity table loads on first show.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("storesync - Shopify Store Sync"),
		a.formView.Init(),
		a.activityView.Init(),
	)
}

// Update implements tea.Model. The status bar follows the console after
// every message.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := a.update(msg)
	a.statusBar.Sync(a.ports.Console.State())
	return a, cmd
}

//nolint:gocyclo // central message handler
func (a *App) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case spinner.TickMsg:
		// Each spinner ignores ticks carrying another spinner's ID.
		var formCmd, activityCmd tea.Cmd
		a.formView, formCmd = a.formView.Update(msg)
		a.activityView, activityCmd = a.activityView.Update(msg)
		return tea.Batch(formCmd, activityCmd)

	case messages.SubmitRequested:
		a.formView, cmd = a.formView.Update(msg)
		return cmd

	case messages.SubmissionCompleted:
		a.formView, _ = a.formView.Update(msg)
		if msg.Result.Succeeded() {
			return a.banner.Expire(a.ports.Console.State().Notification)
		}
		return nil

	case messages.NotificationExpired:
		a.ports.Console.DismissNotification(msg.ID)
		return nil

	case messages.RefreshRequested, messages.ActivityLoaded:
		a.activityView, cmd = a.activityView.Update(msg)
		return cmd

	case messages.HistoryLoaded:
		a.historyView, cmd = a.historyView.Update(msg)
		return cmd

	case messages.ViewChanged:
		return a.switchView(msg.View)

	case messages.SettingsReloaded:
		settings := loadSettings(a.ports)
		a.formView.SetVersions(settings.APIVersions)
		a.banner.SetLifetime(settings.Display.NotificationLifetime)
		logger.Info("settings reloaded")
		return nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		return nil

	case messages.Quit:
		return tea.Quit
	}

	return nil
}

//nolint:gocyclo // one branch per global binding
func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	k := msg.String()

	if keymap.Matches(k, a.keymap.Quit) {
		return tea.Quit
	}

	if keymap.Matches(k, a.keymap.Help) {
		if a.currentView == messages.ViewHelp {
			return a.switchView(messages.ViewConsole)
		}
		return a.switchView(messages.ViewHelp)
	}

	switch a.currentView {
	case messages.ViewHelp:
		if keymap.Matches(k, a.keymap.Back) {
			return a.switchView(messages.ViewConsole)
		}
		return nil

	case messages.ViewHistory:
		if keymap.Matches(k, a.keymap.History) {
			return a.switchView(messages.ViewConsole)
		}
		a.historyView, cmd = a.historyView.Update(msg)
		return cmd

	case messages.ViewConsole:
		// handled below
	}

	switch {
	case keymap.Matches(k, a.keymap.History):
		return a.switchView(messages.ViewHistory)

	case keymap.Matches(k, a.keymap.Refresh):
		return a.activityView.Refresh()

	case keymap.Matches(k, a.keymap.SwitchPane):
		return a.togglePane()
	}

	if a.tableFocused {
		if keymap.Matches(k, a.keymap.Back) {
			return a.togglePane()
		}
		if keymap.Matches(k, a.keymap.Fetch) || keymap.Matches(k, a.keymap.Sync) {
			a.formView, cmd = a.formView.Update(msg)
			return cmd
		}
		a.activityView, cmd = a.activityView.Update(msg)
		return cmd
	}

	a.formView, cmd = a.formView.Update(msg)
	return cmd
}

func (a *App) togglePane() tea.Cmd {
	a.tableFocused = !a.tableFocused
	if a.tableFocused {
		a.formView.Blur()
		a.activityView.Focus()
		return nil
	}
	a.activityView.Blur()
	return a.formView.Focus()
}

func (a *App) switchView(v messages.ViewType) tea.Cmd {
	a.currentView = v
	if v == messages.ViewHistory {
		return a.historyView.Init()
	}
	return nil
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewHistory:
		return a.historyView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.viewConsole()
	}
}

func (a *App) viewConsole() string {
	parts := make([]string, 0, 5)
	if banner := a.banner.View(a.ports.Console.State().Notification); banner != "" {
		parts = append(parts, banner)
	}
	parts = append(parts,
		a.formView.View(),
		"",
		a.activityView.View(),
		a.statusBar.View(),
	)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			writeBinding(&b, binding)
		}
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Help.Render("[esc] back to the form"))
	return b.String()
}

func writeBinding(b *strings.Builder, binding key.Binding) {
	h := binding.Help()
	fmt.Fprintf(b, "  %-12s %s\n", h.Key, h.Desc)
}

// Program creates the bubbletea program for the app. Callers that need to
// inject messages, such as a config watcher, keep the program and Send.
func (a *App) Program(opts ...tea.ProgramOption) *tea.Program {
	base := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(a.ctx)}
	return tea.NewProgram(a, append(base, opts...)...)
}

// Run starts the TUI application.
func (a *App) Run() error {
	_, err := a.Program().Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// TableFocused reports whether the activity table has focus.
func (a *App) TableFocused() bool {
	return a.tableFocused
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has received its first window size.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.formView.SetDimensions(width, height)
	a.activityView.SetDimensions(width, height)
	a.historyView.SetDimensions(width, height)
	a.statusBar.SetWidth(width)
}
