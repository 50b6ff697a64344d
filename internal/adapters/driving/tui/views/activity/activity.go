// Package activity provides the recent-activity table for the TUI.
package activity

import (
	"context"
	"strconv"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/storesync-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/storesync-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/storesync-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/storesync-cli/internal/core/ports/driving"
)

const defaultTableHeight = 6

// View renders the activity table below the form.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	console driving.Console
	ctx     context.Context

	table   table.Model
	spinner spinner.Model

	width  int
	height int
	ready  bool
}

// NewView creates the activity view.
func NewView(s *styles.Styles, km *keymap.KeyMap, console driving.Console) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	t := table.New(
		table.WithColumns(columns(80)),
		table.WithHeight(defaultTableHeight),
		table.WithStyles(s.Table()),
	)
	t.Blur()

	v := &View{
		styles:  s,
		keymap:  km,
		console: console,
		ctx:     context.Background(),
		table:   t,
		spinner: spinner.New(spinner.WithSpinner(spinner.Line), spinner.WithStyle(s.Muted)),
	}
	v.syncRows()
	return v
}

// WithContext sets the context refreshes run under.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the table for the first time.
func (v *View) Init() tea.Cmd {
	return v.Refresh()
}

// Refresh starts a reload. It does nothing while one is already running.
func (v *View) Refresh() tea.Cmd {
	if err := v.console.BeginRefresh(); err != nil {
		return nil
	}

	ctx := v.ctx
	console := v.console
	return tea.Batch(
		v.spinner.Tick,
		func() tea.Msg {
			return messages.ActivityLoaded{Err: console.CompleteRefresh(ctx)}
		},
	)
}

// Update handles messages for the activity view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case spinner.TickMsg:
		if !v.console.State().Refreshing {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case messages.RefreshRequested:
		return v, v.Refresh()

	case messages.ActivityLoaded:
		// Failures were logged by the console; the previous rows stay.
		v.syncRows()
		return v, nil

	case tea.KeyMsg:
		if keymap.Matches(msg.String(), v.keymap.Refresh) {
			return v, v.Refresh()
		}
		var cmd tea.Cmd
		v.table, cmd = v.table.Update(msg)
		return v, cmd
	}

	return v, nil
}

func (v *View) syncRows() {
	records := v.console.State().Activity
	rows := make([]table.Row, 0, len(records))
	for _, r := range records {
		rows = append(rows, table.Row{
			strconv.Itoa(r.ID),
			r.StoreName,
			r.FetchedRange,
			r.LastSyncSummary,
		})
	}
	v.table.SetRows(rows)
}

// View renders the header, the refresh control and the table.
func (v *View) View() string {
	state := v.console.State()

	control := v.styles.Button.Render("Refresh")
	if !state.RefreshEnabled() {
		control = v.styles.ButtonDisabled.Render(v.spinner.View() + " Refreshing...")
	}
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		v.styles.Subtitle.Render("Recent Activity"), "  ", control)

	if len(state.Activity) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header, v.styles.Muted.Render("No activity yet."))
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, v.styles.Border.Render(v.table.View()))
}

// SetDimensions sets the view dimensions and resizes the columns.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.table.SetColumns(columns(width))
	v.table.SetWidth(width - 2)
	h := height / 4
	if h < defaultTableHeight {
		h = defaultTableHeight
	}
	v.table.SetHeight(h)
}

// Focus hands arrow keys to the table.
func (v *View) Focus() {
	v.table.Focus()
}

// Blur returns arrow keys to the form.
func (v *View) Blur() {
	v.table.Blur()
}

// Focused returns whether the table has focus.
func (v *View) Focused() bool {
	return v.table.Focused()
}

// Rows returns the rendered rows.
func (v *View) Rows() []table.Row {
	return v.table.Rows()
}

// columns splits width between the four columns.
func columns(width int) []table.Column {
	avail := width - 12
	if avail < 60 {
		avail = 60
	}
	return []table.Column{
		{Title: "#", Width: 3},
		{Title: "Store", Width: avail * 3 / 10},
		{Title: "Fetched Range", Width: avail * 3 / 10},
		{Title: "Last Sync", Width: avail * 4 / 10},
	}
}

