// Package history provides the submission journal view for the TUI.
package history

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/storesync-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/storesync-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/storesync-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/storesync-cli/internal/core/domain"
	"github.com/custodia-labs/storesync-cli/internal/core/ports/driving"
)

// Limit is how many journal entries the view loads.
const Limit = 50

const timeLayout = "2006-01-02 15:04:05"

// View lists past submissions, newest first.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	journal driving.JournalService
	ctx     context.Context

	table   table.Model
	records []domain.SubmissionRecord
	err     error
	loading bool

	width  int
	height int
	ready  bool
}

// NewView creates the history view. journal may be nil.
func NewView(s *styles.Styles, km *keymap.KeyMap, journal driving.JournalService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Started", Width: 19},
			{Title: "Kind", Width: 5},
			{Title: "Store", Width: 30},
			{Title: "Outcome", Width: 9},
			{Title: "Status", Width: 6},
			{Title: "Took", Width: 7},
			{Title: "Message", Width: 40},
		}),
		table.WithFocused(true),
		table.WithHeight(10),
		table.WithStyles(s.Table()),
	)

	return &View{
		styles:  s,
		keymap:  km,
		journal: journal,
		ctx:     context.Background(),
		table:   t,
	}
}

// WithContext sets the context used for loading.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the journal.
func (v *View) Init() tea.Cmd {
	if v.journal == nil {
		return nil
	}
	v.loading = true
	ctx := v.ctx
	journal := v.journal
	return func() tea.Msg {
		records, err := journal.Recent(ctx, Limit)
		return messages.HistoryLoaded{Records: records, Err: err}
	}
}

// Update handles messages for the history view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.HistoryLoaded:
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.records = msg.Records
			v.table.SetRows(rows(msg.Records))
		}
		return v, nil

	case tea.KeyMsg:
		if keymap.Matches(msg.String(), v.keymap.Back) {
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewConsole}
			}
		}
		var cmd tea.Cmd
		v.table, cmd = v.table.Update(msg)
		return v, cmd
	}

	return v, nil
}

func rows(records []domain.SubmissionRecord) []table.Row {
	out := make([]table.Row, 0, len(records))
	for _, r := range records {
		status := ""
		if r.StatusCode != 0 {
			status = strconv.Itoa(r.StatusCode)
		}
		out = append(out, table.Row{
			r.StartedAt.Local().Format(timeLayout),
			r.Kind.String(),
			r.StoreURL,
			r.Outcome.String(),
			status,
			r.Duration().Round(time.Millisecond).String(),
			r.Message,
		})
	}
	return out
}

// View renders the journal.
func (v *View) View() string {
	title := v.styles.Title.Render("Submission History")
	help := v.styles.Help.Render("[esc] back  [↑/↓] scroll")

	var body string
	switch {
	case v.journal == nil:
		body = v.styles.Muted.Render("The journal is disabled (journal.enabled = false).")
	case v.loading:
		body = v.styles.Muted.Render("Loading...")
	case v.err != nil:
		body = v.styles.Error.Render(fmt.Sprintf("Could not load history: %v", v.err))
	case len(v.records) == 0:
		body = v.styles.Muted.Render("No submissions recorded yet.")
	default:
		body = v.styles.Border.Render(v.table.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", help)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	if h := height - 8; h > 3 {
		v.table.SetHeight(h)
	}
}

// Records returns the loaded records.
func (v *View) Records() []domain.SubmissionRecord {
	return v.records
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}
