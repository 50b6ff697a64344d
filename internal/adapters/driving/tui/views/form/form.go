// Package form provides the credential and date-range form for the TUI.
package form

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/storesync-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/storesync-cli/internal/adapters/driving/tui/components/picker"
	"github.com/custodia-labs/storesync-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/storesync-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/storesync-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/storesync-cli/internal/core/domain"
	"github.com/custodia-labs/storesync-cli/internal/core/ports/driving"
	"github.com/custodia-labs/storesync-cli/internal/logger"
)

// Target identifies a focusable control, in tab order.
type Target int

const (
	TargetAPIKey Target = iota
	TargetPassword
	TargetStoreURL
	TargetAPIVersion
	TargetStartDate
	TargetEndDate
	TargetFullSync
	TargetFetch
	TargetSync
	targetCount
)

// View is the form half of the console screen.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	console driving.Console
	ctx     context.Context

	apiKey   *input.Field
	password *input.Field
	storeURL *input.Field
	version  *picker.Picker
	start    *input.DateField
	end      *input.DateField
	spinner  spinner.Model

	focus Target
	// inputErr is a date that could not be parsed. It never reaches the
	// console, so it is kept here.
	inputErr string

	width  int
	height int
	ready  bool
}

// NewView creates the form. versions are the API versions offered.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	console driving.Console,
	versions []string,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	form := console.State().Form

	v := &View{
		styles:   s,
		keymap:   km,
		console:  console,
		ctx:      context.Background(),
		apiKey:   input.NewField(s, domain.FieldAPIKey.Label(), input.WithPlaceholder("shpat_..."), input.Masked()),
		password: input.NewField(s, domain.FieldPassword.Label(), input.Masked()),
		storeURL: input.NewField(s, domain.FieldStoreURL.Label(), input.WithPlaceholder("your-store.myshopify.com")),
		version:  picker.New(s, km, domain.FieldAPIVersion.Label(), versions, form.APIVersion),
		start:    input.NewDateField(s, domain.FieldCreatedAtMin.Label()),
		end:      input.NewDateField(s, domain.FieldCreatedAtMax.Label()),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(s.Warning)),
	}
	v.load(form)
	if got := v.version.Value(); got != form.APIVersion {
		v.pushField(domain.FieldAPIVersion, got)
	}
	return v
}

// WithContext sets the context submissions run under.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init focuses the first field.
func (v *View) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, v.setFocus(TargetAPIKey))
}

// Update handles messages for the form.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case spinner.TickMsg:
		if v.console.State().Status.IsIdle() {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case messages.SubmitRequested:
		return v, v.submit(msg.Kind)

	case messages.SubmissionCompleted:
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	return v, nil
}

//nolint:gocyclo // one branch per binding
func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()

	switch {
	case keymap.Matches(k, v.keymap.Fetch):
		return v, v.submit(domain.OperationFetch)

	case keymap.Matches(k, v.keymap.Sync):
		return v, v.submit(domain.OperationSync)

	case keymap.Matches(k, v.keymap.NextField):
		v.commit()
		return v, v.setFocus((v.focus + 1) % targetCount)

	case keymap.Matches(k, v.keymap.PrevField):
		v.commit()
		return v, v.setFocus((v.focus + targetCount - 1) % targetCount)

	case keymap.Matches(k, v.keymap.Dismiss):
		v.inputErr = ""
		v.console.DismissErrors()
		v.console.DismissNotification(0)
		return v, nil
	}

	switch v.focus {
	case TargetFullSync:
		if keymap.Matches(k, v.keymap.Toggle) || keymap.Matches(k, v.keymap.Activate) {
			v.toggleFullSync()
		}
		return v, nil

	case TargetFetch, TargetSync:
		if keymap.Matches(k, v.keymap.Activate) {
			kind := domain.OperationFetch
			if v.focus == TargetSync {
				kind = domain.OperationSync
			}
			return v, v.submit(kind)
		}
		return v, nil
	}

	if keymap.Matches(k, v.keymap.Activate) {
		v.commit()
		return v, v.setFocus(v.focus + 1)
	}

	return v, v.forward(msg)
}

// forward passes a key to the focused control and pushes text changes to
// the console. Dates are pushed when the field is left.
func (v *View) forward(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd

	switch v.focus {
	case TargetAPIKey:
		_, cmd = v.apiKey.Update(msg)
		v.pushField(domain.FieldAPIKey, v.apiKey.Value())
	case TargetPassword:
		_, cmd = v.password.Update(msg)
		v.pushField(domain.FieldPassword, v.password.Value())
	case TargetStoreURL:
		_, cmd = v.storeURL.Update(msg)
		v.pushField(domain.FieldStoreURL, v.storeURL.Value())
	case TargetAPIVersion:
		before := v.version.Value()
		_, cmd = v.version.Update(msg)
		if after := v.version.Value(); after != before {
			v.pushField(domain.FieldAPIVersion, after)
		}
	case TargetStartDate:
		_, cmd = v.start.Update(msg)
	case TargetEndDate:
		_, cmd = v.end.Update(msg)
	}

	return cmd
}

func (v *View) pushField(field domain.Field, value string) {
	if err := v.console.UpdateField(field, value); err != nil {
		logger.Warn("update %s: %v", field, err)
	}
}

// commit pushes a pending date edit from the focused date field.
func (v *View) commit() {
	switch v.focus {
	case TargetStartDate:
		v.commitDate(v.start, domain.FieldCreatedAtMin)
	case TargetEndDate:
		v.commitDate(v.end, domain.FieldCreatedAtMax)
	}
}

// commitDate sends the typed date. A refused date is reverted to what the
// console holds; the console has already recorded why.
func (v *View) commitDate(field *input.DateField, name domain.Field) {
	date, err := field.Date()
	if err != nil {
		v.inputErr = err.Error()
		return
	}
	v.inputErr = ""

	if err := v.console.UpdateDate(name, date); err != nil {
		if !errors.Is(err, domain.ErrDateRange) {
			logger.Warn("update %s: %v", name, err)
		}
		form := v.console.State().Form
		if name == domain.FieldCreatedAtMin {
			field.SetDate(form.CreatedAtMin)
		} else {
			field.SetDate(form.CreatedAtMax)
		}
	}
}

func (v *View) toggleFullSync() {
	on := !v.console.State().Form.FullFetchSync
	v.pushField(domain.FieldFullFetchSync, strconv.FormatBool(on))
	if on {
		v.inputErr = ""
	}
	v.load(v.console.State().Form)
}

// submit starts kind. The state flips to in flight before the command
// runs so both buttons disable on this frame.
func (v *View) submit(kind domain.OperationKind) tea.Cmd {
	if !v.console.State().SubmitEnabled() {
		return nil
	}

	v.commit()
	if v.inputErr != "" {
		return nil
	}

	req, err := v.console.Begin(kind)
	if err != nil {
		return nil
	}

	ctx := v.ctx
	console := v.console
	return tea.Batch(
		v.spinner.Tick,
		func() tea.Msg {
			return messages.SubmissionCompleted{Result: console.Complete(ctx, req)}
		},
	)
}

// load copies form values into the inputs.
func (v *View) load(form domain.FormState) {
	v.apiKey.SetValue(form.APIKey)
	v.password.SetValue(form.Password)
	v.storeURL.SetValue(form.StoreURL)
	v.version.SetValue(form.APIVersion)
	v.start.SetDate(form.CreatedAtMin)
	v.end.SetDate(form.CreatedAtMax)
}

func (v *View) setFocus(t Target) tea.Cmd {
	v.apiKey.Blur()
	v.password.Blur()
	v.storeURL.Blur()
	v.version.Blur()
	v.start.Blur()
	v.end.Blur()

	v.focus = t
	switch t {
	case TargetAPIKey:
		return v.apiKey.Focus()
	case TargetPassword:
		return v.password.Focus()
	case TargetStoreURL:
		return v.storeURL.Focus()
	case TargetAPIVersion:
		return v.version.Focus()
	case TargetStartDate:
		return v.start.Focus()
	case TargetEndDate:
		return v.end.Focus()
	}
	return nil
}

// SetVersions replaces the offered API versions.
func (v *View) SetVersions(versions []string) {
	v.version.SetOptions(versions, v.console.State().Form.APIVersion)
	if got := v.version.Value(); got != v.console.State().Form.APIVersion {
		v.pushField(domain.FieldAPIVersion, got)
	}
}

// Blur drops focus from every control.
func (v *View) Blur() {
	v.commit()
	v.apiKey.Blur()
	v.password.Blur()
	v.storeURL.Blur()
	v.version.Blur()
	v.start.Blur()
	v.end.Blur()
}

// Focus returns focus to the last focused control.
func (v *View) Focus() tea.Cmd {
	return v.setFocus(v.focus)
}

// View renders the form.
func (v *View) View() string {
	state := v.console.State()

	sections := []string{
		v.styles.Title.Render("Shopify Store Sync"),
		v.styles.Muted.Render("Enter your store credentials, then fetch a date range or sync."),
		"",
		v.apiKey.View(),
		v.password.View(),
		v.storeURL.View(),
		v.version.View(),
		lipgloss.JoinHorizontal(lipgloss.Top, v.start.View(), "  ", v.end.View()),
		v.renderCheckbox(state.Form.FullFetchSync),
		"",
		v.renderButtons(state),
	}

	if errs := v.renderErrors(state.Errors); errs != "" {
		sections = append(sections, "", errs)
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderCheckbox(on bool) string {
	box := "[ ]"
	if on {
		box = "[x]"
	}
	text := box + " " + domain.FieldFullFetchSync.Label()
	if v.focus == TargetFullSync {
		return v.styles.Focused.Render(text)
	}
	return v.styles.Label.Render(text)
}

func (v *View) renderButtons(state domain.ConsoleState) string {
	running, busy := state.Status.InFlight()
	button := func(kind domain.OperationKind, target Target) string {
		label := kind.ActionLabel()
		if busy && running == kind {
			label = v.spinner.View() + " " + kind.ProgressLabel()
		}
		switch {
		case !state.SubmitEnabled():
			return v.styles.ButtonDisabled.Render(label)
		case v.focus == target:
			return v.styles.ButtonFocused.Render(label)
		default:
			return v.styles.Button.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		button(domain.OperationFetch, TargetFetch),
		"  ",
		button(domain.OperationSync, TargetSync),
	)
}

func (v *View) renderErrors(errs domain.ValidationErrors) string {
	lines := make([]string, 0, len(errs)+1)
	if v.inputErr != "" {
		lines = append(lines, v.styles.Error.Render("• "+v.inputErr))
	}
	for _, e := range errs {
		lines = append(lines, v.styles.Error.Render("• "+e))
	}
	return strings.Join(lines, "\n")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	fieldWidth := width / 2
	if fieldWidth > 60 {
		fieldWidth = 60
	}
	v.apiKey.SetWidth(fieldWidth)
	v.password.SetWidth(fieldWidth)
	v.storeURL.SetWidth(fieldWidth)
}

// FocusTarget returns the focused control.
func (v *View) FocusTarget() Target {
	return v.focus
}

// InputErr returns the pending date parse error, if any.
func (v *View) InputErr() string {
	return v.inputErr
}
