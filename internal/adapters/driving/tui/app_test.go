package tui

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/storesync-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/storesync-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/storesync-cli/internal/core/domain"
	"github.com/custodia-labs/storesync-cli/internal/core/services"
)

const testStore = "rdx-sports-store.myshopify.com"

// fakeBackend records submissions and serves one store of activity.
type fakeBackend struct {
	mu        sync.Mutex
	submitted []domain.SubmissionRequest
	message   string
}

func (b *fakeBackend) Submit(_ context.Context, req domain.SubmissionRequest) (*domain.SubmissionResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.submitted = append(b.submitted, req)
	return &domain.SubmissionResponse{StatusCode: 200, Message: b.message}, nil
}

func (b *fakeBackend) Activity(context.Context) (*domain.ActivitySnapshot, error) {
	return &domain.ActivitySnapshot{Stores: []domain.StoreOrderDates{{StoreName: "rdx-sports-store"}}}, nil
}

type testEnv struct {
	app      *App
	console  *services.Console
	backend  *fakeBackend
	config   *memory.ConfigStore
	journal  *services.JournalService
	settings *services.SettingsService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	config := memory.NewConfigStore()
	// No expiry timers, so draining never sleeps on them.
	require.NoError(t, config.Set("display.notification_seconds", 0))
	settings := services.NewSettingsService(config)
	journal := services.NewJournalService(memory.NewSubmissionStore())
	backend := &fakeBackend{}
	console := services.NewConsole(backend, settings, services.WithJournal(journal))

	app, err := NewApp(&Ports{Console: console, Settings: settings, Journal: journal})
	require.NoError(t, err)
	app.SetDimensions(120, 50)

	return &testEnv{app: app, console: console, backend: backend, config: config, journal: journal, settings: settings}
}

func (e *testEnv) fill(t *testing.T) {
	t.Helper()
	require.NoError(t, e.console.UpdateField(domain.FieldAPIKey, strings.Repeat("k", 32)))
	require.NoError(t, e.console.UpdateField(domain.FieldPassword, strings.Repeat("p", 32)))
	require.NoError(t, e.console.UpdateField(domain.FieldStoreURL, testStore))
}

// drain runs cmd and feeds every resulting message back into the app.
// Spinner ticks and expiry timers are dropped so the loop terminates.
func (e *testEnv) drain(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case nil, tea.QuitMsg, spinner.TickMsg, messages.NotificationExpired:
	case tea.BatchMsg:
		for _, c := range msg {
			e.drain(c)
		}
	default:
		_, next := e.app.Update(msg)
		e.drain(next)
	}
}

func keyMsg(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func TestNewApp_Success(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, messages.ViewConsole, env.app.CurrentView())
	assert.True(t, env.app.Ready())
	assert.False(t, env.app.TableFocused())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(&Ports{})

	assert.ErrorIs(t, err, ErrMissingConsole)
	assert.Nil(t, app)
}

func TestApp_ViewBeforeReady(t *testing.T) {
	config := memory.NewConfigStore()
	settings := services.NewSettingsService(config)
	app, err := NewApp(&Ports{Console: services.NewConsole(nil, settings), Settings: settings})
	require.NoError(t, err)

	assert.Equal(t, "Initialising...", app.View())
}

func TestApp_WindowSize(t *testing.T) {
	env := newTestEnv(t)

	env.app.Update(tea.WindowSizeMsg{Width: 150, Height: 60})

	assert.True(t, env.app.Ready())
	assert.Equal(t, 150, env.app.statusBar.Width())
}

func TestApp_InitLoadsActivity(t *testing.T) {
	env := newTestEnv(t)

	env.drain(env.app.Init())

	state := env.console.State()
	require.Len(t, state.Activity, 1)
	assert.False(t, state.Refreshing)
	assert.Contains(t, env.app.View(), "rdx-sports-store")
}

func TestApp_CtrlCQuits(t *testing.T) {
	env := newTestEnv(t)

	_, cmd := env.app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_QuitMessage(t *testing.T) {
	env := newTestEnv(t)

	_, cmd := env.app.Update(messages.Quit{})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_FetchWithoutInputShowsErrors(t *testing.T) {
	env := newTestEnv(t)

	env.app.Update(tea.KeyMsg{Type: tea.KeyCtrlF})

	view := env.app.View()
	assert.Contains(t, view, domain.MsgCredentialsRequired)
	assert.Contains(t, view, "Error")
	assert.Empty(t, env.backend.submitted)
}

func TestApp_SyncShowsNotificationAndJournals(t *testing.T) {
	env := newTestEnv(t)
	env.fill(t)
	env.backend.message = "Queued 12 orders."

	_, cmd := env.app.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Contains(t, env.app.View(), "Syncing...")

	env.drain(cmd)

	state := env.console.State()
	assert.True(t, state.Status.IsIdle())
	assert.True(t, state.Notification.Visible)
	assert.Contains(t, env.app.View(), "Queued 12 orders.")

	records, err := env.journal.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.OperationSync, records[0].Kind)
}

func TestApp_SubmissionCompletedSchedulesExpiry(t *testing.T) {
	env := newTestEnv(t)
	env.fill(t)
	env.app.banner.SetLifetime(time.Second)
	result, err := env.console.Submit(context.Background(), domain.OperationSync)
	require.NoError(t, err)

	_, cmd := env.app.Update(messages.SubmissionCompleted{Result: result})

	assert.NotNil(t, cmd, "a positive lifetime schedules an expiry")
}

func TestApp_NotificationExpired(t *testing.T) {
	env := newTestEnv(t)
	env.fill(t)
	_, err := env.console.Submit(context.Background(), domain.OperationSync)
	require.NoError(t, err)
	id := env.console.State().Notification.ID

	env.app.Update(messages.NotificationExpired{ID: id + 1})
	assert.True(t, env.console.State().Notification.Visible, "stale timer ignored")

	env.app.Update(messages.NotificationExpired{ID: id})
	assert.False(t, env.console.State().Notification.Visible)
	assert.NotContains(t, env.app.View(), "Data synced successfully.")
}

func TestApp_RefreshKey(t *testing.T) {
	env := newTestEnv(t)

	_, cmd := env.app.Update(tea.KeyMsg{Type: tea.KeyCtrlR})

	require.NotNil(t, cmd)
	assert.True(t, env.console.State().Refreshing)

	_, again := env.app.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Nil(t, again)

	env.drain(cmd)
	assert.False(t, env.console.State().Refreshing)
}

func TestApp_SwitchPane(t *testing.T) {
	env := newTestEnv(t)

	env.app.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.True(t, env.app.TableFocused())
	assert.True(t, env.app.activityView.Focused())

	env.app.Update(keyMsg(tea.KeyEsc))
	assert.False(t, env.app.TableFocused())
	assert.False(t, env.app.activityView.Focused())
}

func TestApp_SubmitFromTable(t *testing.T) {
	env := newTestEnv(t)
	env.fill(t)
	env.app.Update(tea.KeyMsg{Type: tea.KeyCtrlT})

	_, cmd := env.app.Update(tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.NotNil(t, cmd)
	assert.Equal(t, domain.StatusSyncInFlight, env.console.State().Status)
}

func TestApp_HelpView(t *testing.T) {
	env := newTestEnv(t)

	env.app.Update(keyMsg(tea.KeyF1))
	assert.Equal(t, messages.ViewHelp, env.app.CurrentView())
	view := env.app.View()
	assert.Contains(t, view, "Help")
	assert.Contains(t, view, "ctrl+f")

	env.app.Update(keyMsg(tea.KeyEsc))
	assert.Equal(t, messages.ViewConsole, env.app.CurrentView())
}

func TestApp_HistoryView(t *testing.T) {
	env := newTestEnv(t)
	env.fill(t)
	_, err := env.console.Submit(context.Background(), domain.OperationSync)
	require.NoError(t, err)

	_, cmd := env.app.Update(tea.KeyMsg{Type: tea.KeyCtrlO})
	assert.Equal(t, messages.ViewHistory, env.app.CurrentView())
	env.drain(cmd)

	view := env.app.View()
	assert.Contains(t, view, "Submission History")
	assert.Contains(t, view, testStore)

	_, cmd = env.app.Update(keyMsg(tea.KeyEsc))
	env.drain(cmd)
	assert.Equal(t, messages.ViewConsole, env.app.CurrentView())
}

func TestApp_SettingsReloaded(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.config.Set("api.versions", []string{"2025-04"}))
	require.NoError(t, env.config.Set("api.default_version", "2025-04"))
	require.NoError(t, env.config.Set("display.notification_seconds", 9))

	env.app.Update(messages.SettingsReloaded{})

	assert.Equal(t, "2025-04", env.console.State().Form.APIVersion)
	assert.Equal(t, 9*time.Second, env.app.banner.Lifetime())
}

func TestApp_ErrorOccurred(t *testing.T) {
	env := newTestEnv(t)
	err := assert.AnError

	env.app.Update(messages.ErrorOccurred{Err: err})

	assert.ErrorIs(t, env.app.Err(), err)
}

func TestApp_WithContext(t *testing.T) {
	env := newTestEnv(t)

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	result := env.app.WithContext(ctx)

	assert.Equal(t, env.app, result)
	assert.Equal(t, ctx, env.app.ctx)
}
