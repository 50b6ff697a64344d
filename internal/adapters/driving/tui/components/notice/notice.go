// Package notice renders the transient success notification.
package notice

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/storesync-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/storesync-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/storesync-cli/internal/core/domain"
)

// Banner shows the console notification while it is visible.
type Banner struct {
	styles   *styles.Styles
	lifetime time.Duration
}

// NewBanner creates a banner. A zero lifetime keeps notifications until
// they are dismissed.
func NewBanner(s *styles.Styles, lifetime time.Duration) *Banner {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Banner{styles: s, lifetime: lifetime}
}

// SetLifetime changes how long later notifications stay up.
func (b *Banner) SetLifetime(d time.Duration) {
	b.lifetime = d
}

// Lifetime returns the configured lifetime.
func (b *Banner) Lifetime() time.Duration {
	return b.lifetime
}

// Expire schedules NotificationExpired for n. Stale timers are harmless
// because the console ignores an ID that is no longer showing.
func (b *Banner) Expire(n domain.Notification) tea.Cmd {
	if !n.Visible || b.lifetime <= 0 {
		return nil
	}
	id := n.ID
	return tea.Tick(b.lifetime, func(time.Time) tea.Msg {
		return messages.NotificationExpired{ID: id}
	})
}

// View renders n, or nothing when it is hidden.
func (b *Banner) View(n domain.Notification) string {
	if !n.Visible || n.Message == "" {
		return ""
	}
	return b.styles.Notification.Render("✓ " + n.Message)
}
