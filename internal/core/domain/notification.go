package domain

// Notification is a transient success message.
type Notification struct {
	// ID increases with every notification so stale expiry timers can be ignored.
	ID      int
	Visible bool
	Message string
}
