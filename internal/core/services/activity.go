package services

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/custodia-labs/storesync-cli/internal/core/domain"
)

// Placeholders used when the backend omits a date.
const (
	missingDate  = "n/a"
	notFetched   = "Not fetched"
	neverSynced  = "Never synced"
	rangeJoiner  = " to "
	updatedAgoFm = "%s (updated %s)"
)

// ActivityFormatter renders activity snapshots as table rows.
type ActivityFormatter struct {
	layout   string
	location *time.Location
	now      func() time.Time
}

// NewActivityFormatter creates a formatter from display settings.
func NewActivityFormatter(display domain.DisplaySettings) *ActivityFormatter {
	layout := display.DateLayout
	if layout == "" {
		layout = domain.DefaultDateLayout
	}
	return &ActivityFormatter{
		layout:   layout,
		location: display.Location(),
		now:      time.Now,
	}
}

// WithClock returns a copy that uses now for relative times.
func (f *ActivityFormatter) WithClock(now func() time.Time) *ActivityFormatter {
	c := *f
	c.now = now
	return &c
}

// Records projects a snapshot into rows numbered from 1.
func (f *ActivityFormatter) Records(snapshot *domain.ActivitySnapshot) []domain.ActivityRecord {
	if snapshot == nil {
		return []domain.ActivityRecord{}
	}

	lastSync := f.Range(snapshot.LastSyncMin, snapshot.LastSyncMax, neverSynced)
	records := make([]domain.ActivityRecord, 0, len(snapshot.Stores))
	for i, store := range snapshot.Stores {
		summary := lastSync
		if !store.UpdatedAt.IsZero() {
			summary = fmt.Sprintf(updatedAgoFm, lastSync, f.Relative(store.UpdatedAt))
		}
		records = append(records, domain.ActivityRecord{
			ID:              i + 1,
			StoreName:       store.StoreName,
			FetchedRange:    f.Range(store.CreatedAtMin, store.CreatedAtMax, notFetched),
			LastSyncSummary: summary,
		})
	}
	return records
}

// Date formats a single date, or a placeholder for the zero time.
func (f *ActivityFormatter) Date(t time.Time) string {
	if t.IsZero() {
		return missingDate
	}
	return t.In(f.location).Format(f.layout)
}

// Range formats a pair of bounds. empty is returned when both are zero.
func (f *ActivityFormatter) Range(from, to time.Time, empty string) string {
	if from.IsZero() && to.IsZero() {
		return empty
	}
	return f.Date(from) + rangeJoiner + f.Date(to)
}

// Relative renders t relative to now, e.g. "3 days ago".
func (f *ActivityFormatter) Relative(t time.Time) string {
	return humanize.RelTime(t, f.now(), "ago", "from now")
}
