package domain

import "time"

// StoreOrderDates is the backend's record of what has been fetched for a store.
// Zero times mean the backend sent no value, or one that did not parse.
type StoreOrderDates struct {
	StoreName    string
	CreatedAtMin time.Time
	CreatedAtMax time.Time
	UpdatedAt    time.Time
}

// ActivitySnapshot is the status payload served on the backend root.
type ActivitySnapshot struct {
	Stores      []StoreOrderDates
	LastSyncMin time.Time
	LastSyncMax time.Time
}

// ActivityRecord is one row of the recent-activity table.
// Records are rebuilt wholesale on each refresh.
type ActivityRecord struct {
	// ID is the 1-based position in the backend list.
	ID int

	// StoreName is the store the range belongs to.
	StoreName string

	// FetchedRange describes the order-date range already fetched.
	FetchedRange string

	// LastSyncSummary describes the global last-sync bounds.
	LastSyncSummary string
}
