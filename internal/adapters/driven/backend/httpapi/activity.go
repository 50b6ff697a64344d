package httpapi

import (
	"time"

	"github.com/custodia-labs/storesync-cli/internal/core/domain"
)

type activityPayload struct {
	StoreOrderDates []storeOrderDates `json:"store_order_dates"`
	LastSyncMin     flexTime          `json:"last_sync_min"`
	LastSyncMax     flexTime          `json:"last_sync_max"`
}

type storeOrderDates struct {
	StoreName           string   `json:"store_name"`
	CreatedAtMinShopify flexTime `json:"created_at_min_shopify"`
	CreatedAtMaxShopify flexTime `json:"created_at_max_shopify"`
	UpdatedAt           flexTime `json:"updated_at"`
}

func (p activityPayload) snapshot() *domain.ActivitySnapshot {
	stores := make([]domain.StoreOrderDates, 0, len(p.StoreOrderDates))
	for _, s := range p.StoreOrderDates {
		stores = append(stores, domain.StoreOrderDates{
			StoreName:    s.StoreName,
			CreatedAtMin: s.CreatedAtMinShopify.Time,
			CreatedAtMax: s.CreatedAtMaxShopify.Time,
			UpdatedAt:    s.UpdatedAt.Time,
		})
	}
	return &domain.ActivitySnapshot{
		Stores:      stores,
		LastSyncMin: p.LastSyncMin.Time,
		LastSyncMax: p.LastSyncMax.Time,
	}
}

// flexTime accepts the date shapes the backend emits: RFC 3339 with or
// without fractional seconds, naive datetimes (taken as UTC), bare dates,
// null and "". Unparseable values decode to the zero time.
type flexTime struct {
	time.Time
}

var flexLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *flexTime) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		f.Time = time.Time{}
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	f.Time = parseFlexTime(s)
	return nil
}

func parseFlexTime(s string) time.Time {
	for _, layout := range flexLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
