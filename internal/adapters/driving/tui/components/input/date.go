package input

import (
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/storesync-cli/internal/adapters/driving/tui/styles"
)

// DateLayout is the layout typed into date fields.
const DateLayout = "2006-01-02"

// DateField is a Field holding a calendar date.
type DateField struct {
	*Field
}

// NewDateField creates a date field.
func NewDateField(s *styles.Styles, label string) *DateField {
	return &DateField{
		Field: NewField(s, label, WithPlaceholder("YYYY-MM-DD"), WithCharLimit(len(DateLayout))),
	}
}

// Date parses the typed value. An empty field is a nil date.
func (d *DateField) Date() (*time.Time, error) {
	raw := strings.TrimSpace(d.Value())
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(DateLayout, raw, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%s: expected a date like 2024-01-31", d.Label())
	}
	return &t, nil
}

// SetDate shows t, or clears the field for nil.
func (d *DateField) SetDate(t *time.Time) {
	if t == nil {
		d.SetValue("")
		return
	}
	d.SetValue(t.UTC().Format(DateLayout))
}
