package models

import "time"

// DefaultDateLayout renders dates as MM/DD/YYYY.
const DefaultDateLayout = "01/02/2006"

// FormatDate formats t with layout, or DefaultDateLayout when layout is empty.
// The zero time renders as an empty string.
func FormatDate(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}
	if layout == "" {
		layout = DefaultDateLayout
	}
	return t.Format(layout)
}
