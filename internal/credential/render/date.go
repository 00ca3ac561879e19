package render

import (
	"time"

	"github.com/goodsign/monday"
)

// DefaultDateLayout renders dates such as "March 5, 2026".
const DefaultDateLayout = "January 2, 2006"

// DateFormatter renders the localized issue date printed on credentials.
type DateFormatter struct {
	Layout   string
	Locale   monday.Locale
	Location *time.Location
}

// NewDateFormatter builds a formatter, falling back to English and UTC for
// empty or unknown settings.
func NewDateFormatter(layout, locale string, loc *time.Location) DateFormatter {
	if layout == "" {
		layout = DefaultDateLayout
	}
	l := monday.Locale(monday.LocaleEnUS)
	for _, known := range monday.ListLocales() {
		if string(known) == locale {
			l = known
			break
		}
	}
	if loc == nil {
		loc = time.UTC
	}
	return DateFormatter{Layout: layout, Locale: l, Location: loc}
}

// Format renders t in the formatter's zone and locale.
func (f DateFormatter) Format(t time.Time) string {
	return monday.Format(t.In(f.Location), f.Layout, f.Locale)
}
