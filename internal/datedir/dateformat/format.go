// Package dateformat maps calendar dates to dated folder names.
package dateformat

import (
	"fmt"
	"strings"
	"time"
)

// Format selects how a date is rendered as a folder name.
type Format string

const (
	// ShortMonthDay renders zero-padded month and day, e.g. "0315".
	ShortMonthDay Format = "MMDD"
	// FullISODate renders an ISO calendar date, e.g. "2024-03-15".
	FullISODate Format = "YYYYMMDD"
)

var layouts = map[Format]string{
	ShortMonthDay: "0102",
	FullISODate:   "2006-01-02",
}

// Formats returns every supported format in display order.
func Formats() []Format {
	return []Format{FullISODate, ShortMonthDay}
}

// Valid reports whether f is a supported format.
func (f Format) Valid() bool {
	_, ok := layouts[f]
	return ok
}

// Example renders a fixed sample date, for menus and help text.
func (f Format) Example() string {
	return FormatDate(time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), f)
}

func (f Format) String() string {
	return string(f)
}

// ParseFormat accepts the wire names case-insensitively.
func ParseFormat(value string) (Format, error) {
	candidate := Format(strings.ToUpper(strings.TrimSpace(value)))
	if !candidate.Valid() {
		return "", fmt.Errorf("unsupported date format %q (want MMDD or YYYYMMDD)", value)
	}
	return candidate, nil
}

func (f Format) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("unsupported date format %q", string(f))
	}
	return []byte(f), nil
}

func (f *Format) UnmarshalText(text []byte) error {
	parsed, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// FormatDate renders the year, month and day of t. Only the date fields are used, so the
// result does not depend on locale or on the location attached to t beyond its own fields.
// Unsupported formats fall back to FullISODate.
func FormatDate(t time.Time, f Format) string {
	layout, ok := layouts[f]
	if !ok {
		layout = layouts[FullISODate]
	}
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format(layout)
}
