package timeutil

import "time"

const (
	// DateLayout is the month-first layout used for display and date search input
	DateLayout = "01/02/2006"
	// StorageLayout is the sortable layout used for the timestamp column
	StorageLayout = "2006-01-02"
)

// StartOfDay returns midnight (00:00:00) of the given day in the same timezone
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Today returns midnight of the current day in local time
func Today() time.Time {
	return StartOfDay(time.Now())
}

// SameDay reports whether a and b fall on the same calendar day
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// FormatDate formats a date as MM/DD/YYYY
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatStorageDate formats a date for the timestamp column
func FormatStorageDate(t time.Time) string {
	return t.Format(StorageLayout)
}

// ParseStorageDate parses a timestamp column value into local midnight
func ParseStorageDate(s string) (time.Time, error) {
	return time.ParseInLocation(StorageLayout, s, time.Local)
}

// LocalDate returns local midnight of the calendar day t falls on in its own location
func LocalDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}
