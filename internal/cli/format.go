// Package cli provides the terminal presentation layer for worklog:
// output formatting and the interactive menu shell.
package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/nootencorp/worklog/internal/entry"
	"github.com/nootencorp/worklog/internal/timeutil"
)

// MatchedHeader precedes a non-empty search result
const MatchedHeader = "---- Matched Task(s) ----"

// FormatDuration formats minutes as a human-readable string
// Examples: "30m", "2h", "1h 30m"
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}

// Pluralize returns the singular or plural form of a word based on count
func Pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	if n := len(word); n > 1 && word[n-1] == 'y' && !strings.ContainsRune("aeiou", rune(word[n-2])) {
		return word[:n-1] + "ies"
	}
	return word + "s"
}

// JoinWithAnd joins items as "A", "A and B" or "A, B and C"
func JoinWithAnd(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
}

// FormatEmployeesFound introduces the employees that have entries.
// Returns "" when there are none.
func FormatEmployeesFound(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf("Entries written by %s.", names[0])
	}
	return fmt.Sprintf("Entries found by %s.", JoinWithAnd(names))
}

// FormatDatesFound introduces the dates that have entries.
// Returns "" when there are none.
func FormatDatesFound(dates []time.Time) string {
	if len(dates) == 0 {
		return ""
	}
	formatted := make([]string, len(dates))
	for i, d := range dates {
		formatted[i] = timeutil.FormatDate(d)
	}
	return fmt.Sprintf("Entries found for %s.", JoinWithAnd(formatted))
}

// FormatEntry formats an entry as a result block
func FormatEntry(e entry.Entry) string {
	return fmt.Sprintf("Employee: %s\nDate: %s\nTitle: %s\nTime Spent (mins): %d\nNotes: %s\n",
		e.EmployeeName,
		timeutil.FormatDate(e.Timestamp),
		e.TaskTitle,
		e.TimeSpent,
		e.TaskNotes,
	)
}

// FormatEntryLine formats an entry on a single line
// Example: "03/01/2024 Ann: Review (1h 30m)"
func FormatEntryLine(e entry.Entry) string {
	return fmt.Sprintf("%s %s: %s (%s)",
		timeutil.FormatDate(e.Timestamp),
		e.EmployeeName,
		e.TaskTitle,
		FormatDuration(e.TimeSpent),
	)
}
