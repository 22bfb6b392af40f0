package views

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/nootencorp/worklog/internal/entry"
	"github.com/nootencorp/worklog/internal/timeutil"
)

// Fixed column widths; notes take whatever is left
const (
	dateWidth     = 10
	employeeWidth = 16
	titleWidth    = 24
	minutesWidth  = 8
	minNotesWidth = 10
)

// entryColumns returns the entry table columns sized for width
func entryColumns(width int) []table.Column {
	notes := width - dateWidth - employeeWidth - titleWidth - minutesWidth - 10
	if notes < minNotesWidth {
		notes = minNotesWidth
	}
	return []table.Column{
		{Title: "Date", Width: dateWidth},
		{Title: "Employee", Width: employeeWidth},
		{Title: "Title", Width: titleWidth},
		{Title: "Minutes", Width: minutesWidth},
		{Title: "Notes", Width: notes},
	}
}

// entryRows converts entries to table rows in the order given
func entryRows(entries []entry.Entry) []table.Row {
	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, table.Row{
			timeutil.FormatDate(e.Timestamp),
			e.EmployeeName,
			e.TaskTitle,
			strconv.Itoa(e.TimeSpent),
			singleLine(e.TaskNotes),
		})
	}
	return rows
}

// singleLine collapses line breaks so a cell stays on one row
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
