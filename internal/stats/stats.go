package stats

import (
	"sort"

	"github.com/nootencorp/worklog/internal/entry"
	"github.com/nootencorp/worklog/internal/timeutil"
)

// Statistics contains aggregated statistics for a set of entries
type Statistics struct {
	TotalMinutes         int
	EntryCount           int
	DaysWithEntries      int
	AverageMinutesPerDay float64 // over days that have at least one entry
}

// EmployeeBreakdown contains statistics for a single employee
type EmployeeBreakdown struct {
	Employee     string
	TotalMinutes int
	EntryCount   int
}

// CalculateStatistics computes totals for entries
func CalculateStatistics(entries []entry.Entry) Statistics {
	stats := Statistics{}

	days := make(map[string]bool)
	for _, e := range entries {
		stats.TotalMinutes += e.TimeSpent
		stats.EntryCount++
		days[timeutil.FormatStorageDate(e.Timestamp)] = true
	}

	stats.DaysWithEntries = len(days)
	if stats.DaysWithEntries > 0 {
		stats.AverageMinutesPerDay = float64(stats.TotalMinutes) / float64(stats.DaysWithEntries)
	}

	return stats
}

// CalculateEmployeeBreakdown groups entries by employee name, sorted by total
// minutes descending. Ties keep name order.
func CalculateEmployeeBreakdown(entries []entry.Entry) []EmployeeBreakdown {
	byName := make(map[string]*EmployeeBreakdown)
	for _, e := range entries {
		b, ok := byName[e.EmployeeName]
		if !ok {
			b = &EmployeeBreakdown{Employee: e.EmployeeName}
			byName[e.EmployeeName] = b
		}
		b.TotalMinutes += e.TimeSpent
		b.EntryCount++
	}

	breakdowns := make([]EmployeeBreakdown, 0, len(byName))
	for _, b := range byName {
		breakdowns = append(breakdowns, *b)
	}

	sort.Slice(breakdowns, func(i, j int) bool {
		if breakdowns[i].TotalMinutes != breakdowns[j].TotalMinutes {
			return breakdowns[i].TotalMinutes > breakdowns[j].TotalMinutes
		}
		return breakdowns[i].Employee < breakdowns[j].Employee
	})

	return breakdowns
}
