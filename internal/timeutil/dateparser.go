package timeutil

import (
	"fmt"
	"regexp"
	"time"
)

// parseLayout accepts one- or two-digit month and day, but always a four-digit year
const parseLayout = "1/2/2006"

var (
	yearFirstRe   = regexp.MustCompile(`^\d{4}[-/]\d{1,2}[-/]\d{1,2}$`)
	partialDateRe = regexp.MustCompile(`^\d{1,2}/\d{1,2}$`)
	shortYearRe   = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{2}$`)
	numericDateRe = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/\d{4}$`)
)

// ParseDate parses a date string in strict month-first MM/DD/YYYY order.
// Returns the parsed date at midnight (start of day) in local timezone.
//
// Valid inputs:
//   - "12/30/1991"
//   - "1/5/2024"
//
// Day-first input such as "30/12/1991" is rejected even though it is a
// plausible date, as are ISO dates and two-digit years.
func ParseDate(input string) (time.Time, error) {
	if input == "" {
		return time.Time{}, fmt.Errorf("date cannot be empty (use format MM/DD/YYYY, e.g., 12/30/1991)")
	}

	t, err := time.ParseInLocation(parseLayout, input, time.Local)
	if err == nil {
		return StartOfDay(t), nil
	}

	return time.Time{}, buildDateParseError(input)
}

// buildDateParseError creates a helpful error message based on the input pattern
func buildDateParseError(input string) error {
	switch {
	case yearFirstRe.MatchString(input):
		return fmt.Errorf("invalid date '%s': year must come last (use format MM/DD/YYYY)", input)
	case partialDateRe.MatchString(input):
		return fmt.Errorf("incomplete date '%s': missing year (use format MM/DD/YYYY, e.g., %s/2024)", input, input)
	case shortYearRe.MatchString(input):
		return fmt.Errorf("invalid date '%s': year must have four digits (use format MM/DD/YYYY)", input)
	case numericDateRe.MatchString(input):
		m := numericDateRe.FindStringSubmatch(input)
		var month int
		_, _ = fmt.Sscanf(m[1], "%d", &month)
		if month > 12 {
			return fmt.Errorf("invalid date '%s': month %d out of range (use format MM/DD/YYYY, month first)", input, month)
		}
		return fmt.Errorf("invalid date '%s': day out of range for month", input)
	default:
		return fmt.Errorf("invalid date format '%s' (use MM/DD/YYYY, e.g., 12/30/1991)", input)
	}
}
