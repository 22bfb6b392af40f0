package entry

import (
	"errors"
	"fmt"
	"strconv"
	"time"
	"unicode"

	"github.com/nootencorp/worklog/internal/timeutil"
)

// DefaultNotes replaces notes left empty by the user.
const DefaultNotes = "None"

// Validation errors. The messages are shown to the user as-is before re-prompting.
var (
	ErrInvalidName      = errors.New("please enter a name consisting of letters and spaces")
	ErrEmptyTitle       = errors.New("please enter a task title")
	ErrInvalidTimeSpent = errors.New("time spent on task must be a whole number of minutes")
	ErrInvalidDate      = errors.New("please enter date in format MM/DD/YYYY")
	ErrEmptyTerm        = errors.New("please enter a search term")
)

// IsInvalidInput reports whether err is one of the validation errors above,
// as opposed to a failure further down, such as in the store.
func IsInvalidInput(err error) bool {
	for _, target := range []error{ErrInvalidName, ErrEmptyTitle, ErrInvalidTimeSpent, ErrInvalidDate, ErrEmptyTerm} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// ValidateName accepts a non-empty string made only of letters and whitespace.
func ValidateName(name string) error {
	if name == "" {
		return ErrInvalidName
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsSpace(r) {
			return ErrInvalidName
		}
	}
	return nil
}

// ValidateTitle accepts any non-empty title.
func ValidateTitle(title string) error {
	if title == "" {
		return ErrEmptyTitle
	}
	return nil
}

// ParseTimeSpent converts a string of decimal digits into minutes.
// Signs, decimal points, spaces and units are rejected rather than interpreted,
// so "-5", "5.5" and "90 minutes" all fail. Zero is accepted.
func ParseTimeSpent(input string) (int, error) {
	if input == "" {
		return 0, ErrInvalidTimeSpent
	}
	for i := 0; i < len(input); i++ {
		if input[i] < '0' || input[i] > '9' {
			return 0, ErrInvalidTimeSpent
		}
	}

	minutes, err := strconv.Atoi(input)
	if err != nil {
		// all digits, so the only failure left is overflow
		return 0, fmt.Errorf("%w: %s is too large", ErrInvalidTimeSpent, input)
	}
	return minutes, nil
}

// NormalizeNotes never rejects; empty notes become DefaultNotes.
func NormalizeNotes(notes string) string {
	if notes == "" {
		return DefaultNotes
	}
	return notes
}

// ValidateEmployeeSearch applies the name rule to an employee search term.
func ValidateEmployeeSearch(name string) error {
	return ValidateName(name)
}

// ParseDateSearch parses a month-first MM/DD/YYYY search date.
func ParseDateSearch(input string) (time.Time, error) {
	day, err := timeutil.ParseDate(input)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	return day, nil
}

// ParseTimeSpentSearch applies the time spent rule to a duration search term.
func ParseTimeSpentSearch(input string) (int, error) {
	return ParseTimeSpent(input)
}

// ValidateTerm accepts any non-empty free-text search term.
func ValidateTerm(term string) error {
	if term == "" {
		return ErrEmptyTerm
	}
	return nil
}

// Fields holds the raw strings collected for a new entry.
type Fields struct {
	EmployeeName string
	TaskTitle    string
	TimeSpent    string
	TaskNotes    string
}

// Build validates every field and returns the normalized entry.
// The first failing field's error is returned.
func (f Fields) Build() (Entry, error) {
	if err := ValidateName(f.EmployeeName); err != nil {
		return Entry{}, err
	}
	if err := ValidateTitle(f.TaskTitle); err != nil {
		return Entry{}, err
	}
	minutes, err := ParseTimeSpent(f.TimeSpent)
	if err != nil {
		return Entry{}, err
	}

	return Entry{
		EmployeeName: f.EmployeeName,
		TaskTitle:    f.TaskTitle,
		TimeSpent:    minutes,
		TaskNotes:    NormalizeNotes(f.TaskNotes),
	}, nil
}
