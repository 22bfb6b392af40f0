package entry

import "time"

// Entry is a single work-log record.
// Timestamp holds a calendar date at local midnight; the time of day is not kept.
type Entry struct {
	ID           int64     `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	EmployeeName string    `json:"employee_name"`
	TaskTitle    string    `json:"task_title"`
	TimeSpent    int       `json:"time_spent"`
	TaskNotes    string    `json:"task_notes"`
}
