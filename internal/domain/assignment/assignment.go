package assignment

import (
	"database/sql"
	"time"
)

// Status is the lifecycle state of a training assignment.
type Status string

const (
	StatusAssigned   Status = "assigned"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed" // Terminal; completed assignments never receive reminders.
)

// Assignment is a training module assigned to a user, as read from the store.
// The upstream records are loose: the due date, the recipient and the module
// title may all be absent, so they are modeled as nullable fields and checked
// for presence where they are used.
type Assignment struct {
	ID          string
	DueDate     sql.NullString // Calendar date in YYYY-MM-DD form, no time component.
	Status      Status
	Email       sql.NullString
	FirstName   sql.NullString
	LastName    sql.NullString
	ModuleTitle sql.NullString
	CreatedAt   time.Time
}

// IsCompleted reports whether the assignment has reached its terminal state.
func (a *Assignment) IsCompleted() bool {
	return a.Status == StatusCompleted
}
