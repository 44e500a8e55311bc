package reminder

import (
	"fmt"
	"math"
	"time"

	"training_reminder_service/internal/domain/assignment"
)

// DueDateLayout is the calendar-date form assignments carry their due date in.
const DueDateLayout = "2006-01-02"

// ErrInvalidInput marks an unusable date: a zero "today" fails the whole
// call, an unparsable per-assignment due date only skips that assignment.
var ErrInvalidInput = fmt.Errorf("invalid input")

// Reminder policy offsets, in whole days relative to the due date.
// Pre-due reminders fire 3 days and 1 day before; overdue escalation fires at
// +2, +4 and +6 days and then stops. Day 6 is the final reminder.
var (
	preDueOffsets  = map[int]bool{3: true, 1: true}
	overdueOffsets = map[int]bool{2: true, 4: true, 6: true}
)

// Evaluate computes which of the given assignments should receive a reminder
// on the given day. It is a pure function: no I/O, no mutation of its inputs,
// no state between calls.
//
// Completed assignments and assignments without a due date are skipped
// regardless of any filtering the caller did. Decisions come back in the same
// relative order as the input; an assignment whose due date equals today
// matches neither policy.
func Evaluate(today time.Time, assignments []*assignment.Assignment) ([]Decision, []Skipped, error) {
	if today.IsZero() {
		return nil, nil, fmt.Errorf("%w: today is not a valid date", ErrInvalidInput)
	}
	// Normalize to date granularity so the time of day the job happens to run
	// at never shifts an assignment into a different day-offset bucket.
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	var decisions []Decision
	var skipped []Skipped
	for _, a := range assignments {
		if a == nil || a.IsCompleted() || !a.DueDate.Valid {
			continue
		}
		due, err := time.ParseInLocation(DueDateLayout, a.DueDate.String, time.UTC)
		if err != nil {
			skipped = append(skipped, Skipped{
				AssignmentID: a.ID,
				Err:          fmt.Errorf("%w: unparsable due date %q: %v", ErrInvalidInput, a.DueDate.String, err),
			})
			continue
		}

		// Both offsets are computed independently, not as negations of one
		// another, with ceiling rounding in each direction: a partial day
		// counts as already inside the window on both sides.
		daysUntilDue := ceilDays(due.Sub(day))
		daysOverdue := ceilDays(day.Sub(due))

		if preDueOffsets[daysUntilDue] {
			decisions = append(decisions, newDecision(a, fmt.Sprintf("%d days before due", daysUntilDue)))
		}
		if daysOverdue > 0 && overdueOffsets[daysOverdue] {
			decisions = append(decisions, newDecision(a, fmt.Sprintf("overdue +%d days", daysOverdue)))
		}
	}
	return decisions, skipped, nil
}

func ceilDays(d time.Duration) int {
	return int(math.Ceil(d.Hours() / 24))
}

func newDecision(a *assignment.Assignment, reason string) Decision {
	return Decision{
		AssignmentID: a.ID,
		Reason:       reason,
		DueDate:      a.DueDate.String,
		Email:        a.Email.String,
		ModuleTitle:  a.ModuleTitle.String,
	}
}
