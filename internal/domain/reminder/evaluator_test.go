package reminder

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"training_reminder_service/internal/domain/assignment"
)

func newAssignment(id, dueDate string, status assignment.Status) *assignment.Assignment {
	a := &assignment.Assignment{
		ID:          id,
		Status:      status,
		Email:       sql.NullString{String: id + "@example.test", Valid: true},
		ModuleTitle: sql.NullString{String: "Fire Safety", Valid: true},
	}
	if dueDate != "" {
		a.DueDate = sql.NullString{String: dueDate, Valid: true}
	}
	return a
}

func date(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func TestEvaluateOffsets(t *testing.T) {
	today := date("2024-06-10")

	tests := []struct {
		name       string
		dueDate    string
		wantReason string // empty means no decision expected
	}{
		{name: "due in 5 days", dueDate: "2024-06-15"},
		{name: "due in 4 days", dueDate: "2024-06-14"},
		{name: "due in 3 days", dueDate: "2024-06-13", wantReason: "3 days before due"},
		{name: "due in 2 days", dueDate: "2024-06-12"},
		{name: "due in 1 day", dueDate: "2024-06-11", wantReason: "1 days before due"},
		{name: "due today", dueDate: "2024-06-10"},
		{name: "overdue 1 day", dueDate: "2024-06-09"},
		{name: "overdue 2 days", dueDate: "2024-06-08", wantReason: "overdue +2 days"},
		{name: "overdue 3 days", dueDate: "2024-06-07"},
		{name: "overdue 4 days", dueDate: "2024-06-06", wantReason: "overdue +4 days"},
		{name: "overdue 5 days", dueDate: "2024-06-05"},
		{name: "overdue 6 days", dueDate: "2024-06-04", wantReason: "overdue +6 days"},
		{name: "overdue 7 days", dueDate: "2024-06-03"},
		{name: "overdue 30 days", dueDate: "2024-05-11"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newAssignment("a1", tt.dueDate, assignment.StatusInProgress)
			decisions, skipped, err := Evaluate(today, []*assignment.Assignment{a})
			require.NoError(t, err)
			assert.Empty(t, skipped)
			if tt.wantReason == "" {
				assert.Empty(t, decisions)
				return
			}
			require.Len(t, decisions, 1)
			assert.Equal(t, "a1", decisions[0].AssignmentID)
			assert.Equal(t, tt.wantReason, decisions[0].Reason)
		})
	}
}

func TestEvaluateSkipsIneligible(t *testing.T) {
	today := date("2024-06-10")
	assignments := []*assignment.Assignment{
		newAssignment("completed", "2024-06-13", assignment.StatusCompleted),
		newAssignment("no-due-date", "", assignment.StatusAssigned),
		nil,
		newAssignment("eligible", "2024-06-13", assignment.StatusAssigned),
	}

	decisions, skipped, err := Evaluate(today, assignments)
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, decisions, 1)
	assert.Equal(t, "eligible", decisions[0].AssignmentID)
}

func TestEvaluateTimeOfDayDoesNotShiftBuckets(t *testing.T) {
	// The job may fire at any hour; only the calendar date may matter.
	morning := time.Date(2024, 6, 10, 0, 1, 0, 0, time.UTC)
	evening := time.Date(2024, 6, 10, 23, 45, 12, 0, time.UTC)
	assignments := []*assignment.Assignment{
		newAssignment("pre", "2024-06-13", assignment.StatusInProgress),
		newAssignment("over", "2024-06-04", assignment.StatusAssigned),
	}

	gotMorning, _, err := Evaluate(morning, assignments)
	require.NoError(t, err)
	gotEvening, _, err := Evaluate(evening, assignments)
	require.NoError(t, err)
	assert.Equal(t, gotMorning, gotEvening)
	require.Len(t, gotMorning, 2)
	assert.Equal(t, "3 days before due", gotMorning[0].Reason)
	assert.Equal(t, "overdue +6 days", gotMorning[1].Reason)
}

func TestEvaluatePreservesInputOrder(t *testing.T) {
	today := date("2024-06-10")
	// A and C qualify; B does not. Output must be [A, C] even though C is the
	// more urgent of the two.
	assignments := []*assignment.Assignment{
		newAssignment("A", "2024-06-13", assignment.StatusAssigned),
		newAssignment("B", "2024-06-20", assignment.StatusAssigned),
		newAssignment("C", "2024-06-04", assignment.StatusAssigned),
	}

	decisions, _, err := Evaluate(today, assignments)
	require.NoError(t, err)
	require.Len(t, decisions, 2)
	assert.Equal(t, "A", decisions[0].AssignmentID)
	assert.Equal(t, "C", decisions[1].AssignmentID)
}

func TestEvaluateIsIdempotent(t *testing.T) {
	today := date("2024-06-10")
	assignments := []*assignment.Assignment{
		newAssignment("A", "2024-06-13", assignment.StatusAssigned),
		newAssignment("B", "2024-06-08", assignment.StatusInProgress),
		newAssignment("C", "bogus", assignment.StatusAssigned),
	}

	first, firstSkipped, err := Evaluate(today, assignments)
	require.NoError(t, err)
	second, secondSkipped, err := Evaluate(today, assignments)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, len(firstSkipped), len(secondSkipped))
}

func TestEvaluateSkipsMalformedDueDate(t *testing.T) {
	today := date("2024-06-10")
	assignments := []*assignment.Assignment{
		newAssignment("good1", "2024-06-13", assignment.StatusAssigned),
		newAssignment("bad", "13/06/2024", assignment.StatusAssigned),
		newAssignment("good2", "2024-06-08", assignment.StatusAssigned),
	}

	decisions, skipped, err := Evaluate(today, assignments)
	require.NoError(t, err)
	require.Len(t, skipped, 1)
	assert.Equal(t, "bad", skipped[0].AssignmentID)
	assert.ErrorIs(t, skipped[0].Err, ErrInvalidInput)
	// The malformed record must not block the rest of the batch.
	require.Len(t, decisions, 2)
	assert.Equal(t, "good1", decisions[0].AssignmentID)
	assert.Equal(t, "good2", decisions[1].AssignmentID)
}

func TestEvaluateRejectsZeroToday(t *testing.T) {
	_, _, err := Evaluate(time.Time{}, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestEvaluateSnapshotsAssignmentFields(t *testing.T) {
	today := date("2024-06-10")
	a := &assignment.Assignment{
		ID:          "x1",
		DueDate:     sql.NullString{String: "2024-06-11", Valid: true},
		Status:      assignment.StatusInProgress,
		Email:       sql.NullString{String: "jordan@example.test", Valid: true},
		ModuleTitle: sql.NullString{String: "Data Handling", Valid: true},
	}

	decisions, _, err := Evaluate(today, []*assignment.Assignment{a})
	require.NoError(t, err)
	require.Len(t, decisions, 1)
	assert.Equal(t, Decision{
		AssignmentID: "x1",
		Reason:       "1 days before due",
		DueDate:      "2024-06-11",
		Email:        "jordan@example.test",
		ModuleTitle:  "Data Handling",
	}, decisions[0])
}

func TestEvaluateEndToEndScenario(t *testing.T) {
	today := date("2024-06-10")
	assignments := []*assignment.Assignment{
		newAssignment("X", "2024-06-13", assignment.StatusInProgress), // 3 days out
		newAssignment("Y", "2024-06-04", assignment.StatusAssigned),   // 6 days overdue
		newAssignment("Z", "2024-06-05", assignment.StatusAssigned),   // 5 days overdue, no window
	}

	decisions, skipped, err := Evaluate(today, assignments)
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, decisions, 2)
	assert.Equal(t, "X", decisions[0].AssignmentID)
	assert.Equal(t, "3 days before due", decisions[0].Reason)
	assert.Equal(t, "Y", decisions[1].AssignmentID)
	assert.Equal(t, "overdue +6 days", decisions[1].Reason)
}
