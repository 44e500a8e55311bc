package reminder

// Decision records that a reminder is due for one assignment today. It is the
// output artifact of an evaluation run, independent of whether anything is
// ever delivered. The due date, email and module title are denormalized at
// decision time: the assignment itself is mutable and may change later, the
// decision must not.
type Decision struct {
	AssignmentID string
	Reason       string
	DueDate      string // YYYY-MM-DD, as stored on the assignment.
	Email        string
	ModuleTitle  string
}

// Skipped reports an assignment that could not be evaluated. A single
// malformed record must not block reminders for the rest of the batch, so the
// evaluator skips it and surfaces it here for the caller to log.
type Skipped struct {
	AssignmentID string
	Err          error
}
