package assignment

import (
	"context"
)

// Repository defines the read operations the reminder job needs against the
// assignment store. The store itself is owned by the surrounding application;
// this component never writes to it.
type Repository interface {
	// ListOpen returns every assignment that has not reached the terminal
	// "completed" status, with the recipient and module fields joined in.
	ListOpen(ctx context.Context) ([]*Assignment, error)
}
