package reminder

import (
	"context"
)

// Repository persists reminder decisions as append-only audit records.
// A failed batch insert fails the whole run; nothing is ever updated or
// deleted through this interface.
//
// Recording is not yet deduplicated across runs: re-running the job on the
// same day re-emits identical decisions. That is acceptable while the sink is
// an audit log only, but a delivery mechanism attached later must add a dedup
// key on (assignment_id, reason, date) first.
type Repository interface {
	BulkCreateDecisions(ctx context.Context, decisions []Decision) error
}
