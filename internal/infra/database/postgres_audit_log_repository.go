// internal/infra/database/postgres_audit_log_repository.go
package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"training_reminder_service/internal/domain/reminder"

	_ "github.com/lib/pq" // PostgreSQL driver
)

type PostgresAuditLogRepository struct {
	db *sql.DB
}

func NewPostgresAuditLogRepository(db *sql.DB) *PostgresAuditLogRepository {
	return &PostgresAuditLogRepository{db: db}
}

// decisionPayload is the JSON body stored on each audit row.
type decisionPayload struct {
	Reason  string `json:"reason"`
	Email   string `json:"email"`
	Module  string `json:"module"`
	DueDate string `json:"due_date"`
}

// BulkCreateDecisions inserts one audit row per decision inside a single
// transaction. Any failed insert rolls the whole batch back: the run either
// records every decision or none, so a retried run starts from a clean slate.
func (r *PostgresAuditLogRepository) BulkCreateDecisions(ctx context.Context, decisions []reminder.Decision) error {
	if len(decisions) == 0 {
		return nil
	}

	txn, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for decision batch: %w", err)
	}
	defer txn.Rollback() // Rollback if not committed

	stmt, err := txn.PrepareContext(ctx, `INSERT INTO audit_logs (actor, action, entity, entity_id, payload, created_at)
                                         VALUES (NULL, 'reminder', 'assignment', $1, $2, NOW())`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement for decision batch: %w", err)
	}
	defer stmt.Close()

	for _, d := range decisions {
		payload, err := json.Marshal(decisionPayload{
			Reason:  d.Reason,
			Email:   d.Email,
			Module:  d.ModuleTitle,
			DueDate: d.DueDate,
		})
		if err != nil {
			return fmt.Errorf("error marshaling decision payload (assignment %s): %w", d.AssignmentID, err)
		}
		if _, err := stmt.ExecContext(ctx, d.AssignmentID, payload); err != nil {
			return fmt.Errorf("error inserting decision (assignment %s, reason %q): %w", d.AssignmentID, d.Reason, err)
		}
	}

	return txn.Commit()
}
