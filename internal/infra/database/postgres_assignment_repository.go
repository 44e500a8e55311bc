// internal/infra/database/postgres_assignment_repository.go
package database

import (
	"context"
	"database/sql"
	"fmt"

	"training_reminder_service/internal/domain/assignment"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Custom errors
var ErrAssignmentSourceUnavailable = fmt.Errorf("assignment source unavailable")

type PostgresAssignmentRepository struct {
	db *sql.DB
}

func NewPostgresAssignmentRepository(db *sql.DB) *PostgresAssignmentRepository {
	return &PostgresAssignmentRepository{db: db}
}

// ListOpen fetches every non-completed assignment along with the recipient
// and module fields the reminder decision snapshots. The joins are LEFT
// joins: the upstream rows are loose and a missing user or module must not
// drop the assignment from the scan.
func (r *PostgresAssignmentRepository) ListOpen(ctx context.Context) ([]*assignment.Assignment, error) {
	query := `SELECT a.id, a.due_date::text, a.status,
                      u.email, u.first_name, u.last_name,
                      m.title,
                      a.created_at
               FROM assignments a
               LEFT JOIN users u ON u.id = a.assigned_to
               LEFT JOIN modules m ON m.id = a.module_id
               WHERE a.status <> 'completed'
               ORDER BY a.created_at ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: error listing open assignments: %v", ErrAssignmentSourceUnavailable, err)
	}
	defer rows.Close()

	var assignments []*assignment.Assignment
	for rows.Next() {
		a := assignment.Assignment{}
		err := rows.Scan(
			&a.ID, &a.DueDate, &a.Status,
			&a.Email, &a.FirstName, &a.LastName,
			&a.ModuleTitle,
			&a.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning assignment row: %w", err)
		}
		assignments = append(assignments, &a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignment rows: %w", err)
	}
	return assignments, nil
}
