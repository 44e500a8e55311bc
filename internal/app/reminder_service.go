package app

import (
	"context"
	"fmt"
	"time"

	"training_reminder_service/internal/domain/assignment"
	"training_reminder_service/internal/domain/reminder"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ReminderService defines the operations for running the due-date reminder
// job. One call corresponds to one scheduled tick.
type ReminderService interface {
	// ProcessDueDateReminders fetches open assignments, evaluates which of
	// them are due a reminder today, records one audit entry per decision and
	// returns the number of decisions recorded.
	ProcessDueDateReminders(ctx context.Context) (int, error)
}

// ReminderServiceImpl implements the ReminderService interface.
type ReminderServiceImpl struct {
	assignmentRepo assignment.Repository
	auditRepo      reminder.Repository
	logger         *logrus.Logger
	now            func() time.Time // Overridable in tests.
}

func NewReminderServiceImpl(
	ar assignment.Repository,
	rr reminder.Repository,
	logger *logrus.Logger,
) *ReminderServiceImpl {
	return &ReminderServiceImpl{
		assignmentRepo: ar,
		auditRepo:      rr,
		logger:         logger,
		now:            time.Now,
	}
}

// ProcessDueDateReminders runs one reminder tick. Either upstream failure
// (fetch or batch insert) aborts the whole run with no partial commit; the
// evaluation itself is pure, so a later re-run simply recomputes the same
// decisions.
func (s *ReminderServiceImpl) ProcessDueDateReminders(ctx context.Context) (int, error) {
	runID := uuid.NewString()
	start := s.now()
	log := s.logger.WithField("run_id", runID)
	log.Info("Starting due-date reminder run.")

	open, err := s.assignmentRepo.ListOpen(ctx)
	if err != nil {
		log.Errorf("Failed to list open assignments: %v", err)
		return 0, fmt.Errorf("failed to list open assignments: %w", err)
	}

	decisions, skipped, err := reminder.Evaluate(start, open)
	if err != nil {
		log.Errorf("Reminder evaluation failed: %v", err)
		return 0, fmt.Errorf("reminder evaluation failed: %w", err)
	}
	for _, sk := range skipped {
		log.WithField("assignment_id", sk.AssignmentID).Warnf("Skipping assignment: %v", sk.Err)
	}

	if len(decisions) > 0 {
		if err := s.auditRepo.BulkCreateDecisions(ctx, decisions); err != nil {
			log.Errorf("Failed to record reminder decisions: %v", err)
			return 0, fmt.Errorf("failed to record reminder decisions: %w", err)
		}
	}

	log.WithFields(logrus.Fields{
		"assignments": len(open),
		"decisions":   len(decisions),
		"skipped":     len(skipped),
		"duration":    time.Since(start).String(),
	}).Info("Due-date reminder run complete.")
	return len(decisions), nil
}
