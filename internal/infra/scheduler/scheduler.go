package scheduler

import (
	"context"
	"time"

	"training_reminder_service/internal/app" // For ReminderService interface

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// ReminderScheduler runs the due-date reminder job on an in-process daily
// tick. The cron engine never overlaps a job with itself here because a
// single daily spec cannot fire again while the previous run is still
// inside its timeout window; an external scheduler hitting the HTTP trigger
// at the same time is not guarded against and must be prevented by the
// deploying environment.
type ReminderScheduler struct {
	cronEngine         *cron.Cron
	reminderService    app.ReminderService // Using the interface
	logger             *logrus.Logger
	cronSpecDailyCheck string
}

func NewReminderScheduler(
	reminderService app.ReminderService,
	logger *logrus.Logger,
	cronSpecDailyCheck string, // e.g., "0 8 * * *" (08:00 daily)
) *ReminderScheduler {
	return &ReminderScheduler{
		cronEngine:         cron.New(cron.WithLocation(time.Local)), // Use server's local time for cron
		reminderService:    reminderService,
		logger:             logger,
		cronSpecDailyCheck: cronSpecDailyCheck,
	}
}

func (s *ReminderScheduler) Start() {
	s.logger.Info("Starting reminder scheduler...")

	_, err := s.cronEngine.AddFunc(s.cronSpecDailyCheck, func() {
		s.logger.Info("Cron job triggered for due-date reminder processing.")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		processed, err := s.reminderService.ProcessDueDateReminders(ctx)
		if err != nil {
			s.logger.Errorf("Error during due-date reminder processing: %v", err)
			return
		}
		s.logger.Infof("Due-date reminder processing finished. Decisions recorded: %d", processed)
	})
	if err != nil {
		s.logger.Fatalf("Could not add due-date reminder cron job: %v", err)
	}

	s.cronEngine.Start()
	s.logger.Infof("Reminder scheduler started with daily spec %q.", s.cronSpecDailyCheck)
}

func (s *ReminderScheduler) Stop() {
	s.logger.Info("Stopping reminder scheduler...")
	ctx := s.cronEngine.Stop() // Stops the scheduler from adding new jobs, waits for running jobs.
	<-ctx.Done()               // Wait for graceful shutdown
	s.logger.Info("Reminder scheduler gracefully stopped.")
}
