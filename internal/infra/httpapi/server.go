package httpapi

import (
	"context"
	"net/http"
	"time"

	"training_reminder_service/internal/app"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const jobTimeout = 5 * time.Minute

// Server exposes the reminder job to the external scheduler over HTTP. The
// trigger route takes no parameters; method and auth gating beyond POST
// routing is handled by the boundary in front of this service.
type Server struct {
	echo            *echo.Echo
	reminderService app.ReminderService
	logger          *logrus.Logger
	addr            string
}

func NewServer(addr string, reminderService app.ReminderService, logger *logrus.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:            e,
		reminderService: reminderService,
		logger:          logger,
		addr:            addr,
	}

	e.POST("/jobs/due-date-reminders", s.runDueDateReminders)
	e.GET("/healthz", s.healthz)

	return s
}

func (s *Server) runDueDateReminders(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), jobTimeout)
	defer cancel()

	processed, err := s.reminderService.ProcessDueDateReminders(ctx)
	if err != nil {
		s.logger.Errorf("Due-date reminder run failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reminder run failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"processed": processed})
}

func (s *Server) healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Infof("HTTP trigger listening on %s", s.addr)
	return s.echo.Start(s.addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
