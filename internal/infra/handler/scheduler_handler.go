package handler

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mindermate/notification-scheduler/internal/app"
)

type SchedulerHandler struct {
	useCase app.SchedulerUseCase
	secret  string
}

func NewSchedulerHandler(useCase app.SchedulerUseCase, secret string) *SchedulerHandler {
	return &SchedulerHandler{
		useCase: useCase,
		secret:  secret,
	}
}

type CheckNotificationsResponse struct {
	Success   bool           `json:"success"`
	Timestamp time.Time      `json:"timestamp"`
	Checked   int            `json:"checked"`
	Sent      int            `json:"sent"`
	Failed    int            `json:"failed"`
	Skipped   int            `json:"skipped"`
	Message   string         `json:"message"`
	Error     string         `json:"error,omitempty"`
	Details   app.RunDetails `json:"details"`
}

// CheckNotifications runs one scheduler pass. External cron services call
// this every minute; the shared secret keeps it off the public surface.
func (h *SchedulerHandler) CheckNotifications(c *gin.Context) {
	if !h.authorized(c) {
		slog.Warn("rejected cron trigger with bad secret",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "invalid cron secret",
		})

		return
	}

	slog.Info("handling scheduled notification check",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	)

	report, err := h.useCase.RunScheduledCheck(c.Request.Context())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, app.ErrNotConfigured) {
			status = http.StatusServiceUnavailable
		}

		message := report.Error
		if message == "" {
			message = err.Error()
		}

		// Cron callers parse the report shape on every invocation, so a
		// failed run still answers with its counts and error string.
		c.JSON(status, CheckNotificationsResponse{
			Success:   false,
			Timestamp: time.Now().UTC(),
			Checked:   report.Checked,
			Sent:      report.Sent,
			Failed:    report.Failed,
			Skipped:   report.Skipped,
			Message:   "notification check failed",
			Error:     message,
			Details:   report.Details,
		})

		return
	}

	c.JSON(http.StatusOK, CheckNotificationsResponse{
		Success:   true,
		Timestamp: time.Now().UTC(),
		Checked:   report.Checked,
		Sent:      report.Sent,
		Failed:    report.Failed,
		Skipped:   report.Skipped,
		Message:   "notification check completed",
		Details:   report.Details,
	})
}

// authorized accepts the secret from the x-cron-secret header or, for
// trigger services that can only issue plain GETs, the secret query
// parameter. An unset server secret rejects everything.
func (h *SchedulerHandler) authorized(c *gin.Context) bool {
	if h.secret == "" {
		return false
	}

	provided := c.GetHeader("x-cron-secret")
	if provided == "" {
		provided = c.Query("secret")
	}

	return subtle.ConstantTimeCompare([]byte(provided), []byte(h.secret)) == 1
}

func (h *SchedulerHandler) RegisterRoutes(router *gin.RouterGroup) {
	cron := router.Group("/cron")
	{
		cron.POST("/check-notifications", h.CheckNotifications)
		cron.GET("/check-notifications", h.CheckNotifications)
	}
}
