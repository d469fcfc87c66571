package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mindermate/notification-scheduler/internal/app"
)

// Runner triggers the scheduler from inside the process for deployments
// without an external cron service. It fires on every minute boundary in
// the scheduler's reference timezone.
type Runner struct {
	cron    *cron.Cron
	useCase app.SchedulerUseCase
	timeout time.Duration
}

func NewRunner(useCase app.SchedulerUseCase, loc *time.Location) *Runner {
	return &Runner{
		cron:    cron.New(cron.WithLocation(loc)),
		useCase: useCase,
		timeout: 55 * time.Second,
	}
}

func (r *Runner) Start() error {
	_, err := r.cron.AddFunc("* * * * *", r.runOnce)
	if err != nil {
		return err
	}

	r.cron.Start()
	slog.Info("internal cron trigger started")

	return nil
}

// Stop halts scheduling and waits for an in-flight run to finish.
func (r *Runner) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()

	slog.Info("internal cron trigger stopped")
}

func (r *Runner) runOnce() {
	// Bounded below the one-minute cadence so runs cannot pile up.
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	report, err := r.useCase.RunScheduledCheck(ctx)
	if err != nil {
		slog.Error("internal cron run failed",
			"error", err,
		)

		return
	}

	slog.Debug("internal cron run finished",
		"checked", report.Checked,
		"sent", report.Sent,
		"failed", report.Failed,
		"skipped", report.Skipped,
	)
}
