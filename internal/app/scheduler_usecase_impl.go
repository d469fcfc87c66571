package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mindermate/notification-scheduler/internal/domain"
	"github.com/mindermate/notification-scheduler/internal/infra/pubsub"
	"github.com/mindermate/notification-scheduler/internal/infra/push"
)

type SchedulerConfig struct {
	// Workers bounds concurrent dispatches within one run.
	Workers int
	// PushTimeout bounds each delivery call.
	PushTimeout time.Duration
	// MatchWindow widens reminder matching to the last MatchWindow+1
	// minutes. 0 keeps exact-minute equality.
	MatchWindow int
	// Now is the time source; tests substitute a fixed instant.
	Now func() time.Time
}

const (
	defaultWorkers     = 4
	defaultPushTimeout = 5 * time.Second
)

type schedulerUseCaseImpl struct {
	tasks     domain.TaskRepository
	users     domain.UserRepository
	sender    push.Sender
	clock     *domain.ReferenceClock
	publisher pubsub.Publisher
	guard     *dispatchGuard
	cfg       SchedulerConfig
}

func NewSchedulerUseCase(
	tasks domain.TaskRepository,
	users domain.UserRepository,
	sender push.Sender,
	clock *domain.ReferenceClock,
	publisher pubsub.Publisher,
	cfg SchedulerConfig,
) SchedulerUseCase {
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}

	if cfg.PushTimeout <= 0 {
		cfg.PushTimeout = defaultPushTimeout
	}

	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &schedulerUseCaseImpl{
		tasks:     tasks,
		users:     users,
		sender:    sender,
		clock:     clock,
		publisher: publisher,
		guard:     newDispatchGuard(),
		cfg:       cfg,
	}
}

func (uc *schedulerUseCaseImpl) RunScheduledCheck(ctx context.Context) (RunReportOutput, error) {
	if uc.sender == nil {
		err := fmt.Errorf("%w: push delivery is not configured", ErrNotConfigured)

		return RunReportOutput{Error: err.Error()}, err
	}

	now := uc.cfg.Now()
	window := uc.clock.Evaluate(now)

	slog.Info("checking reminders",
		"date", window.Date,
		"minute_of_day", window.MinuteOfDay,
		"utc", now.UTC().Format(time.RFC3339),
	)

	candidates, err := uc.tasks.FindRemindersOnDate(ctx, window.Date)
	if err != nil {
		slog.Error("failed to load reminder candidates",
			"date", window.Date,
			"error", err,
		)

		wrapped := fmt.Errorf("%w: %v", ErrInternalError, err)

		return RunReportOutput{Error: wrapped.Error()}, wrapped
	}

	due, skipped := uc.selectDue(candidates, window, now)

	slog.Info("reminder candidates evaluated",
		"checked", len(candidates),
		"due", len(due),
		"skipped", len(skipped),
	)

	outcomes := uc.dispatchAll(ctx, due)

	report := newRunReport(skipped, outcomes, len(candidates))

	slog.Info("reminder check complete",
		"checked", report.Checked,
		"sent", report.Sent,
		"failed", report.Failed,
		"skipped", report.Skipped,
	)

	if uc.publisher != nil && report.Sent > 0 {
		event := pubsub.RunCompletedEvent{
			RunAt:       now,
			Date:        window.Date,
			MinuteOfDay: window.MinuteOfDay,
			Checked:     report.Checked,
			Sent:        report.Sent,
			Failed:      report.Failed,
			Skipped:     report.Skipped,
		}
		if pubErr := uc.publisher.PublishRunCompleted(ctx, event); pubErr != nil {
			slog.Error("failed to publish run completed event",
				"date", window.Date,
				"error", pubErr.Error(),
			)
		}
	}

	return report, nil
}

// selectDue partitions the candidate set into due tasks and skips. Skips
// carry a diagnostic reason; a reason never aborts the run.
func (uc *schedulerUseCaseImpl) selectDue(candidates []*domain.Task, window domain.Window, now time.Time) ([]*domain.Task, []SkippedTask) {
	var (
		due     []*domain.Task
		skipped []SkippedTask
	)

	keep := time.Duration(uc.cfg.MatchWindow+2) * time.Minute

	for _, task := range candidates {
		rt, err := domain.ParseReminderTime(task.ReminderTime())
		if err != nil {
			skipped = append(skipped, SkippedTask{
				TaskID: task.ID().String(),
				Title:  task.Title(),
				Reason: fmt.Sprintf("invalid reminder time format: %q", task.ReminderTime()),
			})

			continue
		}

		if !rt.IsSet() {
			skipped = append(skipped, SkippedTask{
				TaskID: task.ID().String(),
				Title:  task.Title(),
				Reason: "no reminder time",
			})

			continue
		}

		if !window.Matches(rt.MinuteOfDay(), uc.cfg.MatchWindow) {
			skipped = append(skipped, SkippedTask{
				TaskID: task.ID().String(),
				Title:  task.Title(),
				Reason: fmt.Sprintf("time mismatch: reminder=%s (%d), current minute=%d",
					task.ReminderTime(), rt.MinuteOfDay(), window.MinuteOfDay),
			})

			continue
		}

		guardKey := fmt.Sprintf("%s|%s|%d", task.ID().String(), window.Date, rt.MinuteOfDay())
		if !uc.guard.shouldDispatch(guardKey, now, keep) {
			skipped = append(skipped, SkippedTask{
				TaskID: task.ID().String(),
				Title:  task.Title(),
				Reason: "already dispatched in this window",
			})

			continue
		}

		due = append(due, task)
	}

	return due, skipped
}

// dispatchAll fans the due set out over a bounded worker pool. Each worker
// writes outcomes into its own slots of a preallocated slice, so the report
// stays in candidate order without a shared counter.
func (uc *schedulerUseCaseImpl) dispatchAll(ctx context.Context, due []*domain.Task) []DispatchOutcome {
	if len(due) == 0 {
		return nil
	}

	type job struct {
		idx  int
		task *domain.Task
	}

	workers := uc.cfg.Workers
	if workers > len(due) {
		workers = len(due)
	}

	jobs := make(chan job)
	outcomes := make([]DispatchOutcome, len(due))

	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for j := range jobs {
				outcomes[j.idx] = uc.dispatchTask(ctx, j.task)
			}
		}()
	}

	for i, task := range due {
		jobs <- job{idx: i, task: task}
	}

	close(jobs)
	wg.Wait()

	return outcomes
}

// dispatchTask sends one task's reminder. Every failure mode, including a
// panicking delivery collaborator, is converted into a failed outcome so
// the remaining due tasks still dispatch.
func (uc *schedulerUseCaseImpl) dispatchTask(ctx context.Context, task *domain.Task) (outcome DispatchOutcome) {
	outcome = DispatchOutcome{
		TaskID: task.ID().String(),
		Title:  task.Title(),
	}

	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("panic during reminder dispatch",
				"task_id", outcome.TaskID,
				"panic", rec,
			)

			outcome.Success = false
			outcome.Error = fmt.Sprintf("panic during dispatch: %v", rec)
		}
	}()

	d := &deliverer{users: uc.users, sender: uc.sender, timeout: uc.cfg.PushTimeout}

	result := d.send(ctx, task.UserID(), taskReminderNotification(task))

	outcome.Success = result.Success
	outcome.SuccessCount = result.SuccessCount
	outcome.FailureCount = result.FailureCount
	outcome.Error = result.Error

	if outcome.Success {
		slog.Debug("reminder dispatched",
			"task_id", outcome.TaskID,
			"success_count", outcome.SuccessCount,
			"failure_count", outcome.FailureCount,
		)
	} else {
		slog.Warn("reminder dispatch failed",
			"task_id", outcome.TaskID,
			"error", outcome.Error,
		)
	}

	return outcome
}

func taskReminderNotification(task *domain.Task) push.Notification {
	return push.Notification{
		Title: "Task Reminder: " + task.Title(),
		Body:  task.Text(),
		Data: map[string]string{
			"taskId": task.ID().String(),
			"type":   "task_reminder",
			"date":   task.Date(),
		},
	}
}
