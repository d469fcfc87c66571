package app

import "context"

type SchedulerUseCase interface {
	// RunScheduledCheck scans today's reminder candidates, dispatches the
	// ones due in the current minute window, and reconciles invalid device
	// tokens. A RunReportOutput is returned on every path; the error is
	// non-nil only for whole-invocation failures (missing configuration,
	// unreachable task store).
	RunScheduledCheck(ctx context.Context) (RunReportOutput, error)
}
