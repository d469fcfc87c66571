package app

// maxSkippedDetails bounds the skipped-task list carried in the report
// details. Presentation only: the Skipped counter always reflects the full
// number of skipped candidates.
const maxSkippedDetails = 10

// DispatchOutcome is the result of one task's notification send.
type DispatchOutcome struct {
	TaskID       string `json:"task_id"`
	Title        string `json:"title"`
	Success      bool   `json:"success"`
	SuccessCount int    `json:"success_count,omitempty"`
	FailureCount int    `json:"failure_count,omitempty"`
	Error        string `json:"error,omitempty"`
}

// SkippedTask records a candidate excluded before dispatch and why.
type SkippedTask struct {
	TaskID string `json:"task_id"`
	Title  string `json:"title,omitempty"`
	Reason string `json:"reason"`
}

type RunDetails struct {
	SendResults  []DispatchOutcome `json:"send_results"`
	SkippedTasks []SkippedTask     `json:"skipped_tasks"`
}

// RunReportOutput summarizes one scheduler invocation. Checked counts every
// candidate (all tasks dated today with a reminder, due or not); Sent and
// Failed partition the dispatched subset; Skipped counts candidates excluded
// by minute mismatch, malformed reminder times, or duplicate suppression.
type RunReportOutput struct {
	Checked int        `json:"checked"`
	Sent    int        `json:"sent"`
	Failed  int        `json:"failed"`
	Skipped int        `json:"skipped"`
	Details RunDetails `json:"details"`
	Error   string     `json:"error,omitempty"`
}

func newRunReport(skipped []SkippedTask, outcomes []DispatchOutcome, checked int) RunReportOutput {
	report := RunReportOutput{
		Checked: checked,
		Skipped: len(skipped),
		Details: RunDetails{
			SendResults:  outcomes,
			SkippedTasks: skipped,
		},
	}

	if len(skipped) > maxSkippedDetails {
		report.Details.SkippedTasks = skipped[:maxSkippedDetails]
	}

	for _, o := range outcomes {
		if o.Success {
			report.Sent++
		} else {
			report.Failed++
		}
	}

	return report
}
