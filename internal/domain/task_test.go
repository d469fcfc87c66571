package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindermate/notification-scheduler/internal/domain"
)

func createUserID(t *testing.T) domain.UserID {
	t.Helper()

	id, err := domain.UserIDFromString(uuid.Must(uuid.NewV7()).String())
	require.NoError(t, err)

	return id
}

func TestNewTaskSuccess(t *testing.T) {
	tests := []struct {
		name         string
		taskType     domain.TaskType
		title        string
		text         string
		date         string
		displayTime  string
		reminderTime string
	}{
		{
			name:         "simple task with reminder",
			taskType:     domain.TypeSimple,
			title:        "Groceries",
			text:         "Buy milk and eggs",
			date:         "2024-03-01",
			displayTime:  "9:00 AM - 10:00 AM",
			reminderTime: "09:05",
		},
		{
			name:     "prior task without reminder",
			taskType: domain.TypePrior,
			text:     "Prepare slides",
			date:     "2024-03-02",
		},
		{
			name:     "empty title is allowed",
			taskType: domain.TypeSimple,
			text:     "Untitled note",
			date:     "2024-12-31",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID := createUserID(t)

			task, err := domain.NewTask(userID, tt.taskType, tt.title, tt.text, tt.date, tt.displayTime, tt.reminderTime)

			require.NoError(t, err)
			assert.False(t, task.ID().IsZero())
			assert.True(t, task.UserID().Equals(userID))
			assert.Equal(t, tt.taskType, task.TaskType())
			assert.Equal(t, tt.title, task.Title())
			assert.Equal(t, tt.text, task.Text())
			assert.Equal(t, tt.date, task.Date())
			assert.Equal(t, tt.reminderTime, task.ReminderTime())
			assert.False(t, task.IsCompleted())
		})
	}
}

func TestNewTaskFailure(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		date         string
		reminderTime string
		wantErr      error
	}{
		{
			name:    "empty text",
			text:    "",
			date:    "2024-03-01",
			wantErr: domain.ErrEmptyTaskText,
		},
		{
			name:    "malformed date",
			text:    "note",
			date:    "01-03-2024",
			wantErr: domain.ErrInvalidTaskDate,
		},
		{
			name:    "impossible date",
			text:    "note",
			date:    "2024-02-30",
			wantErr: domain.ErrInvalidTaskDate,
		},
		{
			name:         "malformed reminder time",
			text:         "note",
			date:         "2024-03-01",
			reminderTime: "25:00",
			wantErr:      domain.ErrInvalidReminderTime,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewTask(createUserID(t), domain.TypeSimple, "", tt.text, tt.date, "", tt.reminderTime)

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTaskCompletion(t *testing.T) {
	task, err := domain.NewTask(createUserID(t), domain.TypeSimple, "t", "text", "2024-03-01", "", "09:05")
	require.NoError(t, err)

	assert.True(t, task.HasReminder())

	task.SetCompleted(true)
	assert.True(t, task.IsCompleted())
	assert.False(t, task.HasReminder(), "completed tasks are never reminder candidates")

	task.ToggleCompleted()
	assert.False(t, task.IsCompleted())
	assert.True(t, task.HasReminder())
}

func TestReconstituteTaskKeepsMalformedReminder(t *testing.T) {
	// Rehydration must not reject bad data already in the store; the
	// scheduler skips such tasks individually.
	task := domain.ReconstituteTask(
		domain.NewTaskID(),
		createUserID(t),
		domain.TypeSimple,
		"t",
		"text",
		"2024-03-01",
		"",
		"garbage",
		false,
		time.Now(),
		time.Now(),
	)

	assert.Equal(t, "garbage", task.ReminderTime())
	assert.True(t, task.HasReminder())

	_, err := domain.ParseReminderTime(task.ReminderTime())
	assert.Error(t, err)
}

func TestNewTaskType(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    domain.TaskType
		wantErr bool
	}{
		{
			name:  "prior",
			input: "prior",
			want:  domain.TypePrior,
		},
		{
			name:  "simple",
			input: "simple",
			want:  domain.TypeSimple,
		},
		{
			name:    "unknown",
			input:   "urgent",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.NewTaskType(tt.input)

			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidTaskType)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
