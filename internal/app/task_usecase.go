package app

import (
	"context"
	"time"

	"github.com/mindermate/notification-scheduler/internal/domain"
)

type TaskUseCase interface {
	CreateTask(ctx context.Context, input CreateTaskInput) (TaskOutput, error)

	// ListTasksByDate returns the caller's tasks for one calendar date,
	// newest first.
	ListTasksByDate(ctx context.Context, input ListTasksInput) ([]TaskOutput, error)

	// UpdateTaskCompletion sets the completion flag, or toggles it when
	// Completed is nil.
	UpdateTaskCompletion(ctx context.Context, input UpdateTaskCompletionInput) (TaskOutput, error)

	DeleteTask(ctx context.Context, input DeleteTaskInput) error
}

type CreateTaskInput struct {
	UserID       string
	TaskType     string
	Title        string
	Text         string
	Date         string
	DisplayTime  string
	ReminderTime string
}

type ListTasksInput struct {
	UserID string
	Date   string
}

type UpdateTaskCompletionInput struct {
	UserID    string
	TaskID    string
	Completed *bool
}

type DeleteTaskInput struct {
	UserID string
	TaskID string
}

type TaskOutput struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	TaskType     string    `json:"task_type"`
	Title        string    `json:"title"`
	Text         string    `json:"text"`
	Date         string    `json:"date"`
	DisplayTime  string    `json:"display_time,omitempty"`
	ReminderTime string    `json:"reminder_time,omitempty"`
	Completed    bool      `json:"completed"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func FromTaskEntity(task *domain.Task) TaskOutput {
	return TaskOutput{
		ID:           task.ID().String(),
		UserID:       task.UserID().String(),
		TaskType:     string(task.TaskType()),
		Title:        task.Title(),
		Text:         task.Text(),
		Date:         task.Date(),
		DisplayTime:  task.DisplayTime(),
		ReminderTime: task.ReminderTime(),
		Completed:    task.IsCompleted(),
		CreatedAt:    task.CreatedAt(),
		UpdatedAt:    task.UpdatedAt(),
	}
}
