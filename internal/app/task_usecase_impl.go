package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mindermate/notification-scheduler/internal/domain"
)

type taskUseCaseImpl struct {
	tasks domain.TaskRepository
}

func NewTaskUseCase(tasks domain.TaskRepository) TaskUseCase {
	return &taskUseCaseImpl{tasks: tasks}
}

func (uc *taskUseCaseImpl) CreateTask(ctx context.Context, input CreateTaskInput) (TaskOutput, error) {
	userID, err := domain.UserIDFromString(input.UserID)
	if err != nil {
		return TaskOutput{}, NewValidationError("user_id", err.Error())
	}

	taskType, err := domain.NewTaskType(input.TaskType)
	if err != nil {
		return TaskOutput{}, NewValidationError("task_type", err.Error())
	}

	task, err := domain.NewTask(
		userID,
		taskType,
		input.Title,
		input.Text,
		input.Date,
		input.DisplayTime,
		input.ReminderTime,
	)
	if err != nil {
		return TaskOutput{}, NewValidationError("task", err.Error())
	}

	if err := uc.tasks.Save(ctx, task); err != nil {
		return TaskOutput{}, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	slog.Info("task created",
		"task_id", task.ID().String(),
		"user_id", input.UserID,
		"has_reminder", task.HasReminder(),
	)

	return FromTaskEntity(task), nil
}

func (uc *taskUseCaseImpl) ListTasksByDate(ctx context.Context, input ListTasksInput) ([]TaskOutput, error) {
	userID, err := domain.UserIDFromString(input.UserID)
	if err != nil {
		return nil, NewValidationError("user_id", err.Error())
	}

	if _, err := time.Parse(domain.DateLayout, input.Date); err != nil {
		return nil, NewValidationError("date", fmt.Sprintf("invalid date: %q", input.Date))
	}

	tasks, err := uc.tasks.FindByUserAndDate(ctx, userID, input.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	outputs := make([]TaskOutput, 0, len(tasks))
	for _, task := range tasks {
		outputs = append(outputs, FromTaskEntity(task))
	}

	return outputs, nil
}

func (uc *taskUseCaseImpl) UpdateTaskCompletion(ctx context.Context, input UpdateTaskCompletionInput) (TaskOutput, error) {
	task, err := uc.findOwnedTask(ctx, input.UserID, input.TaskID)
	if err != nil {
		return TaskOutput{}, err
	}

	if input.Completed != nil {
		task.SetCompleted(*input.Completed)
	} else {
		task.ToggleCompleted()
	}

	if err := uc.tasks.Update(ctx, task); err != nil {
		return TaskOutput{}, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	slog.Info("task completion updated",
		"task_id", task.ID().String(),
		"completed", task.IsCompleted(),
	)

	return FromTaskEntity(task), nil
}

func (uc *taskUseCaseImpl) DeleteTask(ctx context.Context, input DeleteTaskInput) error {
	task, err := uc.findOwnedTask(ctx, input.UserID, input.TaskID)
	if err != nil {
		return err
	}

	if err := uc.tasks.Delete(ctx, task.ID()); err != nil {
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	slog.Info("task deleted",
		"task_id", task.ID().String(),
		"user_id", input.UserID,
	)

	return nil
}

// findOwnedTask resolves a task and verifies the caller owns it. Ownership
// mismatches surface as not-found so task IDs cannot be probed.
func (uc *taskUseCaseImpl) findOwnedTask(ctx context.Context, rawUserID, rawTaskID string) (*domain.Task, error) {
	userID, err := domain.UserIDFromString(rawUserID)
	if err != nil {
		return nil, NewValidationError("user_id", err.Error())
	}

	taskID, err := domain.TaskIDFromString(rawTaskID)
	if err != nil {
		return nil, NewValidationError("task_id", err.Error())
	}

	task, err := uc.tasks.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
		}

		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	if !task.UserID().Equals(userID) {
		return nil, fmt.Errorf("%w: task not found", ErrNotFound)
	}

	return task, nil
}
