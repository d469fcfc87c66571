package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mindermate/notification-scheduler/internal/domain"
	"github.com/mindermate/notification-scheduler/internal/infra/push"
)

type notificationUseCaseImpl struct {
	tasks       domain.TaskRepository
	users       domain.UserRepository
	sender      push.Sender
	pushTimeout time.Duration
}

func NewNotificationUseCase(
	tasks domain.TaskRepository,
	users domain.UserRepository,
	sender push.Sender,
	pushTimeout time.Duration,
) NotificationUseCase {
	if pushTimeout <= 0 {
		pushTimeout = defaultPushTimeout
	}

	return &notificationUseCaseImpl{
		tasks:       tasks,
		users:       users,
		sender:      sender,
		pushTimeout: pushTimeout,
	}
}

func (uc *notificationUseCaseImpl) RegisterToken(ctx context.Context, input RegisterTokenInput) error {
	userID, err := domain.UserIDFromString(input.UserID)
	if err != nil {
		return NewValidationError("user_id", err.Error())
	}

	if input.FCMToken == "" {
		return NewValidationError("fcm_token", "FCM token is required")
	}

	user, err := uc.users.FindByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			return fmt.Errorf("%w: %v", ErrInternalError, err)
		}

		user = domain.NewUser(userID)
	}

	added, err := user.AddToken(input.FCMToken)
	if err != nil {
		return NewValidationError("fcm_token", err.Error())
	}

	if !added {
		slog.Debug("FCM token already registered",
			"user_id", input.UserID,
		)

		return nil
	}

	if err := uc.users.Save(ctx, user); err != nil {
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	slog.Info("FCM token registered",
		"user_id", input.UserID,
	)

	return nil
}

func (uc *notificationUseCaseImpl) UnregisterToken(ctx context.Context, input UnregisterTokenInput) error {
	userID, err := domain.UserIDFromString(input.UserID)
	if err != nil {
		return NewValidationError("user_id", err.Error())
	}

	if input.FCMToken == "" {
		return NewValidationError("fcm_token", "FCM token is required")
	}

	if err := uc.users.RemoveTokens(ctx, userID, []string{input.FCMToken}); err != nil {
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	slog.Info("FCM token unregistered",
		"user_id", input.UserID,
	)

	return nil
}

func (uc *notificationUseCaseImpl) SendTestNotification(ctx context.Context, userID string) (DispatchOutcome, error) {
	if uc.sender == nil {
		return DispatchOutcome{}, fmt.Errorf("%w: push delivery is not configured", ErrNotConfigured)
	}

	id, err := domain.UserIDFromString(userID)
	if err != nil {
		return DispatchOutcome{}, NewValidationError("user_id", err.Error())
	}

	d := &deliverer{users: uc.users, sender: uc.sender, timeout: uc.pushTimeout}

	result := d.send(ctx, id, push.Notification{
		Title: "Test Notification",
		Body:  "This is a test notification from Mindermate",
		Data:  map[string]string{"type": "test"},
	})

	return DispatchOutcome{
		Success:      result.Success,
		SuccessCount: result.SuccessCount,
		FailureCount: result.FailureCount,
		Error:        result.Error,
	}, nil
}

func (uc *notificationUseCaseImpl) SendTaskReminder(ctx context.Context, input SendTaskReminderInput) (DispatchOutcome, error) {
	if uc.sender == nil {
		return DispatchOutcome{}, fmt.Errorf("%w: push delivery is not configured", ErrNotConfigured)
	}

	taskID, err := domain.TaskIDFromString(input.TaskID)
	if err != nil {
		return DispatchOutcome{}, NewValidationError("task_id", err.Error())
	}

	userID, err := domain.UserIDFromString(input.UserID)
	if err != nil {
		return DispatchOutcome{}, NewValidationError("user_id", err.Error())
	}

	task, err := uc.tasks.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return DispatchOutcome{}, fmt.Errorf("%w: %v", ErrNotFound, err)
		}

		return DispatchOutcome{}, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	// Ownership is enforced as not-found so task IDs cannot be probed.
	if !task.UserID().Equals(userID) {
		return DispatchOutcome{}, fmt.Errorf("%w: task not found", ErrNotFound)
	}

	if task.IsCompleted() {
		return DispatchOutcome{}, NewValidationError("task_id", domain.ErrTaskCompleted.Error())
	}

	d := &deliverer{users: uc.users, sender: uc.sender, timeout: uc.pushTimeout}

	result := d.send(ctx, task.UserID(), taskReminderNotification(task))

	outcome := DispatchOutcome{
		TaskID:       task.ID().String(),
		Title:        task.Title(),
		Success:      result.Success,
		SuccessCount: result.SuccessCount,
		FailureCount: result.FailureCount,
		Error:        result.Error,
	}

	slog.Info("manual task reminder dispatched",
		"task_id", outcome.TaskID,
		"success", outcome.Success,
	)

	return outcome, nil
}
