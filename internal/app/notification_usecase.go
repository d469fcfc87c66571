package app

import "context"

type NotificationUseCase interface {
	// RegisterToken adds a device token to the user's registration set,
	// creating the registry row on first registration. Idempotent.
	RegisterToken(ctx context.Context, input RegisterTokenInput) error

	// UnregisterToken removes one device token. Unknown tokens are a no-op.
	UnregisterToken(ctx context.Context, input UnregisterTokenInput) error

	// SendTestNotification pushes a canned message to all of the caller's
	// devices.
	SendTestNotification(ctx context.Context, userID string) (DispatchOutcome, error)

	// SendTaskReminder dispatches one task's reminder immediately,
	// bypassing the schedule. Completed tasks are rejected.
	SendTaskReminder(ctx context.Context, input SendTaskReminderInput) (DispatchOutcome, error)
}

type RegisterTokenInput struct {
	UserID   string
	FCMToken string
}

type UnregisterTokenInput struct {
	UserID   string
	FCMToken string
}

type SendTaskReminderInput struct {
	TaskID string
	UserID string
}
