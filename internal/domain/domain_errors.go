package domain

import "errors"

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrUserNotFound = errors.New("user not found")

	ErrInvalidTaskType     = errors.New("invalid task type")
	ErrInvalidTaskDate     = errors.New("invalid task date: must be YYYY-MM-DD")
	ErrInvalidReminderTime = errors.New("invalid reminder time: must be HH:MM")
	ErrEmptyTaskText       = errors.New("task text cannot be empty")

	ErrEmptyFCMToken = errors.New("FCM token cannot be empty")

	ErrTaskCompleted = errors.New("task is already completed")
)
