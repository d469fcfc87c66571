package domain

import "context"

//go:generate mockgen -source=task_repository.go -destination=task_repository_mock.go -package=domain

type TaskRepository interface {
	Save(ctx context.Context, task *Task) error
	FindByID(ctx context.Context, id TaskID) (*Task, error)

	// FindByUserAndDate returns one owner's tasks for a calendar date,
	// newest first.
	FindByUserAndDate(ctx context.Context, userID UserID, date string) ([]*Task, error)

	// FindRemindersOnDate returns every task dated date with a non-empty
	// reminder time and completed = false, in creation order. This is the
	// scheduler's candidate set; minute filtering happens in the caller.
	FindRemindersOnDate(ctx context.Context, date string) ([]*Task, error)

	Update(ctx context.Context, task *Task) error
	Delete(ctx context.Context, id TaskID) error
}
