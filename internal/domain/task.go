package domain

import (
	"fmt"
	"time"
)

// Task is a single to-do item owned by exactly one user. The scheduler only
// ever reads tasks; mutation happens through the owner's CRUD operations.
//
// reminderTime is kept as the raw "HH:MM" string (empty = no reminder).
// NewTask validates it, but ReconstituteTask deliberately does not: a
// malformed value already in the store must surface as a per-task skip
// during scheduling, not as a rehydration failure.
type Task struct {
	id           TaskID
	userID       UserID
	taskType     TaskType
	title        string
	text         string
	date         string
	displayTime  string
	reminderTime string
	completed    bool
	createdAt    time.Time
	updatedAt    time.Time
}

func NewTask(
	userID UserID,
	taskType TaskType,
	title string,
	text string,
	date string,
	displayTime string,
	reminderTime string,
) (*Task, error) {
	if text == "" {
		return nil, ErrEmptyTaskText
	}

	if _, err := time.Parse(DateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTaskDate, date)
	}

	if _, err := ParseReminderTime(reminderTime); err != nil {
		return nil, err
	}

	now := time.Now()

	return &Task{
		id:           NewTaskID(),
		userID:       userID,
		taskType:     taskType,
		title:        title,
		text:         text,
		date:         date,
		displayTime:  displayTime,
		reminderTime: reminderTime,
		completed:    false,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func ReconstituteTask(
	id TaskID,
	userID UserID,
	taskType TaskType,
	title string,
	text string,
	date string,
	displayTime string,
	reminderTime string,
	completed bool,
	createdAt time.Time,
	updatedAt time.Time,
) *Task {
	return &Task{
		id:           id,
		userID:       userID,
		taskType:     taskType,
		title:        title,
		text:         text,
		date:         date,
		displayTime:  displayTime,
		reminderTime: reminderTime,
		completed:    completed,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (t *Task) SetCompleted(completed bool) {
	t.completed = completed
	t.updatedAt = time.Now()
}

func (t *Task) ToggleCompleted() {
	t.SetCompleted(!t.completed)
}

// HasReminder reports whether the task can ever be selected for dispatch.
func (t *Task) HasReminder() bool {
	return t.reminderTime != "" && !t.completed
}

func (t *Task) ID() TaskID {
	return t.id
}

func (t *Task) UserID() UserID {
	return t.userID
}

func (t *Task) TaskType() TaskType {
	return t.taskType
}

func (t *Task) Title() string {
	return t.title
}

func (t *Task) Text() string {
	return t.text
}

func (t *Task) Date() string {
	return t.date
}

func (t *Task) DisplayTime() string {
	return t.displayTime
}

func (t *Task) ReminderTime() string {
	return t.reminderTime
}

func (t *Task) IsCompleted() bool {
	return t.completed
}

func (t *Task) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Task) UpdatedAt() time.Time {
	return t.updatedAt
}
