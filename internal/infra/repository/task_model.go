package repository

import (
	"time"

	"github.com/mindermate/notification-scheduler/internal/domain"
)

type TaskModel struct {
	ID           string    `gorm:"column:id;type:uuid;primaryKey"`
	UserID       string    `gorm:"column:user_id;type:uuid;not null;index:idx_tasks_user_id_date"`
	TaskType     string    `gorm:"column:task_type;type:varchar(255);not null"`
	Title        string    `gorm:"column:title;type:varchar(255);not null"`
	Text         string    `gorm:"column:text;type:text;not null"`
	Date         string    `gorm:"column:date;type:varchar(10);not null;index:idx_tasks_user_id_date;index:idx_tasks_date_reminder"`
	DisplayTime  string    `gorm:"column:display_time;type:varchar(32);not null;default:''"`
	ReminderTime string    `gorm:"column:reminder_time;type:varchar(16);not null;default:'';index:idx_tasks_date_reminder"`
	Completed    bool      `gorm:"column:completed;type:boolean;not null;default:false"`
	CreatedAt    time.Time `gorm:"column:created_at;type:timestamptz;not null"`
	UpdatedAt    time.Time `gorm:"column:updated_at;type:timestamptz;not null"`
}

func (TaskModel) TableName() string {
	return "tasks"
}

// ToEntity rehydrates the row. The reminder time is carried through
// unparsed: a malformed stored value is the scheduler's problem to skip,
// not a load failure.
func (m *TaskModel) ToEntity() (*domain.Task, error) {
	taskID, err := domain.TaskIDFromString(m.ID)
	if err != nil {
		return nil, err
	}

	userID, err := domain.UserIDFromString(m.UserID)
	if err != nil {
		return nil, err
	}

	taskType, err := domain.NewTaskType(m.TaskType)
	if err != nil {
		return nil, err
	}

	return domain.ReconstituteTask(
		taskID,
		userID,
		taskType,
		m.Title,
		m.Text,
		m.Date,
		m.DisplayTime,
		m.ReminderTime,
		m.Completed,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

func FromTaskEntity(e *domain.Task) *TaskModel {
	return &TaskModel{
		ID:           e.ID().String(),
		UserID:       e.UserID().String(),
		TaskType:     string(e.TaskType()),
		Title:        e.Title(),
		Text:         e.Text(),
		Date:         e.Date(),
		DisplayTime:  e.DisplayTime(),
		ReminderTime: e.ReminderTime(),
		Completed:    e.IsCompleted(),
		CreatedAt:    e.CreatedAt(),
		UpdatedAt:    e.UpdatedAt(),
	}
}
