package repository

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"github.com/mindermate/notification-scheduler/internal/domain"
)

type taskRepositoryImpl struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) domain.TaskRepository {
	return &taskRepositoryImpl{
		db: db,
	}
}

func (r *taskRepositoryImpl) Save(ctx context.Context, task *domain.Task) error {
	slog.Debug("saving task to database",
		"task_id", task.ID().String(),
	)

	m := FromTaskEntity(task)

	result := r.db.WithContext(ctx).Create(m)
	if result.Error != nil {
		slog.Error("failed to save task to database",
			"task_id", task.ID().String(),
			"error", result.Error,
		)

		return result.Error
	}

	return nil
}

func (r *taskRepositoryImpl) FindByID(ctx context.Context, id domain.TaskID) (*domain.Task, error) {
	var m TaskModel

	result := r.db.WithContext(ctx).Where("id = ?", id.String()).First(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTaskNotFound
		}

		slog.Error("failed to find task by ID",
			"task_id", id.String(),
			"error", result.Error,
		)

		return nil, result.Error
	}

	return m.ToEntity()
}

func (r *taskRepositoryImpl) FindByUserAndDate(ctx context.Context, userID domain.UserID, date string) ([]*domain.Task, error) {
	var models []TaskModel

	result := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID.String(), date).
		Order("created_at DESC").
		Find(&models)

	if result.Error != nil {
		slog.Error("failed to find tasks by user and date",
			"user_id", userID.String(),
			"date", date,
			"error", result.Error,
		)

		return nil, result.Error
	}

	return toEntities(models)
}

func (r *taskRepositoryImpl) FindRemindersOnDate(ctx context.Context, date string) ([]*domain.Task, error) {
	var models []TaskModel

	result := r.db.WithContext(ctx).
		Where("date = ? AND reminder_time <> '' AND completed = false", date).
		Order("created_at ASC").
		Find(&models)

	if result.Error != nil {
		slog.Error("failed to find reminder candidates",
			"date", date,
			"error", result.Error,
		)

		return nil, result.Error
	}

	slog.Debug("reminder candidates loaded",
		"date", date,
		"count", len(models),
	)

	return toEntities(models)
}

func (r *taskRepositoryImpl) Update(ctx context.Context, task *domain.Task) error {
	m := FromTaskEntity(task)

	// Updates skips zero values, so completed=false would never persist
	// through it. Select forces the full column list.
	result := r.db.WithContext(ctx).
		Model(&TaskModel{}).
		Where("id = ?", m.ID).
		Select("user_id", "task_type", "title", "text", "date", "display_time", "reminder_time", "completed", "updated_at").
		Updates(m)

	if result.Error != nil {
		slog.Error("failed to update task in database",
			"task_id", task.ID().String(),
			"error", result.Error,
		)

		return result.Error
	}

	if result.RowsAffected == 0 {
		return domain.ErrTaskNotFound
	}

	return nil
}

func (r *taskRepositoryImpl) Delete(ctx context.Context, id domain.TaskID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&TaskModel{})
	if result.Error != nil {
		slog.Error("failed to delete task from database",
			"task_id", id.String(),
			"error", result.Error,
		)

		return result.Error
	}

	if result.RowsAffected == 0 {
		return domain.ErrTaskNotFound
	}

	return nil
}

func toEntities(models []TaskModel) ([]*domain.Task, error) {
	tasks := make([]*domain.Task, 0, len(models))

	for _, m := range models {
		task, err := m.ToEntity()
		if err != nil {
			slog.Error("failed to convert task model to entity",
				"task_id", m.ID,
				"error", err,
			)

			return nil, err
		}

		tasks = append(tasks, task)
	}

	return tasks, nil
}
