package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "study-planner.com/study-planner/internal/errors"
	model "study-planner.com/study-planner/internal/models"
)

// TaskRepository scopes every statement to the owning user.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) CreateTask(ctx context.Context, task *model.Task) (string, error) {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
	}

	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return "", fmt.Errorf("insert task: %w", err)
	}

	return task.ID, nil
}

func (r *TaskRepository) FindTask(ctx context.Context, userID, id string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return &task, nil
}

// FindTasks applies the status and priority predicates of filter and returns
// the newest tasks first. Search is not a storage predicate.
func (r *TaskRepository) FindTasks(ctx context.Context, userID string, filter model.TaskFilter) ([]model.Task, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)

	if status, ok := filter.StatusPredicate(); ok {
		query = query.Where("status = ?", status)
	}
	if priority, ok := filter.PriorityPredicate(); ok {
		query = query.Where("priority = ?", priority)
	}

	tasks := []model.Task{}
	if err := query.Order("created_at desc").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// UpdateTask overwrites the named columns. A task owned by someone else is
// indistinguishable from a missing one.
func (r *TaskRepository) UpdateTask(ctx context.Context, userID, id string, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(fields)

	if res.Error != nil {
		return fmt.Errorf("update task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) DeleteTask(ctx context.Context, userID, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Task{})

	if res.Error != nil {
		return fmt.Errorf("delete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrTaskNotFound
	}
	return nil
}
