package repository

import (
	"context"

	"gorm.io/gorm"

	"taskmanager/internal/model"
	"taskmanager/internal/query"
)

// TaskRepository defines task persistence operations. Lookups by id are
// always scoped to an owner.
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, task *model.Task) error
	FindByIDForOwner(ctx context.Context, id, ownerID uint) (*model.Task, error)
	Count(ctx context.Context, filter *query.TaskFilter) (int64, error)
	List(ctx context.Context, filter *query.TaskFilter, offset, limit int) ([]model.Task, error)
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

// Create creates a new task record.
func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// Update saves every column of an existing task.
func (r *taskRepository) Update(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

// Delete removes a task.
func (r *taskRepository) Delete(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Delete(task).Error
}

// FindByIDForOwner finds a task by id that belongs to ownerID. A task owned
// by someone else yields gorm.ErrRecordNotFound, same as a missing one.
func (r *taskRepository) FindByIDForOwner(ctx context.Context, id, ownerID uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, ownerID).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// Count returns how many tasks match filter.
func (r *taskRepository) Count(ctx context.Context, filter *query.TaskFilter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Task{}).Scopes(filter.Scope).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// List returns one window of the tasks matching filter, in filter order.
func (r *taskRepository) List(ctx context.Context, filter *query.TaskFilter, offset, limit int) ([]model.Task, error) {
	tasks := []model.Task{}
	err := r.db.WithContext(ctx).
		Scopes(filter.Scope, filter.OrderScope).
		Offset(offset).
		Limit(limit).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}
