package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"task-manager/internal/model"
)

// TaskRepository handles CRUD for tasks and their category links.
type TaskRepository struct {
	Store[model.Task]
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{Store: newStore[model.Task](db, "task"), db: db}
}

// GetByID loads the task with its categories.
func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).Preload("Categories", orderByID).First(&task, id).Error
	switch {
	case err == nil:
		return &task, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrNotFound
	default:
		return nil, fmt.Errorf("find task: %w", err)
	}
}

// GetAll returns every task with its categories.
func (r *TaskRepository) GetAll(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Preload("Categories", orderByID).Order("id ASC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Update applies the columns and re-reads the task with its categories.
func (r *TaskRepository) Update(ctx context.Context, id int64, columns map[string]interface{}) (*model.Task, error) {
	if _, err := r.Store.Update(ctx, id, columns); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// ListByUser returns the tasks owned by the user.
func (r *TaskRepository) ListByUser(ctx context.Context, userID int64) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Preload("Categories", orderByID).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks by user: %w", err)
	}
	return tasks, nil
}

// AddCategory links the category to the task. Linking an already linked pair
// is a no-op. Returns ErrNotFound when the task does not exist.
func (r *TaskRepository) AddCategory(ctx context.Context, taskID, categoryID int64) (*model.Task, error) {
	exists, err := r.Exists(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}

	link := model.TaskCategory{TaskID: taskID, CategoryID: categoryID}
	if err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&link).Error; err != nil {
		return nil, fmt.Errorf("link task category: %w", err)
	}

	return r.GetByID(ctx, taskID)
}

// RemoveCategory unlinks the category from the task; a missing link is a
// no-op. Returns ErrNotFound when the task does not exist.
func (r *TaskRepository) RemoveCategory(ctx context.Context, taskID, categoryID int64) (*model.Task, error) {
	exists, err := r.Exists(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}

	if err := r.db.WithContext(ctx).
		Where("task_id = ? AND category_id = ?", taskID, categoryID).
		Delete(&model.TaskCategory{}).Error; err != nil {
		return nil, fmt.Errorf("unlink task category: %w", err)
	}

	return r.GetByID(ctx, taskID)
}

// CountCategoryLinks counts the link rows of a task.
func (r *TaskRepository) CountCategoryLinks(ctx context.Context, taskID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.TaskCategory{}).Where("task_id = ?", taskID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count task categories: %w", err)
	}
	return count, nil
}

// Delete removes a task together with its notifications and category links.
func (r *TaskRepository) Delete(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&model.Notification{}).Error; err != nil {
			return fmt.Errorf("delete task notifications: %w", err)
		}
		if err := tx.Where("task_id = ?", id).Delete(&model.TaskCategory{}).Error; err != nil {
			return fmt.Errorf("delete task categories: %w", err)
		}
		var err error
		deleted, err = deleteByID[model.Task](tx, "task", id)
		return err
	})
	return deleted, err
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}
