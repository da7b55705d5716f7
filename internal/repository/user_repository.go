package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"task-manager/internal/model"
)

// UserRepository handles CRUD for users.
type UserRepository struct {
	Store[model.User]
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{Store: newStore[model.User](db, "user"), db: db}
}

// EmailExists reports whether a user other than exceptID already has the
// email. Pass 0 to check every row.
func (r *UserRepository) EmailExists(ctx context.Context, email string, exceptID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Where("email = ? AND id <> ?", email, exceptID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("find user by email: %w", err)
	}
	return count > 0, nil
}

// Delete removes the user together with its tasks, their notifications and
// their category links.
func (r *UserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taskIDs := tx.Model(&model.Task{}).Select("id").Where("user_id = ?", id)
		if err := tx.Where("task_id IN (?)", taskIDs).Delete(&model.Notification{}).Error; err != nil {
			return fmt.Errorf("delete user notifications: %w", err)
		}
		if err := tx.Where("task_id IN (?)", taskIDs).Delete(&model.TaskCategory{}).Error; err != nil {
			return fmt.Errorf("delete user task categories: %w", err)
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.Task{}).Error; err != nil {
			return fmt.Errorf("delete user tasks: %w", err)
		}
		var err error
		deleted, err = deleteByID[model.User](tx, "user", id)
		return err
	})
	return deleted, err
}

// ListAll returns every user with its tasks preloaded.
func (r *UserRepository) ListAll(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Preload("Tasks", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).Order("id ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
