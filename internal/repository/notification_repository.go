package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"task-manager/internal/model"
)

// NotificationRepository handles CRUD for task reminders.
type NotificationRepository struct {
	Store[model.Notification]
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{Store: newStore[model.Notification](db, "notification"), db: db}
}

func (r *NotificationRepository) ListByTask(ctx context.Context, taskID int64) ([]model.Notification, error) {
	var notifications []model.Notification
	if err := r.db.WithContext(ctx).Where("task_id = ?", taskID).Order("send_date ASC, id ASC").Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("list notifications by task: %w", err)
	}
	return notifications, nil
}

// ListDue returns undelivered notifications whose send date is not after now,
// oldest first.
func (r *NotificationRepository) ListDue(ctx context.Context, now time.Time, limit int) ([]model.Notification, error) {
	var notifications []model.Notification
	db := r.db.WithContext(ctx).
		Where("delivered_at IS NULL AND send_date <= ?", now).
		Order("send_date ASC, id ASC")
	if limit > 0 {
		db = db.Limit(limit)
	}
	if err := db.Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("list due notifications: %w", err)
	}
	return notifications, nil
}

// MarkDelivered stamps the notification as sent.
func (r *NotificationRepository) MarkDelivered(ctx context.Context, id int64, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&model.Notification{}).Where("id = ?", id).Update("delivered_at", at)
	if result.Error != nil {
		return fmt.Errorf("mark notification delivered: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
