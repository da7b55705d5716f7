package model

import "time"

// Notification is a reminder scheduled for a task.
type Notification struct {
	ID          int64     `gorm:"primaryKey"`
	TaskID      int64     `gorm:"index;not null"`
	SendDate    time.Time `gorm:"index;not null"`
	DeliveredAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Delivered reports whether the dispatcher already sent the reminder.
func (n Notification) Delivered() bool {
	return n.DeliveredAt != nil
}
