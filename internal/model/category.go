package model

import "time"

// Category groups tasks by area (work, health, study, etc.).
type Category struct {
	ID        int64  `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TaskCategory links one task to one category. The pair is the primary key,
// so a task carries a given category at most once.
type TaskCategory struct {
	TaskID     int64    `gorm:"primaryKey;autoIncrement:false"`
	CategoryID int64    `gorm:"primaryKey;autoIncrement:false"`
	Task       Task     `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	Category   Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

func (TaskCategory) TableName() string {
	return "task_categories"
}
