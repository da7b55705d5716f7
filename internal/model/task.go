package model

import "time"

// Task represents a single item in the planner.
type Task struct {
	ID            int64  `gorm:"primaryKey"`
	UserID        int64  `gorm:"index;not null"`
	Title         string `gorm:"not null"`
	Description   *string
	StartDate     *time.Time
	DueDate       *time.Time
	State         TaskState    `gorm:"not null;default:Pending"`
	Priority      TaskPriority `gorm:"not null;default:Medium"`
	Recurring     bool         `gorm:"not null;default:false"`
	Frequency     *TaskFrequency
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Categories    []Category     `gorm:"many2many:task_categories"`
	Notifications []Notification `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
}

// HasCategory reports whether the task is linked to the given category.
func (t Task) HasCategory(categoryID int64) bool {
	for _, c := range t.Categories {
		if c.ID == categoryID {
			return true
		}
	}
	return false
}
