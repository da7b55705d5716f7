package model

import "time"

// User owns tasks. Deleting a user removes its tasks together with their
// notifications and category links.
type User struct {
	ID        int64  `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	Email     string `gorm:"uniqueIndex;not null"`
	Password  string `gorm:"not null" json:"-"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Tasks     []Task `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
