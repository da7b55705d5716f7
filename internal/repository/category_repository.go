package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"task-manager/internal/model"
)

// CategoryRepository manages task categories.
type CategoryRepository struct {
	Store[model.Category]
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{Store: newStore[model.Category](db, "category"), db: db}
}

// NameExists reports whether a category other than exceptID uses the name.
func (r *CategoryRepository) NameExists(ctx context.Context, name string, exceptID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Category{}).Where("name = ? AND id <> ?", name, exceptID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("find category by name: %w", err)
	}
	return count > 0, nil
}

// Delete removes the category and its task links. Tasks are kept.
func (r *CategoryRepository) Delete(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&model.TaskCategory{}).Error; err != nil {
			return fmt.Errorf("delete category links: %w", err)
		}
		var err error
		deleted, err = deleteByID[model.Category](tx, "category", id)
		return err
	})
	return deleted, err
}
