package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a row with the requested id does not exist.
var ErrNotFound = errors.New("record not found")

// Store is the generic create/fetch/update/delete adapter shared by every
// entity repository. T must be a gorm model with an int64 primary key "id".
type Store[T any] struct {
	db   *gorm.DB
	name string
}

func newStore[T any](db *gorm.DB, name string) Store[T] {
	return Store[T]{db: db, name: name}
}

// Add inserts entity and fills in its generated id.
func (s Store[T]) Add(ctx context.Context, entity *T) error {
	if err := s.db.WithContext(ctx).Create(entity).Error; err != nil {
		return fmt.Errorf("create %s: %w", s.name, err)
	}
	return nil
}

// GetByID returns ErrNotFound when no row has the id.
func (s Store[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	var entity T
	err := s.db.WithContext(ctx).First(&entity, id).Error
	switch {
	case err == nil:
		return &entity, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrNotFound
	default:
		return nil, fmt.Errorf("find %s: %w", s.name, err)
	}
}

// GetAll returns every row ordered by id.
func (s Store[T]) GetAll(ctx context.Context) ([]T, error) {
	var entities []T
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&entities).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", s.name, err)
	}
	return entities, nil
}

// Exists reports whether a row has the id.
func (s Store[T]) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count %s: %w", s.name, err)
	}
	return count > 0, nil
}

// Update applies only the given columns and returns the re-read row, or
// ErrNotFound.
func (s Store[T]) Update(ctx context.Context, id int64, columns map[string]interface{}) (*T, error) {
	db := s.db.WithContext(ctx)
	if len(columns) > 0 {
		result := db.Model(new(T)).Where("id = ?", id).Updates(columns)
		if result.Error != nil {
			return nil, fmt.Errorf("update %s: %w", s.name, result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}
	return s.GetByID(ctx, id)
}

// Delete removes the row and reports whether it existed.
func (s Store[T]) Delete(ctx context.Context, id int64) (bool, error) {
	return deleteByID[T](s.db.WithContext(ctx), s.name, id)
}

func deleteByID[T any](tx *gorm.DB, name string, id int64) (bool, error) {
	result := tx.Delete(new(T), id)
	if result.Error != nil {
		return false, fmt.Errorf("delete %s: %w", name, result.Error)
	}
	return result.RowsAffected > 0, nil
}
