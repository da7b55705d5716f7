package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"task-manager/internal/model"
	"task-manager/internal/repository"
	"task-manager/internal/validation"
)

// CategoryService validates category writes.
type CategoryService struct {
	repo *repository.CategoryRepository
	log  zerolog.Logger
}

func NewCategoryService(repo *repository.CategoryRepository, log zerolog.Logger) *CategoryService {
	return &CategoryService{repo: repo, log: log.With().Str("entity", "category").Logger()}
}

func (s *CategoryService) Create(ctx context.Context, in validation.CategoryInput) (*model.Category, error) {
	if err := validation.ValidateCategory(in, true); err != nil {
		s.log.Debug().Str("op", "create").Err(err).Msg("category rejected")
		return nil, err
	}

	name := in.Name.OrElse("")
	if err := s.checkName(ctx, name, 0); err != nil {
		return nil, err
	}

	category := model.Category{Name: name}
	if err := s.repo.Add(ctx, &category); err != nil {
		return nil, err
	}

	s.log.Debug().Int64("id", category.ID).Str("op", "create").Msg("category saved")
	return &category, nil
}

func (s *CategoryService) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	if err := validation.ValidateID("category", id); err != nil {
		return nil, err
	}
	return absentOnNotFound(s.repo.GetByID(ctx, id))
}

func (s *CategoryService) GetAll(ctx context.Context) ([]model.Category, error) {
	return s.repo.GetAll(ctx)
}

func (s *CategoryService) Update(ctx context.Context, id int64, in validation.CategoryInput) (*model.Category, error) {
	if err := validation.ValidateID("category", id); err != nil {
		return nil, err
	}
	if err := validation.ValidateCategory(in, false); err != nil {
		s.log.Debug().Str("op", "update").Err(err).Msg("category rejected")
		return nil, err
	}

	columns := map[string]interface{}{}
	if name, ok := in.Name.Get(); ok {
		if err := s.checkName(ctx, name, id); err != nil {
			return nil, err
		}
		columns["name"] = name
	}

	category, err := absentOnNotFound(s.repo.Update(ctx, id, columns))
	if err != nil || category == nil {
		return category, err
	}
	s.log.Debug().Int64("id", id).Str("op", "update").Msg("category saved")
	return category, nil
}

// Delete removes the category and its task links; the tasks stay.
func (s *CategoryService) Delete(ctx context.Context, id int64) (bool, error) {
	if err := validation.ValidateID("category", id); err != nil {
		return false, err
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.log.Debug().Int64("id", id).Str("op", "delete").Msg("category removed")
	}
	return deleted, nil
}

func (s *CategoryService) checkName(ctx context.Context, name string, exceptID int64) error {
	taken, err := s.repo.NameExists(ctx, name, exceptID)
	if err != nil {
		return err
	}
	if taken {
		return validation.Duplicate("name", fmt.Sprintf("a category named %s already exists", name))
	}
	return nil
}
