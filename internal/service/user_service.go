package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"task-manager/internal/model"
	"task-manager/internal/repository"
	"task-manager/internal/validation"
)

// UserService validates user writes before they reach storage.
type UserService struct {
	repo *repository.UserRepository
	log  zerolog.Logger
}

func NewUserService(repo *repository.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, log: log.With().Str("entity", "user").Logger()}
}

func (s *UserService) Create(ctx context.Context, in validation.UserInput) (*model.User, error) {
	if err := validation.ValidateUser(in, true); err != nil {
		return nil, s.rejected("create", err)
	}

	email := in.Email.OrElse("")
	if err := s.checkEmail(ctx, email, 0); err != nil {
		return nil, err
	}

	user := model.User{
		Name:     in.Name.OrElse(""),
		Email:    email,
		Password: in.Password.OrElse(""),
	}
	if err := s.repo.Add(ctx, &user); err != nil {
		return nil, err
	}

	s.log.Debug().Int64("id", user.ID).Str("op", "create").Msg("user saved")
	return &user, nil
}

// GetByID returns nil without error when the user does not exist.
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if err := validation.ValidateID("user", id); err != nil {
		return nil, err
	}
	return absentOnNotFound(s.repo.GetByID(ctx, id))
}

func (s *UserService) GetAll(ctx context.Context) ([]model.User, error) {
	return s.repo.GetAll(ctx)
}

// ListWithTasks returns every user with its tasks.
func (s *UserService) ListWithTasks(ctx context.Context) ([]model.User, error) {
	return s.repo.ListAll(ctx)
}

// Update applies the supplied fields. It returns nil without error when the
// user does not exist.
func (s *UserService) Update(ctx context.Context, id int64, in validation.UserInput) (*model.User, error) {
	if err := validation.ValidateID("user", id); err != nil {
		return nil, err
	}
	if err := validation.ValidateUser(in, false); err != nil {
		return nil, s.rejected("update", err)
	}

	columns := map[string]interface{}{}
	if name, ok := in.Name.Get(); ok {
		columns["name"] = name
	}
	if email, ok := in.Email.Get(); ok {
		if err := s.checkEmail(ctx, email, id); err != nil {
			return nil, err
		}
		columns["email"] = email
	}
	if password, ok := in.Password.Get(); ok {
		columns["password"] = password
	}

	user, err := absentOnNotFound(s.repo.Update(ctx, id, columns))
	if err != nil || user == nil {
		return user, err
	}

	s.log.Debug().Int64("id", id).Str("op", "update").Msg("user saved")
	return user, nil
}

// Delete removes the user with its tasks, their notifications and category
// links. It reports false when the user does not exist.
func (s *UserService) Delete(ctx context.Context, id int64) (bool, error) {
	if err := validation.ValidateID("user", id); err != nil {
		return false, err
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.log.Debug().Int64("id", id).Str("op", "delete").Msg("user removed")
	}
	return deleted, nil
}

func (s *UserService) checkEmail(ctx context.Context, email string, exceptID int64) error {
	taken, err := s.repo.EmailExists(ctx, email, exceptID)
	if err != nil {
		return err
	}
	if taken {
		return s.rejected("write", validation.Duplicate("email", fmt.Sprintf("a user with email %s already exists", email)))
	}
	return nil
}

func (s *UserService) rejected(op string, err error) error {
	s.log.Debug().Str("op", op).Err(err).Msg("user rejected")
	return err
}
