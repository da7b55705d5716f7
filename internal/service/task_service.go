package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"task-manager/internal/model"
	"task-manager/internal/optional"
	"task-manager/internal/repository"
	"task-manager/internal/validation"
)

// TaskService wraps task-related business logic.
type TaskService struct {
	taskRepo     *repository.TaskRepository
	userRepo     *repository.UserRepository
	categoryRepo *repository.CategoryRepository
	log          zerolog.Logger
	now          func() time.Time
}

func NewTaskService(
	taskRepo *repository.TaskRepository,
	userRepo *repository.UserRepository,
	categoryRepo *repository.CategoryRepository,
	log zerolog.Logger,
) *TaskService {
	return &TaskService{
		taskRepo:     taskRepo,
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
		log:          log.With().Str("entity", "task").Logger(),
		now:          time.Now,
	}
}

// Create validates the input, checks the owner exists and stores the task with
// defaults for every omitted field.
func (s *TaskService) Create(ctx context.Context, in validation.TaskInput) (*model.Task, error) {
	changes, err := validation.ValidateTask(in, true)
	if err != nil {
		return nil, s.rejected("create", err)
	}

	userID := changes.UserID.OrElse(0)
	if err := s.checkUser(ctx, userID); err != nil {
		return nil, s.rejected("create", err)
	}

	startDate := changes.StartDate.Ptr()
	if startDate == nil {
		now := s.now()
		startDate = &now
	}

	task := model.Task{
		UserID:      userID,
		Title:       changes.Title.OrElse(""),
		Description: changes.Description.Ptr(),
		StartDate:   startDate,
		DueDate:     changes.DueDate.Ptr(),
		State:       changes.State.OrElse(model.StatePending),
		Priority:    changes.Priority.OrElse(model.PriorityMedium),
		Recurring:   changes.Recurring.OrElse(false),
		Frequency:   changes.Frequency.Ptr(),
	}
	if err := s.taskRepo.Add(ctx, &task); err != nil {
		return nil, err
	}

	s.log.Debug().Int64("id", task.ID).Int64("user_id", userID).Str("op", "create").Msg("task saved")
	return &task, nil
}

// GetByID returns the task with its categories, or nil when it does not exist.
func (s *TaskService) GetByID(ctx context.Context, id int64) (*model.Task, error) {
	if err := validation.ValidateID("task", id); err != nil {
		return nil, err
	}
	return absentOnNotFound(s.taskRepo.GetByID(ctx, id))
}

func (s *TaskService) GetAll(ctx context.Context) ([]model.Task, error) {
	return s.taskRepo.GetAll(ctx)
}

// ListByUser returns the tasks owned by the user.
func (s *TaskService) ListByUser(ctx context.Context, userID int64) ([]model.Task, error) {
	if err := validation.ValidateID("user", userID); err != nil {
		return nil, err
	}
	return s.taskRepo.ListByUser(ctx, userID)
}

// Update applies the supplied fields and returns nil when the task does not
// exist. A frequency may only be written to a task that is, or becomes in the
// same write, recurring. Turning recurrence off clears the stored frequency.
func (s *TaskService) Update(ctx context.Context, id int64, in validation.TaskInput) (*model.Task, error) {
	if err := validation.ValidateID("task", id); err != nil {
		return nil, err
	}

	current, err := absentOnNotFound(s.taskRepo.Store.GetByID(ctx, id))
	if err != nil {
		return nil, err
	}

	if current != nil && current.Recurring && in.Frequency.IsSet() && !in.Recurring.IsPresent() {
		in.Recurring = optional.Of(true)
	}

	// Malformed input is reported even when the task is gone.
	changes, err := validation.ValidateTask(in, false)
	if err != nil {
		return nil, s.rejected("update", err)
	}
	if current == nil {
		return nil, nil
	}

	if userID, ok := changes.UserID.Get(); ok {
		if err := s.checkUser(ctx, userID); err != nil {
			return nil, s.rejected("update", err)
		}
	}

	columns := taskColumns(changes)
	if recurring, ok := changes.Recurring.Get(); ok && !recurring && !changes.Frequency.IsPresent() && current.Frequency != nil {
		columns["frequency"] = nil
	}

	task, err := absentOnNotFound(s.taskRepo.Update(ctx, id, columns))
	if err != nil || task == nil {
		return task, err
	}

	s.log.Debug().Int64("id", id).Str("op", "update").Msg("task saved")
	return task, nil
}

// Delete removes the task with its notifications and category links.
func (s *TaskService) Delete(ctx context.Context, id int64) (bool, error) {
	if err := validation.ValidateID("task", id); err != nil {
		return false, err
	}
	deleted, err := s.taskRepo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.log.Debug().Int64("id", id).Str("op", "delete").Msg("task removed")
	}
	return deleted, nil
}

// AddCategory links an existing category to the task. Adding an existing link
// changes nothing. Returns nil when the task does not exist.
func (s *TaskService) AddCategory(ctx context.Context, taskID, categoryID int64) (*model.Task, error) {
	if err := s.checkLinkIDs(ctx, taskID, categoryID); err != nil {
		return nil, err
	}

	task, err := absentOnNotFound(s.taskRepo.AddCategory(ctx, taskID, categoryID))
	if err != nil || task == nil {
		return task, err
	}

	s.log.Debug().Int64("id", taskID).Int64("category_id", categoryID).Str("op", "link").Msg("category linked")
	return task, nil
}

// RemoveCategory unlinks the category; a pair that was never linked is left
// alone. Returns nil when the task does not exist.
func (s *TaskService) RemoveCategory(ctx context.Context, taskID, categoryID int64) (*model.Task, error) {
	if err := validation.ValidateID("task", taskID); err != nil {
		return nil, err
	}
	if err := validation.ValidateID("category", categoryID); err != nil {
		return nil, err
	}

	task, err := absentOnNotFound(s.taskRepo.RemoveCategory(ctx, taskID, categoryID))
	if err != nil || task == nil {
		return task, err
	}

	s.log.Debug().Int64("id", taskID).Int64("category_id", categoryID).Str("op", "unlink").Msg("category unlinked")
	return task, nil
}

func (s *TaskService) checkLinkIDs(ctx context.Context, taskID, categoryID int64) error {
	if err := validation.ValidateID("task", taskID); err != nil {
		return err
	}
	if err := validation.ValidateID("category", categoryID); err != nil {
		return err
	}
	exists, err := s.categoryRepo.Exists(ctx, categoryID)
	if err != nil {
		return err
	}
	if !exists {
		return s.rejected("link", validation.MissingReference("category_id", "category", categoryID))
	}
	return nil
}

func (s *TaskService) checkUser(ctx context.Context, userID int64) error {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return validation.MissingReference("user_id", "user", userID)
	}
	return nil
}

func (s *TaskService) rejected(op string, err error) error {
	if validation.IsValidationError(err) {
		s.log.Debug().Str("op", op).Err(err).Msg("task rejected")
	}
	return err
}

// taskColumns maps supplied fields to column updates; null clears the column.
func taskColumns(c validation.TaskChanges) map[string]interface{} {
	columns := map[string]interface{}{}
	putColumn(columns, "title", c.Title)
	putColumn(columns, "description", c.Description)
	putColumn(columns, "start_date", c.StartDate)
	putColumn(columns, "due_date", c.DueDate)
	putColumn(columns, "state", c.State)
	putColumn(columns, "priority", c.Priority)
	putColumn(columns, "recurring", c.Recurring)
	putColumn(columns, "frequency", c.Frequency)
	putColumn(columns, "user_id", c.UserID)
	return columns
}

func putColumn[T any](columns map[string]interface{}, name string, v optional.Value[T]) {
	switch {
	case v.IsSet():
		value, _ := v.Get()
		columns[name] = value
	case v.IsNull():
		columns[name] = nil
	}
}
