package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"task-manager/internal/model"
	"task-manager/internal/repository"
	"task-manager/internal/validation"
)

// NotificationService validates reminder writes and serves the dispatcher.
type NotificationService struct {
	repo     *repository.NotificationRepository
	taskRepo *repository.TaskRepository
	log      zerolog.Logger
	now      func() time.Time
}

func NewNotificationService(repo *repository.NotificationRepository, taskRepo *repository.TaskRepository, log zerolog.Logger) *NotificationService {
	return &NotificationService{
		repo:     repo,
		taskRepo: taskRepo,
		log:      log.With().Str("entity", "notification").Logger(),
		now:      time.Now,
	}
}

// Create schedules a reminder for an existing task. The send date defaults to
// the creation time.
func (s *NotificationService) Create(ctx context.Context, in validation.NotificationInput) (*model.Notification, error) {
	if err := validation.ValidateNotification(in, true); err != nil {
		return nil, s.rejected("create", err)
	}

	taskID := in.TaskID.OrElse(0)
	if err := s.checkTask(ctx, taskID); err != nil {
		return nil, s.rejected("create", err)
	}

	notification := model.Notification{
		TaskID:   taskID,
		SendDate: in.SendDate.OrElse(s.now()),
	}
	if err := s.repo.Add(ctx, &notification); err != nil {
		return nil, err
	}

	s.log.Debug().Int64("id", notification.ID).Int64("task_id", taskID).Str("op", "create").Msg("notification saved")
	return &notification, nil
}

func (s *NotificationService) GetByID(ctx context.Context, id int64) (*model.Notification, error) {
	if err := validation.ValidateID("notification", id); err != nil {
		return nil, err
	}
	return absentOnNotFound(s.repo.GetByID(ctx, id))
}

func (s *NotificationService) GetAll(ctx context.Context) ([]model.Notification, error) {
	return s.repo.GetAll(ctx)
}

func (s *NotificationService) Update(ctx context.Context, id int64, in validation.NotificationInput) (*model.Notification, error) {
	if err := validation.ValidateID("notification", id); err != nil {
		return nil, err
	}
	if err := validation.ValidateNotification(in, false); err != nil {
		return nil, s.rejected("update", err)
	}

	columns := map[string]interface{}{}
	if taskID, ok := in.TaskID.Get(); ok {
		if err := s.checkTask(ctx, taskID); err != nil {
			return nil, s.rejected("update", err)
		}
		columns["task_id"] = taskID
	}
	if sendDate, ok := in.SendDate.Get(); ok {
		columns["send_date"] = sendDate
		// A rescheduled reminder is sent again.
		columns["delivered_at"] = nil
	}

	notification, err := absentOnNotFound(s.repo.Update(ctx, id, columns))
	if err != nil || notification == nil {
		return notification, err
	}
	s.log.Debug().Int64("id", id).Str("op", "update").Msg("notification saved")
	return notification, nil
}

func (s *NotificationService) Delete(ctx context.Context, id int64) (bool, error) {
	if err := validation.ValidateID("notification", id); err != nil {
		return false, err
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.log.Debug().Int64("id", id).Str("op", "delete").Msg("notification removed")
	}
	return deleted, nil
}

// ListByTask returns the reminders of a task ordered by send date.
func (s *NotificationService) ListByTask(ctx context.Context, taskID int64) ([]model.Notification, error) {
	if err := validation.ValidateID("task", taskID); err != nil {
		return nil, err
	}
	return s.repo.ListByTask(ctx, taskID)
}

// ListDue returns at most limit undelivered reminders due at now; limit <= 0
// means no limit.
func (s *NotificationService) ListDue(ctx context.Context, now time.Time, limit int) ([]model.Notification, error) {
	return s.repo.ListDue(ctx, now, limit)
}

// MarkDelivered records the delivery time. It reports false when the
// notification no longer exists.
func (s *NotificationService) MarkDelivered(ctx context.Context, id int64, at time.Time) (bool, error) {
	if err := validation.ValidateID("notification", id); err != nil {
		return false, err
	}
	err := s.repo.MarkDelivered(ctx, id, at)
	switch {
	case err == nil:
		return true, nil
	case isNotFound(err):
		return false, nil
	default:
		return false, err
	}
}

func (s *NotificationService) checkTask(ctx context.Context, taskID int64) error {
	exists, err := s.taskRepo.Exists(ctx, taskID)
	if err != nil {
		return err
	}
	if !exists {
		return validation.MissingReference("task_id", "task", taskID)
	}
	return nil
}

func (s *NotificationService) rejected(op string, err error) error {
	if validation.IsValidationError(err) {
		s.log.Debug().Str("op", op).Err(err).Msg("notification rejected")
	}
	return err
}
