package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"task-manager/internal/model"
	"task-manager/internal/optional"
	"task-manager/internal/validation"
)

// SeedOptions sizes the simulated data set.
type SeedOptions struct {
	Users                int
	Categories           int
	TasksPerUser         int
	NotificationsPerTask int
	// Rand drives every random choice; nil seeds from the clock.
	Rand *rand.Rand
}

// DefaultSeedOptions mirrors a small demo workspace.
func DefaultSeedOptions() SeedOptions {
	return SeedOptions{Users: 10, Categories: 8, TasksPerUser: 7, NotificationsPerTask: 2}
}

// SeedReport counts what Seed stored and what the validators rejected.
type SeedReport struct {
	Users         int
	Categories    int
	Tasks         int
	Links         int
	Notifications int
	Rejected      int
}

// Seeder fills the store with simulated data through the validated services.
type Seeder struct {
	users         *UserService
	categories    *CategoryService
	tasks         *TaskService
	notifications *NotificationService
	log           zerolog.Logger
	now           func() time.Time
}

func NewSeeder(users *UserService, categories *CategoryService, tasks *TaskService, notifications *NotificationService, log zerolog.Logger) *Seeder {
	return &Seeder{
		users:         users,
		categories:    categories,
		tasks:         tasks,
		notifications: notifications,
		log:           log.With().Str("component", "seeder").Logger(),
		now:           time.Now,
	}
}

// Seed creates users, categories, tasks with random category links and
// reminders. Rows the validators reject, such as duplicate emails on a
// second run, are logged and skipped; storage failures abort the run.
func (s *Seeder) Seed(ctx context.Context, opts SeedOptions) (SeedReport, error) {
	var report SeedReport
	rnd := opts.Rand
	if rnd == nil {
		rnd = rand.New(rand.NewSource(s.now().UnixNano()))
	}

	var users []*model.User
	for i := 1; i <= opts.Users; i++ {
		user, err := s.users.Create(ctx, validation.UserInput{
			Name:     optional.Of(fmt.Sprintf("User %d", i)),
			Email:    optional.Of(fmt.Sprintf("user%d@example.com", i)),
			Password: optional.Of("password123"),
		})
		if err := s.skip(&report, "user", err); err != nil {
			return report, err
		}
		if user != nil {
			users = append(users, user)
			report.Users++
		}
	}

	var categories []*model.Category
	for i := 1; i <= opts.Categories; i++ {
		category, err := s.categories.Create(ctx, validation.CategoryInput{
			Name: optional.Of(fmt.Sprintf("Category %d", i)),
		})
		if err := s.skip(&report, "category", err); err != nil {
			return report, err
		}
		if category != nil {
			categories = append(categories, category)
			report.Categories++
		}
	}

	if len(users) == 0 {
		s.log.Warn().Msg("no users created, skipping tasks and notifications")
		return report, nil
	}

	states := model.TaskStateValues()
	priorities := model.TaskPriorityValues()
	frequencies := model.TaskFrequencyValues()

	for _, user := range users {
		for i := 1; i <= opts.TasksPerUser; i++ {
			if err := ctx.Err(); err != nil {
				return report, err
			}

			title := fmt.Sprintf("Task %d for %s", i, user.Name)
			start := s.now().AddDate(0, 0, -rnd.Intn(31))
			due := start.AddDate(0, 0, 1+rnd.Intn(60))
			recurring := rnd.Intn(2) == 0

			in := validation.TaskInput{
				Title:       optional.Of(title),
				Description: optional.Of(fmt.Sprintf("Details for %s.", title)),
				StartDate:   optional.Of(start),
				DueDate:     optional.Of(due),
				State:       optional.Of(states[rnd.Intn(len(states))]),
				Priority:    optional.Of(priorities[rnd.Intn(len(priorities))]),
				Recurring:   optional.Of(recurring),
				UserID:      optional.Of(user.ID),
			}
			if recurring {
				in.Frequency = optional.Of(frequencies[rnd.Intn(len(frequencies))])
			}

			task, err := s.tasks.Create(ctx, in)
			if err := s.skip(&report, "task", err); err != nil {
				return report, err
			}
			if task == nil {
				continue
			}
			report.Tasks++

			if len(categories) > 0 && rnd.Float64() < 0.7 {
				pick := 2
				if len(categories) < pick {
					pick = len(categories)
				}
				for _, idx := range rnd.Perm(len(categories))[:1+rnd.Intn(pick)] {
					linked, err := s.tasks.AddCategory(ctx, task.ID, categories[idx].ID)
					if err := s.skip(&report, "category link", err); err != nil {
						return report, err
					}
					if linked != nil {
						report.Links++
					}
				}
			}

			if rnd.Float64() >= 0.8 {
				continue
			}
			for n := 0; n < opts.NotificationsPerTask; n++ {
				sendDate := due.Add(-time.Duration(1+rnd.Intn(72)) * time.Hour)
				notification, err := s.notifications.Create(ctx, validation.NotificationInput{
					TaskID:   optional.Of(task.ID),
					SendDate: optional.Of(sendDate),
				})
				if err := s.skip(&report, "notification", err); err != nil {
					return report, err
				}
				if notification != nil {
					report.Notifications++
				}
			}
		}
	}

	s.log.Info().
		Int("users", report.Users).
		Int("categories", report.Categories).
		Int("tasks", report.Tasks).
		Int("links", report.Links).
		Int("notifications", report.Notifications).
		Int("rejected", report.Rejected).
		Msg("seed complete")
	return report, nil
}

// skip swallows validation errors and returns anything else.
func (s *Seeder) skip(report *SeedReport, what string, err error) error {
	if err == nil {
		return nil
	}
	if ve, ok := validation.AsError(err); ok {
		report.Rejected++
		s.log.Warn().Str("field", ve.Field).Msgf("skip %s: %s", what, ve.Message)
		return nil
	}
	return fmt.Errorf("seed %s: %w", what, err)
}
