package service

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"task-manager/internal/model"
)

// dispatchBatch caps the reminders handled per run.
const dispatchBatch = 100

// Sender delivers a rendered reminder.
type Sender interface {
	Send(ctx context.Context, text string) error
}

// Dispatcher sends due notifications and marks them delivered.
type Dispatcher struct {
	notifications *NotificationService
	tasks         *TaskService
	sender        Sender
	log           zerolog.Logger
}

func NewDispatcher(notifications *NotificationService, tasks *TaskService, sender Sender, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		notifications: notifications,
		tasks:         tasks,
		sender:        sender,
		log:           log.With().Str("component", "dispatcher").Logger(),
	}
}

// Dispatch delivers every undelivered notification due at now and returns how
// many were sent. A failed send leaves the notification pending for the next
// run.
func (d *Dispatcher) Dispatch(ctx context.Context, now time.Time) (int, error) {
	due, err := d.notifications.ListDue(ctx, now, dispatchBatch)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, n := range due {
		select {
		case <-ctx.Done():
			return sent, ctx.Err()
		default:
		}

		task, err := d.tasks.GetByID(ctx, n.TaskID)
		if err != nil {
			d.log.Error().Err(err).Int64("notification_id", n.ID).Msg("load task")
			continue
		}
		if task == nil {
			continue
		}

		if err := d.sender.Send(ctx, formatReminder(*task, n, now)); err != nil {
			d.log.Warn().Err(err).Int64("notification_id", n.ID).Msg("send reminder")
			continue
		}

		if _, err := d.notifications.MarkDelivered(ctx, n.ID, now); err != nil {
			d.log.Error().Err(err).Int64("notification_id", n.ID).Msg("mark delivered")
			continue
		}
		sent++
	}

	if sent > 0 {
		d.log.Info().Int("sent", sent).Int("due", len(due)).Msg("reminders dispatched")
	}
	return sent, nil
}

func formatReminder(task model.Task, n model.Notification, now time.Time) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("🔔 %s <b>%s</b>", deadlineIcon(task, now), html.EscapeString(strings.TrimSpace(task.Title))))

	if len(task.Categories) > 0 {
		names := make([]string, 0, len(task.Categories))
		for _, c := range task.Categories {
			if trimmed := strings.TrimSpace(c.Name); trimmed != "" {
				names = append(names, html.EscapeString(trimmed))
			}
		}
		if len(names) > 0 {
			sb.WriteString(fmt.Sprintf(" <i>(%s)</i>", strings.Join(names, ", ")))
		}
	}

	if task.DueDate != nil {
		d := task.DueDate.In(now.Location())
		if now.After(d) {
			sb.WriteString(fmt.Sprintf("\n   ⏰ due %s · <b>overdue</b>", d.Format("2006-01-02")))
		} else {
			daysLeft := int(d.Sub(now).Hours()/24) + 1
			sb.WriteString(fmt.Sprintf("\n   ⏰ due %s · ≈%d days left", d.Format("2006-01-02"), daysLeft))
		}
	}

	sb.WriteString(fmt.Sprintf("\n   📌 %s · %s priority", task.State, task.Priority))

	if task.Recurring && task.Frequency != nil {
		sb.WriteString(fmt.Sprintf("\n   ♻️ repeats %s", strings.ToLower(string(*task.Frequency))))
	}

	if task.Description != nil && strings.TrimSpace(*task.Description) != "" {
		sb.WriteString(fmt.Sprintf("\n   📝 %s", html.EscapeString(strings.TrimSpace(*task.Description))))
	}

	sb.WriteString(fmt.Sprintf("\n   🕑 scheduled %s", n.SendDate.In(now.Location()).Format("2006-01-02 15:04")))

	return sb.String()
}

func deadlineIcon(task model.Task, now time.Time) string {
	if task.State == model.StateCompleted {
		return "✅"
	}
	if task.DueDate == nil {
		return "🟢"
	}
	d := task.DueDate.In(now.Location())
	switch {
	case now.After(d):
		return "⚠️"
	case d.Sub(now) <= 48*time.Hour:
		return "⏳"
	default:
		return "🟢"
	}
}
