package validation

import (
	"time"

	"task-manager/internal/model"
	"task-manager/internal/optional"
)

// UserInput carries the fields of a user write. Absent fields are left
// unchanged on update.
type UserInput struct {
	Name     optional.Value[string]
	Email    optional.Value[string]
	Password optional.Value[string]
}

// CategoryInput carries the fields of a category write.
type CategoryInput struct {
	Name optional.Value[string]
}

// TaskInput carries the fields of a task write. Enumerations arrive as text
// and are resolved by ValidateTask.
type TaskInput struct {
	Title       optional.Value[string]
	Description optional.Value[string]
	StartDate   optional.Value[time.Time]
	DueDate     optional.Value[time.Time]
	State       optional.Value[string]
	Priority    optional.Value[string]
	Recurring   optional.Value[bool]
	Frequency   optional.Value[string]
	UserID      optional.Value[int64]
}

// NotificationInput carries the fields of a notification write.
type NotificationInput struct {
	TaskID   optional.Value[int64]
	SendDate optional.Value[time.Time]
}

// TaskChanges is a TaskInput that passed validation, with enumerations
// resolved.
type TaskChanges struct {
	Title       optional.Value[string]
	Description optional.Value[string]
	StartDate   optional.Value[time.Time]
	DueDate     optional.Value[time.Time]
	State       optional.Value[model.TaskState]
	Priority    optional.Value[model.TaskPriority]
	Recurring   optional.Value[bool]
	Frequency   optional.Value[model.TaskFrequency]
	UserID      optional.Value[int64]
}
