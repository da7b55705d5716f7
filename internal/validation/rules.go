package validation

import (
	"strings"

	"task-manager/internal/model"
	"task-manager/internal/optional"
)

// ValidateUser checks the format rules of a user write. Email uniqueness
// needs storage and is checked by the caller.
func ValidateUser(in UserInput, isNew bool) error {
	if isNew && !(in.Name.IsPresent() && in.Email.IsPresent() && in.Password.IsPresent()) {
		return Required("user", "name, email and password are required")
	}

	if in.Name.IsPresent() && !IsNonEmptyString(in.Name.OrElse("")) {
		return Newf("name", KindRequired, "name must be a non-empty string")
	}

	if in.Email.IsPresent() && !IsValidEmail(in.Email.OrElse("")) {
		return Newf("email", KindInvalidFormat, "email format is not valid")
	}

	if in.Password.IsPresent() && !HasMinLength(in.Password.OrElse(""), MinPasswordLength) {
		return Newf("password", KindInvalidLength, "password must be at least %d characters long", MinPasswordLength)
	}

	return nil
}

// ValidateCategory checks the format rules of a category write.
func ValidateCategory(in CategoryInput, isNew bool) error {
	if isNew && !IsNonEmptyString(in.Name.OrElse("")) {
		return Required("name", "category name is required and must be a non-empty string")
	}
	if in.Name.IsPresent() && !IsNonEmptyString(in.Name.OrElse("")) {
		return Newf("name", KindRequired, "category name must be a non-empty string")
	}
	return nil
}

// ValidateNotification checks the format rules of a notification write. The
// task reference is resolved by the caller.
func ValidateNotification(in NotificationInput, isNew bool) error {
	if isNew && !in.TaskID.IsPresent() {
		return Required("task_id", "task id is required to create a notification")
	}
	if in.TaskID.IsPresent() {
		if id, ok := in.TaskID.Get(); !ok || !IsValidID(id) {
			return Newf("task_id", KindInvalidValue, "task id must be a positive integer")
		}
	}
	if in.SendDate.IsNull() {
		return Newf("send_date", KindInvalidType, "send date must be a timestamp")
	}
	return nil
}

// ValidateTask checks a task write and resolves its enumerations. The owning
// user reference is resolved by the caller.
func ValidateTask(in TaskInput, isNew bool) (TaskChanges, error) {
	out := TaskChanges{
		Title:       in.Title,
		Description: in.Description,
		StartDate:   in.StartDate,
		DueDate:     in.DueDate,
		Recurring:   in.Recurring,
		UserID:      in.UserID,
	}

	if isNew {
		if !IsNonEmptyString(in.Title.OrElse("")) {
			return out, Required("title", "task title is required and must be a non-empty string")
		}
		if !in.UserID.IsPresent() {
			return out, Required("user_id", "user id is required to create a task")
		}
	}

	if in.UserID.IsPresent() {
		if id, ok := in.UserID.Get(); !ok || !IsValidID(id) {
			return out, Newf("user_id", KindInvalidValue, "user id must be a positive integer")
		}
	}

	if in.Title.IsPresent() && !IsNonEmptyString(in.Title.OrElse("")) {
		return out, Newf("title", KindRequired, "task title must be a non-empty string")
	}

	start, due := in.StartDate.Ptr(), in.DueDate.Ptr()
	if !IsValidDateRange(start, due) {
		return out, Newf("due_date", KindInvalidRange, "due date cannot be earlier than start date")
	}

	if in.State.IsPresent() {
		state, ok := model.ParseTaskState(in.State.OrElse(""))
		if !ok {
			return out, invalidEnum("state", "invalid task state", model.TaskStateValues())
		}
		out.State = optional.Of(state)
	}

	if in.Priority.IsPresent() {
		priority, ok := model.ParseTaskPriority(in.Priority.OrElse(""))
		if !ok {
			return out, invalidEnum("priority", "invalid task priority", model.TaskPriorityValues())
		}
		out.Priority = optional.Of(priority)
	}

	if in.Recurring.IsNull() {
		return out, Newf("recurring", KindInvalidType, "recurring must be a boolean")
	}

	switch {
	case in.Frequency.IsSet():
		if !in.Recurring.OrElse(false) {
			return out, Newf("frequency", KindInvalidValue, "frequency can only be set when the task is recurring")
		}
		frequency, ok := model.ParseTaskFrequency(in.Frequency.OrElse(""))
		if !ok {
			return out, invalidEnum("frequency", "invalid task frequency", model.TaskFrequencyValues())
		}
		out.Frequency = optional.Of(frequency)
	case in.Frequency.IsNull():
		out.Frequency = optional.Null[model.TaskFrequency]()
	}

	return out, nil
}

func invalidEnum(field, message string, permitted []string) *Error {
	return Newf(field, KindInvalidValue, "%s, permitted values: [%s]", message, strings.Join(permitted, ", "))
}
