package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-manager/internal/model"
	"task-manager/internal/optional"
)

func validUser() UserInput {
	return UserInput{
		Name:     optional.Of("Ann"),
		Email:    optional.Of("ann@x.com"),
		Password: optional.Of("secret1"),
	}
}

func TestValidateUser(t *testing.T) {
	tests := []struct {
		name    string
		input   func() UserInput
		isNew   bool
		kind    Kind
		message string
	}{
		{name: "valid create", input: validUser, isNew: true},
		{
			name:    "missing password on create",
			input:   func() UserInput { in := validUser(); in.Password = optional.Value[string]{}; return in },
			isNew:   true,
			kind:    KindRequired,
			message: "name, email and password are required",
		},
		{
			name:    "whitespace name",
			input:   func() UserInput { in := validUser(); in.Name = optional.Of("   "); return in },
			isNew:   true,
			kind:    KindRequired,
			message: "name must be a non-empty string",
		},
		{
			name:    "malformed email",
			input:   func() UserInput { in := validUser(); in.Email = optional.Of("correo-invalido"); return in },
			isNew:   true,
			kind:    KindInvalidFormat,
			message: "email format is not valid",
		},
		{
			name:    "short password",
			input:   func() UserInput { in := validUser(); in.Password = optional.Of("12345"); return in },
			isNew:   true,
			kind:    KindInvalidLength,
			message: "password must be at least 6 characters long",
		},
		{
			name:  "partial update only checks supplied fields",
			input: func() UserInput { return UserInput{Name: optional.Of("Ann B")} },
		},
		{
			name:    "short password on update",
			input:   func() UserInput { return UserInput{Password: optional.Of("abc")} },
			kind:    KindInvalidLength,
			message: "password must be at least 6 characters long",
		},
		{
			name:    "null email on update",
			input:   func() UserInput { return UserInput{Email: optional.Null[string]()} },
			kind:    KindInvalidFormat,
			message: "email format is not valid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUser(tt.input(), tt.isNew)
			if tt.message == "" {
				assert.NoError(t, err)
				return
			}
			ve, ok := AsError(err)
			require.True(t, ok, "expected validation error, got %v", err)
			assert.Equal(t, tt.kind, ve.Kind)
			assert.Equal(t, tt.message, ve.Error())
		})
	}
}

func TestValidateCategory(t *testing.T) {
	assert.NoError(t, ValidateCategory(CategoryInput{Name: optional.Of("Work")}, true))
	assert.NoError(t, ValidateCategory(CategoryInput{}, false))

	err := ValidateCategory(CategoryInput{}, true)
	assert.EqualError(t, err, "category name is required and must be a non-empty string")

	err = ValidateCategory(CategoryInput{Name: optional.Of(" ")}, false)
	assert.EqualError(t, err, "category name must be a non-empty string")
}

func TestValidateNotification(t *testing.T) {
	assert.NoError(t, ValidateNotification(NotificationInput{TaskID: optional.Of(int64(3))}, true))
	assert.NoError(t, ValidateNotification(NotificationInput{SendDate: optional.Of(time.Now())}, false))

	assert.EqualError(t, ValidateNotification(NotificationInput{}, true),
		"task id is required to create a notification")
	assert.EqualError(t, ValidateNotification(NotificationInput{TaskID: optional.Of(int64(0))}, true),
		"task id must be a positive integer")
	assert.EqualError(t, ValidateNotification(NotificationInput{SendDate: optional.Null[time.Time]()}, false),
		"send date must be a timestamp")
}

func TestValidateTask(t *testing.T) {
	now := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	base := func() TaskInput {
		return TaskInput{Title: optional.Of("T"), UserID: optional.Of(int64(1))}
	}

	tests := []struct {
		name    string
		input   func() TaskInput
		isNew   bool
		message string
	}{
		{name: "minimal create", input: base, isNew: true},
		{
			name:    "missing title",
			input:   func() TaskInput { return TaskInput{UserID: optional.Of(int64(1))} },
			isNew:   true,
			message: "task title is required and must be a non-empty string",
		},
		{
			name:    "missing user",
			input:   func() TaskInput { return TaskInput{Title: optional.Of("T")} },
			isNew:   true,
			message: "user id is required to create a task",
		},
		{
			name:    "non-positive user",
			input:   func() TaskInput { in := base(); in.UserID = optional.Of(int64(-2)); return in },
			isNew:   true,
			message: "user id must be a positive integer",
		},
		{
			name:    "blank title on update",
			input:   func() TaskInput { return TaskInput{Title: optional.Of("  ")} },
			message: "task title must be a non-empty string",
		},
		{
			name: "due before start",
			input: func() TaskInput {
				in := base()
				in.StartDate = optional.Of(now)
				in.DueDate = optional.Of(now.AddDate(0, 0, -1))
				return in
			},
			isNew:   true,
			message: "due date cannot be earlier than start date",
		},
		{
			name: "due equal to start",
			input: func() TaskInput {
				in := base()
				in.StartDate = optional.Of(now)
				in.DueDate = optional.Of(now)
				return in
			},
			isNew: true,
		},
		{
			name:    "invalid state",
			input:   func() TaskInput { in := base(); in.State = optional.Of("INVALID"); return in },
			isNew:   true,
			message: "invalid task state, permitted values: [Pending, In progress, Completed]",
		},
		{
			name:    "invalid priority",
			input:   func() TaskInput { in := base(); in.Priority = optional.Of("CRITICAL"); return in },
			isNew:   true,
			message: "invalid task priority, permitted values: [High, Medium, Low]",
		},
		{
			name: "frequency with recurring false",
			input: func() TaskInput {
				in := base()
				in.Recurring = optional.Of(false)
				in.Frequency = optional.Of("Daily")
				return in
			},
			isNew:   true,
			message: "frequency can only be set when the task is recurring",
		},
		{
			name:    "frequency without recurring on update",
			input:   func() TaskInput { return TaskInput{Frequency: optional.Of("Weekly")} },
			message: "frequency can only be set when the task is recurring",
		},
		{
			name: "invalid frequency",
			input: func() TaskInput {
				in := base()
				in.Recurring = optional.Of(true)
				in.Frequency = optional.Of("Yearly")
				return in
			},
			isNew:   true,
			message: "invalid task frequency, permitted values: [Daily, Weekly, Monthly]",
		},
		{
			name:    "null recurring",
			input:   func() TaskInput { return TaskInput{Recurring: optional.Null[bool]()} },
			message: "recurring must be a boolean",
		},
		{
			name: "clearing frequency is allowed",
			input: func() TaskInput {
				return TaskInput{Recurring: optional.Of(false), Frequency: optional.Null[string]()}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateTask(tt.input(), tt.isNew)
			if tt.message == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, IsValidationError(err))
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestValidateTaskNormalizesEnums(t *testing.T) {
	in := TaskInput{
		Title:     optional.Of("Full"),
		UserID:    optional.Of(int64(1)),
		State:     optional.Of("in_progress"),
		Priority:  optional.Of("alta"),
		Recurring: optional.Of(true),
		Frequency: optional.Of("daily"),
	}
	_, err := ValidateTask(in, true)
	require.Error(t, err, "unknown priority must be rejected")

	in.Priority = optional.Of("high")
	changes, err := ValidateTask(in, true)
	require.NoError(t, err)
	assert.Equal(t, model.StateInProgress, changes.State.OrElse(""))
	assert.Equal(t, model.PriorityHigh, changes.Priority.OrElse(""))
	assert.Equal(t, model.FrequencyDaily, changes.Frequency.OrElse(""))
	assert.True(t, changes.Recurring.OrElse(false))
}

func TestValidateID(t *testing.T) {
	assert.NoError(t, ValidateID("user", 1))
	assert.EqualError(t, ValidateID("user", 0), "user id must be a positive integer")
	assert.EqualError(t, ValidateID("task", -5), "task id must be a positive integer")
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("juan.perez@example.com"))
	assert.False(t, IsValidEmail("juan.perez@example"))
	assert.False(t, IsValidEmail("@example.com"))
	assert.False(t, IsValidEmail("a b@example.com"))
}
