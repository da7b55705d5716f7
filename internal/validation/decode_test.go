package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-manager/internal/model"
)

func TestDecodeTask(t *testing.T) {
	start := time.Date(2026, 1, 2, 10, 0, 0, 0, time.Local)

	in, err := DecodeTask(Fields{
		FieldTitle:       "Write report",
		FieldDescription: nil,
		FieldStartDate:   start,
		FieldDueDate:     "2026-01-05",
		FieldState:       model.StateCompleted,
		FieldRecurring:   true,
		FieldFrequency:   "weekly",
		FieldUserID:      float64(4),
	})
	require.NoError(t, err)

	assert.Equal(t, "Write report", in.Title.OrElse(""))
	assert.True(t, in.Description.IsNull())
	assert.True(t, in.StartDate.OrElse(time.Time{}).Equal(start))
	assert.Equal(t, 5, in.DueDate.OrElse(time.Time{}).Day())
	assert.Equal(t, "Completed", in.State.OrElse(""))
	assert.False(t, in.Priority.IsPresent())
	assert.True(t, in.Recurring.OrElse(false))
	assert.Equal(t, int64(4), in.UserID.OrElse(0))
}

func TestDecodeTaskTypeErrors(t *testing.T) {
	tests := []struct {
		name    string
		fields  Fields
		message string
	}{
		{"recurring as text", Fields{FieldRecurring: "true"}, "recurring must be a boolean"},
		{"description as number", Fields{FieldDescription: 12}, "description must be text"},
		{"start date garbage", Fields{FieldStartDate: "tomorrow-ish"}, "start date must be a timestamp"},
		{"due date as int", Fields{FieldDueDate: 20260101}, "due date must be a timestamp"},
		{"fractional user id", Fields{FieldUserID: 1.5}, "user id must be a positive integer"},
		{"user id as text", Fields{FieldUserID: "1"}, "user id must be a positive integer"},
		{"unknown field", Fields{"owner": 1}, `unknown field "owner"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeTask(tt.fields)
			require.Error(t, err)
			assert.True(t, IsValidationError(err))
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestDecodeUser(t *testing.T) {
	in, err := DecodeUser(Fields{FieldName: "Ann", FieldEmail: "ann@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "Ann", in.Name.OrElse(""))
	assert.False(t, in.Password.IsPresent())

	_, err = DecodeUser(Fields{FieldEmail: 42})
	assert.EqualError(t, err, "email format is not valid")
}

func TestDecodeCategory(t *testing.T) {
	in, err := DecodeCategory(Fields{FieldName: "Work"})
	require.NoError(t, err)
	assert.Equal(t, "Work", in.Name.OrElse(""))

	_, err = DecodeCategory(Fields{FieldName: true})
	assert.EqualError(t, err, "category name must be a non-empty string")
}

func TestDecodeNotification(t *testing.T) {
	in, err := DecodeNotification(Fields{FieldTaskID: 3, FieldSendDate: "2026-03-01 08:30"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), in.TaskID.OrElse(0))
	assert.Equal(t, 30, in.SendDate.OrElse(time.Time{}).Minute())

	_, err = DecodeNotification(Fields{FieldSendDate: false})
	assert.EqualError(t, err, "send date must be a timestamp")
}
