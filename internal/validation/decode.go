package validation

import (
	"math"
	"reflect"
	"sort"
	"time"

	"task-manager/internal/optional"
)

// Fields is the plain field-name-to-value mapping a presentation layer
// builds from a form. A present key means "set this field"; a nil value means
// "clear it".
type Fields map[string]any

// Field names accepted in Fields.
const (
	FieldName        = "name"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldStartDate   = "start_date"
	FieldDueDate     = "due_date"
	FieldState       = "state"
	FieldPriority    = "priority"
	FieldRecurring   = "recurring"
	FieldFrequency   = "frequency"
	FieldUserID      = "user_id"
	FieldTaskID      = "task_id"
	FieldSendDate    = "send_date"
)

// timestampLayouts are tried in order for textual dates.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// DecodeUser converts a form into a UserInput.
func DecodeUser(f Fields) (UserInput, error) {
	var in UserInput
	if err := f.only(FieldName, FieldEmail, FieldPassword); err != nil {
		return in, err
	}
	var err error
	if in.Name, err = f.text(FieldName, "name must be a non-empty string"); err != nil {
		return in, err
	}
	if in.Email, err = f.text(FieldEmail, "email format is not valid"); err != nil {
		return in, err
	}
	if in.Password, err = f.text(FieldPassword, "password must be text"); err != nil {
		return in, err
	}
	return in, nil
}

// DecodeCategory converts a form into a CategoryInput.
func DecodeCategory(f Fields) (CategoryInput, error) {
	var in CategoryInput
	if err := f.only(FieldName); err != nil {
		return in, err
	}
	var err error
	in.Name, err = f.text(FieldName, "category name must be a non-empty string")
	return in, err
}

// DecodeTask converts a form into a TaskInput. Enumerations may be given as
// text or as their model type.
func DecodeTask(f Fields) (TaskInput, error) {
	var in TaskInput
	if err := f.only(FieldTitle, FieldDescription, FieldStartDate, FieldDueDate, FieldState,
		FieldPriority, FieldRecurring, FieldFrequency, FieldUserID); err != nil {
		return in, err
	}

	var err error
	if in.Title, err = f.text(FieldTitle, "task title must be a non-empty string"); err != nil {
		return in, err
	}
	if in.Description, err = f.text(FieldDescription, "description must be text"); err != nil {
		return in, err
	}
	if in.StartDate, err = f.timestamp(FieldStartDate, "start date must be a timestamp"); err != nil {
		return in, err
	}
	if in.DueDate, err = f.timestamp(FieldDueDate, "due date must be a timestamp"); err != nil {
		return in, err
	}
	if in.State, err = f.text(FieldState, "task state must be text"); err != nil {
		return in, err
	}
	if in.Priority, err = f.text(FieldPriority, "task priority must be text"); err != nil {
		return in, err
	}
	if in.Frequency, err = f.text(FieldFrequency, "task frequency must be text"); err != nil {
		return in, err
	}
	if in.UserID, err = f.id(FieldUserID, "user id must be a positive integer"); err != nil {
		return in, err
	}

	if raw, ok := f[FieldRecurring]; ok {
		switch v := raw.(type) {
		case nil:
			in.Recurring = optional.Null[bool]()
		case bool:
			in.Recurring = optional.Of(v)
		default:
			return in, Newf(FieldRecurring, KindInvalidType, "recurring must be a boolean")
		}
	}

	return in, nil
}

// DecodeNotification converts a form into a NotificationInput.
func DecodeNotification(f Fields) (NotificationInput, error) {
	var in NotificationInput
	if err := f.only(FieldTaskID, FieldSendDate); err != nil {
		return in, err
	}
	var err error
	if in.TaskID, err = f.id(FieldTaskID, "task id must be a positive integer"); err != nil {
		return in, err
	}
	in.SendDate, err = f.timestamp(FieldSendDate, "send date must be a timestamp")
	return in, err
}

func (f Fields) only(allowed ...string) error {
	var unknown []string
	for key := range f {
		found := false
		for _, a := range allowed {
			if key == a {
				found = true
				break
			}
		}
		if !found {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return Newf(unknown[0], KindInvalidValue, "unknown field %q", unknown[0])
}

// text accepts strings and string-kinded named types such as model.TaskState.
func (f Fields) text(key, message string) (optional.Value[string], error) {
	raw, ok := f[key]
	if !ok {
		return optional.Value[string]{}, nil
	}
	switch v := raw.(type) {
	case nil:
		return optional.Null[string](), nil
	case string:
		return optional.Of(v), nil
	case *string:
		return optional.FromPtr(v), nil
	}
	if s, ok := asString(raw); ok {
		return optional.Of(s), nil
	}
	return optional.Value[string]{}, Newf(key, KindInvalidType, "%s", message)
}

func (f Fields) timestamp(key, message string) (optional.Value[time.Time], error) {
	raw, ok := f[key]
	if !ok {
		return optional.Value[time.Time]{}, nil
	}
	switch v := raw.(type) {
	case nil:
		return optional.Null[time.Time](), nil
	case time.Time:
		return optional.Of(v), nil
	case *time.Time:
		return optional.FromPtr(v), nil
	case string:
		for _, layout := range timestampLayouts {
			if t, err := time.ParseInLocation(layout, v, time.Local); err == nil {
				return optional.Of(t), nil
			}
		}
	}
	return optional.Value[time.Time]{}, Newf(key, KindInvalidType, "%s", message)
}

func (f Fields) id(key, message string) (optional.Value[int64], error) {
	raw, ok := f[key]
	if !ok {
		return optional.Value[int64]{}, nil
	}
	bad := Newf(key, KindInvalidValue, "%s", message)
	switch v := raw.(type) {
	case nil:
		return optional.Null[int64](), nil
	case int:
		return optional.Of(int64(v)), nil
	case int32:
		return optional.Of(int64(v)), nil
	case int64:
		return optional.Of(v), nil
	case uint:
		if uint64(v) > math.MaxInt64 {
			return optional.Value[int64]{}, bad
		}
		return optional.Of(int64(v)), nil
	case uint32:
		return optional.Of(int64(v)), nil
	case uint64:
		if v > math.MaxInt64 {
			return optional.Value[int64]{}, bad
		}
		return optional.Of(int64(v)), nil
	case float64:
		if v != math.Trunc(v) || v > math.MaxInt64 || v < math.MinInt64 {
			return optional.Value[int64]{}, bad
		}
		return optional.Of(int64(v)), nil
	}
	return optional.Value[int64]{}, bad
}

func asString(raw any) (string, bool) {
	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.String {
		return "", false
	}
	return rv.String(), true
}
