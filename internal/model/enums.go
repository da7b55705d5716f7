package model

import "strings"

// TaskState is the progress of a task.
type TaskState string

const (
	StatePending    TaskState = "Pending"
	StateInProgress TaskState = "In progress"
	StateCompleted  TaskState = "Completed"
)

var taskStates = []enumEntry[TaskState]{
	{name: "PENDING", value: StatePending},
	{name: "IN_PROGRESS", value: StateInProgress},
	{name: "COMPLETED", value: StateCompleted},
}

// ParseTaskState resolves s case-insensitively against the state names and
// display values.
func ParseTaskState(s string) (TaskState, bool) {
	return parseEnum(taskStates, s)
}

// TaskStateValues lists the permitted display values.
func TaskStateValues() []string {
	return enumValues(taskStates)
}

// TaskPriority orders tasks by urgency.
type TaskPriority string

const (
	PriorityHigh   TaskPriority = "High"
	PriorityMedium TaskPriority = "Medium"
	PriorityLow    TaskPriority = "Low"
)

var taskPriorities = []enumEntry[TaskPriority]{
	{name: "HIGH", value: PriorityHigh},
	{name: "MEDIUM", value: PriorityMedium},
	{name: "LOW", value: PriorityLow},
}

func ParseTaskPriority(s string) (TaskPriority, bool) {
	return parseEnum(taskPriorities, s)
}

func TaskPriorityValues() []string {
	return enumValues(taskPriorities)
}

// TaskFrequency is how often a recurring task repeats.
type TaskFrequency string

const (
	FrequencyDaily   TaskFrequency = "Daily"
	FrequencyWeekly  TaskFrequency = "Weekly"
	FrequencyMonthly TaskFrequency = "Monthly"
)

var taskFrequencies = []enumEntry[TaskFrequency]{
	{name: "DAILY", value: FrequencyDaily},
	{name: "WEEKLY", value: FrequencyWeekly},
	{name: "MONTHLY", value: FrequencyMonthly},
}

func ParseTaskFrequency(s string) (TaskFrequency, bool) {
	return parseEnum(taskFrequencies, s)
}

func TaskFrequencyValues() []string {
	return enumValues(taskFrequencies)
}

type enumEntry[T ~string] struct {
	name  string
	value T
}

func parseEnum[T ~string](entries []enumEntry[T], s string) (T, bool) {
	key := normalizeEnumKey(s)
	if key == "" {
		return "", false
	}
	for _, e := range entries {
		if key == normalizeEnumKey(e.name) || key == normalizeEnumKey(string(e.value)) {
			return e.value, true
		}
	}
	return "", false
}

func enumValues[T ~string](entries []enumEntry[T]) []string {
	values := make([]string, 0, len(entries))
	for _, e := range entries {
		values = append(values, string(e.value))
	}
	return values
}

// normalizeEnumKey folds case and treats spaces, dashes and underscores alike,
// so "In progress", "IN_PROGRESS" and "in-progress" compare equal.
func normalizeEnumKey(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, s)
}
