package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-manager/internal/model"
	"task-manager/internal/validation"
)

func TestParseAssignments(t *testing.T) {
	fields, err := parseAssignments([]string{
		"title=Pay rent",
		"user_id=3",
		"recurring=true",
		"frequency=weekly",
		"description=null",
		"due_date=2026-05-01",
	})
	require.NoError(t, err)

	assert.Equal(t, validation.Fields{
		"title":       "Pay rent",
		"user_id":     int64(3),
		"recurring":   true,
		"frequency":   "weekly",
		"description": nil,
		"due_date":    "2026-05-01",
	}, fields)

	fields, err = parseAssignments([]string{"user_id=abc", "recurring=maybe"})
	require.NoError(t, err)
	assert.Equal(t, "abc", fields["user_id"], "left as text so the decoder reports the type error")
	assert.Equal(t, "maybe", fields["recurring"])

	fields, err = parseAssignments([]string{`title="null"`, `description=""`, `user_id="7"`, `recurring="true"`, `frequency="week`})
	require.NoError(t, err)
	assert.Equal(t, validation.Fields{
		"title":       "null",
		"description": "",
		"user_id":     "7",
		"recurring":   "true",
		"frequency":   `"week`,
	}, fields, "quoted values stay literal text")

	_, err = parseAssignments([]string{"title"})
	assert.Error(t, err)
}

func TestIsNil(t *testing.T) {
	var task *model.Task
	assert.True(t, isNil(nil))
	assert.True(t, isNil(task))
	assert.False(t, isNil(&model.Task{}))
}

func runCLI(t *testing.T, db string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DISPATCH_INTERVAL", "")
	t.Setenv("TELEGRAM_TOKEN", "")
	t.Setenv("TELEGRAM_CHAT_ID", "")

	var out bytes.Buffer
	err := execute(&app{}, append(args, "--db", db, "--log-pretty=false"), &out)
	return out.String(), err
}

func TestCLIStoresQuotedNullAsText(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")

	_, err := runCLI(t, db, "create", "user", "name=Ann", "email=ann@x.com", "password=secret1")
	require.NoError(t, err)
	_, err = runCLI(t, db, "create", "task", `title="null"`, "user_id=1", "description=keep")
	require.NoError(t, err)

	out, err := runCLI(t, db, "update", "task", "1", "description=null")
	require.NoError(t, err)
	assert.Contains(t, out, `"Title": "null"`)
	assert.Contains(t, out, `"Description": null`)
}

func TestExecuteClosesStoreWhenCommandFails(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("DATABASE_URL", "")
	db := filepath.Join(t.TempDir(), "cli.db")

	a := &app{}
	err := execute(a, []string{"create", "user", "name=Ann", "--db", db, "--log-pretty=false"}, &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, validation.IsValidationError(err))
	require.NotNil(t, a.users, "the store was opened")
	assert.Nil(t, a.db, "the store is closed after a failed command")

	assert.NoError(t, a.close(), "closing twice is harmless")
}

func TestShutdownResult(t *testing.T) {
	assert.NoError(t, shutdownResult(0))
	assert.EqualError(t, shutdownResult(1), "shutdown incomplete: exit code 1")
}

func TestCLICreateLinkAndDelete(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")

	_, err := runCLI(t, db, "create", "user", "name=Ann", "email=ann@x.com", "password=secret1")
	require.NoError(t, err)

	_, err = runCLI(t, db, "create", "user", "name=Ann", "email=ann@x.com", "password=secret1")
	require.Error(t, err)
	assert.True(t, validation.IsValidationError(err))
	assert.Equal(t, "a user with email ann@x.com already exists", err.Error())

	out, err := runCLI(t, db, "create", "task", "title=Report", "user_id=1", "priority=HIGH")
	require.NoError(t, err)
	assert.Contains(t, out, `"Priority": "High"`)
	assert.Contains(t, out, `"State": "Pending"`)

	_, err = runCLI(t, db, "create", "category", "name=Work")
	require.NoError(t, err)

	out, err = runCLI(t, db, "link", "1", "1")
	require.NoError(t, err)
	assert.Contains(t, out, `"Name": "Work"`)

	out, err = runCLI(t, db, "list")
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "Report"))

	out, err = runCLI(t, db, "get", "task", "99")
	require.NoError(t, err)
	assert.Equal(t, "task 99 not found\n", out)

	out, err = runCLI(t, db, "delete", "user", "1")
	require.NoError(t, err)
	assert.Equal(t, "user 1 deleted\n", out)

	out, err = runCLI(t, db, "get", "task", "1")
	require.NoError(t, err)
	assert.Equal(t, "task 1 not found\n", out)
}

func TestCLIRejectsUnknownEntity(t *testing.T) {
	_, err := runCLI(t, filepath.Join(t.TempDir(), "cli.db"), "get", "project")
	assert.ErrorContains(t, err, `unknown entity "project"`)
}

func TestCLISeed(t *testing.T) {
	out, err := runCLI(t, filepath.Join(t.TempDir(), "cli.db"), "seed", "--users", "2", "--categories", "1", "--tasks-per-user", "1", "--seed", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "users: 2, categories: 1, tasks: 2")
}
