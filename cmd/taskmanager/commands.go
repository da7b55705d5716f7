package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"task-manager/internal/service"
	"task-manager/internal/validation"
)

const commandTimeout = 60 * time.Second

// execute runs the command tree for args and closes the store however the
// command ends. out, when set, receives both output and errors.
func execute(a *app, args []string, out io.Writer) (err error) {
	root := newRootCommand(a)
	root.SetArgs(args)
	if out != nil {
		root.SetOut(out)
		root.SetErr(out)
	}

	defer func() {
		if cerr := a.close(); err == nil {
			err = cerr
		}
	}()
	return root.Execute()
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "taskmanager",
		Short: "Validated task, category and reminder store",
		Long: `taskmanager keeps users, tasks, categories and reminders in a local SQLite
store. Every write is validated before it is persisted.

EXAMPLES:
  taskmanager seed                                     # fill the store with demo data
  taskmanager create user name=Ann email=ann@x.com password=secret1
  taskmanager create task title="Pay rent" user_id=1 priority=high
  taskmanager update task 3 recurring=true frequency=weekly
  taskmanager link 3 2                                 # add category 2 to task 3
  taskmanager run --interval 30s                       # deliver due reminders

CONFIGURATION:
  DATABASE_URL        SQLite file (default: data/tasks.db)
  LOG_LEVEL           trace, debug, info, warn, error (default: info)
  LOG_PRETTY          human readable logs (default: true)
  DISPATCH_INTERVAL   reminder polling interval (default: 1m)
  TELEGRAM_TOKEN      bot token; reminders go to the log when unset
  TELEGRAM_CHAT_ID    chat receiving reminders`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.String("db", "", "SQLite database path (overrides DATABASE_URL)")
	flags.String("log-level", "", "log level (overrides LOG_LEVEL)")
	flags.Bool("log-pretty", true, "human readable logs (overrides LOG_PRETTY)")

	root.AddCommand(
		newSeedCommand(a),
		newListCommand(a),
		newGetCommand(a),
		newCreateCommand(a),
		newUpdateCommand(a),
		newDeleteCommand(a),
		newLinkCommand(a, true),
		newLinkCommand(a, false),
		newRunCommand(a),
	)
	return root
}

func newSeedCommand(a *app) *cobra.Command {
	opts := service.DefaultSeedOptions()
	var seed int64

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the store with simulated data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			if seed != 0 {
				opts.Rand = rand.New(rand.NewSource(seed))
			}
			seeder := service.NewSeeder(a.users, a.categories, a.tasks, a.notifications, a.log)
			report, err := seeder.Seed(ctx, opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "users: %d, categories: %d, tasks: %d, links: %d, notifications: %d, rejected: %d\n",
				report.Users, report.Categories, report.Tasks, report.Links, report.Notifications, report.Rejected)
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.Users, "users", opts.Users, "users to create")
	cmd.Flags().IntVar(&opts.Categories, "categories", opts.Categories, "categories to create")
	cmd.Flags().IntVar(&opts.TasksPerUser, "tasks-per-user", opts.TasksPerUser, "tasks per user")
	cmd.Flags().IntVar(&opts.NotificationsPerTask, "notifications-per-task", opts.NotificationsPerTask, "reminders per task")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed for reproducible data")
	return cmd
}

func newListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print users with their tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			users, err := a.users.ListWithTasks(ctx)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "USER\tTASK\tTITLE\tSTATE\tPRIORITY\tDUE")
			for _, u := range users {
				if len(u.Tasks) == 0 {
					fmt.Fprintf(w, "%d %s\t-\t\t\t\t\n", u.ID, u.Name)
					continue
				}
				for _, t := range u.Tasks {
					due := "-"
					if t.DueDate != nil {
						due = t.DueDate.Format("2006-01-02")
					}
					fmt.Fprintf(w, "%d %s\t%d\t%s\t%s\t%s\t%s\n", u.ID, u.Name, t.ID, t.Title, t.State, t.Priority, due)
				}
			}
			return w.Flush()
		},
	}
}

func newGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <user|category|task|notification> [id]",
		Short: "Show one entity, or all of a kind",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			ops, err := a.entity(args[0])
			if err != nil {
				return err
			}
			if len(args) == 1 {
				all, err := ops.getAll(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), all)
			}
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			found, err := ops.get(ctx, id)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), args[0], id, found)
		},
	}
}

func newCreateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "create <user|category|task|notification> key=value...",
		Short: "Validate and store a new entity",
		Long: `create validates the key=value assignments and stores the entity.

Values are text unless the key is recurring or ends in _id. The bare value
null clears the field; quote it to store the text instead:

  taskmanager update task 3 description=null          # clears the description
  taskmanager update task 3 'description="null"'      # stores the text null`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			ops, err := a.entity(args[0])
			if err != nil {
				return err
			}
			fields, err := parseAssignments(args[1:])
			if err != nil {
				return err
			}
			created, err := ops.create(ctx, fields)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), created)
		},
	}
}

func newUpdateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "update <user|category|task|notification> <id> key=value...",
		Short: "Validate and apply a partial update; key=null clears a field",
		Long: `update validates the supplied key=value assignments and applies them,
leaving every other field unchanged.

Values are text unless the key is recurring or ends in _id. The bare value
null clears the field; quote it to store the text instead:

  taskmanager update task 3 description=null          # clears the description
  taskmanager update task 3 'description="null"'      # stores the text null`,
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			ops, err := a.entity(args[0])
			if err != nil {
				return err
			}
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			fields, err := parseAssignments(args[2:])
			if err != nil {
				return err
			}
			updated, err := ops.update(ctx, id, fields)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), args[0], id, updated)
		},
	}
}

func newDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <user|category|task|notification> <id>",
		Short: "Delete an entity and its dependents",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			ops, err := a.entity(args[0])
			if err != nil {
				return err
			}
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			deleted, err := ops.delete(ctx, id)
			if err != nil {
				return err
			}
			if !deleted {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %d not found\n", args[0], id)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d deleted\n", args[0], id)
			return nil
		},
	}
}

func newLinkCommand(a *app, add bool) *cobra.Command {
	use, short := "link <task-id> <category-id>", "Add a category to a task"
	if !add {
		use, short = "unlink <task-id> <category-id>", "Remove a category from a task"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			taskID, err := parseID(args[0])
			if err != nil {
				return err
			}
			categoryID, err := parseID(args[1])
			if err != nil {
				return err
			}

			change := a.tasks.AddCategory
			if !add {
				change = a.tasks.RemoveCategory
			}
			task, err := change(ctx, taskID, categoryID)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), "task", taskID, task)
		},
	}
}

// parseAssignments turns key=value arguments into form fields. A bare null
// clears a field and a double-quoted value is always literal text. Ids and the
// recurring flag are converted to their types so the decoders can type-check
// them.
func parseAssignments(args []string) (validation.Fields, error) {
	fields := validation.Fields{}
	for _, arg := range args {
		key, raw, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("expected key=value, got %q", arg)
		}

		if text, ok := quoted(raw); ok {
			fields[key] = text
			continue
		}

		switch {
		case raw == "null":
			fields[key] = nil
		case key == validation.FieldRecurring:
			b, err := strconv.ParseBool(raw)
			if err != nil {
				fields[key] = raw
				continue
			}
			fields[key] = b
		case strings.HasSuffix(key, "_id"):
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				fields[key] = raw
				continue
			}
			fields[key] = n
		default:
			fields[key] = raw
		}
	}
	return fields, nil
}

func quoted(raw string) (string, bool) {
	if len(raw) < 2 || raw[0] != '"' || raw[len(raw)-1] != '"' {
		return "", false
	}
	text, err := strconv.Unquote(raw)
	return text, err == nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("id must be an integer, got %q", raw)
	}
	return id, nil
}

func printResult(w io.Writer, entity string, id int64, v any) error {
	if isNil(v) {
		_, err := fmt.Fprintf(w, "%s %d not found\n", entity, id)
		return err
	}
	return printJSON(w, v)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
