package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/spf13/cobra"

	"task-manager/internal/notify"
	"task-manager/internal/service"
)

const (
	dispatchTimeout = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

func newRunCommand(a *app) *cobra.Command {
	var (
		interval time.Duration
		dailyAt  string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Deliver due reminders until interrupted",
		Long: `run polls for undelivered reminders whose send date has passed and sends
them to the configured Telegram chat, or to the log when no chat is set.
With --daily-at the poll runs once a day at the given HH:MM instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("interval") {
				a.cfg.DispatchInterval = interval
			}

			var sender service.Sender = notify.NewLogSender(a.log)
			if a.cfg.TelegramEnabled() {
				telegram, err := notify.NewTelegramSender(a.cfg.TelegramToken, a.cfg.TelegramChatID, a.log)
				if err != nil {
					return err
				}
				sender = telegram
			}

			dispatcher := service.NewDispatcher(a.notifications, a.tasks, sender, a.log)
			dispatch := func() {
				ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
				defer cancel()
				if _, err := dispatcher.Dispatch(ctx, time.Now()); err != nil && !errors.Is(err, context.Canceled) {
					a.log.Error().Err(err).Msg("dispatch reminders")
				}
			}

			scheduler := service.NewSchedulerService(time.Local, a.log)
			if dailyAt != "" {
				if _, err := scheduler.ScheduleDaily(dailyAt, dispatch); err != nil {
					return err
				}
				a.log.Info().Str("at", dailyAt).Msg("reminder dispatcher started")
			} else {
				if _, err := scheduler.ScheduleInterval(a.cfg.DispatchInterval, dispatch); err != nil {
					return err
				}
				a.log.Info().Dur("interval", a.cfg.DispatchInterval).Msg("reminder dispatcher started")
			}

			dispatch()
			scheduler.Start()

			wait := gfshutdown.GracefulShutdown(
				context.Background(),
				shutdownTimeout,
				map[string]gfshutdown.Operation{
					"scheduler": func(ctx context.Context) error {
						return scheduler.Shutdown(ctx)
					},
				},
			)
			if err := shutdownResult(<-wait); err != nil {
				return err
			}

			a.log.Info().Msg("shutdown complete")
			return nil
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 0, "polling interval (overrides DISPATCH_INTERVAL)")
	cmd.Flags().StringVar(&dailyAt, "daily-at", "", "dispatch once a day at HH:MM instead of polling")
	return cmd
}

// shutdownResult turns the graceful shutdown exit code into the command error,
// leaving the process exit to main once the store is closed.
func shutdownResult(exitCode int) error {
	if exitCode != 0 {
		return fmt.Errorf("shutdown incomplete: exit code %d", exitCode)
	}
	return nil
}
