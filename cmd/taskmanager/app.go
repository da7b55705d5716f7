package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"task-manager/internal/config"
	"task-manager/internal/logging"
	"task-manager/internal/repository"
	"task-manager/internal/service"
)

// app holds the wiring shared by every command.
type app struct {
	cfg config.Config
	log zerolog.Logger
	db  *gorm.DB

	users         *service.UserService
	categories    *service.CategoryService
	tasks         *service.TaskService
	notifications *service.NotificationService
}

// open loads configuration, applies flag overrides and connects the store.
func (a *app) open(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.DatabaseURL, _ = flags.GetString("db")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-pretty") {
		cfg.LogPretty, _ = flags.GetBool("log-pretty")
	}
	a.cfg = cfg
	a.log = logging.New(cfg.LogLevel, cfg.LogPretty)

	db, err := repository.NewDB(cfg.DatabaseURL, logging.GormLogger(a.log))
	if err != nil {
		return fmt.Errorf("db: %w", err)
	}
	a.db = db

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	a.users = service.NewUserService(userRepo, a.log)
	a.categories = service.NewCategoryService(categoryRepo, a.log)
	a.tasks = service.NewTaskService(taskRepo, userRepo, categoryRepo, a.log)
	a.notifications = service.NewNotificationService(notificationRepo, taskRepo, a.log)

	a.log.Debug().Str("db", cfg.DatabaseURL).Msg("store opened")
	return nil
}

// close releases the store; calling it again is a no-op.
func (a *app) close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	a.db = nil
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
