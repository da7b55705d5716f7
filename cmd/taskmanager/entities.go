package main

import (
	"context"
	"fmt"
	"reflect"

	"task-manager/internal/validation"
)

// entityOps adapts one service to the generic get/create/update/delete
// commands.
type entityOps struct {
	create func(ctx context.Context, f validation.Fields) (any, error)
	get    func(ctx context.Context, id int64) (any, error)
	getAll func(ctx context.Context) (any, error)
	update func(ctx context.Context, id int64, f validation.Fields) (any, error)
	delete func(ctx context.Context, id int64) (bool, error)
}

func (a *app) entity(name string) (entityOps, error) {
	switch name {
	case "user":
		return entityOps{
			create: func(ctx context.Context, f validation.Fields) (any, error) {
				in, err := validation.DecodeUser(f)
				if err != nil {
					return nil, err
				}
				return a.users.Create(ctx, in)
			},
			get:    func(ctx context.Context, id int64) (any, error) { return a.users.GetByID(ctx, id) },
			getAll: func(ctx context.Context) (any, error) { return a.users.GetAll(ctx) },
			update: func(ctx context.Context, id int64, f validation.Fields) (any, error) {
				in, err := validation.DecodeUser(f)
				if err != nil {
					return nil, err
				}
				return a.users.Update(ctx, id, in)
			},
			delete: a.users.Delete,
		}, nil
	case "category":
		return entityOps{
			create: func(ctx context.Context, f validation.Fields) (any, error) {
				in, err := validation.DecodeCategory(f)
				if err != nil {
					return nil, err
				}
				return a.categories.Create(ctx, in)
			},
			get:    func(ctx context.Context, id int64) (any, error) { return a.categories.GetByID(ctx, id) },
			getAll: func(ctx context.Context) (any, error) { return a.categories.GetAll(ctx) },
			update: func(ctx context.Context, id int64, f validation.Fields) (any, error) {
				in, err := validation.DecodeCategory(f)
				if err != nil {
					return nil, err
				}
				return a.categories.Update(ctx, id, in)
			},
			delete: a.categories.Delete,
		}, nil
	case "task":
		return entityOps{
			create: func(ctx context.Context, f validation.Fields) (any, error) {
				in, err := validation.DecodeTask(f)
				if err != nil {
					return nil, err
				}
				return a.tasks.Create(ctx, in)
			},
			get:    func(ctx context.Context, id int64) (any, error) { return a.tasks.GetByID(ctx, id) },
			getAll: func(ctx context.Context) (any, error) { return a.tasks.GetAll(ctx) },
			update: func(ctx context.Context, id int64, f validation.Fields) (any, error) {
				in, err := validation.DecodeTask(f)
				if err != nil {
					return nil, err
				}
				return a.tasks.Update(ctx, id, in)
			},
			delete: a.tasks.Delete,
		}, nil
	case "notification":
		return entityOps{
			create: func(ctx context.Context, f validation.Fields) (any, error) {
				in, err := validation.DecodeNotification(f)
				if err != nil {
					return nil, err
				}
				return a.notifications.Create(ctx, in)
			},
			get:    func(ctx context.Context, id int64) (any, error) { return a.notifications.GetByID(ctx, id) },
			getAll: func(ctx context.Context) (any, error) { return a.notifications.GetAll(ctx) },
			update: func(ctx context.Context, id int64, f validation.Fields) (any, error) {
				in, err := validation.DecodeNotification(f)
				if err != nil {
					return nil, err
				}
				return a.notifications.Update(ctx, id, in)
			},
			delete: a.notifications.Delete,
		}, nil
	default:
		return entityOps{}, fmt.Errorf("unknown entity %q, expected user, category, task or notification", name)
	}
}

// isNil reports whether v is nil or a typed nil pointer.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Ptr && rv.IsNil()
}
