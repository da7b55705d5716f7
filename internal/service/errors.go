package service

import (
	"errors"

	"task-manager/internal/repository"
)

// absentOnNotFound turns the repository's not-found sentinel into an absent
// result.
func absentOnNotFound[T any](entity *T, err error) (*T, error) {
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entity, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
