package repository

import "errors"

var (
	ErrFailedToInsert = errors.New("failed to insert record")
	ErrFailedToList   = errors.New("failed to list records")
	ErrFailedToUpdate = errors.New("failed to update record")
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateGoal  = errors.New("goal with this name already exists")
)
