package task

import "errors"

// Sentinel errors for task operations.
var (
	// ErrTaskNotFound is returned when the requested task does not exist
	// or belongs to another user.
	ErrTaskNotFound = errors.New("task not found")

	// ErrEmptyTitle is returned when the task title is missing or empty.
	ErrEmptyTitle = errors.New("title is required")

	// ErrInvalidStatus is returned when the status is not one of
	// pending, working or completed.
	ErrInvalidStatus = errors.New("invalid status value")

	// ErrInvalidDueDate is returned when the due date does not parse as
	// a calendar date.
	ErrInvalidDueDate = errors.New("invalid due date format, expected YYYY-MM-DD")
)
