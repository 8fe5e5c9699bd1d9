package task

import (
	"time"

	domain "github.com/example/todo-folders-demo/domain/todo"
)

// dueDateLayout is the wire format for due dates.
const dueDateLayout = "2006-01-02"

// parseStatus validates an incoming status value. An empty value defaults
// to pending.
func parseStatus(s string) (domain.Status, error) {
	if s == "" {
		return domain.StatusPending, nil
	}
	status := domain.Status(s)
	if !domain.ValidStatus(status) {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// parseDueDate validates an optional YYYY-MM-DD due date. An empty value
// means the task has no deadline.
func parseDueDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	due, err := time.Parse(dueDateLayout, s)
	if err != nil {
		return nil, ErrInvalidDueDate
	}
	return &due, nil
}
