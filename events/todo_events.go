package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
)

// TaskCreatedEvent is emitted when a new task is created.
type TaskCreatedEvent struct {
	TaskID    string    `json:"task_id"`
	Title     string    `json:"title"`
	FolderID  *string   `json:"folder_id,omitempty"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskCreatedV1 is the typed event definition for task creation.
// Subject: events.task.v1.task-created
var TaskCreatedV1 = helper.EventDefinition[TaskCreatedEvent](
	"task", "TaskCreated", "v1",
)

// TaskCompletedEvent is emitted when a task transitions to completed.
type TaskCompletedEvent struct {
	TaskID      string    `json:"task_id"`
	UserID      string    `json:"user_id"`
	CompletedAt time.Time `json:"completed_at"`
}

// TaskCompletedV1 is the typed event definition for task completion.
// Subject: events.task.v1.task-completed
var TaskCompletedV1 = helper.EventDefinition[TaskCompletedEvent](
	"task", "TaskCompleted", "v1",
)

// FolderDeletedEvent is emitted after a folder cascade delete.
type FolderDeletedEvent struct {
	FolderID     string    `json:"folder_id"`
	UserID       string    `json:"user_id"`
	TasksRemoved int64     `json:"tasks_removed"`
	DeletedAt    time.Time `json:"deleted_at"`
}

// FolderDeletedV1 is the typed event definition for folder cascade deletion.
// Subject: events.folder.v1.folder-deleted
var FolderDeletedV1 = helper.EventDefinition[FolderDeletedEvent](
	"folder", "FolderDeleted", "v1",
)
