package task

import (
	"context"
	"time"
)

// CreateTaskRequest is the request for creating a task. DueDate is an
// optional YYYY-MM-DD date; Status defaults to pending when empty.
// FolderID is assumed to have been checked for existence and ownership by
// the caller before the request is made.
type CreateTaskRequest struct {
	Title    string  `json:"title"`
	Status   string  `json:"status,omitempty"`
	DueDate  string  `json:"due_date,omitempty"`
	FolderID *string `json:"folder_id,omitempty"`
	UserID   string  `json:"user_id"`
}

// TaskResponse represents a task in responses.
type TaskResponse struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Status    string     `json:"status"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	FolderID  *string    `json:"folder_id,omitempty"`
	UserID    string     `json:"user_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// GetTaskRequest is the request for getting a task.
type GetTaskRequest struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
}

// GetTaskResponse reports whether the task was found. Absence is carried in
// the Found flag rather than an error so callers probing across entity kinds
// can fall through without parsing error strings.
type GetTaskResponse struct {
	Found bool         `json:"found"`
	Task  TaskResponse `json:"task,omitempty"`
}

// UpdateTaskRequest is the request for a partial task update. Only fields
// present in the patch are applied.
type UpdateTaskRequest struct {
	ID     string  `json:"id"`
	UserID string  `json:"user_id"`
	Title  *string `json:"title,omitempty"`
	Status *string `json:"status,omitempty"`
}

// UpdateTaskResponse reports whether the task was found and updated.
type UpdateTaskResponse struct {
	Found bool         `json:"found"`
	Task  TaskResponse `json:"task,omitempty"`
}

// DeleteTaskRequest is the request for deleting a task.
type DeleteTaskRequest struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
}

// DeleteTaskResponse reports whether a task was deleted. FolderID carries
// the folder the task was filed under, if any, so the caller can drop the
// membership cache entry.
type DeleteTaskResponse struct {
	Deleted  bool    `json:"deleted"`
	FolderID *string `json:"folder_id,omitempty"`
}

// FolderScopedRequest addresses every task of a user under one folder.
type FolderScopedRequest struct {
	FolderID string `json:"folder_id"`
	UserID   string `json:"user_id"`
}

// FolderScopedResponse reports how many tasks were affected.
type FolderScopedResponse struct {
	Affected int64 `json:"affected"`
}

// ListTasksRequest is the request for listing a user's tasks.
type ListTasksRequest struct {
	UserID string `json:"user_id"`
}

// ListTasksResponse is the response containing a list of tasks.
type ListTasksResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Total int            `json:"total"`
}

// TaskPort defines the interface other modules use to reach task services.
type TaskPort interface {
	Create(ctx context.Context, req *CreateTaskRequest) (*TaskResponse, error)
	Get(ctx context.Context, userID, taskID string) (*GetTaskResponse, error)
	Update(ctx context.Context, req *UpdateTaskRequest) (*UpdateTaskResponse, error)
	Delete(ctx context.Context, userID, taskID string) (*DeleteTaskResponse, error)
	DeleteByFolder(ctx context.Context, userID, folderID string) (int64, error)
	ResetByFolder(ctx context.Context, userID, folderID string) (int64, error)
	List(ctx context.Context, userID string) (*ListTasksResponse, error)
	ListByFolder(ctx context.Context, userID, folderID string) (*ListTasksResponse, error)
	ListUnfiled(ctx context.Context, userID string) (*ListTasksResponse, error)
}
