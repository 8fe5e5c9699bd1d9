package folder

import (
	"context"
	"time"

	"github.com/example/todo-folders-demo/modules/task"
)

// CreateFolderRequest is the request for creating a folder.
type CreateFolderRequest struct {
	Name   string `json:"name"`
	UserID string `json:"user_id"`
}

// FolderResponse represents a folder in responses. TaskRefs is the
// denormalized membership cache described in the data model.
type FolderResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UserID    string    `json:"user_id"`
	TaskRefs  []string  `json:"task_refs"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GetFolderRequest is the request for getting a folder.
type GetFolderRequest struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
}

// GetFolderResponse reports whether the folder was found.
type GetFolderResponse struct {
	Found  bool           `json:"found"`
	Folder FolderResponse `json:"folder,omitempty"`
}

// FolderWithTasksResponse is a folder together with its resolved tasks.
type FolderWithTasksResponse struct {
	Folder FolderResponse      `json:"folder"`
	Tasks  []task.TaskResponse `json:"tasks"`
	Total  int                 `json:"total"`
}

// RenameFolderRequest is the request for renaming a folder.
type RenameFolderRequest struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

// RenameFolderResponse reports whether the folder was found and renamed.
type RenameFolderResponse struct {
	Found  bool           `json:"found"`
	Folder FolderResponse `json:"folder,omitempty"`
}

// AddTaskRequest is the request for creating a task directly under a folder.
type AddTaskRequest struct {
	FolderID string `json:"folder_id"`
	UserID   string `json:"user_id"`
	Title    string `json:"title"`
	DueDate  string `json:"due_date,omitempty"`
}

// RemoveTaskRefRequest is the request for dropping a task id from the
// folder's membership cache.
type RemoveTaskRefRequest struct {
	FolderID string `json:"folder_id"`
	UserID   string `json:"user_id"`
	TaskID   string `json:"task_id"`
}

// RemoveTaskRefResponse acknowledges a membership cache removal.
type RemoveTaskRefResponse struct {
	Removed bool `json:"removed"`
}

// ProgressRequest addresses every task under one folder.
type ProgressRequest struct {
	FolderID string `json:"folder_id"`
	UserID   string `json:"user_id"`
}

// ProgressResponse reports how many tasks a progress operation touched.
type ProgressResponse struct {
	Affected int64 `json:"affected"`
}

// DeleteFolderRequest is the request for cascade-deleting a folder.
type DeleteFolderRequest struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
}

// DeleteFolderResponse reports whether the folder row was deleted and how
// many child tasks were removed. Child tasks are removed even when the
// folder row itself turns out to be absent.
type DeleteFolderResponse struct {
	Deleted      bool  `json:"deleted"`
	TasksRemoved int64 `json:"tasks_removed"`
}

// ListFoldersRequest is the request for listing a user's folders.
type ListFoldersRequest struct {
	UserID string `json:"user_id"`
}

// ListFoldersResponse is the response containing a list of folders.
type ListFoldersResponse struct {
	Folders []FolderResponse `json:"folders"`
	Total   int              `json:"total"`
}

// FolderPort defines the interface other modules use to reach folder services.
type FolderPort interface {
	Create(ctx context.Context, userID, name string) (*FolderResponse, error)
	Get(ctx context.Context, userID, folderID string) (*GetFolderResponse, error)
	GetWithTasks(ctx context.Context, userID, folderID string) (*FolderWithTasksResponse, error)
	Rename(ctx context.Context, userID, folderID, name string) (*RenameFolderResponse, error)
	AddTask(ctx context.Context, req *AddTaskRequest) (*task.TaskResponse, error)
	RemoveTaskRef(ctx context.Context, userID, folderID, taskID string) error
	ResetProgress(ctx context.Context, userID, folderID string) (*ProgressResponse, error)
	ClearProgress(ctx context.Context, userID, folderID string) (*ProgressResponse, error)
	DeleteCascade(ctx context.Context, userID, folderID string) (*DeleteFolderResponse, error)
	List(ctx context.Context, userID string) (*ListFoldersResponse, error)
}
