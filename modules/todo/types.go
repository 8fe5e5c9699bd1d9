package todo

import (
	"context"

	"github.com/example/todo-folders-demo/modules/folder"
	"github.com/example/todo-folders-demo/modules/task"
)

// Entity kind discriminators.
const (
	KindTask   = "task"
	KindFolder = "folder"
)

// CreateEntityRequest creates either a task or a folder, selected by the
// Type discriminator. Folder-typed requests take their name from Title and
// ignore the task-specific fields.
type CreateEntityRequest struct {
	Type     string  `json:"type"`
	Title    string  `json:"title"`
	Status   string  `json:"status,omitempty"`
	DueDate  string  `json:"due_date,omitempty"`
	FolderID *string `json:"folder_id,omitempty"`
	UserID   string  `json:"user_id"`
}

// EntityResponse is a tagged union over the two record kinds. Exactly one
// of Task and Folder is set, matching Kind.
type EntityResponse struct {
	Kind   string                 `json:"kind"`
	Task   *task.TaskResponse     `json:"task,omitempty"`
	Folder *folder.FolderResponse `json:"folder,omitempty"`
}

// GetEntityRequest is the request for the polymorphic lookup.
type GetEntityRequest struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
}

// UpdateEntityRequest is a patch applied to whichever record the id
// resolves to: title/status for a task, title-as-name for a folder.
type UpdateEntityRequest struct {
	ID     string  `json:"id"`
	UserID string  `json:"user_id"`
	Title  *string `json:"title,omitempty"`
	Status *string `json:"status,omitempty"`
}

// DeleteEntityRequest is the request for the polymorphic delete. TypeHint
// is task, folder, or empty for ordered task-then-folder dispatch.
type DeleteEntityRequest struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	TypeHint string `json:"type_hint,omitempty"`
}

// DeleteEntityResponse confirms a delete and reports what was removed.
type DeleteEntityResponse struct {
	Kind         string `json:"kind"`
	Message      string `json:"message"`
	TasksRemoved int64  `json:"tasks_removed,omitempty"`
}

// ListAllRequest is the request for listing everything a user owns.
type ListAllRequest struct {
	UserID string `json:"user_id"`
}

// ListAllResponse contains all tasks and folders of a user.
type ListAllResponse struct {
	Tasks   []task.TaskResponse     `json:"tasks"`
	Folders []folder.FolderResponse `json:"folders"`
}

// TodoPort defines the interface the transport layer uses to reach the
// orchestrator services.
type TodoPort interface {
	CreateEntity(ctx context.Context, req *CreateEntityRequest) (*EntityResponse, error)
	GetByID(ctx context.Context, userID, id string) (*EntityResponse, error)
	UpdateByID(ctx context.Context, req *UpdateEntityRequest) (*EntityResponse, error)
	DeleteByID(ctx context.Context, req *DeleteEntityRequest) (*DeleteEntityResponse, error)
	ListAll(ctx context.Context, userID string) (*ListAllResponse, error)
	ListByFolder(ctx context.Context, userID, folderID string) (*task.ListTasksResponse, error)
	ListUnfiled(ctx context.Context, userID string) (*task.ListTasksResponse, error)
}
