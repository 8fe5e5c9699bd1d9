package folder

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/todo-folders-demo/modules/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// folderAdapter wraps ServiceContainer for type-safe cross-module communication.
type folderAdapter struct {
	container mono.ServiceContainer
}

// NewFolderAdapter creates a new adapter for folder services.
// container is the ServiceContainer from the folder module received via
// SetDependencyServiceContainer.
func NewFolderAdapter(container mono.ServiceContainer) FolderPort {
	if container == nil {
		panic("folder adapter requires non-nil ServiceContainer")
	}
	return &folderAdapter{container: container}
}

// Create creates a new folder via the create service.
func (a *folderAdapter) Create(ctx context.Context, userID, name string) (*FolderResponse, error) {
	req := CreateFolderRequest{Name: name, UserID: userID}
	var resp FolderResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "create", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("create service call failed: %w", err)
	}
	return &resp, nil
}

// Get looks up a folder via the get service.
func (a *folderAdapter) Get(ctx context.Context, userID, folderID string) (*GetFolderResponse, error) {
	req := GetFolderRequest{ID: folderID, UserID: userID}
	var resp GetFolderResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "get", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("get service call failed: %w", err)
	}
	return &resp, nil
}

// GetWithTasks fetches a folder and its resolved tasks via the get-with-tasks service.
func (a *folderAdapter) GetWithTasks(ctx context.Context, userID, folderID string) (*FolderWithTasksResponse, error) {
	req := GetFolderRequest{ID: folderID, UserID: userID}
	var resp FolderWithTasksResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "get-with-tasks", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("get-with-tasks service call failed: %w", err)
	}
	return &resp, nil
}

// Rename changes a folder's name via the rename service.
func (a *folderAdapter) Rename(ctx context.Context, userID, folderID, name string) (*RenameFolderResponse, error) {
	req := RenameFolderRequest{ID: folderID, UserID: userID, Name: name}
	var resp RenameFolderResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "rename", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("rename service call failed: %w", err)
	}
	return &resp, nil
}

// AddTask creates a task under a folder via the add-task service.
func (a *folderAdapter) AddTask(ctx context.Context, req *AddTaskRequest) (*task.TaskResponse, error) {
	var resp task.TaskResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "add-task", json.Marshal, json.Unmarshal, req, &resp,
	); err != nil {
		return nil, fmt.Errorf("add-task service call failed: %w", err)
	}
	return &resp, nil
}

// RemoveTaskRef drops a task id from a folder's membership cache via the
// remove-task-ref service.
func (a *folderAdapter) RemoveTaskRef(ctx context.Context, userID, folderID, taskID string) error {
	req := RemoveTaskRefRequest{FolderID: folderID, UserID: userID, TaskID: taskID}
	var resp RemoveTaskRefResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "remove-task-ref", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return fmt.Errorf("remove-task-ref service call failed: %w", err)
	}
	return nil
}

// ResetProgress resets every task under a folder via the reset-progress service.
func (a *folderAdapter) ResetProgress(ctx context.Context, userID, folderID string) (*ProgressResponse, error) {
	req := ProgressRequest{FolderID: folderID, UserID: userID}
	var resp ProgressResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "reset-progress", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("reset-progress service call failed: %w", err)
	}
	return &resp, nil
}

// ClearProgress deletes every task under a folder via the clear-progress service.
func (a *folderAdapter) ClearProgress(ctx context.Context, userID, folderID string) (*ProgressResponse, error) {
	req := ProgressRequest{FolderID: folderID, UserID: userID}
	var resp ProgressResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "clear-progress", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("clear-progress service call failed: %w", err)
	}
	return &resp, nil
}

// DeleteCascade removes a folder and its tasks via the delete-cascade service.
func (a *folderAdapter) DeleteCascade(ctx context.Context, userID, folderID string) (*DeleteFolderResponse, error) {
	req := DeleteFolderRequest{ID: folderID, UserID: userID}
	var resp DeleteFolderResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "delete-cascade", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("delete-cascade service call failed: %w", err)
	}
	return &resp, nil
}

// List returns every folder of the user via the list service.
func (a *folderAdapter) List(ctx context.Context, userID string) (*ListFoldersResponse, error) {
	req := ListFoldersRequest{UserID: userID}
	var resp ListFoldersResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "list", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("list service call failed: %w", err)
	}
	return &resp, nil
}
