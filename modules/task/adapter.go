package task

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// taskAdapter wraps ServiceContainer for type-safe cross-module communication.
type taskAdapter struct {
	container mono.ServiceContainer
}

// NewTaskAdapter creates a new adapter for task services.
// container is the ServiceContainer from the task module received via
// SetDependencyServiceContainer.
func NewTaskAdapter(container mono.ServiceContainer) TaskPort {
	if container == nil {
		panic("task adapter requires non-nil ServiceContainer")
	}
	return &taskAdapter{container: container}
}

// Create creates a new task via the create service.
func (a *taskAdapter) Create(ctx context.Context, req *CreateTaskRequest) (*TaskResponse, error) {
	var resp TaskResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "create", json.Marshal, json.Unmarshal, req, &resp,
	); err != nil {
		return nil, fmt.Errorf("create service call failed: %w", err)
	}
	return &resp, nil
}

// Get looks up a task via the get service.
func (a *taskAdapter) Get(ctx context.Context, userID, taskID string) (*GetTaskResponse, error) {
	req := GetTaskRequest{ID: taskID, UserID: userID}
	var resp GetTaskResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "get", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("get service call failed: %w", err)
	}
	return &resp, nil
}

// Update applies a partial task update via the update service.
func (a *taskAdapter) Update(ctx context.Context, req *UpdateTaskRequest) (*UpdateTaskResponse, error) {
	var resp UpdateTaskResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "update", json.Marshal, json.Unmarshal, req, &resp,
	); err != nil {
		return nil, fmt.Errorf("update service call failed: %w", err)
	}
	return &resp, nil
}

// Delete removes a task via the delete service.
func (a *taskAdapter) Delete(ctx context.Context, userID, taskID string) (*DeleteTaskResponse, error) {
	req := DeleteTaskRequest{ID: taskID, UserID: userID}
	var resp DeleteTaskResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "delete", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("delete service call failed: %w", err)
	}
	return &resp, nil
}

// DeleteByFolder removes every task under a folder via the delete-by-folder service.
func (a *taskAdapter) DeleteByFolder(ctx context.Context, userID, folderID string) (int64, error) {
	req := FolderScopedRequest{FolderID: folderID, UserID: userID}
	var resp FolderScopedResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "delete-by-folder", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return 0, fmt.Errorf("delete-by-folder service call failed: %w", err)
	}
	return resp.Affected, nil
}

// ResetByFolder resets every task under a folder via the reset-by-folder service.
func (a *taskAdapter) ResetByFolder(ctx context.Context, userID, folderID string) (int64, error) {
	req := FolderScopedRequest{FolderID: folderID, UserID: userID}
	var resp FolderScopedResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "reset-by-folder", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return 0, fmt.Errorf("reset-by-folder service call failed: %w", err)
	}
	return resp.Affected, nil
}

// List returns every task of the user via the list service.
func (a *taskAdapter) List(ctx context.Context, userID string) (*ListTasksResponse, error) {
	req := ListTasksRequest{UserID: userID}
	var resp ListTasksResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "list", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("list service call failed: %w", err)
	}
	return &resp, nil
}

// ListByFolder returns the user's tasks under a folder via the list-by-folder service.
func (a *taskAdapter) ListByFolder(ctx context.Context, userID, folderID string) (*ListTasksResponse, error) {
	req := FolderScopedRequest{FolderID: folderID, UserID: userID}
	var resp ListTasksResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "list-by-folder", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("list-by-folder service call failed: %w", err)
	}
	return &resp, nil
}

// ListUnfiled returns the user's unfiled tasks via the list-unfiled service.
func (a *taskAdapter) ListUnfiled(ctx context.Context, userID string) (*ListTasksResponse, error) {
	req := ListTasksRequest{UserID: userID}
	var resp ListTasksResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "list-unfiled", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("list-unfiled service call failed: %w", err)
	}
	return &resp, nil
}
