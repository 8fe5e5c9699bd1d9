package todo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/todo-folders-demo/modules/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// todoAdapter wraps ServiceContainer for type-safe cross-module communication.
type todoAdapter struct {
	container mono.ServiceContainer
}

// NewTodoAdapter creates a new adapter for the orchestrator services.
// container is the ServiceContainer from the todo module received via
// SetDependencyServiceContainer.
func NewTodoAdapter(container mono.ServiceContainer) TodoPort {
	if container == nil {
		panic("todo adapter requires non-nil ServiceContainer")
	}
	return &todoAdapter{container: container}
}

// CreateEntity creates a task or folder via the create-entity service.
func (a *todoAdapter) CreateEntity(ctx context.Context, req *CreateEntityRequest) (*EntityResponse, error) {
	var resp EntityResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "create-entity", json.Marshal, json.Unmarshal, req, &resp,
	); err != nil {
		return nil, fmt.Errorf("create-entity service call failed: %w", err)
	}
	return &resp, nil
}

// GetByID resolves an id polymorphically via the get service.
func (a *todoAdapter) GetByID(ctx context.Context, userID, id string) (*EntityResponse, error) {
	req := GetEntityRequest{ID: id, UserID: userID}
	var resp EntityResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "get", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("get service call failed: %w", err)
	}
	return &resp, nil
}

// UpdateByID applies a polymorphic patch via the update service.
func (a *todoAdapter) UpdateByID(ctx context.Context, req *UpdateEntityRequest) (*EntityResponse, error) {
	var resp EntityResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "update", json.Marshal, json.Unmarshal, req, &resp,
	); err != nil {
		return nil, fmt.Errorf("update service call failed: %w", err)
	}
	return &resp, nil
}

// DeleteByID removes a task or folder via the delete service.
func (a *todoAdapter) DeleteByID(ctx context.Context, req *DeleteEntityRequest) (*DeleteEntityResponse, error) {
	var resp DeleteEntityResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "delete", json.Marshal, json.Unmarshal, req, &resp,
	); err != nil {
		return nil, fmt.Errorf("delete service call failed: %w", err)
	}
	return &resp, nil
}

// ListAll returns everything the user owns via the list-all service.
func (a *todoAdapter) ListAll(ctx context.Context, userID string) (*ListAllResponse, error) {
	req := ListAllRequest{UserID: userID}
	var resp ListAllResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "list-all", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("list-all service call failed: %w", err)
	}
	return &resp, nil
}

// ListByFolder returns the user's tasks under a folder via the list-by-folder service.
func (a *todoAdapter) ListByFolder(ctx context.Context, userID, folderID string) (*task.ListTasksResponse, error) {
	req := task.FolderScopedRequest{FolderID: folderID, UserID: userID}
	var resp task.ListTasksResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "list-by-folder", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("list-by-folder service call failed: %w", err)
	}
	return &resp, nil
}

// ListUnfiled returns the user's unfiled tasks via the list-unfiled service.
func (a *todoAdapter) ListUnfiled(ctx context.Context, userID string) (*task.ListTasksResponse, error) {
	req := ListAllRequest{UserID: userID}
	var resp task.ListTasksResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "list-unfiled", json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("list-unfiled service call failed: %w", err)
	}
	return &resp, nil
}
