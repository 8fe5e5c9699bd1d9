package todo

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/example/todo-folders-demo/modules/folder"
	"github.com/example/todo-folders-demo/modules/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// TodoModule provides the polymorphic task/folder orchestration services.
// It owns no storage of its own; all reads and writes go through the task
// and folder ports.
type TodoModule struct {
	service    *Service
	taskPort   task.TaskPort
	folderPort folder.FolderPort
}

// Compile-time interface checks.
var _ mono.Module = (*TodoModule)(nil)
var _ mono.ServiceProviderModule = (*TodoModule)(nil)
var _ mono.DependentModule = (*TodoModule)(nil)

// NewModule creates a new TodoModule.
func NewModule() *TodoModule {
	return &TodoModule{}
}

// Name returns the module name.
func (m *TodoModule) Name() string {
	return "todo"
}

// Dependencies returns the list of module dependencies.
func (m *TodoModule) Dependencies() []string {
	return []string{"task", "folder"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *TodoModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "task":
		m.taskPort = task.NewTaskAdapter(container)
	case "folder":
		m.folderPort = folder.NewFolderAdapter(container)
	}
}

// Start wires the orchestrator service.
func (m *TodoModule) Start(_ context.Context) error {
	if m.taskPort == nil {
		return fmt.Errorf("task dependency not set")
	}
	if m.folderPort == nil {
		return fmt.Errorf("folder dependency not set")
	}

	m.service = NewService(m.taskPort, m.folderPort)

	log.Println("[todo] Module started (depends on: task, folder)")
	return nil
}

// Stop shuts down the module.
func (m *TodoModule) Stop(_ context.Context) error {
	log.Println("[todo] Module stopped")
	return nil
}

// RegisterServices registers request-reply services in the service container.
func (m *TodoModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "create-entity", json.Unmarshal, json.Marshal, m.handleCreateEntity,
	); err != nil {
		return fmt.Errorf("failed to register create-entity service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "get", json.Unmarshal, json.Marshal, m.handleGet,
	); err != nil {
		return fmt.Errorf("failed to register get service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "update", json.Unmarshal, json.Marshal, m.handleUpdate,
	); err != nil {
		return fmt.Errorf("failed to register update service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "delete", json.Unmarshal, json.Marshal, m.handleDelete,
	); err != nil {
		return fmt.Errorf("failed to register delete service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "list-all", json.Unmarshal, json.Marshal, m.handleListAll,
	); err != nil {
		return fmt.Errorf("failed to register list-all service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "list-by-folder", json.Unmarshal, json.Marshal, m.handleListByFolder,
	); err != nil {
		return fmt.Errorf("failed to register list-by-folder service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "list-unfiled", json.Unmarshal, json.Marshal, m.handleListUnfiled,
	); err != nil {
		return fmt.Errorf("failed to register list-unfiled service: %w", err)
	}

	log.Printf("[todo] Registered services: create-entity, get, update, delete, list-all, list-by-folder, list-unfiled")
	return nil
}

func (m *TodoModule) handleCreateEntity(ctx context.Context, req CreateEntityRequest, _ *mono.Msg) (EntityResponse, error) {
	return m.service.CreateEntity(ctx, req)
}

func (m *TodoModule) handleGet(ctx context.Context, req GetEntityRequest, _ *mono.Msg) (EntityResponse, error) {
	return m.service.GetByID(ctx, req.UserID, req.ID)
}

func (m *TodoModule) handleUpdate(ctx context.Context, req UpdateEntityRequest, _ *mono.Msg) (EntityResponse, error) {
	return m.service.UpdateByID(ctx, req)
}

func (m *TodoModule) handleDelete(ctx context.Context, req DeleteEntityRequest, _ *mono.Msg) (DeleteEntityResponse, error) {
	return m.service.DeleteByID(ctx, req)
}

func (m *TodoModule) handleListAll(ctx context.Context, req ListAllRequest, _ *mono.Msg) (ListAllResponse, error) {
	return m.service.ListAll(ctx, req.UserID)
}

func (m *TodoModule) handleListByFolder(ctx context.Context, req task.FolderScopedRequest, _ *mono.Msg) (task.ListTasksResponse, error) {
	return m.service.ListByFolder(ctx, req.UserID, req.FolderID)
}

func (m *TodoModule) handleListUnfiled(ctx context.Context, req ListAllRequest, _ *mono.Msg) (task.ListTasksResponse, error) {
	return m.service.ListUnfiled(ctx, req.UserID)
}
