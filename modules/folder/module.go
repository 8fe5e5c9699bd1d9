package folder

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	domain "github.com/example/todo-folders-demo/domain/todo"
	"github.com/example/todo-folders-demo/events"
	"github.com/example/todo-folders-demo/modules/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// FolderModule provides folder entity services via GORM + SQLite. It
// depends on the task module for everything that touches task records.
type FolderModule struct {
	db       *gorm.DB
	service  *Service
	dbPath   string
	taskPort task.TaskPort
	eventBus mono.EventBus
}

// Compile-time interface checks.
var _ mono.Module = (*FolderModule)(nil)
var _ mono.ServiceProviderModule = (*FolderModule)(nil)
var _ mono.DependentModule = (*FolderModule)(nil)
var _ mono.EventEmitterModule = (*FolderModule)(nil)
var _ mono.HealthCheckableModule = (*FolderModule)(nil)

// NewModule creates a new FolderModule.
func NewModule() *FolderModule {
	dbPath := os.Getenv("FOLDER_DB_PATH")
	if dbPath == "" {
		dbPath = "folders.db"
	}
	return &FolderModule{
		dbPath: dbPath,
	}
}

// Name returns the module name.
func (m *FolderModule) Name() string {
	return "folder"
}

// Dependencies returns the list of module dependencies.
func (m *FolderModule) Dependencies() []string {
	return []string{"task"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *FolderModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	if dependency == "task" {
		m.taskPort = task.NewTaskAdapter(container)
	}
}

// SetEventBus receives the event bus from the framework.
func (m *FolderModule) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module publishes.
func (m *FolderModule) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.FolderDeletedV1.ToBase(),
	}
}

// Start initializes the database connection and runs migrations.
func (m *FolderModule) Start(_ context.Context) error {
	if m.taskPort == nil {
		return fmt.Errorf("task dependency not set")
	}

	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	if err := db.AutoMigrate(&domain.Folder{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	m.service = NewService(NewRepository(db), m.taskPort, m.eventBus)

	log.Printf("[folder] Module started (database: %s, depends on: task)", m.dbPath)
	return nil
}

// Stop gracefully closes the database connection.
func (m *FolderModule) Stop(_ context.Context) error {
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[folder] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *FolderModule) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get database connection: %v", err),
		}
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"database": m.dbPath,
		},
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *FolderModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "create", json.Unmarshal, json.Marshal, m.handleCreate,
	); err != nil {
		return fmt.Errorf("failed to register create service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "get", json.Unmarshal, json.Marshal, m.handleGet,
	); err != nil {
		return fmt.Errorf("failed to register get service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "get-with-tasks", json.Unmarshal, json.Marshal, m.handleGetWithTasks,
	); err != nil {
		return fmt.Errorf("failed to register get-with-tasks service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "rename", json.Unmarshal, json.Marshal, m.handleRename,
	); err != nil {
		return fmt.Errorf("failed to register rename service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "add-task", json.Unmarshal, json.Marshal, m.handleAddTask,
	); err != nil {
		return fmt.Errorf("failed to register add-task service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "remove-task-ref", json.Unmarshal, json.Marshal, m.handleRemoveTaskRef,
	); err != nil {
		return fmt.Errorf("failed to register remove-task-ref service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "reset-progress", json.Unmarshal, json.Marshal, m.handleResetProgress,
	); err != nil {
		return fmt.Errorf("failed to register reset-progress service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "clear-progress", json.Unmarshal, json.Marshal, m.handleClearProgress,
	); err != nil {
		return fmt.Errorf("failed to register clear-progress service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "delete-cascade", json.Unmarshal, json.Marshal, m.handleDeleteCascade,
	); err != nil {
		return fmt.Errorf("failed to register delete-cascade service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "list", json.Unmarshal, json.Marshal, m.handleList,
	); err != nil {
		return fmt.Errorf("failed to register list service: %w", err)
	}

	log.Printf("[folder] Registered services: create, get, get-with-tasks, rename, add-task, remove-task-ref, reset-progress, clear-progress, delete-cascade, list")
	return nil
}

func (m *FolderModule) handleCreate(ctx context.Context, req CreateFolderRequest, _ *mono.Msg) (FolderResponse, error) {
	return m.service.Create(ctx, req)
}

func (m *FolderModule) handleGet(ctx context.Context, req GetFolderRequest, _ *mono.Msg) (GetFolderResponse, error) {
	return m.service.Get(ctx, req.UserID, req.ID)
}

func (m *FolderModule) handleGetWithTasks(ctx context.Context, req GetFolderRequest, _ *mono.Msg) (FolderWithTasksResponse, error) {
	return m.service.GetWithTasks(ctx, req.UserID, req.ID)
}

func (m *FolderModule) handleRename(ctx context.Context, req RenameFolderRequest, _ *mono.Msg) (RenameFolderResponse, error) {
	return m.service.Rename(ctx, req)
}

func (m *FolderModule) handleAddTask(ctx context.Context, req AddTaskRequest, _ *mono.Msg) (task.TaskResponse, error) {
	return m.service.AddTask(ctx, req)
}

func (m *FolderModule) handleRemoveTaskRef(ctx context.Context, req RemoveTaskRefRequest, _ *mono.Msg) (RemoveTaskRefResponse, error) {
	return m.service.RemoveTaskRef(ctx, req)
}

func (m *FolderModule) handleResetProgress(ctx context.Context, req ProgressRequest, _ *mono.Msg) (ProgressResponse, error) {
	return m.service.ResetProgress(ctx, req.UserID, req.FolderID)
}

func (m *FolderModule) handleClearProgress(ctx context.Context, req ProgressRequest, _ *mono.Msg) (ProgressResponse, error) {
	return m.service.ClearProgress(ctx, req.UserID, req.FolderID)
}

func (m *FolderModule) handleDeleteCascade(ctx context.Context, req DeleteFolderRequest, _ *mono.Msg) (DeleteFolderResponse, error) {
	return m.service.DeleteCascade(ctx, req.UserID, req.ID)
}

func (m *FolderModule) handleList(ctx context.Context, req ListFoldersRequest, _ *mono.Msg) (ListFoldersResponse, error) {
	return m.service.List(ctx, req.UserID)
}
