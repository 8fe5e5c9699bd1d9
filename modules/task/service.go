package task

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	domain "github.com/example/todo-folders-demo/domain/todo"
	"github.com/example/todo-folders-demo/events"
	"github.com/go-monolith/mono"
	"github.com/google/uuid"
)

// Service implements task entity logic on top of the repository.
type Service struct {
	repo     *Repository
	eventBus mono.EventBus
}

// NewService creates a new task service. The event bus may be nil, in which
// case events are not published.
func NewService(repo *Repository, eventBus mono.EventBus) *Service {
	return &Service{
		repo:     repo,
		eventBus: eventBus,
	}
}

// Create validates the request and persists a new task. Status defaults to
// pending; the folder reference is stored as-is, the existence and ownership
// check belongs to the caller.
func (s *Service) Create(_ context.Context, req CreateTaskRequest) (TaskResponse, error) {
	if strings.TrimSpace(req.Title) == "" {
		return TaskResponse{}, ErrEmptyTitle
	}

	status, err := parseStatus(req.Status)
	if err != nil {
		return TaskResponse{}, err
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return TaskResponse{}, err
	}

	newTask := &domain.Task{
		ID:       uuid.New().String(),
		Title:    req.Title,
		Status:   status,
		DueDate:  dueDate,
		FolderID: req.FolderID,
		UserID:   req.UserID,
	}

	if err := s.repo.Create(newTask); err != nil {
		return TaskResponse{}, fmt.Errorf("failed to save task: %w", err)
	}

	if s.eventBus != nil {
		event := events.TaskCreatedEvent{
			TaskID:    newTask.ID,
			Title:     newTask.Title,
			FolderID:  newTask.FolderID,
			UserID:    newTask.UserID,
			CreatedAt: newTask.CreatedAt,
		}
		if err := events.TaskCreatedV1.Publish(s.eventBus, event, nil); err != nil {
			log.Printf("[task] Warning: failed to publish TaskCreated event for task %s: %v", newTask.ID, err)
		}
	}

	return toTaskResponse(newTask), nil
}

// Get looks up a task by id for the user. Absence is reported via the Found
// flag, not an error.
func (s *Service) Get(_ context.Context, userID, id string) (GetTaskResponse, error) {
	found, err := s.repo.FindByID(userID, id)
	if err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			return GetTaskResponse{Found: false}, nil
		}
		return GetTaskResponse{}, err
	}
	return GetTaskResponse{Found: true, Task: toTaskResponse(found)}, nil
}

// Update applies the fields present in the patch to an existing task.
func (s *Service) Update(_ context.Context, req UpdateTaskRequest) (UpdateTaskResponse, error) {
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return UpdateTaskResponse{}, ErrEmptyTitle
	}

	var status domain.Status
	if req.Status != nil {
		parsed, err := parseStatus(*req.Status)
		if err != nil {
			return UpdateTaskResponse{}, err
		}
		status = parsed
	}

	existing, err := s.repo.FindByID(req.UserID, req.ID)
	if err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			return UpdateTaskResponse{Found: false}, nil
		}
		return UpdateTaskResponse{}, err
	}

	wasCompleted := existing.Status == domain.StatusCompleted
	if req.Title != nil {
		existing.Title = *req.Title
	}
	if req.Status != nil {
		existing.Status = status
	}

	if err := s.repo.Save(existing); err != nil {
		return UpdateTaskResponse{}, fmt.Errorf("failed to update task: %w", err)
	}

	if s.eventBus != nil && !wasCompleted && existing.Status == domain.StatusCompleted {
		event := events.TaskCompletedEvent{
			TaskID:      existing.ID,
			UserID:      existing.UserID,
			CompletedAt: time.Now(),
		}
		if err := events.TaskCompletedV1.Publish(s.eventBus, event, nil); err != nil {
			log.Printf("[task] Warning: failed to publish TaskCompleted event for task %s: %v", existing.ID, err)
		}
	}

	return UpdateTaskResponse{Found: true, Task: toTaskResponse(existing)}, nil
}

// Delete removes a single task. The response carries the folder the task
// was filed under so the caller can drop the membership cache entry.
func (s *Service) Delete(_ context.Context, userID, id string) (DeleteTaskResponse, error) {
	existing, err := s.repo.FindByID(userID, id)
	if err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			return DeleteTaskResponse{Deleted: false}, nil
		}
		return DeleteTaskResponse{}, err
	}

	if err := s.repo.Delete(userID, id); err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			return DeleteTaskResponse{Deleted: false}, nil
		}
		return DeleteTaskResponse{}, err
	}

	return DeleteTaskResponse{Deleted: true, FolderID: existing.FolderID}, nil
}

// DeleteByFolder removes every task of the user under the folder.
func (s *Service) DeleteByFolder(_ context.Context, userID, folderID string) (FolderScopedResponse, error) {
	affected, err := s.repo.DeleteByFolder(userID, folderID)
	if err != nil {
		return FolderScopedResponse{}, err
	}
	return FolderScopedResponse{Affected: affected}, nil
}

// ResetByFolder sets every task of the user under the folder to pending.
func (s *Service) ResetByFolder(_ context.Context, userID, folderID string) (FolderScopedResponse, error) {
	affected, err := s.repo.ResetByFolder(userID, folderID)
	if err != nil {
		return FolderScopedResponse{}, err
	}
	return FolderScopedResponse{Affected: affected}, nil
}

// List returns every task of the user.
func (s *Service) List(_ context.Context, userID string) (ListTasksResponse, error) {
	tasks, err := s.repo.FindByUser(userID)
	if err != nil {
		return ListTasksResponse{}, err
	}
	return toListResponse(tasks), nil
}

// ListByFolder returns the user's tasks filed under the folder.
func (s *Service) ListByFolder(_ context.Context, userID, folderID string) (ListTasksResponse, error) {
	tasks, err := s.repo.FindByFolder(userID, folderID)
	if err != nil {
		return ListTasksResponse{}, err
	}
	return toListResponse(tasks), nil
}

// ListUnfiled returns the user's tasks with no folder.
func (s *Service) ListUnfiled(_ context.Context, userID string) (ListTasksResponse, error) {
	tasks, err := s.repo.FindUnfiled(userID)
	if err != nil {
		return ListTasksResponse{}, err
	}
	return toListResponse(tasks), nil
}

// toTaskResponse converts a domain Task to a TaskResponse.
func toTaskResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:        task.ID,
		Title:     task.Title,
		Status:    string(task.Status),
		DueDate:   task.DueDate,
		FolderID:  task.FolderID,
		UserID:    task.UserID,
		CreatedAt: task.CreatedAt,
		UpdatedAt: task.UpdatedAt,
	}
}

// toListResponse converts a slice of domain Tasks to a ListTasksResponse.
func toListResponse(tasks []*domain.Task) ListTasksResponse {
	response := ListTasksResponse{
		Tasks: make([]TaskResponse, 0, len(tasks)),
		Total: len(tasks),
	}
	for _, t := range tasks {
		response.Tasks = append(response.Tasks, toTaskResponse(t))
	}
	return response
}
