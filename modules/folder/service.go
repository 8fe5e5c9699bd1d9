package folder

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	domain "github.com/example/todo-folders-demo/domain/todo"
	"github.com/example/todo-folders-demo/events"
	"github.com/example/todo-folders-demo/modules/task"
	"github.com/go-monolith/mono"
	"github.com/google/uuid"
)

// Service implements folder entity logic. Task records are reached through
// the task port; the folder's TaskRefs list is only a membership cache and
// the per-task folder field stays authoritative.
type Service struct {
	repo     *Repository
	tasks    task.TaskPort
	eventBus mono.EventBus
}

// NewService creates a new folder service. The event bus may be nil.
func NewService(repo *Repository, tasks task.TaskPort, eventBus mono.EventBus) *Service {
	return &Service{
		repo:     repo,
		tasks:    tasks,
		eventBus: eventBus,
	}
}

// Create validates the request and persists a new folder with an empty
// membership list.
func (s *Service) Create(_ context.Context, req CreateFolderRequest) (FolderResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return FolderResponse{}, ErrEmptyName
	}

	newFolder := &domain.Folder{
		ID:       uuid.New().String(),
		Name:     req.Name,
		UserID:   req.UserID,
		TaskRefs: []string{},
	}

	if err := s.repo.Create(newFolder); err != nil {
		return FolderResponse{}, fmt.Errorf("failed to save folder: %w", err)
	}

	return toFolderResponse(newFolder), nil
}

// Get looks up a folder by id for the user. Absence is reported via the
// Found flag, not an error.
func (s *Service) Get(_ context.Context, userID, id string) (GetFolderResponse, error) {
	found, err := s.repo.FindByID(userID, id)
	if err != nil {
		if errors.Is(err, ErrFolderNotFound) {
			return GetFolderResponse{Found: false}, nil
		}
		return GetFolderResponse{}, err
	}
	return GetFolderResponse{Found: true, Folder: toFolderResponse(found)}, nil
}

// GetWithTasks fetches a folder and its full resolved membership.
func (s *Service) GetWithTasks(ctx context.Context, userID, id string) (FolderWithTasksResponse, error) {
	found, err := s.repo.FindByID(userID, id)
	if err != nil {
		return FolderWithTasksResponse{}, err
	}

	tasks, err := s.tasks.ListByFolder(ctx, userID, id)
	if err != nil {
		return FolderWithTasksResponse{}, fmt.Errorf("failed to resolve folder tasks: %w", err)
	}

	return FolderWithTasksResponse{
		Folder: toFolderResponse(found),
		Tasks:  tasks.Tasks,
		Total:  tasks.Total,
	}, nil
}

// Rename changes the folder name. Absence is reported via the Found flag so
// the orchestrator can fall through after a failed task update.
func (s *Service) Rename(_ context.Context, req RenameFolderRequest) (RenameFolderResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return RenameFolderResponse{}, ErrEmptyName
	}

	existing, err := s.repo.FindByID(req.UserID, req.ID)
	if err != nil {
		if errors.Is(err, ErrFolderNotFound) {
			return RenameFolderResponse{Found: false}, nil
		}
		return RenameFolderResponse{}, err
	}

	existing.Name = req.Name
	if err := s.repo.Save(existing); err != nil {
		return RenameFolderResponse{}, fmt.Errorf("failed to rename folder: %w", err)
	}

	return RenameFolderResponse{Found: true, Folder: toFolderResponse(existing)}, nil
}

// AddTask verifies folder ownership, creates the task filed under the
// folder, then appends the new id to the membership cache. The two writes
// are not transactional; a crash in between leaves the cache stale.
func (s *Service) AddTask(ctx context.Context, req AddTaskRequest) (task.TaskResponse, error) {
	if _, err := s.repo.FindByID(req.UserID, req.FolderID); err != nil {
		return task.TaskResponse{}, err
	}

	folderID := req.FolderID
	created, err := s.tasks.Create(ctx, &task.CreateTaskRequest{
		Title:    req.Title,
		DueDate:  req.DueDate,
		FolderID: &folderID,
		UserID:   req.UserID,
	})
	if err != nil {
		return task.TaskResponse{}, err
	}

	if err := s.repo.AppendTaskRef(req.UserID, req.FolderID, created.ID); err != nil {
		// The task exists; the cache entry is best-effort.
		log.Printf("[folder] Warning: failed to append task ref %s to folder %s: %v", created.ID, req.FolderID, err)
	}

	return *created, nil
}

// RemoveTaskRef drops a task id from the membership cache. Removing an
// absent id, or from an absent folder, is a no-op.
func (s *Service) RemoveTaskRef(_ context.Context, req RemoveTaskRefRequest) (RemoveTaskRefResponse, error) {
	if err := s.repo.RemoveTaskRef(req.UserID, req.FolderID, req.TaskID); err != nil {
		if errors.Is(err, ErrFolderNotFound) {
			return RemoveTaskRefResponse{Removed: false}, nil
		}
		return RemoveTaskRefResponse{}, err
	}
	return RemoveTaskRefResponse{Removed: true}, nil
}

// ResetProgress sets every task under the folder back to pending. The
// membership cache and the task rows themselves are left in place.
func (s *Service) ResetProgress(ctx context.Context, userID, folderID string) (ProgressResponse, error) {
	if _, err := s.repo.FindByID(userID, folderID); err != nil {
		return ProgressResponse{}, err
	}

	affected, err := s.tasks.ResetByFolder(ctx, userID, folderID)
	if err != nil {
		return ProgressResponse{}, err
	}
	return ProgressResponse{Affected: affected}, nil
}

// ClearProgress deletes every task under the folder and empties the
// membership cache. Destructive, unlike ResetProgress.
func (s *Service) ClearProgress(ctx context.Context, userID, folderID string) (ProgressResponse, error) {
	if _, err := s.repo.FindByID(userID, folderID); err != nil {
		return ProgressResponse{}, err
	}

	removed, err := s.tasks.DeleteByFolder(ctx, userID, folderID)
	if err != nil {
		return ProgressResponse{}, err
	}

	if err := s.repo.ClearTaskRefs(userID, folderID); err != nil {
		return ProgressResponse{}, err
	}

	return ProgressResponse{Affected: removed}, nil
}

// DeleteCascade deletes every child task, then the folder row itself.
// Child tasks are removed first so a repeated call still converges: the
// second call finds no folder row and reports Deleted=false.
func (s *Service) DeleteCascade(ctx context.Context, userID, folderID string) (DeleteFolderResponse, error) {
	removed, err := s.tasks.DeleteByFolder(ctx, userID, folderID)
	if err != nil {
		return DeleteFolderResponse{}, err
	}

	if err := s.repo.Delete(userID, folderID); err != nil {
		if errors.Is(err, ErrFolderNotFound) {
			return DeleteFolderResponse{Deleted: false, TasksRemoved: removed}, nil
		}
		return DeleteFolderResponse{}, err
	}

	if s.eventBus != nil {
		event := events.FolderDeletedEvent{
			FolderID:     folderID,
			UserID:       userID,
			TasksRemoved: removed,
			DeletedAt:    time.Now(),
		}
		if err := events.FolderDeletedV1.Publish(s.eventBus, event, nil); err != nil {
			log.Printf("[folder] Warning: failed to publish FolderDeleted event for folder %s: %v", folderID, err)
		}
	}

	return DeleteFolderResponse{Deleted: true, TasksRemoved: removed}, nil
}

// List returns every folder of the user.
func (s *Service) List(_ context.Context, userID string) (ListFoldersResponse, error) {
	folders, err := s.repo.FindByUser(userID)
	if err != nil {
		return ListFoldersResponse{}, err
	}

	response := ListFoldersResponse{
		Folders: make([]FolderResponse, 0, len(folders)),
		Total:   len(folders),
	}
	for _, f := range folders {
		response.Folders = append(response.Folders, toFolderResponse(f))
	}
	return response, nil
}

// toFolderResponse converts a domain Folder to a FolderResponse.
func toFolderResponse(folder *domain.Folder) FolderResponse {
	refs := folder.TaskRefs
	if refs == nil {
		refs = []string{}
	}
	return FolderResponse{
		ID:        folder.ID,
		Name:      folder.Name,
		UserID:    folder.UserID,
		TaskRefs:  refs,
		CreatedAt: folder.CreatedAt,
		UpdatedAt: folder.UpdatedAt,
	}
}
