package todo

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	domain "github.com/example/todo-folders-demo/domain/todo"
	"github.com/example/todo-folders-demo/modules/folder"
	"github.com/example/todo-folders-demo/modules/task"
	"github.com/google/uuid"
)

// Service orchestrates the operations that can target either a task or a
// folder. There is no global id-to-kind index: polymorphic lookups probe
// task storage first, then folder storage, in that order.
type Service struct {
	tasks   task.TaskPort
	folders folder.FolderPort
}

// NewService creates a new orchestrator service.
func NewService(tasks task.TaskPort, folders folder.FolderPort) *Service {
	return &Service{
		tasks:   tasks,
		folders: folders,
	}
}

// CreateEntity dispatches creation on the type discriminator. Task input is
// validated up front, and a malformed folder reference is rejected before
// any lookup; the folder existence-and-ownership check runs before the
// task write.
func (s *Service) CreateEntity(ctx context.Context, req CreateEntityRequest) (EntityResponse, error) {
	switch req.Type {
	case KindFolder:
		created, err := s.folders.Create(ctx, req.UserID, req.Title)
		if err != nil {
			return EntityResponse{}, err
		}
		return EntityResponse{Kind: KindFolder, Folder: created}, nil

	case KindTask:
		if err := validateTaskInput(req); err != nil {
			return EntityResponse{}, err
		}

		if req.FolderID != nil {
			got, err := s.folders.Get(ctx, req.UserID, *req.FolderID)
			if err != nil {
				return EntityResponse{}, err
			}
			if !got.Found {
				return EntityResponse{}, folder.ErrFolderNotFound
			}
		}

		created, err := s.tasks.Create(ctx, &task.CreateTaskRequest{
			Title:    req.Title,
			Status:   req.Status,
			DueDate:  req.DueDate,
			FolderID: req.FolderID,
			UserID:   req.UserID,
		})
		if err != nil {
			return EntityResponse{}, err
		}
		return EntityResponse{Kind: KindTask, Task: created}, nil

	default:
		return EntityResponse{}, ErrInvalidEntityType
	}
}

// GetByID resolves an id as a task first, then as a folder.
func (s *Service) GetByID(ctx context.Context, userID, id string) (EntityResponse, error) {
	gotTask, err := s.tasks.Get(ctx, userID, id)
	if err != nil {
		return EntityResponse{}, err
	}
	if gotTask.Found {
		t := gotTask.Task
		return EntityResponse{Kind: KindTask, Task: &t}, nil
	}

	gotFolder, err := s.folders.Get(ctx, userID, id)
	if err != nil {
		return EntityResponse{}, err
	}
	if gotFolder.Found {
		f := gotFolder.Folder
		return EntityResponse{Kind: KindFolder, Folder: &f}, nil
	}

	return EntityResponse{}, ErrRecordNotFound
}

// UpdateByID attempts a task update first; when no task matches, it falls
// back to a folder rename from the patch title alone, ignoring any status.
func (s *Service) UpdateByID(ctx context.Context, req UpdateEntityRequest) (EntityResponse, error) {
	if req.Title == nil && req.Status == nil {
		return EntityResponse{}, ErrEmptyPatch
	}

	updated, err := s.tasks.Update(ctx, &task.UpdateTaskRequest{
		ID:     req.ID,
		UserID: req.UserID,
		Title:  req.Title,
		Status: req.Status,
	})
	if err != nil {
		return EntityResponse{}, err
	}
	if updated.Found {
		t := updated.Task
		return EntityResponse{Kind: KindTask, Task: &t}, nil
	}

	// No such task; the id may name a folder, which only a title can rename.
	if req.Title == nil {
		return EntityResponse{}, ErrRecordNotFound
	}

	renamed, err := s.folders.Rename(ctx, req.UserID, req.ID, *req.Title)
	if err != nil {
		return EntityResponse{}, err
	}
	if !renamed.Found {
		return EntityResponse{}, ErrRecordNotFound
	}

	f := renamed.Folder
	return EntityResponse{Kind: KindFolder, Folder: &f}, nil
}

// DeleteByID removes whichever record the id resolves to. With an explicit
// hint dispatch is direct; without one, the task delete is attempted first
// and the folder cascade second.
func (s *Service) DeleteByID(ctx context.Context, req DeleteEntityRequest) (DeleteEntityResponse, error) {
	switch req.TypeHint {
	case KindTask:
		return s.deleteTask(ctx, req.UserID, req.ID, true)
	case KindFolder:
		return s.deleteFolder(ctx, req.UserID, req.ID, true)
	case "":
		resp, err := s.deleteTask(ctx, req.UserID, req.ID, false)
		if err != nil || resp.Kind == KindTask {
			return resp, err
		}
		return s.deleteFolder(ctx, req.UserID, req.ID, true)
	default:
		return DeleteEntityResponse{}, ErrInvalidEntityType
	}
}

// deleteTask removes a single task. When the task was filed under a folder
// the membership cache entry is dropped best-effort. With required=false a
// miss is reported as an empty response instead of ErrRecordNotFound so
// the caller can continue probing.
func (s *Service) deleteTask(ctx context.Context, userID, id string, required bool) (DeleteEntityResponse, error) {
	deleted, err := s.tasks.Delete(ctx, userID, id)
	if err != nil {
		return DeleteEntityResponse{}, err
	}
	if !deleted.Deleted {
		if required {
			return DeleteEntityResponse{}, ErrRecordNotFound
		}
		return DeleteEntityResponse{}, nil
	}

	if deleted.FolderID != nil {
		if err := s.folders.RemoveTaskRef(ctx, userID, *deleted.FolderID, id); err != nil {
			log.Printf("[todo] Warning: failed to drop task ref %s from folder %s: %v", id, *deleted.FolderID, err)
		}
	}

	return DeleteEntityResponse{Kind: KindTask, Message: "task deleted"}, nil
}

// deleteFolder cascade-deletes a folder and everything filed under it.
func (s *Service) deleteFolder(ctx context.Context, userID, id string, required bool) (DeleteEntityResponse, error) {
	deleted, err := s.folders.DeleteCascade(ctx, userID, id)
	if err != nil {
		return DeleteEntityResponse{}, err
	}
	if !deleted.Deleted {
		if required {
			return DeleteEntityResponse{}, ErrRecordNotFound
		}
		return DeleteEntityResponse{}, nil
	}

	return DeleteEntityResponse{
		Kind:         KindFolder,
		Message:      fmt.Sprintf("folder deleted along with %d task(s)", deleted.TasksRemoved),
		TasksRemoved: deleted.TasksRemoved,
	}, nil
}

// ListAll returns every task and folder of the user.
func (s *Service) ListAll(ctx context.Context, userID string) (ListAllResponse, error) {
	tasks, err := s.tasks.List(ctx, userID)
	if err != nil {
		return ListAllResponse{}, err
	}

	folders, err := s.folders.List(ctx, userID)
	if err != nil {
		return ListAllResponse{}, err
	}

	return ListAllResponse{
		Tasks:   tasks.Tasks,
		Folders: folders.Folders,
	}, nil
}

// ListByFolder returns the user's tasks filed under the folder.
func (s *Service) ListByFolder(ctx context.Context, userID, folderID string) (task.ListTasksResponse, error) {
	tasks, err := s.tasks.ListByFolder(ctx, userID, folderID)
	if err != nil {
		return task.ListTasksResponse{}, err
	}
	return *tasks, nil
}

// ListUnfiled returns the user's tasks with no folder.
func (s *Service) ListUnfiled(ctx context.Context, userID string) (task.ListTasksResponse, error) {
	tasks, err := s.tasks.ListUnfiled(ctx, userID)
	if err != nil {
		return task.ListTasksResponse{}, err
	}
	return *tasks, nil
}

// validateTaskInput runs the full task validation up front: title, status
// enum, due date format, and the folder reference format. The format check
// runs before any folder lookup.
func validateTaskInput(req CreateEntityRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return task.ErrEmptyTitle
	}
	if req.Status != "" && !domain.ValidStatus(domain.Status(req.Status)) {
		return task.ErrInvalidStatus
	}
	if req.DueDate != "" {
		if _, err := time.Parse("2006-01-02", req.DueDate); err != nil {
			return task.ErrInvalidDueDate
		}
	}
	if req.FolderID != nil {
		if err := uuid.Validate(*req.FolderID); err != nil {
			return ErrInvalidID
		}
	}
	return nil
}
