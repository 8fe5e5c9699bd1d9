package folder

import (
	"context"
	"errors"
	"testing"

	"github.com/example/todo-folders-demo/modules/task"
	"github.com/google/uuid"
)

// stubTaskPort is an in-memory task.TaskPort for folder service tests.
type stubTaskPort struct {
	created      []task.CreateTaskRequest
	deleteCount  int64
	resetCount   int64
	folderTasks  []task.TaskResponse
	failCreate   error
	lastFolderID string
}

func (s *stubTaskPort) Create(_ context.Context, req *task.CreateTaskRequest) (*task.TaskResponse, error) {
	if s.failCreate != nil {
		return nil, s.failCreate
	}
	s.created = append(s.created, *req)
	resp := &task.TaskResponse{
		ID:       uuid.New().String(),
		Title:    req.Title,
		Status:   "pending",
		FolderID: req.FolderID,
		UserID:   req.UserID,
	}
	return resp, nil
}

func (s *stubTaskPort) Get(context.Context, string, string) (*task.GetTaskResponse, error) {
	return &task.GetTaskResponse{}, nil
}

func (s *stubTaskPort) Update(context.Context, *task.UpdateTaskRequest) (*task.UpdateTaskResponse, error) {
	return &task.UpdateTaskResponse{}, nil
}

func (s *stubTaskPort) Delete(context.Context, string, string) (*task.DeleteTaskResponse, error) {
	return &task.DeleteTaskResponse{}, nil
}

func (s *stubTaskPort) DeleteByFolder(_ context.Context, _, folderID string) (int64, error) {
	s.lastFolderID = folderID
	return s.deleteCount, nil
}

func (s *stubTaskPort) ResetByFolder(_ context.Context, _, folderID string) (int64, error) {
	s.lastFolderID = folderID
	return s.resetCount, nil
}

func (s *stubTaskPort) List(context.Context, string) (*task.ListTasksResponse, error) {
	return &task.ListTasksResponse{Tasks: []task.TaskResponse{}}, nil
}

func (s *stubTaskPort) ListByFolder(context.Context, string, string) (*task.ListTasksResponse, error) {
	return &task.ListTasksResponse{Tasks: s.folderTasks, Total: len(s.folderTasks)}, nil
}

func (s *stubTaskPort) ListUnfiled(context.Context, string) (*task.ListTasksResponse, error) {
	return &task.ListTasksResponse{Tasks: []task.TaskResponse{}}, nil
}

func setupTestService(t *testing.T, tasks task.TaskPort) *Service {
	t.Helper()
	return NewService(NewRepository(setupTestDB(t)), tasks, nil)
}

func TestService_Create(t *testing.T) {
	svc := setupTestService(t, &stubTaskPort{})
	ctx := context.Background()

	t.Run("new folder has empty refs", func(t *testing.T) {
		resp, err := svc.Create(ctx, CreateFolderRequest{Name: "Inbox", UserID: "user-1"})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if resp.Name != "Inbox" {
			t.Errorf("expected name %q, got %q", "Inbox", resp.Name)
		}
		if resp.TaskRefs == nil || len(resp.TaskRefs) != 0 {
			t.Errorf("expected empty refs, got %v", resp.TaskRefs)
		}
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateFolderRequest{Name: "  ", UserID: "user-1"})
		if !errors.Is(err, ErrEmptyName) {
			t.Errorf("expected ErrEmptyName, got %v", err)
		}
	})
}

func TestService_AddTask(t *testing.T) {
	stub := &stubTaskPort{}
	svc := setupTestService(t, stub)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateFolderRequest{Name: "Work", UserID: "user-1"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	t.Run("task is filed and cached", func(t *testing.T) {
		resp, err := svc.AddTask(ctx, AddTaskRequest{
			FolderID: created.ID,
			UserID:   "user-1",
			Title:    "Write report",
		})
		if err != nil {
			t.Fatalf("AddTask() error = %v", err)
		}
		if resp.FolderID == nil || *resp.FolderID != created.ID {
			t.Errorf("expected task filed under %q, got %v", created.ID, resp.FolderID)
		}

		folder, err := svc.Get(ctx, "user-1", created.ID)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if len(folder.Folder.TaskRefs) != 1 || folder.Folder.TaskRefs[0] != resp.ID {
			t.Errorf("expected ref %q in cache, got %v", resp.ID, folder.Folder.TaskRefs)
		}
	})

	t.Run("absent folder rejects the write", func(t *testing.T) {
		before := len(stub.created)
		_, err := svc.AddTask(ctx, AddTaskRequest{
			FolderID: uuid.New().String(),
			UserID:   "user-1",
			Title:    "Orphan",
		})
		if !errors.Is(err, ErrFolderNotFound) {
			t.Errorf("expected ErrFolderNotFound, got %v", err)
		}
		if len(stub.created) != before {
			t.Error("no task should be created when the folder is absent")
		}
	})

	t.Run("foreign folder rejects the write", func(t *testing.T) {
		before := len(stub.created)
		_, err := svc.AddTask(ctx, AddTaskRequest{
			FolderID: created.ID,
			UserID:   "user-2",
			Title:    "Intruder",
		})
		if !errors.Is(err, ErrFolderNotFound) {
			t.Errorf("expected ErrFolderNotFound, got %v", err)
		}
		if len(stub.created) != before {
			t.Error("no task should be created for a foreign folder")
		}
	})
}

func TestService_Progress(t *testing.T) {
	stub := &stubTaskPort{deleteCount: 2, resetCount: 3}
	svc := setupTestService(t, stub)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateFolderRequest{Name: "Chores", UserID: "user-1"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := svc.AddTask(ctx, AddTaskRequest{
			FolderID: created.ID,
			UserID:   "user-1",
			Title:    "Chore",
		}); err != nil {
			t.Fatalf("AddTask() error = %v", err)
		}
	}

	t.Run("reset keeps the membership cache", func(t *testing.T) {
		resp, err := svc.ResetProgress(ctx, "user-1", created.ID)
		if err != nil {
			t.Fatalf("ResetProgress() error = %v", err)
		}
		if resp.Affected != 3 {
			t.Errorf("expected 3 affected, got %d", resp.Affected)
		}

		folder, err := svc.Get(ctx, "user-1", created.ID)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if len(folder.Folder.TaskRefs) != 2 {
			t.Errorf("reset must keep refs, got %v", folder.Folder.TaskRefs)
		}
	})

	t.Run("clear empties the membership cache", func(t *testing.T) {
		resp, err := svc.ClearProgress(ctx, "user-1", created.ID)
		if err != nil {
			t.Fatalf("ClearProgress() error = %v", err)
		}
		if resp.Affected != 2 {
			t.Errorf("expected 2 affected, got %d", resp.Affected)
		}

		folder, err := svc.Get(ctx, "user-1", created.ID)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if len(folder.Folder.TaskRefs) != 0 {
			t.Errorf("clear must empty refs, got %v", folder.Folder.TaskRefs)
		}
	})

	t.Run("absent folder is an error", func(t *testing.T) {
		if _, err := svc.ResetProgress(ctx, "user-1", uuid.New().String()); !errors.Is(err, ErrFolderNotFound) {
			t.Errorf("expected ErrFolderNotFound, got %v", err)
		}
		if _, err := svc.ClearProgress(ctx, "user-1", uuid.New().String()); !errors.Is(err, ErrFolderNotFound) {
			t.Errorf("expected ErrFolderNotFound, got %v", err)
		}
	})
}

func TestService_DeleteCascade(t *testing.T) {
	stub := &stubTaskPort{deleteCount: 4}
	svc := setupTestService(t, stub)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateFolderRequest{Name: "Doomed", UserID: "user-1"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	t.Run("first delete removes folder and reports children", func(t *testing.T) {
		resp, err := svc.DeleteCascade(ctx, "user-1", created.ID)
		if err != nil {
			t.Fatalf("DeleteCascade() error = %v", err)
		}
		if !resp.Deleted {
			t.Error("expected folder to be deleted")
		}
		if resp.TasksRemoved != 4 {
			t.Errorf("expected 4 tasks removed, got %d", resp.TasksRemoved)
		}
		if stub.lastFolderID != created.ID {
			t.Errorf("child delete should target folder %q, got %q", created.ID, stub.lastFolderID)
		}
	})

	t.Run("second delete converges", func(t *testing.T) {
		stub.deleteCount = 0
		resp, err := svc.DeleteCascade(ctx, "user-1", created.ID)
		if err != nil {
			t.Fatalf("DeleteCascade() error = %v", err)
		}
		if resp.Deleted {
			t.Error("expected Deleted to be false on repeat delete")
		}
	})
}

func TestService_Rename(t *testing.T) {
	svc := setupTestService(t, &stubTaskPort{})
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateFolderRequest{Name: "Old", UserID: "user-1"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	t.Run("rename existing folder", func(t *testing.T) {
		resp, err := svc.Rename(ctx, RenameFolderRequest{ID: created.ID, UserID: "user-1", Name: "New"})
		if err != nil {
			t.Fatalf("Rename() error = %v", err)
		}
		if !resp.Found {
			t.Fatal("expected folder to be found")
		}
		if resp.Folder.Name != "New" {
			t.Errorf("expected name %q, got %q", "New", resp.Folder.Name)
		}
	})

	t.Run("absent folder reports not found", func(t *testing.T) {
		resp, err := svc.Rename(ctx, RenameFolderRequest{ID: uuid.New().String(), UserID: "user-1", Name: "X"})
		if err != nil {
			t.Fatalf("Rename() error = %v", err)
		}
		if resp.Found {
			t.Error("expected Found to be false")
		}
	})
}
