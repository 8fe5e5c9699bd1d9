package task

import (
	"context"
	"errors"
	"testing"

	domain "github.com/example/todo-folders-demo/domain/todo"
	"github.com/google/uuid"
)

func setupTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(NewRepository(setupTestDB(t)), nil)
}

func TestService_Create(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	t.Run("defaults to pending", func(t *testing.T) {
		resp, err := svc.Create(ctx, CreateTaskRequest{
			Title:  "Buy milk",
			UserID: "user-1",
		})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if resp.Status != string(domain.StatusPending) {
			t.Errorf("expected status %q, got %q", domain.StatusPending, resp.Status)
		}
		if resp.ID == "" {
			t.Error("expected a generated id")
		}
		if resp.DueDate != nil {
			t.Errorf("expected no due date, got %v", resp.DueDate)
		}
	})

	t.Run("explicit status and due date", func(t *testing.T) {
		resp, err := svc.Create(ctx, CreateTaskRequest{
			Title:   "Write report",
			Status:  "working",
			DueDate: "2026-09-15",
			UserID:  "user-1",
		})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if resp.Status != string(domain.StatusWorking) {
			t.Errorf("expected status %q, got %q", domain.StatusWorking, resp.Status)
		}
		if resp.DueDate == nil {
			t.Fatal("expected a due date")
		}
		if got := resp.DueDate.Format("2006-01-02"); got != "2026-09-15" {
			t.Errorf("expected due date 2026-09-15, got %s", got)
		}
	})

	t.Run("empty title", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateTaskRequest{Title: "   ", UserID: "user-1"})
		if !errors.Is(err, ErrEmptyTitle) {
			t.Errorf("expected ErrEmptyTitle, got %v", err)
		}
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateTaskRequest{
			Title:  "Bad status",
			Status: "done",
			UserID: "user-1",
		})
		if !errors.Is(err, ErrInvalidStatus) {
			t.Errorf("expected ErrInvalidStatus, got %v", err)
		}
	})

	t.Run("invalid due date", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateTaskRequest{
			Title:   "Bad date",
			DueDate: "15/09/2026",
			UserID:  "user-1",
		})
		if !errors.Is(err, ErrInvalidDueDate) {
			t.Errorf("expected ErrInvalidDueDate, got %v", err)
		}
	})
}

func TestService_Get(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateTaskRequest{Title: "Lookup me", UserID: "user-1"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	t.Run("existing task", func(t *testing.T) {
		resp, err := svc.Get(ctx, "user-1", created.ID)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if !resp.Found {
			t.Fatal("expected task to be found")
		}
		if resp.Task.Title != "Lookup me" {
			t.Errorf("expected title %q, got %q", "Lookup me", resp.Task.Title)
		}
	})

	t.Run("absent task reports not found", func(t *testing.T) {
		resp, err := svc.Get(ctx, "user-1", uuid.New().String())
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if resp.Found {
			t.Error("expected Found to be false")
		}
	})

	t.Run("foreign task reports not found", func(t *testing.T) {
		resp, err := svc.Get(ctx, "user-2", created.ID)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if resp.Found {
			t.Error("expected foreign task to be invisible")
		}
	})
}

func TestService_Update(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateTaskRequest{Title: "Original", UserID: "user-1"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	t.Run("patch title only", func(t *testing.T) {
		title := "Renamed"
		resp, err := svc.Update(ctx, UpdateTaskRequest{
			ID:     created.ID,
			UserID: "user-1",
			Title:  &title,
		})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if !resp.Found {
			t.Fatal("expected task to be found")
		}
		if resp.Task.Title != "Renamed" {
			t.Errorf("expected title %q, got %q", "Renamed", resp.Task.Title)
		}
		if resp.Task.Status != string(domain.StatusPending) {
			t.Errorf("status should be untouched, got %q", resp.Task.Status)
		}
	})

	t.Run("patch status to completed", func(t *testing.T) {
		status := "completed"
		resp, err := svc.Update(ctx, UpdateTaskRequest{
			ID:     created.ID,
			UserID: "user-1",
			Status: &status,
		})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if resp.Task.Status != string(domain.StatusCompleted) {
			t.Errorf("expected status completed, got %q", resp.Task.Status)
		}
	})

	t.Run("invalid status value", func(t *testing.T) {
		status := "finished"
		_, err := svc.Update(ctx, UpdateTaskRequest{
			ID:     created.ID,
			UserID: "user-1",
			Status: &status,
		})
		if !errors.Is(err, ErrInvalidStatus) {
			t.Errorf("expected ErrInvalidStatus, got %v", err)
		}
	})

	t.Run("absent task reports not found", func(t *testing.T) {
		title := "Nobody home"
		resp, err := svc.Update(ctx, UpdateTaskRequest{
			ID:     uuid.New().String(),
			UserID: "user-1",
			Title:  &title,
		})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if resp.Found {
			t.Error("expected Found to be false")
		}
	})
}

func TestService_Delete(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	folderID := uuid.New().String()
	created, err := svc.Create(ctx, CreateTaskRequest{
		Title:    "Filed task",
		FolderID: &folderID,
		UserID:   "user-1",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	t.Run("delete reports the folder", func(t *testing.T) {
		resp, err := svc.Delete(ctx, "user-1", created.ID)
		if err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if !resp.Deleted {
			t.Fatal("expected task to be deleted")
		}
		if resp.FolderID == nil || *resp.FolderID != folderID {
			t.Errorf("expected folder %q in response, got %v", folderID, resp.FolderID)
		}
	})

	t.Run("second delete reports not deleted", func(t *testing.T) {
		resp, err := svc.Delete(ctx, "user-1", created.ID)
		if err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if resp.Deleted {
			t.Error("expected Deleted to be false on repeat delete")
		}
	})
}
