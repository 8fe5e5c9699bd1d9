package folder

import (
	"errors"
	"testing"

	domain "github.com/example/todo-folders-demo/domain/todo"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&domain.Folder{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func newTestFolder(userID string) *domain.Folder {
	return &domain.Folder{
		ID:       uuid.New().String(),
		Name:     "Test Folder",
		UserID:   userID,
		TaskRefs: []string{},
	}
}

func TestRepository_FindByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	folder := newTestFolder("user-1")
	if err := repo.Create(folder); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	t.Run("existing folder", func(t *testing.T) {
		found, err := repo.FindByID("user-1", folder.ID)
		if err != nil {
			t.Fatalf("FindByID() error = %v", err)
		}
		if found.Name != folder.Name {
			t.Errorf("expected name %q, got %q", folder.Name, found.Name)
		}
	})

	t.Run("non-existent folder", func(t *testing.T) {
		_, err := repo.FindByID("user-1", "non-existent-id")
		if !errors.Is(err, ErrFolderNotFound) {
			t.Errorf("expected ErrFolderNotFound, got %v", err)
		}
	})

	t.Run("folder owned by another user", func(t *testing.T) {
		_, err := repo.FindByID("user-2", folder.ID)
		if !errors.Is(err, ErrFolderNotFound) {
			t.Errorf("expected ErrFolderNotFound for foreign folder, got %v", err)
		}
	})
}

func TestRepository_TaskRefs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	folder := newTestFolder("user-1")
	if err := repo.Create(folder); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	taskA := uuid.New().String()
	taskB := uuid.New().String()

	t.Run("append refs", func(t *testing.T) {
		for _, id := range []string{taskA, taskB} {
			if err := repo.AppendTaskRef("user-1", folder.ID, id); err != nil {
				t.Fatalf("AppendTaskRef() error = %v", err)
			}
		}

		found, err := repo.FindByID("user-1", folder.ID)
		if err != nil {
			t.Fatalf("FindByID() error = %v", err)
		}
		if len(found.TaskRefs) != 2 {
			t.Fatalf("expected 2 refs, got %d", len(found.TaskRefs))
		}
	})

	t.Run("remove one ref", func(t *testing.T) {
		if err := repo.RemoveTaskRef("user-1", folder.ID, taskA); err != nil {
			t.Fatalf("RemoveTaskRef() error = %v", err)
		}

		found, err := repo.FindByID("user-1", folder.ID)
		if err != nil {
			t.Fatalf("FindByID() error = %v", err)
		}
		if len(found.TaskRefs) != 1 || found.TaskRefs[0] != taskB {
			t.Errorf("expected only ref %q to remain, got %v", taskB, found.TaskRefs)
		}
	})

	t.Run("remove absent ref is a no-op", func(t *testing.T) {
		if err := repo.RemoveTaskRef("user-1", folder.ID, "never-there"); err != nil {
			t.Fatalf("RemoveTaskRef() error = %v", err)
		}

		found, err := repo.FindByID("user-1", folder.ID)
		if err != nil {
			t.Fatalf("FindByID() error = %v", err)
		}
		if len(found.TaskRefs) != 1 {
			t.Errorf("expected 1 ref, got %d", len(found.TaskRefs))
		}
	})

	t.Run("clear refs", func(t *testing.T) {
		if err := repo.ClearTaskRefs("user-1", folder.ID); err != nil {
			t.Fatalf("ClearTaskRefs() error = %v", err)
		}

		found, err := repo.FindByID("user-1", folder.ID)
		if err != nil {
			t.Fatalf("FindByID() error = %v", err)
		}
		if len(found.TaskRefs) != 0 {
			t.Errorf("expected no refs, got %v", found.TaskRefs)
		}
	})
}

func TestRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	folder := newTestFolder("user-1")
	if err := repo.Create(folder); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := repo.Delete("user-1", folder.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	err := repo.Delete("user-1", folder.ID)
	if !errors.Is(err, ErrFolderNotFound) {
		t.Errorf("expected ErrFolderNotFound on repeat delete, got %v", err)
	}
}
