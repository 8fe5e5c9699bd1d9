package task

import (
	"errors"
	"fmt"

	domain "github.com/example/todo-folders-demo/domain/todo"
	"gorm.io/gorm"
)

// Repository provides access to task storage. Every query is scoped to the
// owning user, so a record owned by someone else is indistinguishable from
// an absent one.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new task repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create saves a new task.
func (r *Repository) Create(task *domain.Task) error {
	if err := r.db.Create(task).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// FindByID retrieves a task by id for the given user.
func (r *Repository) FindByID(userID, id string) (*domain.Task, error) {
	var task domain.Task
	if err := r.db.First(&task, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &task, nil
}

// Save persists all fields of an existing task.
func (r *Repository) Save(task *domain.Task) error {
	if err := r.db.Save(task).Error; err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}
	return nil
}

// Delete removes a task by id for the given user.
func (r *Repository) Delete(userID, id string) error {
	result := r.db.Delete(&domain.Task{}, "id = ? AND user_id = ?", id, userID)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// DeleteByFolder removes every task of the user filed under the folder and
// returns how many were removed. Deleting an empty folder is not an error.
func (r *Repository) DeleteByFolder(userID, folderID string) (int64, error) {
	result := r.db.Delete(&domain.Task{}, "user_id = ? AND folder_id = ?", userID, folderID)
	if err := result.Error; err != nil {
		return 0, fmt.Errorf("failed to delete tasks by folder: %w", err)
	}
	return result.RowsAffected, nil
}

// ResetByFolder sets every task of the user under the folder back to
// pending and returns how many rows changed.
func (r *Repository) ResetByFolder(userID, folderID string) (int64, error) {
	result := r.db.Model(&domain.Task{}).
		Where("user_id = ? AND folder_id = ?", userID, folderID).
		Update("status", domain.StatusPending)
	if err := result.Error; err != nil {
		return 0, fmt.Errorf("failed to reset tasks by folder: %w", err)
	}
	return result.RowsAffected, nil
}

// FindByUser retrieves all tasks of the user, oldest first.
func (r *Repository) FindByUser(userID string) ([]*domain.Task, error) {
	var tasks []*domain.Task
	if err := r.db.Where("user_id = ?", userID).Order("created_at").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to find tasks: %w", err)
	}
	return tasks, nil
}

// FindByFolder retrieves the user's tasks filed under the folder, oldest first.
func (r *Repository) FindByFolder(userID, folderID string) ([]*domain.Task, error) {
	var tasks []*domain.Task
	if err := r.db.Where("user_id = ? AND folder_id = ?", userID, folderID).
		Order("created_at").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to find tasks by folder: %w", err)
	}
	return tasks, nil
}

// FindUnfiled retrieves the user's tasks that are not filed under any folder.
func (r *Repository) FindUnfiled(userID string) ([]*domain.Task, error) {
	var tasks []*domain.Task
	if err := r.db.Where("user_id = ? AND folder_id IS NULL", userID).
		Order("created_at").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to find unfiled tasks: %w", err)
	}
	return tasks, nil
}
