package folder

import (
	"errors"
	"fmt"

	domain "github.com/example/todo-folders-demo/domain/todo"
	"gorm.io/gorm"
)

// Repository provides access to folder storage, scoped to the owning user.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new folder repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create saves a new folder.
func (r *Repository) Create(folder *domain.Folder) error {
	if err := r.db.Create(folder).Error; err != nil {
		return fmt.Errorf("failed to create folder: %w", err)
	}
	return nil
}

// FindByID retrieves a folder by id for the given user.
func (r *Repository) FindByID(userID, id string) (*domain.Folder, error) {
	var folder domain.Folder
	if err := r.db.First(&folder, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFolderNotFound
		}
		return nil, fmt.Errorf("failed to find folder: %w", err)
	}
	return &folder, nil
}

// Save persists all fields of an existing folder.
func (r *Repository) Save(folder *domain.Folder) error {
	if err := r.db.Save(folder).Error; err != nil {
		return fmt.Errorf("failed to save folder: %w", err)
	}
	return nil
}

// Delete removes a folder row by id for the given user.
func (r *Repository) Delete(userID, id string) error {
	result := r.db.Delete(&domain.Folder{}, "id = ? AND user_id = ?", id, userID)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to delete folder: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrFolderNotFound
	}
	return nil
}

// FindByUser retrieves all folders of the user, oldest first.
func (r *Repository) FindByUser(userID string) ([]*domain.Folder, error) {
	var folders []*domain.Folder
	if err := r.db.Where("user_id = ?", userID).Order("created_at").Find(&folders).Error; err != nil {
		return nil, fmt.Errorf("failed to find folders: %w", err)
	}
	return folders, nil
}

// AppendTaskRef adds a task id to the folder's membership cache.
func (r *Repository) AppendTaskRef(userID, folderID, taskID string) error {
	folder, err := r.FindByID(userID, folderID)
	if err != nil {
		return err
	}
	folder.TaskRefs = append(folder.TaskRefs, taskID)
	return r.Save(folder)
}

// RemoveTaskRef drops a task id from the folder's membership cache.
// Removing an id that is not present is a no-op.
func (r *Repository) RemoveTaskRef(userID, folderID, taskID string) error {
	folder, err := r.FindByID(userID, folderID)
	if err != nil {
		return err
	}

	refs := folder.TaskRefs[:0]
	for _, ref := range folder.TaskRefs {
		if ref != taskID {
			refs = append(refs, ref)
		}
	}
	folder.TaskRefs = refs
	return r.Save(folder)
}

// ClearTaskRefs resets the folder's membership cache to empty.
func (r *Repository) ClearTaskRefs(userID, folderID string) error {
	folder, err := r.FindByID(userID, folderID)
	if err != nil {
		return err
	}
	folder.TaskRefs = []string{}
	return r.Save(folder)
}
