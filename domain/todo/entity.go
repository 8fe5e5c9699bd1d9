package todo

import (
	"time"
)

// Status represents the progress state of a task.
type Status string

const (
	StatusPending   Status = "pending"
	StatusWorking   Status = "working"
	StatusCompleted Status = "completed"
)

// ValidStatus reports whether s is one of the allowed status values.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusWorking, StatusCompleted:
		return true
	}
	return false
}

// Task is a single todo item owned by a user. FolderID is nil for unfiled
// tasks; when set it must reference a folder owned by the same user.
type Task struct {
	ID        string     `gorm:"primaryKey;type:text" json:"id"`
	Title     string     `gorm:"not null;type:text" json:"title"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	Status    Status     `gorm:"not null;type:text" json:"status"`
	FolderID  *string    `gorm:"index;type:text" json:"folder_id,omitempty"`
	UserID    string     `gorm:"index;not null;type:text" json:"user_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TableName returns the table name for the Task entity.
func (Task) TableName() string {
	return "tasks"
}

// Folder groups tasks for a user. TaskRefs is a denormalized membership
// cache; the authoritative relationship is each task's FolderID field, and
// the two can drift between the writes of multi-record operations.
type Folder struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	Name      string    `gorm:"not null;type:text" json:"name"`
	UserID    string    `gorm:"index;not null;type:text" json:"user_id"`
	TaskRefs  []string  `gorm:"serializer:json" json:"task_refs"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the Folder entity.
func (Folder) TableName() string {
	return "folders"
}
