package folder

import "errors"

// Sentinel errors for folder operations.
var (
	// ErrFolderNotFound is returned when the requested folder does not
	// exist or belongs to another user.
	ErrFolderNotFound = errors.New("folder not found")

	// ErrEmptyName is returned when the folder name is missing or empty.
	ErrEmptyName = errors.New("name is required")
)
