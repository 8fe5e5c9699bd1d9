package todo

import "errors"

// Sentinel errors for the polymorphic task/folder operations.
var (
	// ErrRecordNotFound is returned when an id matches neither a task nor
	// a folder owned by the caller. Records owned by other users are
	// reported exactly the same way.
	ErrRecordNotFound = errors.New("record not found")

	// ErrInvalidEntityType is returned when the type discriminator is not
	// task or folder.
	ErrInvalidEntityType = errors.New("invalid entity type, expected task or folder")

	// ErrInvalidID is returned when an identifier is malformed. Checked
	// before any lookup so storage is never probed with garbage.
	ErrInvalidID = errors.New("invalid identifier")

	// ErrEmptyPatch is returned when an update carries no fields.
	ErrEmptyPatch = errors.New("no fields to update")
)
