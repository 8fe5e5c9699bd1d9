package api

import "time"

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest represents a token refresh request.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse represents an authentication token response.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// UserResponse represents a user response.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// ProfileResponse represents the current user's profile.
type ProfileResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateEntityRequest is the body for creating a task or a folder. Type
// selects the kind; folder-typed requests take their name from Title.
type CreateEntityRequest struct {
	Type     string  `json:"type"`
	Title    string  `json:"title"`
	Status   string  `json:"status,omitempty"`
	DueDate  string  `json:"due_date,omitempty"`
	FolderID *string `json:"folder_id,omitempty"`
}

// UpdateEntityRequest is the body for a partial update of a task or folder.
type UpdateEntityRequest struct {
	Title  *string `json:"title,omitempty"`
	Status *string `json:"status,omitempty"`
}

// AddTaskRequest is the body for creating a task directly under a folder.
type AddTaskRequest struct {
	Title   string `json:"title"`
	DueDate string `json:"due_date,omitempty"`
}

// ConfirmationResponse acknowledges a folder progress operation.
type ConfirmationResponse struct {
	Message  string `json:"message"`
	Affected int64  `json:"affected"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
