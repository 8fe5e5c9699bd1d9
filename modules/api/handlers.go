package api

import (
	"encoding/json"
	"log"
	"strings"

	domain "github.com/example/todo-folders-demo/domain/user"
	"github.com/example/todo-folders-demo/modules/auth"
	"github.com/example/todo-folders-demo/modules/folder"
	"github.com/example/todo-folders-demo/modules/todo"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers contains HTTP handlers for the API.
type Handlers struct {
	authContainer mono.ServiceContainer
	authAdapter   auth.AuthPort
	todos         todo.TodoPort
	folders       folder.FolderPort
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(
	authContainer mono.ServiceContainer,
	authAdapter auth.AuthPort,
	todos todo.TodoPort,
	folders folder.FolderPort,
) *Handlers {
	return &Handlers{
		authContainer: authContainer,
		authAdapter:   authAdapter,
		todos:         todos,
		folders:       folders,
	}
}

// Register handles user registration.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if req.Email == "" || req.Password == "" {
		return badRequest(c, "Email and password are required")
	}

	authReq := auth.RegisterRequest{
		Email:    req.Email,
		Password: req.Password,
	}
	var resp auth.RegisterResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.authContainer,
		"register",
		json.Marshal,
		json.Unmarshal,
		&authReq,
		&resp,
	); err != nil {
		return h.handleAuthError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(UserResponse{
		ID:        resp.ID,
		Email:     resp.Email,
		CreatedAt: resp.CreatedAt,
	})
}

// Login handles user login.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if req.Email == "" || req.Password == "" {
		return badRequest(c, "Email and password are required")
	}

	authReq := auth.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	}
	var resp auth.LoginResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.authContainer,
		"login",
		json.Marshal,
		json.Unmarshal,
		&authReq,
		&resp,
	); err != nil {
		return h.handleAuthError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(TokenResponse{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
		TokenType:    resp.TokenType,
	})
}

// Refresh handles token refresh.
func (h *Handlers) Refresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if req.RefreshToken == "" {
		return badRequest(c, "Refresh token is required")
	}

	authReq := auth.RefreshRequest{
		RefreshToken: req.RefreshToken,
	}
	var resp auth.RefreshResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.authContainer,
		"refresh-token",
		json.Marshal,
		json.Unmarshal,
		&authReq,
		&resp,
	); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "Invalid or expired refresh token",
		})
	}

	return c.Status(fiber.StatusOK).JSON(TokenResponse{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
		TokenType:    resp.TokenType,
	})
}

// Profile handles getting the current user's profile.
func (h *Handlers) Profile(c *fiber.Ctx) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	user, err := h.authAdapter.GetUser(c.UserContext(), claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to retrieve user profile",
		})
	}

	return c.Status(fiber.StatusOK).JSON(ProfileResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}

// CreateEntity handles creating a task or a folder.
func (h *Handlers) CreateEntity(c *fiber.Ctx) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	var req CreateEntityRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.todos.CreateEntity(c.UserContext(), &todo.CreateEntityRequest{
		Type:     req.Type,
		Title:    req.Title,
		Status:   req.Status,
		DueDate:  req.DueDate,
		FolderID: req.FolderID,
		UserID:   claims.UserID,
	})
	if err != nil {
		return h.handleDomainError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListAll handles listing all tasks and folders owned by the current user.
func (h *Handlers) ListAll(c *fiber.Ctx) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	resp, err := h.todos.ListAll(c.UserContext(), claims.UserID)
	if err != nil {
		return h.handleDomainError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// ListUnfiled handles listing tasks that belong to no folder.
func (h *Handlers) ListUnfiled(c *fiber.Ctx) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	resp, err := h.todos.ListUnfiled(c.UserContext(), claims.UserID)
	if err != nil {
		return h.handleDomainError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// GetEntity handles the polymorphic lookup of a task or folder by id.
func (h *Handlers) GetEntity(c *fiber.Ctx) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	resp, err := h.todos.GetByID(c.UserContext(), claims.UserID, c.Params("id"))
	if err != nil {
		return h.handleDomainError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// UpdateEntity handles a partial update of whichever record the id resolves to.
func (h *Handlers) UpdateEntity(c *fiber.Ctx) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	var req UpdateEntityRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.todos.UpdateByID(c.UserContext(), &todo.UpdateEntityRequest{
		ID:     c.Params("id"),
		UserID: claims.UserID,
		Title:  req.Title,
		Status: req.Status,
	})
	if err != nil {
		return h.handleDomainError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// DeleteEntity handles the hintless polymorphic delete. The path segment
// must be a well-formed UUID before any lookup happens.
func (h *Handlers) DeleteEntity(c *fiber.Ctx) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	id := c.Params("id")
	if uuid.Validate(id) != nil {
		return badRequest(c, "Invalid identifier")
	}

	resp, err := h.todos.DeleteByID(c.UserContext(), &todo.DeleteEntityRequest{
		ID:     id,
		UserID: claims.UserID,
	})
	if err != nil {
		return h.handleDomainError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// DeleteEntityWithHint handles a delete whose path names the record kind.
func (h *Handlers) DeleteEntityWithHint(c *fiber.Ctx) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	resp, err := h.todos.DeleteByID(c.UserContext(), &todo.DeleteEntityRequest{
		ID:       c.Params("id"),
		UserID:   claims.UserID,
		TypeHint: c.Params("kind"),
	})
	if err != nil {
		return h.handleDomainError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// GetFolder handles getting a folder together with its resolved tasks.
func (h *Handlers) GetFolder(c *fiber.Ctx) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	resp, err := h.folders.GetWithTasks(c.UserContext(), claims.UserID, c.Params("id"))
	if err != nil {
		return h.handleDomainError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// ListFolderTasks handles listing the tasks under one folder.
func (h *Handlers) ListFolderTasks(c *fiber.Ctx) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	resp, err := h.todos.ListByFolder(c.UserContext(), claims.UserID, c.Params("id"))
	if err != nil {
		return h.handleDomainError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// AddFolderTask handles creating a task directly under a folder.
func (h *Handlers) AddFolderTask(c *fiber.Ctx) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	var req AddTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.folders.AddTask(c.UserContext(), &folder.AddTaskRequest{
		FolderID: c.Params("id"),
		UserID:   claims.UserID,
		Title:    req.Title,
		DueDate:  req.DueDate,
	})
	if err != nil {
		return h.handleDomainError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ResetFolder handles resetting every task in a folder back to pending.
func (h *Handlers) ResetFolder(c *fiber.Ctx) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	resp, err := h.folders.ResetProgress(c.UserContext(), claims.UserID, c.Params("id"))
	if err != nil {
		return h.handleDomainError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(ConfirmationResponse{
		Message:  "folder progress reset",
		Affected: resp.Affected,
	})
}

// ClearFolder handles removing every task from a folder.
func (h *Handlers) ClearFolder(c *fiber.Ctx) error {
	claims, err := currentUser(c)
	if err != nil {
		return err
	}

	resp, err := h.folders.ClearProgress(c.UserContext(), claims.UserID, c.Params("id"))
	if err != nil {
		return h.handleDomainError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(ConfirmationResponse{
		Message:  "folder tasks cleared",
		Affected: resp.Affected,
	})
}

// currentUser extracts the authenticated user's claims from the request
// context, set earlier by the auth middleware.
func currentUser(c *fiber.Ctx) (*domain.Claims, error) {
	claims, ok := c.Locals(UserContextKey).(*domain.Claims)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "User not authenticated")
	}
	return claims, nil
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "bad_request",
		Message: message,
	})
}

// handleAuthError handles authentication errors and returns appropriate responses.
// It matches error messages to provide user-friendly responses without exposing internals.
func (h *Handlers) handleAuthError(c *fiber.Ctx, err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "invalid email or password"):
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "Invalid email or password",
		})
	case strings.Contains(errStr, "user with this email already exists"):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
			Error:   "conflict",
			Message: "User with this email already exists",
		})
	case strings.Contains(errStr, "invalid email format"):
		return badRequest(c, "Invalid email format")
	case strings.Contains(errStr, "password must be at least"):
		return badRequest(c, "Password must be at least 8 characters")
	case strings.Contains(errStr, "password must be at most"):
		return badRequest(c, "Password must be at most 72 characters")
	default:
		log.Printf("[api] Internal error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		})
	}
}

// handleDomainError maps task, folder and orchestrator errors to HTTP
// responses. Errors cross the service bus as strings, so matching is done
// on known messages rather than sentinel values.
func (h *Handlers) handleDomainError(c *fiber.Ctx, err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "not found"):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: "Record not found",
		})
	case strings.Contains(errStr, "title is required"),
		strings.Contains(errStr, "name is required"):
		return badRequest(c, "Title is required")
	case strings.Contains(errStr, "invalid status value"):
		return badRequest(c, "Invalid status value")
	case strings.Contains(errStr, "invalid due date format"):
		return badRequest(c, "Invalid due date format, expected YYYY-MM-DD")
	case strings.Contains(errStr, "invalid entity type"):
		return badRequest(c, "Invalid entity type, expected task or folder")
	case strings.Contains(errStr, "invalid identifier"):
		return badRequest(c, "Invalid identifier")
	case strings.Contains(errStr, "no fields to update"):
		return badRequest(c, "No fields to update")
	default:
		log.Printf("[api] Internal error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		})
	}
}
