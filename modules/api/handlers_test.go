package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	domain "github.com/example/todo-folders-demo/domain/user"
	"github.com/example/todo-folders-demo/modules/folder"
	"github.com/example/todo-folders-demo/modules/task"
	"github.com/example/todo-folders-demo/modules/todo"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// stubTodoPort implements todo.TodoPort with canned responses.
type stubTodoPort struct {
	deleteErr   error
	getErr      error
	deleteCalls int
}

func (s *stubTodoPort) CreateEntity(context.Context, *todo.CreateEntityRequest) (*todo.EntityResponse, error) {
	return &todo.EntityResponse{Kind: todo.KindTask, Task: &task.TaskResponse{ID: "t1"}}, nil
}

func (s *stubTodoPort) GetByID(context.Context, string, string) (*todo.EntityResponse, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return &todo.EntityResponse{Kind: todo.KindTask, Task: &task.TaskResponse{ID: "t1"}}, nil
}

func (s *stubTodoPort) UpdateByID(context.Context, *todo.UpdateEntityRequest) (*todo.EntityResponse, error) {
	return &todo.EntityResponse{}, nil
}

func (s *stubTodoPort) DeleteByID(context.Context, *todo.DeleteEntityRequest) (*todo.DeleteEntityResponse, error) {
	s.deleteCalls++
	if s.deleteErr != nil {
		return nil, s.deleteErr
	}
	return &todo.DeleteEntityResponse{Kind: todo.KindTask, Message: "task deleted"}, nil
}

func (s *stubTodoPort) ListAll(context.Context, string) (*todo.ListAllResponse, error) {
	return &todo.ListAllResponse{
		Tasks:   []task.TaskResponse{},
		Folders: []folder.FolderResponse{},
	}, nil
}

func (s *stubTodoPort) ListByFolder(context.Context, string, string) (*task.ListTasksResponse, error) {
	return &task.ListTasksResponse{}, nil
}

func (s *stubTodoPort) ListUnfiled(context.Context, string) (*task.ListTasksResponse, error) {
	return &task.ListTasksResponse{}, nil
}

// setupHandlerApp builds a fiber app with the claims already injected, so
// handler behavior can be tested without real tokens.
func setupHandlerApp(todos todo.TodoPort) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(UserContextKey, &domain.Claims{UserID: "user-1", Email: "test@example.com"})
		return c.Next()
	})

	h := NewHandlers(nil, &mockAuthPort{}, todos, nil)
	app.Get("/todos/:id", h.GetEntity)
	app.Delete("/todos/:id", h.DeleteEntity)
	app.Delete("/todos/:kind/:id", h.DeleteEntityWithHint)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path string) (int, string) {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("io.ReadAll() error = %v", err)
	}
	return resp.StatusCode, string(body)
}

func TestDeleteEntity_MalformedID(t *testing.T) {
	stub := &stubTodoPort{}
	app := setupHandlerApp(stub)

	status, body := doRequest(t, app, "DELETE", "/todos/not-a-uuid")
	if status != http.StatusBadRequest {
		t.Errorf("status = %v, want %v", status, http.StatusBadRequest)
	}
	if !strings.Contains(body, "Invalid identifier") {
		t.Errorf("body = %v, want invalid identifier message", body)
	}
	if stub.deleteCalls != 0 {
		t.Error("malformed id must be rejected before any lookup")
	}
}

func TestDeleteEntity_ValidID(t *testing.T) {
	stub := &stubTodoPort{}
	app := setupHandlerApp(stub)

	status, body := doRequest(t, app, "DELETE", "/todos/"+uuid.New().String())
	if status != http.StatusOK {
		t.Errorf("status = %v, want %v", status, http.StatusOK)
	}
	if !strings.Contains(body, "task deleted") {
		t.Errorf("body = %v, want delete confirmation", body)
	}
	if stub.deleteCalls != 1 {
		t.Errorf("expected 1 delete call, got %d", stub.deleteCalls)
	}
}

func TestDeleteEntityWithHint_PassesKind(t *testing.T) {
	stub := &stubTodoPort{deleteErr: todo.ErrInvalidEntityType}
	app := setupHandlerApp(stub)

	status, body := doRequest(t, app, "DELETE", "/todos/note/"+uuid.New().String())
	if status != http.StatusBadRequest {
		t.Errorf("status = %v, want %v", status, http.StatusBadRequest)
	}
	if !strings.Contains(body, "Invalid entity type") {
		t.Errorf("body = %v, want entity type message", body)
	}
}

func TestGetEntity_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "not found maps to 404",
			err:        todo.ErrRecordNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   "not_found",
		},
		{
			name:       "unknown error is opaque",
			err:        context.DeadlineExceeded,
			wantStatus: http.StatusInternalServerError,
			wantBody:   "An internal error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := setupHandlerApp(&stubTodoPort{getErr: tt.err})

			status, body := doRequest(t, app, "GET", "/todos/"+uuid.New().String())
			if status != tt.wantStatus {
				t.Errorf("status = %v, want %v", status, tt.wantStatus)
			}
			if !strings.Contains(body, tt.wantBody) {
				t.Errorf("body = %v, want to contain %v", body, tt.wantBody)
			}
		})
	}
}
