package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/example/todo-folders-demo/modules/api"
	"github.com/example/todo-folders-demo/modules/auth"
	"github.com/example/todo-folders-demo/modules/folder"
	"github.com/example/todo-folders-demo/modules/task"
	"github.com/example/todo-folders-demo/modules/todo"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== Todo & Folders Demo ===")

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Register modules with the framework
	// Order: independent modules first, then dependent modules
	app.Register(auth.NewModule())   // Independent module (identity and tokens)
	app.Register(task.NewModule())   // Independent module (task storage)
	app.Register(folder.NewModule()) // Depends on task
	app.Register(todo.NewModule())   // Orchestrator, depends on task and folder
	app.Register(api.NewModule())    // HTTP transport, depends on auth, todo, folder

	// Start application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo()

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo() {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Println("Patterns Demonstrated:")
	log.Println("  - Per-module SQLite storage with GORM")
	log.Println("  - Request-reply services between modules")
	log.Println("  - Polymorphic id dispatch across record kinds")
	log.Println("  - Cascade delete with a denormalized membership cache")
	log.Println("  - JWT authentication with access + refresh tokens")
	log.Println("")
	log.Println("REST API Endpoints (http://localhost:3000):")
	log.Println("")
	log.Println("  Public Endpoints:")
	log.Println("  POST   /api/v1/auth/register        - Register a new user")
	log.Println("  POST   /api/v1/auth/login           - Login and get tokens")
	log.Println("  POST   /api/v1/auth/refresh         - Refresh access token")
	log.Println("  GET    /health                      - Health check")
	log.Println("")
	log.Println("  Protected Endpoints (require Bearer token):")
	log.Println("  GET    /api/v1/profile              - Get current user profile")
	log.Println("  POST   /api/v1/todos                - Create a task or folder")
	log.Println("  GET    /api/v1/todos                - List all tasks and folders")
	log.Println("  GET    /api/v1/todos/unfiled        - List tasks outside any folder")
	log.Println("  GET    /api/v1/todos/:id            - Get a task or folder by id")
	log.Println("  PATCH  /api/v1/todos/:id            - Update a task or folder")
	log.Println("  DELETE /api/v1/todos/:id            - Delete by id (task, then folder)")
	log.Println("  DELETE /api/v1/todos/:kind/:id      - Delete with an explicit kind")
	log.Println("  GET    /api/v1/folders/:id          - Get a folder with its tasks")
	log.Println("  GET    /api/v1/folders/:id/tasks    - List tasks in a folder")
	log.Println("  POST   /api/v1/folders/:id/tasks    - Add a task to a folder")
	log.Println("  POST   /api/v1/folders/:id/reset    - Reset folder tasks to pending")
	log.Println("  POST   /api/v1/folders/:id/clear    - Delete all tasks in a folder")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
