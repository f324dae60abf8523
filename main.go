package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/example/task-manager-api/modules/activity"
	"github.com/example/task-manager-api/modules/api"
	"github.com/example/task-manager-api/modules/auth"
	"github.com/example/task-manager-api/modules/planner"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== Task Manager API ===")

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
	app.Register(auth.NewModule())     // Independent module (provides auth services)
	app.Register(activity.NewModule()) // Independent module (consumes planner events)
	app.Register(planner.NewModule())  // Independent module (provides category/task services)
	app.Register(api.NewModule())      // Depends on auth and planner modules

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
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Printf("REST API Endpoints (http://localhost:%s):", port)
	log.Println("")
	log.Println("  Public Endpoints:")
	log.Println("  POST   /api/register   - Register a new user")
	log.Println("  POST   /api/login      - Login and get a token")
	log.Println("  GET    /health         - Health check")
	log.Println("")
	log.Println("  Protected Endpoints (require Bearer token):")
	log.Println("  GET    /api/logout     - Revoke the presented token")
	log.Println("  GET    /api/refresh    - Exchange the token for a fresh one")
	log.Println("  GET    /api/profile    - Get current user profile")
	log.Println("")
	log.Println("  GET    /api/v1/categories                                - List categories")
	log.Println("  POST   /api/v1/categories                                - Create a category")
	log.Println("  GET    /api/v1/categories/:categoryId                    - Get a category")
	log.Println("  PUT    /api/v1/categories/:categoryId                    - Update a category")
	log.Println("  DELETE /api/v1/categories/:categoryId                    - Delete a category and its tasks")
	log.Println("")
	log.Println("  GET    /api/v1/categories/:categoryId/tasks              - List tasks in a category")
	log.Println("  POST   /api/v1/categories/:categoryId/tasks              - Create a task")
	log.Println("  GET    /api/v1/categories/:categoryId/tasks/:taskId      - Get a task")
	log.Println("  PUT    /api/v1/categories/:categoryId/tasks/:taskId      - Update a task")
	log.Println("  DELETE /api/v1/categories/:categoryId/tasks/:taskId      - Delete a task")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
