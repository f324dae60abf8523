package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	categorydomain "github.com/example/task-manager-api/domain/category"
	taskdomain "github.com/example/task-manager-api/domain/task"
	"github.com/example/task-manager-api/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PlannerModule owns category and task persistence. Both tables live in
// one database so category deletion can cascade in a single transaction.
type PlannerModule struct {
	db         *gorm.DB
	categories *CategoryRepository
	tasks      *TaskRepository
	eventBus   mono.EventBus
	dbPath     string
}

// Compile-time interface checks.
var _ mono.Module = (*PlannerModule)(nil)
var _ mono.ServiceProviderModule = (*PlannerModule)(nil)
var _ mono.EventEmitterModule = (*PlannerModule)(nil)
var _ mono.HealthCheckableModule = (*PlannerModule)(nil)

// NewModule creates a new PlannerModule.
func NewModule() *PlannerModule {
	dbPath := os.Getenv("PLANNER_DB_PATH")
	if dbPath == "" {
		dbPath = "planner.db"
	}
	return &PlannerModule{
		dbPath: dbPath,
	}
}

// Name returns the module name.
func (m *PlannerModule) Name() string {
	return "planner"
}

// SetEventBus receives the application event bus.
func (m *PlannerModule) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module publishes.
func (m *PlannerModule) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.TaskCreatedV1.ToBase(),
		events.TaskCompletedV1.ToBase(),
		events.TaskDeletedV1.ToBase(),
		events.CategoryDeletedV1.ToBase(),
	}
}

// Start initializes the planner database and repositories.
func (m *PlannerModule) Start(_ context.Context) error {
	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	if err := db.AutoMigrate(&categorydomain.Category{}, &taskdomain.Task{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	m.categories = NewCategoryRepository(db)
	m.tasks = NewTaskRepository(db)

	if m.eventBus == nil {
		log.Println("[planner] Warning: eventBus not set, events will not be published")
	}

	log.Printf("[planner] Module started (database: %s)", m.dbPath)
	return nil
}

// Stop shuts down the module.
func (m *PlannerModule) Stop(_ context.Context) error {
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[planner] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *PlannerModule) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get database connection: %v", err),
		}
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"database": m.dbPath,
		},
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *PlannerModule) RegisterServices(container mono.ServiceContainer) error {
	registrations := []struct {
		name     string
		register func() error
	}{
		{"create-category", func() error {
			return helper.RegisterTypedRequestReplyService(container, "create-category", json.Unmarshal, json.Marshal, m.createCategory)
		}},
		{"get-category", func() error {
			return helper.RegisterTypedRequestReplyService(container, "get-category", json.Unmarshal, json.Marshal, m.getCategory)
		}},
		{"list-categories", func() error {
			return helper.RegisterTypedRequestReplyService(container, "list-categories", json.Unmarshal, json.Marshal, m.listCategories)
		}},
		{"update-category", func() error {
			return helper.RegisterTypedRequestReplyService(container, "update-category", json.Unmarshal, json.Marshal, m.updateCategory)
		}},
		{"delete-category", func() error {
			return helper.RegisterTypedRequestReplyService(container, "delete-category", json.Unmarshal, json.Marshal, m.deleteCategory)
		}},
		{"create-task", func() error {
			return helper.RegisterTypedRequestReplyService(container, "create-task", json.Unmarshal, json.Marshal, m.createTask)
		}},
		{"get-task", func() error {
			return helper.RegisterTypedRequestReplyService(container, "get-task", json.Unmarshal, json.Marshal, m.getTask)
		}},
		{"list-tasks", func() error {
			return helper.RegisterTypedRequestReplyService(container, "list-tasks", json.Unmarshal, json.Marshal, m.listTasks)
		}},
		{"update-task", func() error {
			return helper.RegisterTypedRequestReplyService(container, "update-task", json.Unmarshal, json.Marshal, m.updateTask)
		}},
		{"delete-task", func() error {
			return helper.RegisterTypedRequestReplyService(container, "delete-task", json.Unmarshal, json.Marshal, m.deleteTask)
		}},
	}

	for _, r := range registrations {
		if err := r.register(); err != nil {
			return fmt.Errorf("failed to register %s service: %w", r.name, err)
		}
	}

	log.Printf("[planner] Registered services: category {create,get,list,update,delete}, task {create,get,list,update,delete}")
	return nil
}
