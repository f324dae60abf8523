package activity

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/example/task-manager-api/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/google/uuid"
)

// maxEntries bounds the in-memory feed; older entries are dropped.
const maxEntries = 1000

// Entry is one recorded domain event.
type Entry struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	UserID    string    `json:"user_id"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// ActivityModule keeps an in-memory activity feed fed by planner domain
// events.
type ActivityModule struct {
	mu      sync.RWMutex
	entries []Entry
}

var _ mono.Module = (*ActivityModule)(nil)
var _ mono.EventConsumerModule = (*ActivityModule)(nil)

// NewModule creates a new ActivityModule.
func NewModule() *ActivityModule {
	return &ActivityModule{
		entries: make([]Entry, 0),
	}
}

// Name returns the module name.
func (m *ActivityModule) Name() string {
	return "activity"
}

// RegisterEventConsumers subscribes to the planner's domain events.
func (m *ActivityModule) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskCreatedV1, m.handleTaskCreated, m); err != nil {
		return fmt.Errorf("failed to register TaskCreated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskCompletedV1, m.handleTaskCompleted, m); err != nil {
		return fmt.Errorf("failed to register TaskCompleted consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskDeletedV1, m.handleTaskDeleted, m); err != nil {
		return fmt.Errorf("failed to register TaskDeleted consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.CategoryDeletedV1, m.handleCategoryDeleted, m); err != nil {
		return fmt.Errorf("failed to register CategoryDeleted consumer: %w", err)
	}

	log.Printf("[activity] Registered event consumers: TaskCreated, TaskCompleted, TaskDeleted, CategoryDeleted")
	return nil
}

// Start starts the module.
func (m *ActivityModule) Start(_ context.Context) error {
	log.Println("[activity] Module started")
	return nil
}

// Stop stops the module.
func (m *ActivityModule) Stop(_ context.Context) error {
	log.Println("[activity] Module stopped")
	return nil
}

func (m *ActivityModule) handleTaskCreated(_ context.Context, event events.TaskCreatedEvent, _ *mono.Msg) error {
	m.record("task_created", event.UserID, fmt.Sprintf("Task '%s' created in category %s", event.Title, event.CategoryID))
	return nil
}

func (m *ActivityModule) handleTaskCompleted(_ context.Context, event events.TaskCompletedEvent, _ *mono.Msg) error {
	m.record("task_completed", event.UserID, fmt.Sprintf("Task %s completed", event.TaskID))
	return nil
}

func (m *ActivityModule) handleTaskDeleted(_ context.Context, event events.TaskDeletedEvent, _ *mono.Msg) error {
	m.record("task_deleted", event.UserID, fmt.Sprintf("Task %s deleted", event.TaskID))
	return nil
}

func (m *ActivityModule) handleCategoryDeleted(_ context.Context, event events.CategoryDeletedEvent, _ *mono.Msg) error {
	m.record("category_deleted", event.UserID,
		fmt.Sprintf("Category '%s' deleted along with %d task(s)", event.Name, event.TasksRemoved))
	return nil
}

// record appends an entry to the feed, trimming it to maxEntries.
func (m *ActivityModule) record(entryType, userID, message string) {
	log.Printf("[activity] %s: %s", entryType, message)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = append(m.entries, Entry{
		ID:        uuid.New().String(),
		Type:      entryType,
		UserID:    userID,
		Message:   message,
		Timestamp: time.Now(),
	})
	if len(m.entries) > maxEntries {
		m.entries = m.entries[len(m.entries)-maxEntries:]
	}
}

// Recent returns up to n most recent entries, newest first.
func (m *ActivityModule) Recent(n int) []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if n <= 0 || n > len(m.entries) {
		n = len(m.entries)
	}

	out := make([]Entry, 0, n)
	for i := len(m.entries) - 1; i >= len(m.entries)-n; i-- {
		out = append(out, m.entries[i])
	}
	return out
}
