// Package events defines the typed domain events published on the mono
// event bus.
package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
)

// TaskCreatedEvent is emitted when a new task is created.
type TaskCreatedEvent struct {
	TaskID     string    `json:"task_id"`
	Title      string    `json:"title"`
	CategoryID string    `json:"category_id"`
	UserID     string    `json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// TaskCreatedV1 is the typed event definition for task creation.
// Subject: events.planner.v1.task-created
var TaskCreatedV1 = helper.EventDefinition[TaskCreatedEvent](
	"planner", "TaskCreated", "v1",
)

// TaskCompletedEvent is emitted when a task transitions to completed.
type TaskCompletedEvent struct {
	TaskID      string    `json:"task_id"`
	CategoryID  string    `json:"category_id"`
	UserID      string    `json:"user_id"`
	CompletedAt time.Time `json:"completed_at"`
}

// TaskCompletedV1 is the typed event definition for task completion.
// Subject: events.planner.v1.task-completed
var TaskCompletedV1 = helper.EventDefinition[TaskCompletedEvent](
	"planner", "TaskCompleted", "v1",
)

// TaskDeletedEvent is emitted when a task is deleted.
type TaskDeletedEvent struct {
	TaskID     string    `json:"task_id"`
	CategoryID string    `json:"category_id"`
	UserID     string    `json:"user_id"`
	DeletedAt  time.Time `json:"deleted_at"`
}

// TaskDeletedV1 is the typed event definition for task deletion.
// Subject: events.planner.v1.task-deleted
var TaskDeletedV1 = helper.EventDefinition[TaskDeletedEvent](
	"planner", "TaskDeleted", "v1",
)

// CategoryDeletedEvent is emitted when a category is deleted along with
// its tasks.
type CategoryDeletedEvent struct {
	CategoryID   string    `json:"category_id"`
	Name         string    `json:"name"`
	UserID       string    `json:"user_id"`
	TasksRemoved int       `json:"tasks_removed"`
	DeletedAt    time.Time `json:"deleted_at"`
}

// CategoryDeletedV1 is the typed event definition for category deletion.
// Subject: events.planner.v1.category-deleted
var CategoryDeletedV1 = helper.EventDefinition[CategoryDeletedEvent](
	"planner", "CategoryDeleted", "v1",
)
