package planner

import (
	"context"
	"time"
)

// CreateCategoryRequest is the request for creating a category. UserID is
// always the authenticated user, never taken from the client body.
type CreateCategoryRequest struct {
	UserID      string `json:"user_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// GetCategoryRequest is the request for fetching a single category.
type GetCategoryRequest struct {
	CategoryID string `json:"category_id"`
	UserID     string `json:"user_id"`
}

// ListCategoriesRequest is the request for listing a user's categories.
type ListCategoriesRequest struct {
	UserID string `json:"user_id"`
}

// ListCategoriesResponse is the response for listing categories.
type ListCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
	Total      int                `json:"total"`
}

// UpdateCategoryRequest is the request for a partial category update.
// Nil fields are left unchanged.
type UpdateCategoryRequest struct {
	CategoryID  string  `json:"category_id"`
	UserID      string  `json:"user_id"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// DeleteCategoryRequest is the request for deleting a category and its
// tasks.
type DeleteCategoryRequest struct {
	CategoryID string `json:"category_id"`
	UserID     string `json:"user_id"`
}

// DeleteCategoryResponse carries the deleted category's last-known
// representation.
type DeleteCategoryResponse struct {
	Category     CategoryResponse `json:"category"`
	TasksRemoved int              `json:"tasks_removed"`
}

// CategoryResponse is the response for a single category.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateTaskRequest is the request for creating a task under a category.
// Status is always forced to pending server-side.
type CreateTaskRequest struct {
	CategoryID  string     `json:"category_id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Priority    string     `json:"priority,omitempty"`
}

// GetTaskRequest is the request for fetching a task within a category.
type GetTaskRequest struct {
	TaskID     string `json:"task_id"`
	CategoryID string `json:"category_id"`
	UserID     string `json:"user_id"`
}

// ListTasksRequest is the request for listing a category's tasks.
type ListTasksRequest struct {
	CategoryID string `json:"category_id"`
	UserID     string `json:"user_id"`
}

// ListTasksResponse is the response for listing tasks.
type ListTasksResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Total int            `json:"total"`
}

// UpdateTaskRequest is the request for a partial task update. Nil fields
// are left unchanged.
type UpdateTaskRequest struct {
	TaskID      string     `json:"task_id"`
	CategoryID  string     `json:"category_id"`
	UserID      string     `json:"user_id"`
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	Status      *string    `json:"status,omitempty"`
}

// DeleteTaskRequest is the request for deleting a task within a category.
type DeleteTaskRequest struct {
	TaskID     string `json:"task_id"`
	CategoryID string `json:"category_id"`
	UserID     string `json:"user_id"`
}

// TaskResponse is the response for a single task.
type TaskResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	CategoryID  string     `json:"category_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// PlannerPort defines the interface driving adapters (the HTTP API) use to
// reach the planner core.
type PlannerPort interface {
	CreateCategory(ctx context.Context, req *CreateCategoryRequest) (*CategoryResponse, error)
	GetCategory(ctx context.Context, req *GetCategoryRequest) (*CategoryResponse, error)
	ListCategories(ctx context.Context, userID string) (*ListCategoriesResponse, error)
	UpdateCategory(ctx context.Context, req *UpdateCategoryRequest) (*CategoryResponse, error)
	DeleteCategory(ctx context.Context, req *DeleteCategoryRequest) (*DeleteCategoryResponse, error)

	CreateTask(ctx context.Context, req *CreateTaskRequest) (*TaskResponse, error)
	GetTask(ctx context.Context, req *GetTaskRequest) (*TaskResponse, error)
	ListTasks(ctx context.Context, req *ListTasksRequest) (*ListTasksResponse, error)
	UpdateTask(ctx context.Context, req *UpdateTaskRequest) (*TaskResponse, error)
	DeleteTask(ctx context.Context, req *DeleteTaskRequest) (*TaskResponse, error)
}
