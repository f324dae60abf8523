package planner

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// plannerAdapter wraps ServiceContainer for type-safe cross-module
// communication. It implements PlannerPort.
type plannerAdapter struct {
	container mono.ServiceContainer
}

// NewPlannerAdapter creates a new adapter for planner services.
// container is the ServiceContainer from the planner module received via
// SetDependencyServiceContainer.
func NewPlannerAdapter(container mono.ServiceContainer) PlannerPort {
	if container == nil {
		panic("planner adapter requires non-nil ServiceContainer")
	}
	return &plannerAdapter{container: container}
}

// call performs one request-reply round trip against a planner service.
func call[T any](ctx context.Context, a *plannerAdapter, service string, req any, resp *T) error {
	if err := helper.CallRequestReplyService(
		ctx, a.container, service, json.Marshal, json.Unmarshal, req, resp,
	); err != nil {
		return fmt.Errorf("%s service call failed: %w", service, err)
	}
	return nil
}

// CreateCategory creates a category via the create-category service.
func (a *plannerAdapter) CreateCategory(ctx context.Context, req *CreateCategoryRequest) (*CategoryResponse, error) {
	var resp CategoryResponse
	if err := call(ctx, a, "create-category", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetCategory fetches a category via the get-category service.
func (a *plannerAdapter) GetCategory(ctx context.Context, req *GetCategoryRequest) (*CategoryResponse, error) {
	var resp CategoryResponse
	if err := call(ctx, a, "get-category", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListCategories lists the user's categories via the list-categories
// service.
func (a *plannerAdapter) ListCategories(ctx context.Context, userID string) (*ListCategoriesResponse, error) {
	req := ListCategoriesRequest{UserID: userID}
	var resp ListCategoriesResponse
	if err := call(ctx, a, "list-categories", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateCategory updates a category via the update-category service.
func (a *plannerAdapter) UpdateCategory(ctx context.Context, req *UpdateCategoryRequest) (*CategoryResponse, error) {
	var resp CategoryResponse
	if err := call(ctx, a, "update-category", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteCategory deletes a category and its tasks via the delete-category
// service.
func (a *plannerAdapter) DeleteCategory(ctx context.Context, req *DeleteCategoryRequest) (*DeleteCategoryResponse, error) {
	var resp DeleteCategoryResponse
	if err := call(ctx, a, "delete-category", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateTask creates a task via the create-task service.
func (a *plannerAdapter) CreateTask(ctx context.Context, req *CreateTaskRequest) (*TaskResponse, error) {
	var resp TaskResponse
	if err := call(ctx, a, "create-task", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetTask fetches a task via the get-task service.
func (a *plannerAdapter) GetTask(ctx context.Context, req *GetTaskRequest) (*TaskResponse, error) {
	var resp TaskResponse
	if err := call(ctx, a, "get-task", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListTasks lists a category's tasks via the list-tasks service.
func (a *plannerAdapter) ListTasks(ctx context.Context, req *ListTasksRequest) (*ListTasksResponse, error) {
	var resp ListTasksResponse
	if err := call(ctx, a, "list-tasks", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateTask updates a task via the update-task service.
func (a *plannerAdapter) UpdateTask(ctx context.Context, req *UpdateTaskRequest) (*TaskResponse, error) {
	var resp TaskResponse
	if err := call(ctx, a, "update-task", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteTask deletes a task via the delete-task service.
func (a *plannerAdapter) DeleteTask(ctx context.Context, req *DeleteTaskRequest) (*TaskResponse, error) {
	var resp TaskResponse
	if err := call(ctx, a, "delete-task", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
