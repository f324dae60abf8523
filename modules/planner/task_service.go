package planner

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	categorydomain "github.com/example/task-manager-api/domain/category"
	taskdomain "github.com/example/task-manager-api/domain/task"
	"github.com/example/task-manager-api/events"
	"github.com/go-monolith/mono"
	"github.com/google/uuid"
)

var (
	// ErrTitleRequired is returned when a task title is missing.
	ErrTitleRequired = errors.New("title is required")
	// ErrTitleTooLong is returned when a title exceeds the column limit.
	ErrTitleTooLong = errors.New("title must be at most 255 characters")
	// ErrInvalidPriority is returned for a priority outside low/medium/high.
	ErrInvalidPriority = errors.New("invalid priority")
	// ErrInvalidStatus is returned for a status outside
	// pending/in_progress/completed.
	ErrInvalidStatus = errors.New("invalid status")
)

// createTask handles the create-task service request. The task's category
// and pending status are forced server-side regardless of the client body.
func (m *PlannerModule) createTask(_ context.Context, req CreateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	category, err := m.ownedCategory(req.CategoryID, req.UserID)
	if err != nil {
		return TaskResponse{}, err
	}

	if req.Title == "" {
		return TaskResponse{}, ErrTitleRequired
	}
	if len(req.Title) > 255 {
		return TaskResponse{}, ErrTitleTooLong
	}
	if len(req.Description) > 1000 {
		return TaskResponse{}, ErrDescriptionTooLong
	}

	priority := taskdomain.PriorityMedium
	if req.Priority != "" {
		priority = taskdomain.Priority(req.Priority)
		if !taskdomain.ValidPriority(priority) {
			return TaskResponse{}, ErrInvalidPriority
		}
	}

	now := time.Now()
	task := &taskdomain.Task{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    priority,
		Status:      taskdomain.StatusPending,
		CategoryID:  category.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := m.tasks.Create(task); err != nil {
		return TaskResponse{}, fmt.Errorf("failed to save task: %w", err)
	}

	if m.eventBus != nil {
		event := events.TaskCreatedEvent{
			TaskID:     task.ID,
			Title:      task.Title,
			CategoryID: task.CategoryID,
			UserID:     category.UserID,
			CreatedAt:  task.CreatedAt,
		}
		if err := events.TaskCreatedV1.Publish(m.eventBus, event, nil); err != nil {
			log.Printf("[planner] Warning: failed to publish TaskCreated event for task %s: %v", task.ID, err)
		}
	}

	return toTaskResponse(task), nil
}

// getTask handles the get-task service request.
func (m *PlannerModule) getTask(_ context.Context, req GetTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	_, task, err := m.taskInCategory(req.TaskID, req.CategoryID, req.UserID)
	if err != nil {
		return TaskResponse{}, err
	}
	return toTaskResponse(task), nil
}

// listTasks handles the list-tasks service request.
func (m *PlannerModule) listTasks(_ context.Context, req ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	category, err := m.ownedCategory(req.CategoryID, req.UserID)
	if err != nil {
		return ListTasksResponse{}, err
	}

	tasks, err := m.tasks.FindByCategory(category.ID)
	if err != nil {
		return ListTasksResponse{}, err
	}

	response := ListTasksResponse{
		Tasks: make([]TaskResponse, 0, len(tasks)),
		Total: len(tasks),
	}
	for _, task := range tasks {
		response.Tasks = append(response.Tasks, toTaskResponse(task))
	}
	return response, nil
}

// updateTask handles the update-task service request. Nil fields are left
// unchanged; a transition into completed publishes TaskCompleted.
func (m *PlannerModule) updateTask(_ context.Context, req UpdateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	category, task, err := m.taskInCategory(req.TaskID, req.CategoryID, req.UserID)
	if err != nil {
		return TaskResponse{}, err
	}

	wasCompleted := task.Status == taskdomain.StatusCompleted

	if req.Title != nil {
		if *req.Title == "" {
			return TaskResponse{}, ErrTitleRequired
		}
		if len(*req.Title) > 255 {
			return TaskResponse{}, ErrTitleTooLong
		}
		task.Title = *req.Title
	}
	if req.Description != nil {
		if len(*req.Description) > 1000 {
			return TaskResponse{}, ErrDescriptionTooLong
		}
		task.Description = *req.Description
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.Priority != nil {
		priority := taskdomain.Priority(*req.Priority)
		if !taskdomain.ValidPriority(priority) {
			return TaskResponse{}, ErrInvalidPriority
		}
		task.Priority = priority
	}
	if req.Status != nil {
		status := taskdomain.Status(*req.Status)
		if !taskdomain.ValidStatus(status) {
			return TaskResponse{}, ErrInvalidStatus
		}
		task.Status = status
	}
	task.UpdatedAt = time.Now()

	if err := m.tasks.Save(task); err != nil {
		return TaskResponse{}, fmt.Errorf("failed to update task: %w", err)
	}

	if m.eventBus != nil && !wasCompleted && task.Status == taskdomain.StatusCompleted {
		event := events.TaskCompletedEvent{
			TaskID:      task.ID,
			CategoryID:  task.CategoryID,
			UserID:      category.UserID,
			CompletedAt: task.UpdatedAt,
		}
		if err := events.TaskCompletedV1.Publish(m.eventBus, event, nil); err != nil {
			log.Printf("[planner] Warning: failed to publish TaskCompleted event for task %s: %v", task.ID, err)
		}
	}

	return toTaskResponse(task), nil
}

// deleteTask handles the delete-task service request and returns the
// deleted task's last-known representation.
func (m *PlannerModule) deleteTask(_ context.Context, req DeleteTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	category, task, err := m.taskInCategory(req.TaskID, req.CategoryID, req.UserID)
	if err != nil {
		return TaskResponse{}, err
	}

	if err := m.tasks.Delete(task.ID); err != nil {
		return TaskResponse{}, err
	}

	if m.eventBus != nil {
		event := events.TaskDeletedEvent{
			TaskID:     task.ID,
			CategoryID: task.CategoryID,
			UserID:     category.UserID,
			DeletedAt:  time.Now(),
		}
		if err := events.TaskDeletedV1.Publish(m.eventBus, event, nil); err != nil {
			log.Printf("[planner] Warning: failed to publish TaskDeleted event for task %s: %v", task.ID, err)
		}
	}

	return toTaskResponse(task), nil
}

// taskInCategory resolves the owned category first, then the task, and
// treats a task attached to a different category as missing.
func (m *PlannerModule) taskInCategory(taskID, categoryID, userID string) (*categorydomain.Category, *taskdomain.Task, error) {
	cat, err := m.ownedCategory(categoryID, userID)
	if err != nil {
		return nil, nil, err
	}

	t, err := m.tasks.FindByID(taskID)
	if err != nil {
		return nil, nil, err
	}
	if t.CategoryID != cat.ID {
		return nil, nil, ErrTaskNotFound
	}
	return cat, t, nil
}

// toTaskResponse converts a domain Task to a TaskResponse.
func toTaskResponse(task *taskdomain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		DueDate:     task.DueDate,
		Priority:    string(task.Priority),
		Status:      string(task.Status),
		CategoryID:  task.CategoryID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}
