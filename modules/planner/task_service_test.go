package planner

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	taskdomain "github.com/example/task-manager-api/domain/task"
)

func mustCreateTask(t *testing.T, m *PlannerModule, categoryID, userID, title string) TaskResponse {
	t.Helper()

	resp, err := m.createTask(context.Background(), CreateTaskRequest{
		CategoryID: categoryID,
		UserID:     userID,
		Title:      title,
	}, nil)
	if err != nil {
		t.Fatalf("createTask() error = %v", err)
	}
	return resp
}

func TestPlannerModule_CreateTask(t *testing.T) {
	m := newTestModule(t)
	ctx := context.Background()

	category := mustCreateCategory(t, m, "user-1", "Work")

	due := time.Now().Add(48 * time.Hour).Truncate(time.Second)
	resp, err := m.createTask(ctx, CreateTaskRequest{
		CategoryID:  category.ID,
		UserID:      "user-1",
		Title:       "Write report",
		Description: "quarterly numbers",
		DueDate:     &due,
		Priority:    "high",
	}, nil)
	if err != nil {
		t.Fatalf("createTask() error = %v", err)
	}

	if resp.ID == "" {
		t.Error("createTask() returned empty ID")
	}
	if resp.Priority != "high" {
		t.Errorf("resp.Priority = %v, want high", resp.Priority)
	}
	// New tasks always start pending.
	if resp.Status != string(taskdomain.StatusPending) {
		t.Errorf("resp.Status = %v, want pending", resp.Status)
	}
	if resp.CategoryID != category.ID {
		t.Errorf("resp.CategoryID = %v, want %v", resp.CategoryID, category.ID)
	}
}

func TestPlannerModule_CreateTask_DefaultPriority(t *testing.T) {
	m := newTestModule(t)
	category := mustCreateCategory(t, m, "user-1", "Work")

	resp := mustCreateTask(t, m, category.ID, "user-1", "No priority given")
	if resp.Priority != string(taskdomain.PriorityMedium) {
		t.Errorf("resp.Priority = %v, want medium", resp.Priority)
	}
}

func TestPlannerModule_CreateTask_Validation(t *testing.T) {
	m := newTestModule(t)
	ctx := context.Background()
	category := mustCreateCategory(t, m, "user-1", "Work")

	tests := []struct {
		name    string
		req     CreateTaskRequest
		wantErr error
	}{
		{
			name:    "missing title",
			req:     CreateTaskRequest{CategoryID: category.ID, UserID: "user-1"},
			wantErr: ErrTitleRequired,
		},
		{
			name:    "title too long",
			req:     CreateTaskRequest{CategoryID: category.ID, UserID: "user-1", Title: strings.Repeat("a", 256)},
			wantErr: ErrTitleTooLong,
		},
		{
			name:    "invalid priority",
			req:     CreateTaskRequest{CategoryID: category.ID, UserID: "user-1", Title: "ok", Priority: "urgent"},
			wantErr: ErrInvalidPriority,
		},
		{
			name:    "category of another user",
			req:     CreateTaskRequest{CategoryID: category.ID, UserID: "user-2", Title: "ok"},
			wantErr: ErrCategoryForbidden,
		},
		{
			name:    "missing category",
			req:     CreateTaskRequest{CategoryID: "missing-id", UserID: "user-1", Title: "ok"},
			wantErr: ErrCategoryNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.createTask(ctx, tt.req, nil)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("createTask() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPlannerModule_GetTask_CategoryMatch(t *testing.T) {
	m := newTestModule(t)
	ctx := context.Background()

	category := mustCreateCategory(t, m, "user-1", "Work")
	otherCategory := mustCreateCategory(t, m, "user-1", "Home")
	task := mustCreateTask(t, m, category.ID, "user-1", "Write report")

	// Through the right category it resolves.
	resp, err := m.getTask(ctx, GetTaskRequest{TaskID: task.ID, CategoryID: category.ID, UserID: "user-1"}, nil)
	if err != nil {
		t.Fatalf("getTask() error = %v", err)
	}
	if resp.Title != "Write report" {
		t.Errorf("resp.Title = %v, want Write report", resp.Title)
	}

	// Through a different owned category the task is missing.
	_, err = m.getTask(ctx, GetTaskRequest{TaskID: task.ID, CategoryID: otherCategory.ID, UserID: "user-1"}, nil)
	if !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("getTask() through wrong category error = %v, want ErrTaskNotFound", err)
	}

	// Through someone else's eyes the category itself is refused.
	_, err = m.getTask(ctx, GetTaskRequest{TaskID: task.ID, CategoryID: category.ID, UserID: "user-2"}, nil)
	if !errors.Is(err, ErrCategoryForbidden) {
		t.Errorf("getTask() as other user error = %v, want ErrCategoryForbidden", err)
	}
}

func TestPlannerModule_ListTasks(t *testing.T) {
	m := newTestModule(t)
	ctx := context.Background()

	category := mustCreateCategory(t, m, "user-1", "Work")
	other := mustCreateCategory(t, m, "user-1", "Home")

	resp, err := m.listTasks(ctx, ListTasksRequest{CategoryID: category.ID, UserID: "user-1"}, nil)
	if err != nil {
		t.Fatalf("listTasks() error = %v", err)
	}
	if resp.Total != 0 {
		t.Errorf("resp.Total = %v, want 0", resp.Total)
	}

	mustCreateTask(t, m, category.ID, "user-1", "one")
	mustCreateTask(t, m, category.ID, "user-1", "two")
	mustCreateTask(t, m, other.ID, "user-1", "elsewhere")

	resp, err = m.listTasks(ctx, ListTasksRequest{CategoryID: category.ID, UserID: "user-1"}, nil)
	if err != nil {
		t.Fatalf("listTasks() error = %v", err)
	}
	if resp.Total != 2 {
		t.Errorf("resp.Total = %v, want 2", resp.Total)
	}

	_, err = m.listTasks(ctx, ListTasksRequest{CategoryID: category.ID, UserID: "user-2"}, nil)
	if !errors.Is(err, ErrCategoryForbidden) {
		t.Errorf("listTasks() as other user error = %v, want ErrCategoryForbidden", err)
	}
}

func TestPlannerModule_UpdateTask(t *testing.T) {
	m := newTestModule(t)
	ctx := context.Background()

	category := mustCreateCategory(t, m, "user-1", "Work")
	task := mustCreateTask(t, m, category.ID, "user-1", "Before")

	newTitle := "After"
	newStatus := string(taskdomain.StatusInProgress)
	resp, err := m.updateTask(ctx, UpdateTaskRequest{
		TaskID:     task.ID,
		CategoryID: category.ID,
		UserID:     "user-1",
		Title:      &newTitle,
		Status:     &newStatus,
	}, nil)
	if err != nil {
		t.Fatalf("updateTask() error = %v", err)
	}
	if resp.Title != "After" {
		t.Errorf("resp.Title = %v, want After", resp.Title)
	}
	if resp.Status != string(taskdomain.StatusInProgress) {
		t.Errorf("resp.Status = %v, want in_progress", resp.Status)
	}

	// Nil fields stay as they are.
	resp, err = m.updateTask(ctx, UpdateTaskRequest{
		TaskID:     task.ID,
		CategoryID: category.ID,
		UserID:     "user-1",
	}, nil)
	if err != nil {
		t.Fatalf("updateTask() error = %v", err)
	}
	if resp.Title != "After" || resp.Status != string(taskdomain.StatusInProgress) {
		t.Errorf("no-op update changed task: title=%v status=%v", resp.Title, resp.Status)
	}

	badStatus := "done"
	_, err = m.updateTask(ctx, UpdateTaskRequest{
		TaskID:     task.ID,
		CategoryID: category.ID,
		UserID:     "user-1",
		Status:     &badStatus,
	}, nil)
	if !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("updateTask() with bad status error = %v, want ErrInvalidStatus", err)
	}
}

func TestPlannerModule_DeleteTask(t *testing.T) {
	m := newTestModule(t)
	ctx := context.Background()

	category := mustCreateCategory(t, m, "user-1", "Work")
	task := mustCreateTask(t, m, category.ID, "user-1", "Doomed")

	resp, err := m.deleteTask(ctx, DeleteTaskRequest{TaskID: task.ID, CategoryID: category.ID, UserID: "user-1"}, nil)
	if err != nil {
		t.Fatalf("deleteTask() error = %v", err)
	}
	if resp.ID != task.ID {
		t.Errorf("resp.ID = %v, want %v", resp.ID, task.ID)
	}

	_, err = m.getTask(ctx, GetTaskRequest{TaskID: task.ID, CategoryID: category.ID, UserID: "user-1"}, nil)
	if !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("getTask() after delete error = %v, want ErrTaskNotFound", err)
	}

	_, err = m.deleteTask(ctx, DeleteTaskRequest{TaskID: task.ID, CategoryID: category.ID, UserID: "user-1"}, nil)
	if !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("deleteTask() of missing task error = %v, want ErrTaskNotFound", err)
	}
}
