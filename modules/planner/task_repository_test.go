package planner

import (
	"errors"
	"testing"
	"time"

	taskdomain "github.com/example/task-manager-api/domain/task"
)

func TestTaskRepository_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)

	task := newTask("cat-1", "Write report")
	if err := repo.Create(task); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	found, err := repo.FindByID(task.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if found.Title != "Write report" {
		t.Errorf("found.Title = %v, want Write report", found.Title)
	}
	if found.Status != taskdomain.StatusPending {
		t.Errorf("found.Status = %v, want pending", found.Status)
	}
}

func TestTaskRepository_FindByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)

	_, err := repo.FindByID("missing-id")
	if !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("FindByID() error = %v, want ErrTaskNotFound", err)
	}
}

func TestTaskRepository_FindByCategory(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)

	first := newTask("cat-1", "first")
	second := newTask("cat-1", "second")
	second.CreatedAt = first.CreatedAt.Add(time.Second)
	other := newTask("cat-2", "other")

	for _, task := range []*taskdomain.Task{second, first, other} {
		if err := repo.Create(task); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	tasks, err := repo.FindByCategory("cat-1")
	if err != nil {
		t.Fatalf("FindByCategory() error = %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("len(tasks) = %v, want 2", len(tasks))
	}
	if tasks[0].Title != "first" || tasks[1].Title != "second" {
		t.Errorf("tasks order = [%v, %v], want [first, second]", tasks[0].Title, tasks[1].Title)
	}
}

func TestTaskRepository_Save(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)

	task := newTask("cat-1", "Before")
	task.Description = "has description"
	due := time.Now().Add(24 * time.Hour)
	task.DueDate = &due
	if err := repo.Create(task); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	task.Title = "After"
	task.Description = "" // cleared, must still be written
	task.DueDate = nil    // cleared too
	task.Status = taskdomain.StatusCompleted
	task.UpdatedAt = time.Now()
	if err := repo.Save(task); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	found, err := repo.FindByID(task.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if found.Title != "After" {
		t.Errorf("found.Title = %v, want After", found.Title)
	}
	if found.Description != "" {
		t.Errorf("found.Description = %q, want empty", found.Description)
	}
	if found.DueDate != nil {
		t.Errorf("found.DueDate = %v, want nil", found.DueDate)
	}
	if found.Status != taskdomain.StatusCompleted {
		t.Errorf("found.Status = %v, want completed", found.Status)
	}
}

func TestTaskRepository_Save_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)

	ghost := newTask("cat-1", "Ghost")
	if err := repo.Save(ghost); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("Save() error = %v, want ErrTaskNotFound", err)
	}
}

func TestTaskRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)

	task := newTask("cat-1", "Doomed")
	if err := repo.Create(task); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := repo.Delete(task.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := repo.FindByID(task.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("FindByID() after delete error = %v, want ErrTaskNotFound", err)
	}

	if err := repo.Delete(task.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("Delete() of missing task error = %v, want ErrTaskNotFound", err)
	}
}
