package planner

import (
	"errors"
	"testing"
	"time"

	categorydomain "github.com/example/task-manager-api/domain/category"
	taskdomain "github.com/example/task-manager-api/domain/task"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&categorydomain.Category{}, &taskdomain.Task{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func newCategory(userID, name string) *categorydomain.Category {
	now := time.Now()
	return &categorydomain.Category{
		ID:          uuid.New().String(),
		Name:        name,
		Description: "test category",
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func newTask(categoryID, title string) *taskdomain.Task {
	now := time.Now()
	return &taskdomain.Task{
		ID:         uuid.New().String(),
		Title:      title,
		Priority:   taskdomain.PriorityMedium,
		Status:     taskdomain.StatusPending,
		CategoryID: categoryID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestCategoryRepository_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)

	category := newCategory("user-1", "Work")
	if err := repo.Create(category); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	found, err := repo.FindByID(category.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if found.Name != "Work" {
		t.Errorf("found.Name = %v, want Work", found.Name)
	}
	if found.UserID != "user-1" {
		t.Errorf("found.UserID = %v, want user-1", found.UserID)
	}
}

func TestCategoryRepository_FindByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)

	_, err := repo.FindByID("missing-id")
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("FindByID() error = %v, want ErrCategoryNotFound", err)
	}
}

func TestCategoryRepository_FindByUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)

	first := newCategory("user-1", "First")
	second := newCategory("user-1", "Second")
	second.CreatedAt = first.CreatedAt.Add(time.Second)
	other := newCategory("user-2", "Other")

	for _, c := range []*categorydomain.Category{second, first, other} {
		if err := repo.Create(c); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	categories, err := repo.FindByUser("user-1")
	if err != nil {
		t.Fatalf("FindByUser() error = %v", err)
	}

	if len(categories) != 2 {
		t.Fatalf("len(categories) = %v, want 2", len(categories))
	}
	// Ordered by creation, oldest first.
	if categories[0].Name != "First" || categories[1].Name != "Second" {
		t.Errorf("categories order = [%v, %v], want [First, Second]", categories[0].Name, categories[1].Name)
	}
}

func TestCategoryRepository_Save(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)

	category := newCategory("user-1", "Before")
	if err := repo.Create(category); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	category.Name = "After"
	category.Description = "" // cleared, must still be written
	category.UpdatedAt = time.Now()
	if err := repo.Save(category); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	found, err := repo.FindByID(category.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if found.Name != "After" {
		t.Errorf("found.Name = %v, want After", found.Name)
	}
	if found.Description != "" {
		t.Errorf("found.Description = %q, want empty", found.Description)
	}
}

func TestCategoryRepository_Save_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)

	ghost := newCategory("user-1", "Ghost")
	if err := repo.Save(ghost); !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("Save() error = %v, want ErrCategoryNotFound", err)
	}
}

func TestCategoryRepository_DeleteCascade(t *testing.T) {
	db := setupTestDB(t)
	categories := NewCategoryRepository(db)
	tasks := NewTaskRepository(db)

	category := newCategory("user-1", "Doomed")
	if err := categories.Create(category); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	keeper := newCategory("user-1", "Keeper")
	if err := categories.Create(keeper); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	for _, title := range []string{"one", "two", "three"} {
		if err := tasks.Create(newTask(category.ID, title)); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}
	kept := newTask(keeper.ID, "survivor")
	if err := tasks.Create(kept); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	removed, err := categories.DeleteCascade(category.ID)
	if err != nil {
		t.Fatalf("DeleteCascade() error = %v", err)
	}
	if removed != 3 {
		t.Errorf("DeleteCascade() removed = %v, want 3", removed)
	}

	if _, err := categories.FindByID(category.ID); !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("FindByID() after cascade error = %v, want ErrCategoryNotFound", err)
	}

	remaining, err := tasks.FindByCategory(category.ID)
	if err != nil {
		t.Fatalf("FindByCategory() error = %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("len(remaining) = %v, want 0", len(remaining))
	}

	// The other category and its task are untouched.
	if _, err := tasks.FindByID(kept.ID); err != nil {
		t.Errorf("FindByID() for other category's task error = %v", err)
	}
}

func TestCategoryRepository_DeleteCascade_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)

	_, err := repo.DeleteCascade("missing-id")
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("DeleteCascade() error = %v, want ErrCategoryNotFound", err)
	}
}
