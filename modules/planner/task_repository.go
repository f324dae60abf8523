package planner

import (
	"errors"
	"fmt"

	taskdomain "github.com/example/task-manager-api/domain/task"
	"gorm.io/gorm"
)

// ErrTaskNotFound is returned when a task does not exist in the given
// category. A task referenced through the wrong category is reported the
// same way, so cross-category probing reveals nothing.
var ErrTaskNotFound = errors.New("task in category not found")

// TaskRepository provides access to task storage.
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create saves a new task.
func (r *TaskRepository) Create(task *taskdomain.Task) error {
	if err := r.db.Create(task).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// FindByID retrieves a task by its ID.
func (r *TaskRepository) FindByID(id string) (*taskdomain.Task, error) {
	var task taskdomain.Task
	if err := r.db.First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &task, nil
}

// FindByCategory retrieves all tasks of a category, ordered by creation.
func (r *TaskRepository) FindByCategory(categoryID string) ([]*taskdomain.Task, error) {
	var tasks []*taskdomain.Task
	if err := r.db.Where("category_id = ?", categoryID).Order("created_at ASC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Save persists changes to an existing task.
func (r *TaskRepository) Save(task *taskdomain.Task) error {
	// Select forces zero-value columns through; Updates alone would skip a
	// description cleared to "".
	result := r.db.Model(&taskdomain.Task{}).
		Where("id = ?", task.ID).
		Select("title", "description", "due_date", "priority", "status", "updated_at").
		Updates(task)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// Delete removes a task by ID.
func (r *TaskRepository) Delete(id string) error {
	result := r.db.Delete(&taskdomain.Task{}, "id = ?", id)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}
