package planner

import (
	"errors"
	"fmt"

	categorydomain "github.com/example/task-manager-api/domain/category"
	taskdomain "github.com/example/task-manager-api/domain/task"
	"gorm.io/gorm"
)

var (
	// ErrCategoryNotFound is returned when a category does not exist.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrCategoryForbidden is returned when a category exists but belongs
	// to another user.
	ErrCategoryForbidden = errors.New("category belongs to another user")
)

// CategoryRepository provides access to category storage.
type CategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create saves a new category.
func (r *CategoryRepository) Create(category *categorydomain.Category) error {
	if err := r.db.Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// FindByID retrieves a category by its ID.
func (r *CategoryRepository) FindByID(id string) (*categorydomain.Category, error) {
	var category categorydomain.Category
	if err := r.db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return &category, nil
}

// FindByUser retrieves all categories owned by the user, ordered by
// creation.
func (r *CategoryRepository) FindByUser(userID string) ([]*categorydomain.Category, error) {
	var categories []*categorydomain.Category
	if err := r.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// Save persists changes to an existing category.
func (r *CategoryRepository) Save(category *categorydomain.Category) error {
	// Select forces zero-value columns through; Updates alone would skip a
	// description cleared to "".
	result := r.db.Model(&categorydomain.Category{}).
		Where("id = ?", category.ID).
		Select("name", "description", "updated_at").
		Updates(category)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// DeleteCascade removes the category and all of its tasks in a single
// transaction. Either everything is removed or nothing is.
func (r *CategoryRepository) DeleteCascade(id string) (int, error) {
	var tasksRemoved int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&taskdomain.Task{}, "category_id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete tasks: %w", result.Error)
		}
		tasksRemoved = result.RowsAffected

		result = tx.Delete(&categorydomain.Category{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete category: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrCategoryNotFound
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return int(tasksRemoved), nil
}
