package planner

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	categorydomain "github.com/example/task-manager-api/domain/category"
	"github.com/example/task-manager-api/events"
	"github.com/go-monolith/mono"
	"github.com/google/uuid"
)

var (
	// ErrNameRequired is returned when a category name is missing.
	ErrNameRequired = errors.New("name is required")
	// ErrNameTooLong is returned when a name exceeds the column limit.
	ErrNameTooLong = errors.New("name must be at most 255 characters")
	// ErrDescriptionTooLong is returned when a description exceeds the
	// column limit.
	ErrDescriptionTooLong = errors.New("description must be at most 1000 characters")
)

// createCategory handles the create-category service request. Ownership is
// set server-side from the authenticated user; the client cannot assign it.
func (m *PlannerModule) createCategory(_ context.Context, req CreateCategoryRequest, _ *mono.Msg) (CategoryResponse, error) {
	if req.Name == "" {
		return CategoryResponse{}, ErrNameRequired
	}
	if len(req.Name) > 255 {
		return CategoryResponse{}, ErrNameTooLong
	}
	if len(req.Description) > 1000 {
		return CategoryResponse{}, ErrDescriptionTooLong
	}

	now := time.Now()
	category := &categorydomain.Category{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		UserID:      req.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := m.categories.Create(category); err != nil {
		return CategoryResponse{}, fmt.Errorf("failed to save category: %w", err)
	}

	return toCategoryResponse(category), nil
}

// getCategory handles the get-category service request.
func (m *PlannerModule) getCategory(_ context.Context, req GetCategoryRequest, _ *mono.Msg) (CategoryResponse, error) {
	category, err := m.ownedCategory(req.CategoryID, req.UserID)
	if err != nil {
		return CategoryResponse{}, err
	}
	return toCategoryResponse(category), nil
}

// listCategories handles the list-categories service request.
func (m *PlannerModule) listCategories(_ context.Context, req ListCategoriesRequest, _ *mono.Msg) (ListCategoriesResponse, error) {
	categories, err := m.categories.FindByUser(req.UserID)
	if err != nil {
		return ListCategoriesResponse{}, err
	}

	response := ListCategoriesResponse{
		Categories: make([]CategoryResponse, 0, len(categories)),
		Total:      len(categories),
	}
	for _, category := range categories {
		response.Categories = append(response.Categories, toCategoryResponse(category))
	}
	return response, nil
}

// updateCategory handles the update-category service request. Nil fields
// are left unchanged.
func (m *PlannerModule) updateCategory(_ context.Context, req UpdateCategoryRequest, _ *mono.Msg) (CategoryResponse, error) {
	category, err := m.ownedCategory(req.CategoryID, req.UserID)
	if err != nil {
		return CategoryResponse{}, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return CategoryResponse{}, ErrNameRequired
		}
		if len(*req.Name) > 255 {
			return CategoryResponse{}, ErrNameTooLong
		}
		category.Name = *req.Name
	}
	if req.Description != nil {
		if len(*req.Description) > 1000 {
			return CategoryResponse{}, ErrDescriptionTooLong
		}
		category.Description = *req.Description
	}
	category.UpdatedAt = time.Now()

	if err := m.categories.Save(category); err != nil {
		return CategoryResponse{}, fmt.Errorf("failed to update category: %w", err)
	}

	return toCategoryResponse(category), nil
}

// deleteCategory handles the delete-category service request. The category
// and all of its tasks are removed in one transaction; the response carries
// the deleted category's last-known representation.
func (m *PlannerModule) deleteCategory(_ context.Context, req DeleteCategoryRequest, _ *mono.Msg) (DeleteCategoryResponse, error) {
	category, err := m.ownedCategory(req.CategoryID, req.UserID)
	if err != nil {
		return DeleteCategoryResponse{}, err
	}

	tasksRemoved, err := m.categories.DeleteCascade(category.ID)
	if err != nil {
		return DeleteCategoryResponse{}, err
	}

	if m.eventBus != nil {
		event := events.CategoryDeletedEvent{
			CategoryID:   category.ID,
			Name:         category.Name,
			UserID:       category.UserID,
			TasksRemoved: tasksRemoved,
			DeletedAt:    time.Now(),
		}
		if err := events.CategoryDeletedV1.Publish(m.eventBus, event, nil); err != nil {
			log.Printf("[planner] Warning: failed to publish CategoryDeleted event for category %s: %v", category.ID, err)
		}
	}

	return DeleteCategoryResponse{
		Category:     toCategoryResponse(category),
		TasksRemoved: tasksRemoved,
	}, nil
}

// ownedCategory fetches a category and enforces ownership. A category that
// exists but belongs to someone else is reported as forbidden, not as
// missing, before anything about it is disclosed.
func (m *PlannerModule) ownedCategory(categoryID, userID string) (*categorydomain.Category, error) {
	category, err := m.categories.FindByID(categoryID)
	if err != nil {
		return nil, err
	}
	if category.UserID != userID {
		return nil, ErrCategoryForbidden
	}
	return category, nil
}

// toCategoryResponse converts a domain Category to a CategoryResponse.
func toCategoryResponse(category *categorydomain.Category) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		UserID:      category.UserID,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}
