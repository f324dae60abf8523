package api

import (
	"log"
	"strings"

	"github.com/example/task-manager-api/modules/planner"
	"github.com/gofiber/fiber/v2"
)

// ListCategories handles GET /api/v1/categories.
func (h *Handlers) ListCategories(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		return unauthenticated(c)
	}

	resp, err := h.plannerPort.ListCategories(c.UserContext(), claims.UserID)
	if err != nil {
		return h.handlePlannerError(c, err, "Failed to retrieve categories")
	}

	// An owner with no categories is a success, not an error.
	if resp.Total == 0 {
		return c.Status(fiber.StatusOK).JSON(Envelope{
			Message: "No categories found",
			Status:  fiber.StatusOK,
		})
	}

	return c.Status(fiber.StatusOK).JSON(Envelope{
		Message: "Categories retrieved successfully",
		Status:  fiber.StatusOK,
		Data:    resp.Categories,
	})
}

// CreateCategory handles POST /api/v1/categories.
func (h *Handlers) CreateCategory(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		return unauthenticated(c)
	}

	var req StoreCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestBody(c)
	}
	if fields := validateStruct(&req); fields != nil {
		return validationFailed(c, fields)
	}

	resp, err := h.plannerPort.CreateCategory(c.UserContext(), &planner.CreateCategoryRequest{
		UserID:      claims.UserID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return h.handlePlannerError(c, err, "Failed to create category")
	}

	return c.Status(fiber.StatusCreated).JSON(Envelope{
		Message: "Category created successfully",
		Status:  fiber.StatusCreated,
		Data:    resp,
	})
}

// GetCategory handles GET /api/v1/categories/:categoryId.
func (h *Handlers) GetCategory(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		return unauthenticated(c)
	}

	resp, err := h.plannerPort.GetCategory(c.UserContext(), &planner.GetCategoryRequest{
		CategoryID: c.Params("categoryId"),
		UserID:     claims.UserID,
	})
	if err != nil {
		return h.handlePlannerError(c, err, "Failed to retrieve category")
	}

	return c.Status(fiber.StatusOK).JSON(Envelope{
		Message: "Category retrieved successfully",
		Status:  fiber.StatusOK,
		Data:    resp,
	})
}

// UpdateCategory handles PUT /api/v1/categories/:categoryId.
func (h *Handlers) UpdateCategory(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		return unauthenticated(c)
	}

	var req UpdateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestBody(c)
	}
	if fields := validateStruct(&req); fields != nil {
		return validationFailed(c, fields)
	}

	resp, err := h.plannerPort.UpdateCategory(c.UserContext(), &planner.UpdateCategoryRequest{
		CategoryID:  c.Params("categoryId"),
		UserID:      claims.UserID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return h.handlePlannerError(c, err, "Failed to update category")
	}

	return c.Status(fiber.StatusOK).JSON(Envelope{
		Message: "Category updated successfully",
		Status:  fiber.StatusOK,
		Data:    resp,
	})
}

// DeleteCategory handles DELETE /api/v1/categories/:categoryId. The
// category's tasks are removed with it; the response carries the deleted
// category's last-known representation.
func (h *Handlers) DeleteCategory(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		return unauthenticated(c)
	}

	resp, err := h.plannerPort.DeleteCategory(c.UserContext(), &planner.DeleteCategoryRequest{
		CategoryID: c.Params("categoryId"),
		UserID:     claims.UserID,
	})
	if err != nil {
		return h.handlePlannerError(c, err, "Failed to delete category")
	}

	return c.Status(fiber.StatusOK).JSON(Envelope{
		Message: "Category destroy successfully",
		Status:  fiber.StatusOK,
		Data:    resp.Category,
	})
}

// handlePlannerError maps planner service errors onto the response
// envelope. Classification matches the services' stable error messages,
// since typed errors do not survive the service-container hop.
func (h *Handlers) handlePlannerError(c *fiber.Ctx, err error, failMessage string) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "category belongs to another user"):
		return c.Status(fiber.StatusUnauthorized).JSON(Envelope{
			Message: "Unauthorized",
			Status:  fiber.StatusUnauthorized,
		})
	case strings.Contains(errStr, "task in category not found"):
		return c.Status(fiber.StatusNotFound).JSON(Envelope{
			Message: "Task in category not found",
			Status:  fiber.StatusNotFound,
		})
	case strings.Contains(errStr, "category not found"):
		return c.Status(fiber.StatusNotFound).JSON(Envelope{
			Message: "Category not found",
			Status:  fiber.StatusNotFound,
		})
	case strings.Contains(errStr, "name is required"):
		return validationFailed(c, map[string][]string{
			"name": {"The name field is required."},
		})
	case strings.Contains(errStr, "title is required"):
		return validationFailed(c, map[string][]string{
			"title": {"The title field is required."},
		})
	case strings.Contains(errStr, "invalid priority"):
		return validationFailed(c, map[string][]string{
			"priority": {"The selected priority is invalid."},
		})
	case strings.Contains(errStr, "invalid status"):
		return validationFailed(c, map[string][]string{
			"status": {"The selected status is invalid."},
		})
	case strings.Contains(errStr, "must be at most"):
		return validationFailed(c, map[string][]string{
			"request": {errStr},
		})
	default:
		log.Printf("[api] Internal error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(Envelope{
			Message: failMessage,
			Status:  fiber.StatusInternalServerError,
			Error:   errStr,
		})
	}
}
