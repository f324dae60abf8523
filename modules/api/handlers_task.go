package api

import (
	"github.com/example/task-manager-api/modules/planner"
	"github.com/gofiber/fiber/v2"
)

// ListTasks handles GET /api/v1/categories/:categoryId/tasks.
func (h *Handlers) ListTasks(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		return unauthenticated(c)
	}

	resp, err := h.plannerPort.ListTasks(c.UserContext(), &planner.ListTasksRequest{
		CategoryID: c.Params("categoryId"),
		UserID:     claims.UserID,
	})
	if err != nil {
		return h.handlePlannerError(c, err, "Failed to retrieve tasks")
	}

	// A category with no tasks is a success, not an error.
	if resp.Total == 0 {
		return c.Status(fiber.StatusOK).JSON(Envelope{
			Message: "No tasks found",
			Status:  fiber.StatusOK,
		})
	}

	return c.Status(fiber.StatusOK).JSON(Envelope{
		Message: "Tasks retrieved successfully",
		Status:  fiber.StatusOK,
		Data:    resp.Tasks,
	})
}

// CreateTask handles POST /api/v1/categories/:categoryId/tasks. The
// created task always starts pending regardless of the request body.
func (h *Handlers) CreateTask(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		return unauthenticated(c)
	}

	var req StoreTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestBody(c)
	}
	if fields := validateStruct(&req); fields != nil {
		return validationFailed(c, fields)
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return validationFailed(c, map[string][]string{
			"due_date": {"The due date is not a valid date."},
		})
	}

	resp, err := h.plannerPort.CreateTask(c.UserContext(), &planner.CreateTaskRequest{
		CategoryID:  c.Params("categoryId"),
		UserID:      claims.UserID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     dueDate,
		Priority:    req.Priority,
	})
	if err != nil {
		return h.handlePlannerError(c, err, "Failed to create task")
	}

	return c.Status(fiber.StatusCreated).JSON(Envelope{
		Message: "Task created successfully",
		Status:  fiber.StatusCreated,
		Data:    resp,
	})
}

// GetTask handles GET /api/v1/categories/:categoryId/tasks/:taskId.
func (h *Handlers) GetTask(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		return unauthenticated(c)
	}

	resp, err := h.plannerPort.GetTask(c.UserContext(), &planner.GetTaskRequest{
		TaskID:     c.Params("taskId"),
		CategoryID: c.Params("categoryId"),
		UserID:     claims.UserID,
	})
	if err != nil {
		return h.handlePlannerError(c, err, "Failed to retrieve task")
	}

	return c.Status(fiber.StatusOK).JSON(Envelope{
		Message: "Task retrieved successfully",
		Status:  fiber.StatusOK,
		Data:    resp,
	})
}

// UpdateTask handles PUT /api/v1/categories/:categoryId/tasks/:taskId.
func (h *Handlers) UpdateTask(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		return unauthenticated(c)
	}

	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequestBody(c)
	}
	if fields := validateStruct(&req); fields != nil {
		return validationFailed(c, fields)
	}

	updateReq := planner.UpdateTaskRequest{
		TaskID:      c.Params("taskId"),
		CategoryID:  c.Params("categoryId"),
		UserID:      claims.UserID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
	}

	if req.DueDate != nil {
		dueDate, err := parseDueDate(*req.DueDate)
		if err != nil {
			return validationFailed(c, map[string][]string{
				"due_date": {"The due date is not a valid date."},
			})
		}
		updateReq.DueDate = dueDate
	}

	resp, err := h.plannerPort.UpdateTask(c.UserContext(), &updateReq)
	if err != nil {
		return h.handlePlannerError(c, err, "Failed to update task")
	}

	return c.Status(fiber.StatusOK).JSON(Envelope{
		Message: "Task updated successfully",
		Status:  fiber.StatusOK,
		Data:    resp,
	})
}

// DeleteTask handles DELETE /api/v1/categories/:categoryId/tasks/:taskId
// and returns the deleted task's last-known representation.
func (h *Handlers) DeleteTask(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		return unauthenticated(c)
	}

	resp, err := h.plannerPort.DeleteTask(c.UserContext(), &planner.DeleteTaskRequest{
		TaskID:     c.Params("taskId"),
		CategoryID: c.Params("categoryId"),
		UserID:     claims.UserID,
	})
	if err != nil {
		return h.handlePlannerError(c, err, "Failed to delete task")
	}

	return c.Status(fiber.StatusOK).JSON(Envelope{
		Message: "Task destroy successfully",
		Status:  fiber.StatusOK,
		Data:    resp,
	})
}
