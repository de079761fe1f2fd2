package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"taskmanager/internal/service"
)

// TaskHandler exposes the caller's tasks over HTTP.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// TaskRequest is the body of task create and full update.
type TaskRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	DueDate     string  `json:"due_date"`
	Status      *string `json:"status"`
}

// StatusRequest is the body of a status-only update.
type StatusRequest struct {
	Status *string `json:"status"`
}

func (r TaskRequest) input() service.TaskInput {
	return service.TaskInput{
		Title:       r.Title,
		Description: r.Description,
		DueDate:     r.DueDate,
		Status:      r.Status,
	}
}

// List godoc
// @Summary List the caller's tasks
// @Description Filters combine with AND. Repeating a filter parameter adds another predicate.
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending, in_progress or completed"
// @Param title query string false "Title contains (case-insensitive)"
// @Param description query string false "Description contains (case-insensitive)"
// @Param due_date query string false "Exact due date (YYYY-MM-DD)"
// @Param due_date_after query string false "Due on or after (YYYY-MM-DD)"
// @Param due_date_before query string false "Due on or before (YYYY-MM-DD)"
// @Param status_changed_after query string false "Status changed at or after"
// @Param is_overdue query bool false "Only overdue tasks"
// @Param search query string false "Terms matched against title or description"
// @Param ordering query string false "created_at, due_date, status_changed_at; prefix - for descending"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} ListResponse{data=[]model.Task}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/ [get]
func (h *TaskHandler) List(c echo.Context) error {
	caller, err := identity(c)
	if err != nil {
		return err
	}

	page, err := h.taskService.List(c.Request().Context(), caller, c.QueryParams())
	if err != nil {
		return err
	}

	return respondPage(c, "Tasks retrieved successfully.", page.Page, page.Tasks)
}

// Create godoc
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TaskRequest true "Task"
// @Success 201 {object} Response{data=model.Task}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /tasks/ [post]
func (h *TaskHandler) Create(c echo.Context) error {
	caller, err := identity(c)
	if err != nil {
		return err
	}

	var req TaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	task, err := h.taskService.Create(c.Request().Context(), caller, req.input())
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, "Task created successfully.", task)
}

// Get godoc
// @Summary Retrieve a task
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 200 {object} Response{data=model.Task}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id}/ [get]
func (h *TaskHandler) Get(c echo.Context) error {
	caller, err := identity(c)
	if err != nil {
		return err
	}
	id, err := taskID(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.Get(c.Request().Context(), caller, id)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "Task retrieved successfully.", task)
}

// Update godoc
// @Summary Replace a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Param request body TaskRequest true "Task"
// @Success 200 {object} Response{data=model.Task}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id}/ [put]
func (h *TaskHandler) Update(c echo.Context) error {
	caller, err := identity(c)
	if err != nil {
		return err
	}
	id, err := taskID(c)
	if err != nil {
		return err
	}

	var req TaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	task, err := h.taskService.Update(c.Request().Context(), caller, id, req.input())
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "Task updated successfully.", task)
}

// UpdateStatus godoc
// @Summary Change only the status of a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Param request body StatusRequest true "New status"
// @Success 200 {object} Response{data=model.Task}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id}/status/ [patch]
func (h *TaskHandler) UpdateStatus(c echo.Context) error {
	caller, err := identity(c)
	if err != nil {
		return err
	}
	id, err := taskID(c)
	if err != nil {
		return err
	}

	var req StatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	task, err := h.taskService.UpdateStatus(c.Request().Context(), caller, id, req.Status)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "Task status updated successfully.", task)
}

// Delete godoc
// @Summary Delete a task
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 200 {object} Response
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id}/ [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	caller, err := identity(c)
	if err != nil {
		return err
	}
	id, err := taskID(c)
	if err != nil {
		return err
	}

	if err := h.taskService.Delete(c.Request().Context(), caller, id); err != nil {
		return err
	}

	return respond(c, http.StatusOK, "Task deleted successfully.", nil)
}
