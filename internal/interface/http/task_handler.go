package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskcamp/taskcamp/internal/application"
	"github.com/taskcamp/taskcamp/internal/domain/entity"
	"github.com/taskcamp/taskcamp/internal/interface/middleware"
	"github.com/taskcamp/taskcamp/pkg/response"
	"github.com/taskcamp/taskcamp/pkg/validation"
)

type TaskHandler struct {
	Tasks *application.TaskService
}

func NewTaskHandler(tasks *application.TaskService) *TaskHandler {
	return &TaskHandler{Tasks: tasks}
}

type taskRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Status      string  `json:"status" binding:"omitempty,oneof=todo in_progress done"`
	AssignedTo  *string `json:"assigned_to" binding:"omitempty,uuid"`
}

type taskUpdateRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status" binding:"omitempty,oneof=todo in_progress done"`
	AssignedTo  *string `json:"assigned_to" binding:"omitempty,uuid"`
}

// Create POST /api/projects/:projectId/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	uid := c.GetString(middleware.CtxAccountIDKey)
	t, err := h.Tasks.Create(c.Request.Context(), c.Param("projectId"), uid, application.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      entity.TaskStatus(req.Status),
		AssignedTo:  req.AssignedTo,
	})
	if err != nil {
		status, msg := httpStatus(err)
		response.Error[any](c, status, msg, nil)
		return
	}
	response.Success(c, http.StatusCreated, taskView(t), "task created", nil)
}

// List GET /api/projects/:projectId/tasks
func (h *TaskHandler) List(c *gin.Context) {
	list, err := h.Tasks.List(c.Request.Context(), c.Param("projectId"))
	if err != nil {
		status, msg := httpStatus(err)
		response.Error[any](c, status, msg, nil)
		return
	}
	response.Success(c, http.StatusOK, taskViews(list), "tasks", nil)
}

// Get GET /api/projects/:projectId/tasks/:taskId
func (h *TaskHandler) Get(c *gin.Context) {
	t, err := h.Tasks.Get(c.Request.Context(), c.Param("projectId"), c.Param("taskId"))
	if err != nil {
		status, msg := httpStatus(err)
		response.Error[any](c, status, msg, nil)
		return
	}
	response.Success(c, http.StatusOK, taskView(t), "task", nil)
}

// Update PUT /api/projects/:projectId/tasks/:taskId
func (h *TaskHandler) Update(c *gin.Context) {
	var req taskUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	t, err := h.Tasks.Update(c.Request.Context(), c.Param("projectId"), c.Param("taskId"), application.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      entity.TaskStatus(req.Status),
		AssignedTo:  req.AssignedTo,
	})
	if err != nil {
		status, msg := httpStatus(err)
		response.Error[any](c, status, msg, nil)
		return
	}
	response.Success(c, http.StatusOK, taskView(t), "task updated", nil)
}

// Delete DELETE /api/projects/:projectId/tasks/:taskId
func (h *TaskHandler) Delete(c *gin.Context) {
	if err := h.Tasks.Delete(c.Request.Context(), c.Param("projectId"), c.Param("taskId")); err != nil {
		status, msg := httpStatus(err)
		response.Error[any](c, status, msg, nil)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "task deleted", nil)
}
