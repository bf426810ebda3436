package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/taskcamp/taskcamp/internal/application"
	"github.com/taskcamp/taskcamp/internal/domain/entity"
	"github.com/taskcamp/taskcamp/internal/interface/middleware"
	"github.com/taskcamp/taskcamp/pkg/response"
	"github.com/taskcamp/taskcamp/pkg/validation"
)

type ProjectHandler struct {
	Projects *application.ProjectService
	Logger   *logrus.Logger
}

func NewProjectHandler(projects *application.ProjectService, logger *logrus.Logger) *ProjectHandler {
	return &ProjectHandler{Projects: projects, Logger: logger}
}

type projectRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description"`
	Status      string     `json:"status" binding:"omitempty,oneof=not_started in_progress completed on_hold"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=low medium high critical"`
	DueDate     *time.Time `json:"due_date"`
}

type projectUpdateRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      string     `json:"status" binding:"omitempty,oneof=not_started in_progress completed on_hold"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=low medium high critical"`
	DueDate     *time.Time `json:"due_date"`
}

type memberRequest struct {
	AccountID string `json:"account_id" binding:"required,uuid"`
	Role      string `json:"role" binding:"required,oneof=member project_admin"`
}

type memberRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=member project_admin owner"`
}

// Create POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	uid := c.GetString(middleware.CtxAccountIDKey)
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Projects.CreateProject(c.Request.Context(), uid, application.ProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      entity.ProjectStatus(req.Status),
		Priority:    entity.ProjectPriority(req.Priority),
		DueDate:     req.DueDate,
	})
	if err != nil {
		status, msg := httpStatus(err)
		response.Error[any](c, status, msg, nil)
		return
	}
	response.Success(c, http.StatusCreated, projectView(p), "project created", nil)
}

// List GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	uid := c.GetString(middleware.CtxAccountIDKey)
	list, err := h.Projects.ListProjects(c.Request.Context(), uid)
	if err != nil {
		h.Logger.WithError(err).Error("list projects failed")
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
		return
	}
	response.Success(c, http.StatusOK, projectViews(list), "projects", nil)
}

// Get GET /api/projects/:projectId (membership gated)
func (h *ProjectHandler) Get(c *gin.Context) {
	p, err := h.Projects.GetProject(c.Request.Context(), c.Param("projectId"))
	if err != nil {
		status, msg := httpStatus(err)
		response.Error[any](c, status, msg, nil)
		return
	}
	response.Success(c, http.StatusOK, projectView(p), "project", nil)
}

// Update PUT /api/projects/:projectId
func (h *ProjectHandler) Update(c *gin.Context) {
	var req projectUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Projects.UpdateProject(c.Request.Context(), c.Param("projectId"), application.ProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      entity.ProjectStatus(req.Status),
		Priority:    entity.ProjectPriority(req.Priority),
		DueDate:     req.DueDate,
	})
	if err != nil {
		status, msg := httpStatus(err)
		response.Error[any](c, status, msg, nil)
		return
	}
	response.Success(c, http.StatusOK, projectView(p), "project updated", nil)
}

// Delete DELETE /api/projects/:projectId (owner only, enforced by route gate)
func (h *ProjectHandler) Delete(c *gin.Context) {
	if err := h.Projects.DeleteProject(c.Request.Context(), c.Param("projectId")); err != nil {
		status, msg := httpStatus(err)
		response.Error[any](c, status, msg, nil)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "project deleted", nil)
}

// ListMembers GET /api/projects/:projectId/members
func (h *ProjectHandler) ListMembers(c *gin.Context) {
	members, err := h.Projects.ListMembers(c.Request.Context(), c.Param("projectId"))
	if err != nil {
		h.Logger.WithError(err).Error("list members failed")
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
		return
	}
	response.Success(c, http.StatusOK, memberViews(members), "members", nil)
}

// AddMember POST /api/projects/:projectId/members
func (h *ProjectHandler) AddMember(c *gin.Context) {
	var req memberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	m, err := h.Projects.AddMember(c.Request.Context(), c.Param("projectId"), req.AccountID, entity.Role(req.Role))
	if err != nil {
		status, msg := httpStatus(err)
		response.Error[any](c, status, msg, nil)
		return
	}
	response.Success(c, http.StatusCreated, membershipView(m), "member added", nil)
}

// UpdateMemberRole PUT /api/projects/:projectId/members/:accountId
func (h *ProjectHandler) UpdateMemberRole(c *gin.Context) {
	var req memberRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	actorRole := middleware.ProjectRoleFrom(c)
	m, err := h.Projects.UpdateMemberRole(c.Request.Context(), c.Param("projectId"), c.Param("accountId"), entity.Role(req.Role), actorRole)
	if err != nil {
		status, msg := httpStatus(err)
		response.Error[any](c, status, msg, nil)
		return
	}
	response.Success(c, http.StatusOK, membershipView(m), "member role updated", nil)
}

// RemoveMember DELETE /api/projects/:projectId/members/:accountId
// Members may remove themselves; removing anyone else takes the admin gate.
func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	actorRole := middleware.ProjectRoleFrom(c)
	if err := h.Projects.RemoveMember(c.Request.Context(), c.Param("projectId"), c.Param("accountId"), actorRole); err != nil {
		status, msg := httpStatus(err)
		response.Error[any](c, status, msg, nil)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"removed": true}, "member removed", nil)
}
