package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskcamp/taskcamp/internal/application"
	"github.com/taskcamp/taskcamp/internal/interface/middleware"
	"github.com/taskcamp/taskcamp/pkg/response"
	"github.com/taskcamp/taskcamp/pkg/validation"
)

type NoteHandler struct {
	Notes *application.NoteService
}

func NewNoteHandler(notes *application.NoteService) *NoteHandler {
	return &NoteHandler{Notes: notes}
}

type noteRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
}

type noteUpdateRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Create POST /api/projects/:projectId/notes
func (h *NoteHandler) Create(c *gin.Context) {
	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	uid := c.GetString(middleware.CtxAccountIDKey)
	n, err := h.Notes.Create(c.Request.Context(), c.Param("projectId"), uid, application.NoteInput{Title: req.Title, Content: req.Content})
	if err != nil {
		status, msg := httpStatus(err)
		response.Error[any](c, status, msg, nil)
		return
	}
	response.Success(c, http.StatusCreated, noteView(n), "note created", nil)
}

// List GET /api/projects/:projectId/notes
func (h *NoteHandler) List(c *gin.Context) {
	list, err := h.Notes.List(c.Request.Context(), c.Param("projectId"))
	if err != nil {
		status, msg := httpStatus(err)
		response.Error[any](c, status, msg, nil)
		return
	}
	response.Success(c, http.StatusOK, noteViews(list), "notes", nil)
}

// Get GET /api/projects/:projectId/notes/:noteId
func (h *NoteHandler) Get(c *gin.Context) {
	n, err := h.Notes.Get(c.Request.Context(), c.Param("projectId"), c.Param("noteId"))
	if err != nil {
		status, msg := httpStatus(err)
		response.Error[any](c, status, msg, nil)
		return
	}
	response.Success(c, http.StatusOK, noteView(n), "note", nil)
}

// Update PUT /api/projects/:projectId/notes/:noteId
func (h *NoteHandler) Update(c *gin.Context) {
	var req noteUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	n, err := h.Notes.Update(c.Request.Context(), c.Param("projectId"), c.Param("noteId"), application.NoteInput{Title: req.Title, Content: req.Content})
	if err != nil {
		status, msg := httpStatus(err)
		response.Error[any](c, status, msg, nil)
		return
	}
	response.Success(c, http.StatusOK, noteView(n), "note updated", nil)
}

// Delete DELETE /api/projects/:projectId/notes/:noteId
func (h *NoteHandler) Delete(c *gin.Context) {
	if err := h.Notes.Delete(c.Request.Context(), c.Param("projectId"), c.Param("noteId")); err != nil {
		status, msg := httpStatus(err)
		response.Error[any](c, status, msg, nil)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "note deleted", nil)
}
