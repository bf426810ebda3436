package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskcamp/taskcamp/internal/application"
	"github.com/taskcamp/taskcamp/internal/container"
	"github.com/taskcamp/taskcamp/internal/domain/entity"
	repo "github.com/taskcamp/taskcamp/internal/domain/repository"
	handlers "github.com/taskcamp/taskcamp/internal/interface/http"
	"github.com/taskcamp/taskcamp/internal/interface/middleware"
	"github.com/taskcamp/taskcamp/pkg/helpers"
)

// ProjectModule registers project, member, note and task routes. Every
// project-scoped route carries a role gate; non-members get 404 from it.
type ProjectModule struct {
	Projects *handlers.ProjectHandler
	Notes    *handlers.NoteHandler
	Tasks    *handlers.TaskHandler
	Svc      *application.ProjectService
	Accounts repo.AccountRepository
	JWT      *helpers.JWTManager
}

func NewProjectModule(p *handlers.ProjectHandler, n *handlers.NoteHandler, t *handlers.TaskHandler, svc *application.ProjectService, accounts repo.AccountRepository, jwt *helpers.JWTManager) *ProjectModule {
	return &ProjectModule{Projects: p, Notes: n, Tasks: t, Svc: svc, Accounts: accounts, JWT: jwt}
}

func (m *ProjectModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Accounts, m.JWT))
	auth.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByAccountID(), nil),
	)

	anyMember := middleware.RequireProjectRole(m.Svc, entity.RoleMember, entity.RoleProjectAdmin, entity.RoleOwner)
	adminUp := middleware.RequireProjectRole(m.Svc, entity.RoleProjectAdmin, entity.RoleOwner)
	ownerOnly := middleware.RequireProjectRole(m.Svc, entity.RoleOwner)

	auth.POST("/projects", m.Projects.Create)
	auth.GET("/projects", m.Projects.List)

	auth.GET("/projects/:projectId", anyMember, m.Projects.Get)
	auth.PUT("/projects/:projectId", adminUp, m.Projects.Update)
	auth.DELETE("/projects/:projectId", ownerOnly, m.Projects.Delete)

	auth.GET("/projects/:projectId/members", anyMember, m.Projects.ListMembers)
	auth.POST("/projects/:projectId/members", adminUp, m.Projects.AddMember)
	auth.PUT("/projects/:projectId/members/:accountId", adminUp, m.Projects.UpdateMemberRole)
	auth.DELETE("/projects/:projectId/members/:accountId", adminUp, m.Projects.RemoveMember)

	auth.GET("/projects/:projectId/notes", anyMember, m.Notes.List)
	auth.POST("/projects/:projectId/notes", anyMember, m.Notes.Create)
	auth.GET("/projects/:projectId/notes/:noteId", anyMember, m.Notes.Get)
	auth.PUT("/projects/:projectId/notes/:noteId", anyMember, m.Notes.Update)
	auth.DELETE("/projects/:projectId/notes/:noteId", adminUp, m.Notes.Delete)

	auth.GET("/projects/:projectId/tasks", anyMember, m.Tasks.List)
	auth.POST("/projects/:projectId/tasks", adminUp, m.Tasks.Create)
	auth.GET("/projects/:projectId/tasks/:taskId", anyMember, m.Tasks.Get)
	auth.PUT("/projects/:projectId/tasks/:taskId", anyMember, m.Tasks.Update)
	auth.DELETE("/projects/:projectId/tasks/:taskId", adminUp, m.Tasks.Delete)
}
