package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/taskcamp/taskcamp/internal/application"
	"github.com/taskcamp/taskcamp/internal/domain/entity"
	repo "github.com/taskcamp/taskcamp/internal/domain/repository"
)

// stubProjects overrides only membership resolution.
type stubProjects struct {
	repo.ProjectRepository
	memberships map[string]map[string]entity.Role // projectID -> accountID -> role
	err         error
}

func (s *stubProjects) GetMembership(_ context.Context, projectID, accountID string) (*entity.Membership, error) {
	if s.err != nil {
		return nil, s.err
	}
	if role, ok := s.memberships[projectID][accountID]; ok {
		return &entity.Membership{ProjectID: projectID, AccountID: accountID, Role: role}, nil
	}
	return nil, repo.ErrNotFound
}

func roleRig(projects repo.ProjectRepository, required ...entity.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := application.NewProjectService(projects, nil, nil)
	r := gin.New()
	r.GET("/projects/:projectId",
		func(c *gin.Context) { c.Set(CtxAccountIDKey, "acct-1"); c.Next() },
		RequireProjectRole(svc, required...),
		func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"role": ProjectRoleFrom(c)})
		})
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestRequireProjectRoleNonMemberGets404(t *testing.T) {
	projects := &stubProjects{memberships: map[string]map[string]entity.Role{}}
	r := roleRig(projects, entity.RoleMember, entity.RoleProjectAdmin, entity.RoleOwner)

	w := get(r, "/projects/proj-1")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "project not found")
}

func TestRequireProjectRoleInsufficientGets403(t *testing.T) {
	projects := &stubProjects{memberships: map[string]map[string]entity.Role{
		"proj-1": {"acct-1": entity.RoleMember},
	}}
	r := roleRig(projects, entity.RoleOwner)

	w := get(r, "/projects/proj-1")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "insufficient project role")
}

func TestRequireProjectRoleAllows(t *testing.T) {
	projects := &stubProjects{memberships: map[string]map[string]entity.Role{
		"proj-1": {"acct-1": entity.RoleProjectAdmin},
	}}
	r := roleRig(projects, entity.RoleProjectAdmin, entity.RoleOwner)

	w := get(r, "/projects/proj-1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "project_admin")
}

func TestRequireProjectRoleStoreDownDenies(t *testing.T) {
	projects := &stubProjects{err: context.DeadlineExceeded}
	r := roleRig(projects, entity.RoleMember, entity.RoleProjectAdmin, entity.RoleOwner)

	w := get(r, "/projects/proj-1")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRequireProjectRoleScopedPerProject(t *testing.T) {
	projects := &stubProjects{memberships: map[string]map[string]entity.Role{
		"proj-1": {"acct-1": entity.RoleOwner},
	}}
	r := roleRig(projects, entity.RoleMember, entity.RoleProjectAdmin, entity.RoleOwner)

	assert.Equal(t, http.StatusOK, get(r, "/projects/proj-1").Code)
	// Owner of proj-1 is nobody in proj-2.
	assert.Equal(t, http.StatusNotFound, get(r, "/projects/proj-2").Code)
}
