package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskcamp/taskcamp/internal/application"
	"github.com/taskcamp/taskcamp/internal/domain/entity"
	"github.com/taskcamp/taskcamp/pkg/response"
)

// CtxProjectRoleKey holds the entity.Role resolved for the current request.
const CtxProjectRoleKey = "projectRole"

// RequireProjectRole resolves the caller's role in the :projectId project and
// allows the request iff the role is in the required set. Routes declare the
// set; the gate itself hard-codes nothing.
//
// Non-members get 404 so they cannot probe which projects exist. Members with
// an insufficient role get 403. A store failure denies the request.
func RequireProjectRole(projects *application.ProjectService, required ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID := c.Param("projectId")
		accountID := c.GetString(CtxAccountIDKey)
		if projectID == "" || accountID == "" {
			response.Error[any](c, http.StatusUnauthorized, "unauthorized", nil)
			c.Abort()
			return
		}

		role, err := projects.ResolveRole(c.Request.Context(), projectID, accountID)
		if err != nil {
			if errors.Is(err, application.ErrNotAMember) {
				response.Error[any](c, http.StatusNotFound, "project not found", nil)
			} else {
				response.Error[any](c, http.StatusServiceUnavailable, "authorization unavailable", nil)
			}
			c.Abort()
			return
		}

		if err := application.Authorize(role, required...); err != nil {
			response.Error[any](c, http.StatusForbidden, "insufficient project role", nil)
			c.Abort()
			return
		}

		c.Set(CtxProjectRoleKey, role)
		c.Next()
	}
}

// ProjectRoleFrom returns the role resolved by RequireProjectRole.
func ProjectRoleFrom(c *gin.Context) entity.Role {
	if v, ok := c.Get(CtxProjectRoleKey); ok {
		if r, ok := v.(entity.Role); ok {
			return r
		}
	}
	return ""
}
