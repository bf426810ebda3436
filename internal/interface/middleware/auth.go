package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/taskcamp/taskcamp/internal/domain/entity"
	repo "github.com/taskcamp/taskcamp/internal/domain/repository"
	"github.com/taskcamp/taskcamp/pkg/helpers"
	"github.com/taskcamp/taskcamp/pkg/response"
)

const (
	// CtxAccountIDKey holds the authenticated account id.
	CtxAccountIDKey = "accountID"
	// CtxAccountKey holds the loaded *entity.Account.
	CtxAccountKey = "account"
)

// Auth validates the access credential statelessly and resolves the account
// for downstream handlers. A missing credential is a normal input, answered
// with 401, never a panic. Expired and malformed credentials produce distinct
// messages. Store unavailability fails closed.
func Auth(accounts repo.AccountRepository, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := accessTokenFrom(c)
		if token == "" {
			response.Error[any](c, http.StatusUnauthorized, "missing access token", nil)
			c.Abort()
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			if errors.Is(err, helpers.ErrTokenExpired) {
				response.Error[any](c, http.StatusUnauthorized, "access token expired", nil)
			} else {
				response.Error[any](c, http.StatusUnauthorized, "invalid access token", nil)
			}
			c.Abort()
			return
		}

		a, err := accounts.GetByID(c.Request.Context(), claims.AccountID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				response.Error[any](c, http.StatusUnauthorized, "account no longer exists", nil)
			} else {
				response.Error[any](c, http.StatusServiceUnavailable, "authentication unavailable", nil)
			}
			c.Abort()
			return
		}

		c.Set(CtxAccountIDKey, a.ID)
		c.Set(CtxAccountKey, a)
		c.Next()
	}
}

// AccountFrom returns the account resolved by Auth, or nil.
func AccountFrom(c *gin.Context) *entity.Account {
	if v, ok := c.Get(CtxAccountKey); ok {
		if a, ok := v.(*entity.Account); ok {
			return a
		}
	}
	return nil
}

func accessTokenFrom(c *gin.Context) string {
	if tok, err := c.Cookie("access_token"); err == nil && tok != "" {
		return tok
	}
	h := c.GetHeader("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}
