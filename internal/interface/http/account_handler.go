package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/taskcamp/taskcamp/internal/application"
	"github.com/taskcamp/taskcamp/internal/domain/entity"
	"github.com/taskcamp/taskcamp/internal/interface/middleware"
	"github.com/taskcamp/taskcamp/pkg/helpers"
	"github.com/taskcamp/taskcamp/pkg/response"
	"github.com/taskcamp/taskcamp/pkg/validation"
)

type AccountHandler struct {
	Accounts *application.AccountService
	RDB      *redis.Client
	Logger   *logrus.Logger
}

func NewAccountHandler(accounts *application.AccountService, rdb *redis.Client, logger *logrus.Logger) *AccountHandler {
	return &AccountHandler{Accounts: accounts, RDB: rdb, Logger: logger}
}

const profileCacheTTL = 5 * time.Minute

func keyProfile(accountID string) string { return "acct:profile:" + accountID }

// profileView is the cached wire shape for an account profile.
type profileView struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Handle        string    `json:"handle"`
	Name          string    `json:"name"`
	Role          string    `json:"role"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func toProfileView(a *entity.Account) profileView {
	return profileView{
		ID:            a.ID,
		Email:         a.Email,
		Handle:        a.Handle,
		Name:          a.Name,
		Role:          string(a.Role),
		EmailVerified: a.EmailVerified,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// Me GET /api/accounts/me
func (h *AccountHandler) Me(c *gin.Context) {
	uid := c.GetString(middleware.CtxAccountIDKey)

	if h.RDB != nil {
		var cached profileView
		if ok, err := helpers.RedisGetJSON(c.Request.Context(), h.RDB, keyProfile(uid), &cached); err == nil && ok {
			response.Success(c, http.StatusOK, cached, "profile", nil)
			return
		}
	}

	a, err := h.Accounts.GetProfile(c.Request.Context(), uid)
	if err != nil {
		status, msg := httpStatus(err)
		response.Error[any](c, status, msg, nil)
		return
	}
	view := toProfileView(a)
	if h.RDB != nil {
		_ = helpers.RedisSetJSON(c.Request.Context(), h.RDB, keyProfile(uid), view, profileCacheTTL)
	}
	response.Success(c, http.StatusOK, view, "profile", nil)
}

type updateProfileRequest struct {
	Name   string `json:"name"`
	Handle string `json:"handle" binding:"omitempty,handle"`
}

// UpdateProfile PUT /api/accounts/me
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	uid := c.GetString(middleware.CtxAccountIDKey)
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	a, err := h.Accounts.UpdateProfile(c.Request.Context(), uid, application.UpdateProfileInput{
		Name:   req.Name,
		Handle: req.Handle,
	})
	if err != nil {
		status, msg := httpStatus(err)
		response.Error[any](c, status, msg, nil)
		return
	}
	if h.RDB != nil {
		_ = helpers.RedisDel(c.Request.Context(), h.RDB, keyProfile(uid))
	}
	response.Success(c, http.StatusOK, toProfileView(a), "profile updated", nil)
}

// Search GET /api/accounts/search?q=...&size=...
// Full-text lookup over email, handle and name, used when adding members.
func (h *AccountHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "missing query", nil)
		return
	}
	size := 10
	if s := c.Query("size"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 50 {
			size = n
		}
	}
	hits, err := h.Accounts.SearchAccounts(c.Request.Context(), q, size)
	if err != nil {
		h.Logger.WithError(err).Warn("account search failed")
		response.Error[any](c, http.StatusServiceUnavailable, "search unavailable", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", nil)
}
