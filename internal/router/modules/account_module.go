package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskcamp/taskcamp/internal/container"
	repo "github.com/taskcamp/taskcamp/internal/domain/repository"
	handlers "github.com/taskcamp/taskcamp/internal/interface/http"
	"github.com/taskcamp/taskcamp/internal/interface/middleware"
	"github.com/taskcamp/taskcamp/pkg/helpers"
)

type AccountModule struct {
	Handler  *handlers.AccountHandler
	Accounts repo.AccountRepository
	JWT      *helpers.JWTManager
}

func NewAccountModule(h *handlers.AccountHandler, accounts repo.AccountRepository, jwt *helpers.JWTManager) *AccountModule {
	return &AccountModule{Handler: h, Accounts: accounts, JWT: jwt}
}

func (m *AccountModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Accounts, m.JWT))
	auth.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByAccountID(), nil),
	)
	{
		auth.GET("/accounts/me", m.Handler.Me)
		auth.PUT("/accounts/me", m.Handler.UpdateProfile)
		auth.GET("/accounts/search", m.Handler.Search)
	}
}
