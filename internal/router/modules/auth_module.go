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

// AuthModule registers the session and ticket endpoints.
// Public: register, login, refresh, verify-email, resend-verification,
// forgot-password, reset-password. Protected: logout.
type AuthModule struct {
	Handler  *handlers.AuthHandler
	Accounts repo.AccountRepository
	JWT      *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, accounts repo.AccountRepository, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, Accounts: accounts, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	refreshLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), nil)
	ticketLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath(), nil)
	mailLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
	rg.POST("/auth/refresh", refreshLimiter, m.Handler.Refresh)
	rg.POST("/auth/verify-email", ticketLimiter, m.Handler.VerifyEmail)
	rg.POST("/auth/reset-password", ticketLimiter, m.Handler.ResetPassword)
	rg.POST("/auth/resend-verification", mailLimiter, m.Handler.ResendVerification)
	rg.POST("/auth/forgot-password", mailLimiter, m.Handler.ForgotPassword)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Accounts, m.JWT))
	{
		auth.POST("/auth/logout", m.Handler.Logout)
	}
}
