package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/taskcamp/taskcamp/config"
	"github.com/taskcamp/taskcamp/internal/application"
	"github.com/taskcamp/taskcamp/internal/domain/entity"
	"github.com/taskcamp/taskcamp/internal/interface/middleware"
	"github.com/taskcamp/taskcamp/pkg/helpers"
	"github.com/taskcamp/taskcamp/pkg/mailer"
	"github.com/taskcamp/taskcamp/pkg/response"
	"github.com/taskcamp/taskcamp/pkg/validation"
)

type AuthHandler struct {
	Accounts *application.AccountService
	Sessions *application.SessionService
	Logger   *logrus.Logger
	Cfg      *config.Config
	Pub      *helpers.RabbitPublisher
	Cookies  *helpers.Manager
}

func NewAuthHandler(accounts *application.AccountService, sessions *application.SessionService, logger *logrus.Logger, cfg *config.Config, pub *helpers.RabbitPublisher) *AuthHandler {
	return &AuthHandler{
		Accounts: accounts,
		Sessions: sessions,
		Logger:   logger,
		Cfg:      cfg,
		Pub:      pub,
		Cookies:  helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure),
	}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Handle   string `json:"handle" binding:"required,handle"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func accountView(a *entity.Account) gin.H {
	return gin.H{
		"id":             a.ID,
		"email":          a.Email,
		"handle":         a.Handle,
		"name":           a.Name,
		"role":           a.Role,
		"email_verified": a.EmailVerified,
		"created_at":     a.CreatedAt,
		"updated_at":     a.UpdatedAt,
	}
}

// Register POST /api/auth/register
// Creates the account and enqueues the verification email. The raw ticket
// only ever leaves the process inside that email.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	a, rawTicket, err := h.Accounts.Register(c.Request.Context(), application.RegisterInput{
		Email:    req.Email,
		Handle:   req.Handle,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, application.ErrConflict) {
			response.Error[any](c, http.StatusConflict, "email or handle already taken", nil)
			return
		}
		h.Logger.WithError(err).Error("register failed")
		response.Error[any](c, http.StatusInternalServerError, "registration failed", nil)
		return
	}
	h.sendVerifyEmail(c, a, rawTicket)
	response.Success(c, http.StatusCreated, accountView(a), "account created, verification email sent", nil)
}

// Login POST /api/auth/login
// A successful login mints a fresh pair and overwrites the stored refresh
// credential, signing out any prior session for this account.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	a, err := h.Accounts.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		status, msg := httpStatus(err)
		response.Error[any](c, status, msg, nil)
		return
	}
	pair, err := h.Sessions.Issue(c.Request.Context(), a)
	if err != nil {
		h.Logger.WithError(err).Error("session issue failed")
		response.Error[any](c, http.StatusInternalServerError, "login failed", nil)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, accountView(a), "login successful", map[string]any{
		"access_expires_at":  pair.AccessTokenExpiry,
		"refresh_expires_at": pair.RefreshTokenExpiry,
	})
}

// Refresh POST /api/auth/refresh
// Rotates the refresh credential. A stale credential (already rotated or
// forged) revokes the stored one and forces a new login.
func (h *AuthHandler) Refresh(c *gin.Context) {
	presented, err := c.Cookie("refresh_token")
	if err != nil || presented == "" {
		response.Error[any](c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}
	pair, _, err := h.Sessions.Refresh(c.Request.Context(), presented)
	if err != nil {
		if errors.Is(err, application.ErrCredentialReuseSuspected) {
			h.Cookies.Clear(c)
		}
		status, msg := httpStatus(err)
		response.Error[any](c, status, msg, nil)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success[any](c, http.StatusOK, map[string]any{"refreshed": true}, "token refreshed", map[string]any{
		"access_expires_at":  pair.AccessTokenExpiry,
		"refresh_expires_at": pair.RefreshTokenExpiry,
	})
}

// Logout POST /api/auth/logout (auth required)
func (h *AuthHandler) Logout(c *gin.Context) {
	if uid := c.GetString(middleware.CtxAccountIDKey); uid != "" {
		if err := h.Sessions.Revoke(c.Request.Context(), uid); err != nil {
			h.Logger.WithError(err).WithField("account_id", uid).Warn("revoke on logout failed")
		}
	}
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, map[string]any{"logged_out": true}, "logged out", nil)
}

// VerifyEmail POST /api/auth/verify-email {ticket}
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req struct {
		Ticket string `json:"ticket" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if _, err := h.Accounts.VerifyEmail(c.Request.Context(), req.Ticket); err != nil {
		status, msg := httpStatus(err)
		response.Error[any](c, status, msg, nil)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"verified": true}, "email verified", nil)
}

// ResendVerification POST /api/auth/resend-verification {email}
// Always answers OK so the endpoint can't be used to enumerate accounts.
func (h *AuthHandler) ResendVerification(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	a, rawTicket, err := h.Accounts.ResendVerification(c.Request.Context(), req.Email)
	if err == nil && a != nil {
		h.sendVerifyEmail(c, a, rawTicket)
	}
	response.Success[any](c, http.StatusOK, map[string]any{"sent": true}, "if the account exists, a verification email was sent", nil)
}

// ForgotPassword POST /api/auth/forgot-password {email}
// Same anti-enumeration shape as ResendVerification.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	a, rawTicket, err := h.Accounts.ForgotPassword(c.Request.Context(), req.Email)
	if err == nil && a != nil {
		h.sendResetEmail(c, a, rawTicket)
	}
	response.Success[any](c, http.StatusOK, map[string]any{"sent": true}, "if the account exists, a reset email was sent", nil)
}

// ResetPassword POST /api/auth/reset-password {ticket, new_password}
// A successful reset also revokes the stored refresh credential.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req struct {
		Ticket      string `json:"ticket" binding:"required"`
		NewPassword string `json:"new_password" binding:"required,pwd"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if _, err := h.Accounts.ResetPassword(c.Request.Context(), req.Ticket, req.NewPassword); err != nil {
		status, msg := httpStatus(err)
		response.Error[any](c, status, msg, nil)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"reset": true}, "password updated", nil)
}

func (h *AuthHandler) sendVerifyEmail(c *gin.Context, a *entity.Account, rawTicket string) {
	if h.Pub == nil || !h.Cfg.MailSendEnabled || rawTicket == "" {
		return
	}
	link := h.Cfg.VerifyEmailURL + "?ticket=" + rawTicket
	job := mailer.VerifyEmailJob(a.Email, a.Name, link, h.Cfg.VerifyTicketTTL)
	if err := h.Pub.PublishJSON(c.Request.Context(), job); err != nil {
		h.Logger.WithError(err).WithField("account_id", a.ID).Error("enqueue verify email failed")
	}
}

func (h *AuthHandler) sendResetEmail(c *gin.Context, a *entity.Account, rawTicket string) {
	if h.Pub == nil || !h.Cfg.MailSendEnabled || rawTicket == "" {
		return
	}
	link := h.Cfg.ResetPasswordURL + "?ticket=" + rawTicket
	job := mailer.ResetPasswordJob(a.Email, a.Name, link, h.Cfg.ResetTicketTTL)
	if err := h.Pub.PublishJSON(c.Request.Context(), job); err != nil {
		h.Logger.WithError(err).WithField("account_id", a.ID).Error("enqueue reset email failed")
	}
}
