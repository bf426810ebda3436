package modules

import (
	"expvar"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskcamp/taskcamp/internal/container"
	"github.com/taskcamp/taskcamp/internal/interface/middleware"
	"github.com/taskcamp/taskcamp/pkg/response"
)

type HealthModule struct{}

func NewHealthModule() *HealthModule { return &HealthModule{} }

func (m *HealthModule) Register(rg *gin.RouterGroup) {
	// Internal probes bypass the limit.
	rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	rg.GET("/health", rl, func(c *gin.Context) {
		checks := gin.H{"postgres": "ok", "redis": "ok"}
		status := http.StatusOK

		ctx := c.Request.Context()
		if pool := container.GetPGPool(); pool != nil {
			if err := pool.Ping(ctx); err != nil {
				checks["postgres"] = "down"
				status = http.StatusServiceUnavailable
			}
		}
		if rdb := container.GetRedis(); rdb != nil {
			if err := rdb.Ping(ctx).Err(); err != nil {
				checks["redis"] = "down"
				status = http.StatusServiceUnavailable
			}
		}
		if status == http.StatusOK {
			response.Success(c, status, checks, "healthy", nil)
			return
		}
		response.Error[any](c, status, "unhealthy", checks)
	})

	// Public metrics endpoint (expvar), rate-limited per IP
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
