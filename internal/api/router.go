package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"alerts-backend/internal/config"
	"alerts-backend/internal/logging"
)

// NewRouter builds the admin API surface.
func NewRouter(h *Handler, logger *logging.Logger, cfg config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLoggingMiddleware(logger))

	api := r.Group(cfg.API.BasePath)
	{
		api.GET("/alerts", h.ListAlerts)
		api.GET("/alerts/:id", h.GetAlert)
		api.POST("/alerts", h.CreateAlert)
		api.PUT("/alerts/:id", h.UpdateAlert)
		api.POST("/alerts/:id/resolve", h.ResolveAlert)
		api.DELETE("/alerts/:id", h.DeleteAlert)
		api.GET("/alerts/:id/notifications", h.GetAlertNotifications)

		api.GET("/stats", h.GetStats)
		api.GET("/logs", h.GetLogs)
		api.POST("/check", h.RunCheck)
		api.GET("/ws", h.ServeWebSocket)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
