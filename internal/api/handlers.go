package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"alerts-backend/internal/engine"
	"alerts-backend/internal/logging"
	"alerts-backend/internal/models"
	"alerts-backend/internal/stats"
	"alerts-backend/internal/store"
	"alerts-backend/internal/ws"
)

// timeNow is swapped out in tests.
var timeNow = time.Now

// Handler serves the admin API.
type Handler struct {
	store  store.Store
	logger *logging.Logger
	engine *engine.Engine
	stats  *stats.Aggregator
	hub    *ws.Hub
}

func NewHandler(st store.Store, logger *logging.Logger, eng *engine.Engine, agg *stats.Aggregator, hub *ws.Hub) *Handler {
	return &Handler{
		store:  st,
		logger: logger,
		engine: eng,
		stats:  agg,
		hub:    hub,
	}
}

// ListAlerts returns alerts filtered by status, severity and client_id.
func (h *Handler) ListAlerts(c *gin.Context) {
	filter := store.Filter{
		ClientID: c.Query("client_id"),
	}
	if s := c.Query("status"); s != "" && s != "all" {
		filter.Statuses = []models.Status{models.Status(s)}
	}
	if sev := c.Query("severity"); sev != "" && sev != "all" {
		filter.Severity = models.Severity(sev)
	}

	limit := 100
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 1000 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 1000"})
			return
		}
		limit = n
	}

	alerts, err := h.store.FindAlerts(c.Request.Context(), filter, limit)
	if err != nil {
		h.logger.Errorf("List alerts failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if alerts == nil {
		alerts = []models.Alert{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "alerts": alerts, "total": len(alerts)})
}

func (h *Handler) GetAlert(c *gin.Context) {
	id := c.Param("id")
	alert, err := h.store.GetAlert(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Alert not found"})
			return
		}
		h.logger.Errorf("Get alert %s failed: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "alert": alert})
}

// CreateAlert manually submits a candidate. It runs through the same
// admission path as detector candidates, so duplicates are suppressed.
func (h *Handler) CreateAlert(c *gin.Context) {
	var candidate models.Candidate
	if err := c.ShouldBindJSON(&candidate); err != nil {
		h.logger.Errorf("Invalid request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !candidate.Severity.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid severity %q", candidate.Severity)})
		return
	}
	if candidate.Source == "" {
		candidate.Source = "api"
	}

	created, err := h.engine.ProcessCandidate(c.Request.Context(), candidate)
	if err != nil && created == nil {
		h.logger.Errorf("Create alert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if created == nil {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"message": "Duplicate alert suppressed within deduplication window",
		})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "alert_id": created.ID, "message": "Alert created"})
}

// UpdateAlert applies a status transition and/or reassignment.
func (h *Handler) UpdateAlert(c *gin.Context) {
	var req struct {
		Status     *string `json:"status"`
		AssignedTo *string `json:"assigned_to"`
		ResolvedBy *string `json:"resolved_by"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Status == nil && req.AssignedTo == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
		return
	}

	id := c.Param("id")
	alert, err := h.store.GetAlert(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Alert not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	now := timeNow()
	if req.AssignedTo != nil {
		if err := alert.Assign(*req.AssignedTo, now); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if req.Status != nil {
		to := models.Status(*req.Status)
		if !to.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid status %q", *req.Status)})
			return
		}
		actor := ""
		if req.ResolvedBy != nil {
			actor = *req.ResolvedBy
		}
		if err := alert.Transition(to, actor, now); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	update := store.Update{AssignedTo: req.AssignedTo}
	if req.Status != nil {
		update.Status = &alert.Status
		if alert.Status == models.StatusResolved {
			update.ResolvedBy = &alert.ResolvedBy
			update.ResolvedAt = alert.ResolvedAt
		}
	}
	ok, err := h.store.UpdateAlert(c.Request.Context(), id, update)
	if err != nil {
		h.logger.Errorf("Update alert %s failed: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Alert not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Alert updated"})
}

// ResolveAlert closes an alert and writes the resolution audit entry.
func (h *Handler) ResolveAlert(c *gin.Context) {
	var req struct {
		ResolvedBy string `json:"resolved_by" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	alert, err := h.store.GetAlert(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Alert not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := alert.Transition(models.StatusResolved, req.ResolvedBy, timeNow()); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ok, err := h.store.UpdateAlert(c.Request.Context(), id, store.Update{
		Status:     &alert.Status,
		ResolvedBy: &alert.ResolvedBy,
		ResolvedAt: alert.ResolvedAt,
	})
	if err != nil {
		h.logger.Errorf("Resolve alert %s failed: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Alert not found"})
		return
	}

	if err := h.store.AppendSystemLog(c.Request.Context(), models.SystemLogEntry{
		Origin:    "API",
		Level:     "INFO",
		Message:   fmt.Sprintf("Alert %s resolved by %s", id, req.ResolvedBy),
		Timestamp: timeNow(),
	}); err != nil {
		h.logger.Errorf("Failed to log resolution of alert %s: %v", id, err)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Alert resolved"})
}

func (h *Handler) DeleteAlert(c *gin.Context) {
	id := c.Param("id")
	ok, err := h.store.DeleteAlert(c.Request.Context(), id)
	if err != nil {
		h.logger.Errorf("Delete alert %s failed: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Alert not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Alert deleted"})
}

// GetAlertNotifications returns the delivery log for one alert.
func (h *Handler) GetAlertNotifications(c *gin.Context) {
	id := c.Param("id")
	entries, err := h.store.NotificationLog(c.Request.Context(), id, 100)
	if err != nil {
		h.logger.Errorf("Get notification log for %s failed: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if entries == nil {
		entries = []models.NotificationLogEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "notifications": entries, "total": len(entries)})
}

func (h *Handler) GetStats(c *gin.Context) {
	s, err := h.stats.Compute(c.Request.Context())
	if err != nil {
		h.logger.Errorf("Compute stats failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"openAlerts":      s.OpenAlerts,
		"inProgress":      s.InProgress,
		"resolvedToday":   s.ResolvedToday,
		"avgResponseTime": s.AvgResponseTime,
		"total":           s.Total,
	})
}

func (h *Handler) GetLogs(c *gin.Context) {
	filter := store.SystemLogFilter{
		Level:  c.Query("level"),
		Origin: c.Query("origin"),
	}
	limit := 1000
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 5000 {
			limit = n
		}
	}

	logs, err := h.store.SystemLogs(c.Request.Context(), filter, limit)
	if err != nil {
		h.logger.Errorf("Get logs failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if logs == nil {
		logs = []models.SystemLogEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "logs": logs, "total": len(logs)})
}

// RunCheck triggers one check cycle on demand.
func (h *Handler) RunCheck(c *gin.Context) {
	summary, err := h.engine.RunCheckCycle(c.Request.Context())
	if err != nil {
		h.logger.Errorf("Check cycle failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "summary": summary})
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades the connection and keeps it registered until
// the client disconnects.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Errorf("Websocket upgrade failed: %v", err)
		return
	}
	if !h.hub.Add(conn) {
		conn.Close()
		return
	}
	defer func() {
		h.hub.Remove(conn)
		conn.Close()
	}()

	// Drain client frames; exit on close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
