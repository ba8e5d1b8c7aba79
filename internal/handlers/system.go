package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/salieri009/MyTechPortFolio-sub001/internal/metrics"
	"github.com/salieri009/MyTechPortFolio-sub001/internal/services"
	"github.com/salieri009/MyTechPortFolio-sub001/internal/version"
)

// SystemHandler handles admin dashboard and system status endpoints.
type SystemHandler struct {
	userService    *services.UserService
	projectService *services.ProjectService
	contactService *services.ContactService
	auditService   *services.AuditService
}

// NewSystemHandler creates a new SystemHandler instance.
func NewSystemHandler(userService *services.UserService, projectService *services.ProjectService, contactService *services.ContactService, auditService *services.AuditService) *SystemHandler {
	return &SystemHandler{
		userService:    userService,
		projectService: projectService,
		contactService: contactService,
		auditService:   auditService,
	}
}

// Status returns host resource usage. Restricted to super admins.
func (h *SystemHandler) Status(c *gin.Context) {
	m, err := metrics.GetSystemMetrics(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL", "failed to collect system metrics")
		return
	}
	c.JSON(http.StatusOK, m)
}

// Stats aggregates the counters shown on the admin dashboard.
func (h *SystemHandler) Stats(c *gin.Context) {
	userStats, err := h.userService.Stats()
	if err != nil {
		serviceError(c, err)
		return
	}

	totalProjects, err := h.projectService.Count(false)
	if err != nil {
		serviceError(c, err)
		return
	}
	publishedProjects, err := h.projectService.Count(true)
	if err != nil {
		serviceError(c, err)
		return
	}

	unread, err := h.contactService.UnreadCount()
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": userStats,
		"projects": gin.H{
			"total":     totalProjects,
			"published": publishedProjects,
		},
		"unread_messages": unread,
	})
}

// AuditLogs returns a page of the audit trail, newest first.
func (h *SystemHandler) AuditLogs(c *gin.Context) {
	limit, offset := pagination(c)

	logs, err := h.auditService.GetLogs(limit, offset)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"logs":   logs,
		"limit":  limit,
		"offset": offset,
	})
}

// Version returns build information.
func (h *SystemHandler) Version(c *gin.Context) {
	c.JSON(http.StatusOK, version.Info())
}

// Health is a liveness probe.
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
