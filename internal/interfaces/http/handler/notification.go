package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	notificationapp "github.com/rently/backend/internal/application/notification"
	"github.com/rently/backend/internal/interfaces/http/middleware"
)

// NotificationHandler handles notification API endpoints
type NotificationHandler struct {
	BaseHandler
	triggerService *notificationapp.TriggerService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(triggerService *notificationapp.TriggerService) *NotificationHandler {
	return &NotificationHandler{triggerService: triggerService}
}

// ScanResponse reports the outcome of a manually triggered scan
type ScanResponse struct {
	Message string `json:"message"`
}

// RegisterRoutes registers notification routes on the given group
func (h *NotificationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	notifications := rg.Group("/notifications")
	{
		notifications.GET("", h.List)
		notifications.GET("/unread", h.ListUnread)
		notifications.POST("/:id/read", h.MarkRead)
		notifications.POST("/scan", h.Scan)
	}
}

// List returns a page of notifications, newest first
func (h *NotificationHandler) List(c *gin.Context) {
	filter, err := filterFromQuery(c)
	if err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	notifications, err := h.triggerService.ListNotifications(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, notifications)
}

// ListUnread returns all unread notifications
func (h *NotificationHandler) ListUnread(c *gin.Context) {
	notifications, err := h.triggerService.ListUnread(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, notifications)
}

// MarkRead marks a notification as read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	notificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid notification ID format")
		return
	}

	if err := h.triggerService.MarkRead(c.Request.Context(), notificationID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Scan runs the expiration and overdue checks on demand
func (h *NotificationHandler) Scan(c *gin.Context) {
	if err := h.triggerService.RunAll(c.Request.Context()); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, ScanResponse{Message: "Notification scan completed"})
}
