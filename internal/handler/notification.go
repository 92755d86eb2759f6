package handler

import (
	"net/http"

	"github.com/TogetherPinz/TogetherPinz-BE/internal/model"
	"github.com/TogetherPinz/TogetherPinz-BE/internal/service"
	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	svc *service.NotificationService
}

func NewNotificationHandler(svc *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

// Create godoc
// @Summary Create a notification for myself
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} model.NotificationInfo
// @Router /api/notifications [post]
func (h *NotificationHandler) Create(c *gin.Context) {
	var req model.CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user := GetAuthUser(c)
	info, err := h.svc.Create(c.Request.Context(), user.ID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, info)
}

// List godoc
// @Summary List my notifications (newest first)
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.NotificationInfo
// @Router /api/notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	user := GetAuthUser(c)
	infos, err := h.svc.List(c.Request.Context(), user.ID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, infos)
}

// UnreadCount godoc
// @Summary Count my unread notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.UnreadCountResponse
// @Router /api/notifications/unread-count [get]
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	user := GetAuthUser(c)
	count, err := h.svc.UnreadCount(c.Request.Context(), user.ID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.UnreadCountResponse{Count: count})
}

// MarkRead godoc
// @Summary Mark a notification read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.NotificationInfo
// @Router /api/notifications/{notificationId}/read [put]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	h.setRead(c, true)
}

// MarkUnread godoc
// @Summary Mark a notification unread
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.NotificationInfo
// @Router /api/notifications/{notificationId}/unread [put]
func (h *NotificationHandler) MarkUnread(c *gin.Context) {
	h.setRead(c, false)
}

func (h *NotificationHandler) setRead(c *gin.Context, read bool) {
	id, ok := pathID(c, "notificationId")
	if !ok {
		return
	}

	user := GetAuthUser(c)
	info, err := h.svc.SetRead(c.Request.Context(), user.ID, id, read)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// Delete godoc
// @Summary Delete a notification
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} gin.H
// @Router /api/notifications/{notificationId} [delete]
func (h *NotificationHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "notificationId")
	if !ok {
		return
	}

	user := GetAuthUser(c)
	if err := h.svc.Delete(c.Request.Context(), user.ID, id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "알림이 삭제되었습니다."})
}

// LocationTrigger godoc
// @Summary Report current location and create in-radius pin notifications
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.NotificationInfo
// @Router /api/notifications/location-trigger [post]
func (h *NotificationHandler) LocationTrigger(c *gin.Context) {
	var req model.LocationTriggerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user := GetAuthUser(c)
	infos, err := h.svc.LocationTrigger(c.Request.Context(), user.ID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, infos)
}
