package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticketing/internal/repository"
	"github.com/iliyamo/event-ticketing/internal/service"
)

// NotificationHandler exposes the poll and mark-as-read endpoints.
type NotificationHandler struct {
	Notifications *service.NotificationService
}

func NewNotificationHandler(n *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{Notifications: n}
}

type markReadReq struct {
	NotificationID uint64 `json:"notification_id"`
}

// List handles GET /notification: the caller's notifications, newest
// first.
func (h *NotificationHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Notifications.ListByUser(ctx, userID)
	if err != nil {
		return internalError(c, "notification.list", err)
	}
	return c.JSON(http.StatusOK, items)
}

// MarkRead handles POST /notification/mark-as-read. Notifications
// belonging to another user are indistinguishable from missing ones.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req markReadReq
	if err := c.Bind(&req); err != nil || req.NotificationID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "notification_id is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	n, err := h.Notifications.MarkRead(ctx, userID, req.NotificationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "notification not found"})
		}
		return internalError(c, "notification.mark_read", err)
	}
	return c.JSON(http.StatusOK, n)
}
