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

// AnalyticsHandler exposes the admin-only counters and the user
// audit trail.
type AnalyticsHandler struct {
	Analytics *service.AnalyticsService
}

func NewAnalyticsHandler(a *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{Analytics: a}
}

// EventAttendance handles GET /analytics/event-attendance/:eventId.
func (h *AnalyticsHandler) EventAttendance(c echo.Context) error {
	return h.eventCounter(c, h.Analytics.EventAttendance, "attendance_count")
}

// TicketsSold handles GET /analytics/tickets-sold/:eventId.
func (h *AnalyticsHandler) TicketsSold(c echo.Context) error {
	return h.eventCounter(c, h.Analytics.TicketsSold, "tickets_sold")
}

func (h *AnalyticsHandler) eventCounter(c echo.Context, read func(context.Context, uint64) (uint32, error), field string) error {
	id, err := pathID(c, "eventId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	n, err := read(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return internalError(c, "analytics.event", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"event_id": id, field: n})
}

// UserActivity handles GET /analytics/user-activity/:userId: the
// audit trail of a single user, newest first.
func (h *AnalyticsHandler) UserActivity(c echo.Context) error {
	id, err := pathID(c, "userId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Analytics.UserActivity(ctx, id)
	if err != nil {
		return internalError(c, "analytics.user_activity", err)
	}
	return c.JSON(http.StatusOK, items)
}
