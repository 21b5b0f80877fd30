package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticketing/internal/cache"
	"github.com/iliyamo/event-ticketing/internal/config"
	"github.com/iliyamo/event-ticketing/internal/model"
	"github.com/iliyamo/event-ticketing/internal/repository"
	"github.com/iliyamo/event-ticketing/internal/service"
)

// EventHandler exposes the event lifecycle endpoints. Single-event
// and search reads go through the cache-aside wrapper when a cache
// store is configured.
type EventHandler struct {
	Events   *service.EventService
	Cache    cache.Store // nil when caching is disabled
	CacheCfg config.CacheConfig
}

func NewEventHandler(events *service.EventService, store cache.Store, cfg config.CacheConfig) *EventHandler {
	if !cfg.Enabled {
		store = nil
	}
	return &EventHandler{Events: events, Cache: store, CacheCfg: cfg}
}

// ----- DTOs -----

type createEventReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Category    string `json:"category"`
	Date        string `json:"date"`
	Time        string `json:"time"`
}
type updateEventReq struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	Category    *string `json:"category"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
}

// Create handles POST /events. The event starts unapproved.
func (h *EventHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createEventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Title == "" || req.Date == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and date are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	evt, err := h.Events.Create(ctx, userID, service.CreateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Category:    req.Category,
		Date:        req.Date,
		Time:        req.Time,
	})
	if err != nil {
		return internalError(c, "event.create", err)
	}
	return c.JSON(http.StatusCreated, evt)
}

// ListMine handles GET /events: the caller's own events, approved or
// not.
func (h *EventHandler) ListMine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	events, err := h.Events.ListByOwner(ctx, userID)
	if err != nil {
		return internalError(c, "event.list", err)
	}
	return c.JSON(http.StatusOK, events)
}

// Search handles GET /events/search?keyword=&location=&category=.
// Only approved events are returned.
func (h *EventHandler) Search(c echo.Context) error {
	q := model.EventSearch{
		Keyword:  c.QueryParam("keyword"),
		Location: c.QueryParam("location"),
		Category: c.QueryParam("category"),
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	key := fmt.Sprintf("%s:event-search:%s|%s|%s", h.CacheCfg.Prefix, q.Keyword, q.Location, q.Category)
	events, err := cache.Aside(ctx, h.Cache, key, h.CacheCfg.TTL, func(ctx context.Context) ([]model.Event, error) {
		return h.Events.Search(ctx, q)
	})
	if err != nil {
		return internalError(c, "event.search", err)
	}
	return c.JSON(http.StatusOK, events)
}

// Get handles GET /events/:id.
func (h *EventHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	key := fmt.Sprintf("%s:event:%d", h.CacheCfg.Prefix, id)
	evt, err := cache.Aside(ctx, h.Cache, key, h.CacheCfg.TTL, func(ctx context.Context) (model.Event, error) {
		return h.Events.Get(ctx, id)
	})
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return internalError(c, "event.get", err)
	}
	return c.JSON(http.StatusOK, evt)
}

// Update handles PUT /events/:id. Only the owner may update; every
// ticket holder is notified of the change.
func (h *EventHandler) Update(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	var req updateEventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	patch := model.EventPatch{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Category:    req.Category,
		Date:        req.Date,
		Time:        req.Time,
	}
	if err := h.Events.Update(ctx, id, userID, patch); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		if errors.Is(err, service.ErrNotOwner) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "not the event owner"})
		}
		return internalError(c, "event.update", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "event updated"})
}

// Delete handles DELETE /events/:id. Only the owner may delete.
func (h *EventHandler) Delete(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Events.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		if errors.Is(err, service.ErrNotOwner) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "not the event owner"})
		}
		return internalError(c, "event.delete", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// AdminList handles GET /events/admin/events: all events awaiting
// approval.
func (h *EventHandler) AdminList(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	events, err := h.Events.ListNonApproved(ctx)
	if err != nil {
		return internalError(c, "event.admin_list", err)
	}
	return c.JSON(http.StatusOK, events)
}

// Approve handles PUT /events/admin/events/:id/approve.
func (h *EventHandler) Approve(c echo.Context) error {
	return h.moderate(c, h.Events.Approve, "event approved")
}

// Reject handles PUT /events/admin/events/:id/reject.
func (h *EventHandler) Reject(c echo.Context) error {
	return h.moderate(c, h.Events.Reject, "event rejected")
}

func (h *EventHandler) moderate(c echo.Context, action func(context.Context, uint64) error, message string) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := action(ctx, id); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return internalError(c, "event.moderate", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": message})
}

// CheckIn handles POST /events/:eventId/check-in. A missing event is
// a 404; a missing ticket or a repeated check-in is a 401.
func (h *EventHandler) CheckIn(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, err := pathID(c, "eventId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Events.CheckIn(ctx, eventID, userID); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		if errors.Is(err, repository.ErrTicketNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "no ticket for this event"})
		}
		if errors.Is(err, repository.ErrAlreadyCheckedIn) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "ticket already checked in"})
		}
		return internalError(c, "event.check_in", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "check-in successful"})
}
