package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticketing/internal/handler"
	"github.com/iliyamo/event-ticketing/internal/middleware"
	"github.com/iliyamo/event-ticketing/internal/model"
	"github.com/iliyamo/event-ticketing/internal/realtime"
)

// Handlers bundles everything the route table needs.
type Handlers struct {
	Auth          *handler.AuthHandler
	Events        *handler.EventHandler
	Tickets       *handler.TicketHandler
	Notifications *handler.NotificationHandler
	Users         *handler.UserHandler
	Analytics     *handler.AnalyticsHandler

	Hub          *realtime.Hub
	AccessSecret string
	Validator    middleware.Validator
}

// Register wires every route on the Echo instance. Public endpoints
// are the health check, register, login, event search and single
// event reads. Everything else requires a valid access token; admin
// groups additionally require the admin role.
func Register(e *echo.Echo, h Handlers) {
	e.GET("/healthz", handler.Health)

	// Auth. Logout needs a valid token since it revokes the caller's
	// own session.
	e.POST("/auth/register", h.Auth.Register)
	e.POST("/auth/login", h.Auth.Login)

	authed := middleware.JWTAuth(h.AccessSecret, h.Validator)
	adminOnly := middleware.RequireRole(model.RoleAdmin)

	e.PATCH("/auth/logout/:userId", h.Auth.Logout, authed)

	// Events. Search is a public browse endpoint and never returns
	// unapproved events; everything else needs a session.
	e.GET("/events/search", h.Events.Search)

	events := e.Group("/events", authed)
	events.POST("", h.Events.Create)
	events.GET("", h.Events.ListMine)
	events.GET("/:id", h.Events.Get)
	events.PUT("/:id", h.Events.Update)
	events.DELETE("/:id", h.Events.Delete)
	events.POST("/:eventId/check-in", h.Events.CheckIn)

	eventsAdmin := e.Group("/events/admin/events", authed, adminOnly)
	eventsAdmin.GET("", h.Events.AdminList)
	eventsAdmin.PUT("/:id/approve", h.Events.Approve)
	eventsAdmin.PUT("/:id/reject", h.Events.Reject)

	// Tickets.
	tickets := e.Group("/tickets", authed)
	tickets.POST("", h.Tickets.Purchase)
	tickets.GET("", h.Tickets.List)
	tickets.GET("/:id", h.Tickets.Get)

	// Notifications: poll and mark-as-read; the websocket channel
	// authenticates with the same access token.
	notifications := e.Group("/notification", authed)
	notifications.GET("", h.Notifications.List)
	notifications.POST("/mark-as-read", h.Notifications.MarkRead)

	e.GET("/ws/notifications", realtime.ServeWS(h.Hub, h.AccessSecret))

	// Users.
	users := e.Group("/users", authed)
	users.GET("/profile", h.Users.Profile)
	users.PUT("/profile", h.Users.UpdateProfile)

	usersAdmin := e.Group("/users/admin/users", authed, adminOnly)
	usersAdmin.GET("", h.Users.AdminList)
	usersAdmin.PUT("/:id/deactivate", h.Users.Deactivate)

	// Analytics, admin only.
	analytics := e.Group("/analytics", authed, adminOnly)
	analytics.GET("/event-attendance/:eventId", h.Analytics.EventAttendance)
	analytics.GET("/tickets-sold/:eventId", h.Analytics.TicketsSold)
	analytics.GET("/user-activity/:userId", h.Analytics.UserActivity)
}
