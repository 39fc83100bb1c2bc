package routes

import (
	"prayer-circle/domain/auth"
	"prayer-circle/domain/church"
	"prayer-circle/domain/group"
	"prayer-circle/domain/health"
	"prayer-circle/domain/notification"
	"prayer-circle/domain/prayer"
	"prayer-circle/middleware"

	"github.com/labstack/echo/v4"
)

// Handlers bundles the domain handlers the router wires up.
type Handlers struct {
	Auth          *auth.Handler
	Prayers       *prayer.Handler
	Churches      *church.Handler
	Groups        *group.Handler
	Notifications *notification.Handler
}

// RegisterRoutes mounts all endpoints. Public reads stay open; mutations
// require a token, and moderation surfaces require the admin role.
func RegisterRoutes(e *echo.Echo, h Handlers) {
	// Health
	e.GET("/health", health.HealthHandler)
	e.GET("/health/live", health.LivenessHandler)
	e.GET("/health/stats", health.StatsHandler)

	// Auth
	e.POST("/auth/register", h.Auth.RegisterHandler)
	e.POST("/auth/login", h.Auth.LoginHandler)
	e.GET("/auth/me", h.Auth.MeHandler, middleware.JWTMiddleware)

	// Prayers
	prayerGroup := e.Group("/prayers")
	prayerGroup.POST("", h.Prayers.SubmitHandler, middleware.OptionalJWTMiddleware)
	prayerGroup.GET("", h.Prayers.ListHandler)
	prayerGroup.GET("/search", h.Prayers.SearchHandler)
	prayerGroup.GET("/categories", h.Prayers.CategoriesHandler)
	prayerGroup.GET("/:id", h.Prayers.GetHandler)
	prayerGroup.PUT("/:id/status", h.Prayers.UpdateStatusHandler, middleware.JWTMiddleware)
	prayerGroup.PUT("/:id/moderation", h.Prayers.UpdateModerationHandler, middleware.JWTMiddleware, middleware.RoleMiddleware("admin"))
	prayerGroup.POST("/:id/responses", h.Prayers.RespondHandler, middleware.OptionalJWTMiddleware)
	prayerGroup.GET("/:id/responses", h.Prayers.ListResponsesHandler)

	// Churches
	churchGroup := e.Group("/churches")
	churchGroup.POST("", h.Churches.SubmitHandler, middleware.JWTMiddleware)
	churchGroup.GET("", h.Churches.ListHandler, middleware.OptionalJWTMiddleware)
	churchGroup.GET("/:id", h.Churches.GetHandler)
	churchGroup.GET("/:id/insights", h.Prayers.ChurchInsightsHandler, middleware.JWTMiddleware)
	churchGroup.PUT("/:id/review", h.Churches.ReviewHandler, middleware.JWTMiddleware, middleware.RoleMiddleware("admin"))
	churchGroup.POST("/:id/join", h.Churches.JoinHandler, middleware.JWTMiddleware)
	churchGroup.GET("/:id/members", h.Churches.MembersHandler, middleware.JWTMiddleware)
	churchGroup.PUT("/:id/members/:user_id/verify", h.Churches.VerifyMemberHandler, middleware.JWTMiddleware, middleware.RoleMiddleware("admin"))

	// Groups
	groupGroup := e.Group("/groups")
	groupGroup.POST("", h.Groups.CreateHandler, middleware.JWTMiddleware)
	groupGroup.GET("", h.Groups.ListHandler)
	groupGroup.GET("/:id", h.Groups.GetHandler)
	groupGroup.POST("/:id/join", h.Groups.JoinHandler, middleware.JWTMiddleware)
	groupGroup.GET("/:id/members", h.Groups.MembersHandler, middleware.JWTMiddleware)

	// Moderation event feed (admin only)
	e.GET("/notifications", h.Notifications.ListHandler, middleware.JWTMiddleware, middleware.RoleMiddleware("admin"))
}
