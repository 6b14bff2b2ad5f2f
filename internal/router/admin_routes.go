package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/turf-booking/internal/handler"    // admin handlers
	"github.com/iliyamo/turf-booking/internal/middleware" // JWT + role middlewares
	"github.com/iliyamo/turf-booking/internal/model"
)

// RegisterAdmin registers ADMIN-scoped endpoints under /v1/admin.
// All routes require a valid JWT and the ADMIN role.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)

	// ---- Dashboard ----
	g.GET("/stats", a.Stats)
	g.GET("/bookings", a.Bookings)

	// ---- Grounds ----
	g.POST("/grounds", a.CreateGround)

	// ---- Slot pricing ----
	// :slot is the HH:MM start of the half hour being priced.
	g.GET("/grounds/:id/pricing", a.ListPricing)
	g.PUT("/grounds/:id/pricing/:slot", a.UpsertPricing)
	g.DELETE("/grounds/:id/pricing/:slot", a.DeletePricing)
}
