// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/handler"
	"github.com/iliyamo/hotel-reservation/internal/middleware"
)

// API bundles the handlers registered under the protected /v1 group.
type API struct {
	Auth       *handler.AuthHandler
	Bookings   *handler.BookingHandler
	Rooms      *handler.RoomHandler
	Clients    *handler.ClientHandler
	Statuses   *handler.StatusHandler
	Categories *handler.CategoryHandler
	Positions  *handler.PositionHandler
	Payments   *handler.PaymentHandler
	Services   *handler.ServiceHandler
	Documents  *handler.DocumentHandler
	Cleanings  *handler.CleaningHandler
	Sales      *handler.SalesHandler
}

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAPI wires the full route table. Login and registration live
// under /v1/auth without a token; everything else sits behind JWT
// auth. The extra middleware (rate limiting, response cache) applies
// to the protected group, with the cache only doing work for the
// methods its config allows.
func RegisterAPI(e *echo.Echo, api API, jwtSecret string, extra ...echo.MiddlewareFunc) {
	g := e.Group("/v1/auth")
	g.POST("/register", api.Auth.Register)
	g.POST("/login", api.Auth.Login)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	for _, mw := range extra {
		auth.Use(mw)
	}

	auth.POST("/auth/change-password", api.Auth.ChangePassword)
	auth.PUT("/staff/:id/blocked", api.Auth.SetBlocked)

	auth.GET("/bookings", api.Bookings.List)
	auth.POST("/bookings", api.Bookings.Create)
	auth.GET("/bookings/:id", api.Bookings.Get)
	auth.PUT("/bookings/:id", api.Bookings.Update)
	auth.DELETE("/bookings/:id", api.Bookings.Delete)

	auth.GET("/rooms", api.Rooms.List)
	auth.POST("/rooms", api.Rooms.Create)
	auth.GET("/rooms/:id", api.Rooms.Get)
	auth.PUT("/rooms/:id", api.Rooms.Update)
	auth.DELETE("/rooms/:id", api.Rooms.Delete)
	auth.GET("/rooms/:id/availability", api.Bookings.Availability)

	auth.GET("/clients", api.Clients.List)
	auth.POST("/clients", api.Clients.Create)
	auth.GET("/clients/:id", api.Clients.Get)
	auth.PUT("/clients/:id", api.Clients.Update)
	auth.DELETE("/clients/:id", api.Clients.Delete)

	auth.GET("/booking-statuses", api.Statuses.List)
	auth.POST("/booking-statuses", api.Statuses.Create)
	auth.PUT("/booking-statuses/:id", api.Statuses.Update)
	auth.DELETE("/booking-statuses/:id", api.Statuses.Delete)

	auth.GET("/categories", api.Categories.List)
	auth.POST("/categories", api.Categories.Create)
	auth.PUT("/categories/:id", api.Categories.Update)
	auth.DELETE("/categories/:id", api.Categories.Delete)

	auth.GET("/positions", api.Positions.List)
	auth.POST("/positions", api.Positions.Create)
	auth.PUT("/positions/:id", api.Positions.Update)
	auth.DELETE("/positions/:id", api.Positions.Delete)

	auth.GET("/payments", api.Payments.List)
	auth.POST("/payments", api.Payments.Create)
	auth.GET("/payments/:id", api.Payments.Get)
	auth.PUT("/payments/:id", api.Payments.Update)
	auth.DELETE("/payments/:id", api.Payments.Delete)
	auth.GET("/payment-methods", api.Payments.ListMethods)
	auth.POST("/payment-methods", api.Payments.CreateMethod)
	auth.DELETE("/payment-methods/:id", api.Payments.DeleteMethod)

	auth.GET("/services", api.Services.List)
	auth.POST("/services", api.Services.Create)
	auth.PUT("/services/:id", api.Services.Update)
	auth.DELETE("/services/:id", api.Services.Delete)
	auth.GET("/service-usage", api.Services.ListUsage)
	auth.POST("/service-usage", api.Services.CreateUsage)
	auth.PUT("/service-usage/:id", api.Services.UpdateUsage)
	auth.DELETE("/service-usage/:id", api.Services.DeleteUsage)

	auth.GET("/documents", api.Documents.List)
	auth.POST("/documents", api.Documents.Create)
	auth.GET("/documents/:id", api.Documents.Get)
	auth.PUT("/documents/:id", api.Documents.Update)
	auth.DELETE("/documents/:id", api.Documents.Delete)

	auth.GET("/cleanings", api.Cleanings.List)
	auth.POST("/cleanings", api.Cleanings.Create)
	auth.PUT("/cleanings/:id", api.Cleanings.Update)
	auth.DELETE("/cleanings/:id", api.Cleanings.Delete)

	auth.GET("/sales-analysis", api.Sales.List)
	auth.POST("/sales-analysis", api.Sales.Create)
	auth.PUT("/sales-analysis/:id", api.Sales.Update)
	auth.DELETE("/sales-analysis/:id", api.Sales.Delete)
}
