package router

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/travel-tour-booking/internal/handler"
    "github.com/iliyamo/travel-tour-booking/internal/middleware"
)

// RegisterCustomer registers the customer endpoints under /v1. All
// routes require a valid JWT with the USER role. Customers manage
// their own participant groups and orders; ownership is enforced in
// the handlers and repositories.
func RegisterCustomer(e *echo.Echo, p *handler.ParticipantHandler, o *handler.OrderHandler, jwtSecret string) {
    g := e.Group(
        "/v1",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole("USER"),
    )

    g.POST("/participants", p.Create)
    g.GET("/participants", p.List)
    g.GET("/participants/:id", p.Get)
    g.PUT("/participants/:id", p.Update)
    g.DELETE("/participants/:id", p.Delete)

    g.POST("/orders", o.Create)
    g.GET("/orders", o.List)
    g.GET("/orders/me", o.List)
    g.GET("/orders/:code", o.Get)
    g.PUT("/orders/:code/completed", o.Complete)
    g.PUT("/orders/:code/cancelled", o.Cancel)
    g.PUT("/orders/:code/pending", o.Pending)
}
