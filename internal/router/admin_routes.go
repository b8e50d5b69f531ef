package router

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/travel-tour-booking/internal/handler"
    "github.com/iliyamo/travel-tour-booking/internal/middleware"
)

// RegisterAdmin registers the back-office endpoints under /v1/admin.
// All routes require the ADMIN role. Admins manage the catalog, see and
// act on every order, and upload media.
func RegisterAdmin(e *echo.Echo, d *handler.DestinationHandler, t *handler.TourHandler, b *handler.BannerHandler, o *handler.OrderHandler, m *handler.MediaHandler, jwtSecret string) {
    g := e.Group(
        "/v1/admin",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole("ADMIN"),
    )

    g.POST("/destinations", d.Create)
    g.PUT("/destinations/:id", d.Update)
    g.DELETE("/destinations/:id", d.Delete)

    g.POST("/tours", t.Create)
    g.PUT("/tours/:id", t.Update)
    g.DELETE("/tours/:id", t.Delete)

    g.GET("/banners", b.List)
    g.POST("/banners", b.Create)
    g.PUT("/banners/:id", b.Update)
    g.DELETE("/banners/:id", b.Delete)

    g.GET("/orders", o.List)
    g.GET("/orders/:code", o.Get)
    g.PUT("/orders/:code/completed", o.Complete)
    g.PUT("/orders/:code/cancelled", o.Cancel)
    g.PUT("/orders/:code/pending", o.Pending)
    g.DELETE("/orders/:code", o.Delete)

    g.POST("/media/upload", m.Upload)
    g.POST("/media/uploads", m.UploadMany)
    g.DELETE("/media", m.Remove)
}
