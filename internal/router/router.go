package router // router wires HTTP routes to their handlers

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/travel-tour-booking/internal/handler"
    "github.com/iliyamo/travel-tour-booking/internal/middleware"
)

// RegisterRoutes registers routes that need no authentication.
// Currently that is just the health check.
func RegisterRoutes(e *echo.Echo) {
    e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints. Registration,
// login and token exchange live under /v1/auth and are optionally rate
// limited; /v1/me requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, g *handler.GoogleHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
    mws := []echo.MiddlewareFunc{}
    if limiter != nil {
        mws = append(mws, limiter)
    }
    grp := e.Group("/v1/auth", mws...)
    grp.POST("/register", a.Register)
    grp.POST("/login", a.Login)
    grp.POST("/refresh", a.Refresh)
    grp.POST("/refresh-access", a.RefreshAccess)
    // Logout works with either a bearer token or a refresh token in the
    // body, so it stays outside the JWT middleware.
    grp.POST("/logout", a.Logout)

    // Google sign-in: browser redirect plus provider callback.
    grp.GET("/google", g.Redirect)
    grp.GET("/google/callback", g.Callback)

    auth := e.Group("/v1")
    auth.Use(middleware.JWTAuth(jwtSecret))
    auth.Use(middleware.RequireRole("USER", "ADMIN"))
    auth.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated catalog endpoints.
// Responses are cached in Redis when the cache middleware is supplied.
func RegisterPublic(e *echo.Echo, d *handler.DestinationHandler, t *handler.TourHandler, b *handler.BannerHandler, cache echo.MiddlewareFunc) {
    mws := []echo.MiddlewareFunc{}
    if cache != nil {
        mws = append(mws, cache)
    }
    grp := e.Group("/v1", mws...)
    grp.GET("/destinations", d.List)
    grp.GET("/destinations/:id", d.Get)
    grp.GET("/tours", t.List)
    // :id accepts either a numeric id or a slug.
    grp.GET("/tours/:id", t.Get)
    grp.GET("/banners", b.List)
    grp.GET("/banners/:id", b.Get)
}
