package middleware

// identity.go holds helpers shared by the middleware in this package for
// reading the authenticated identity out of the Echo context.

import (
    "strconv"

    "github.com/labstack/echo/v4"
)

// currentUserID returns the identity JWTAuth stored under "user_id" as a
// string for use in Redis keys, or "anon" for unauthenticated requests.
// Numeric JWT claims decode as float64.
func currentUserID(c echo.Context) string {
    switch t := c.Get("user_id").(type) {
    case string:
        if t != "" {
            return t
        }
    case float64:
        return strconv.FormatUint(uint64(t), 10)
    case uint64:
        return strconv.FormatUint(t, 10)
    }
    return "anon"
}
