package handler // handler defines the HTTP handlers for the booking API

import (
    "errors"
    "strconv"

    "github.com/labstack/echo/v4"
)

// getUserID extracts the user_id placed in the context by the JWT
// middleware and converts it to uint64. JWT numeric claims decode as
// float64, string subjects are parsed.
func getUserID(c echo.Context) (uint64, error) {
    switch t := c.Get("user_id").(type) {
    case uint64:
        return t, nil
    case int:
        return uint64(t), nil
    case int64:
        return uint64(t), nil
    case float64:
        return uint64(t), nil
    case string:
        if n, err := strconv.ParseUint(t, 10, 64); err == nil {
            return n, nil
        }
    }
    return 0, errors.New("invalid user_id in context")
}

// isAdmin reports whether the authenticated request carries the ADMIN role.
func isAdmin(c echo.Context) bool {
    role, _ := c.Get("role").(string)
    return role == "ADMIN"
}

// pathID parses the named path parameter as an unsigned integer id.
func pathID(c echo.Context, name string) (uint64, error) {
    return strconv.ParseUint(c.Param(name), 10, 64)
}

// pageMeta is the pagination block returned alongside list items.
type pageMeta struct {
    Current    int `json:"current"`
    Total      int `json:"total"`
    TotalPages int `json:"totalPages"`
}

// pageParams reads ?page and ?limit with sane bounds and returns the
// page together with the derived limit/offset for SQL.
func pageParams(c echo.Context) (page, limit, offset int) {
    page, _ = strconv.Atoi(c.QueryParam("page"))
    if page < 1 {
        page = 1
    }
    limit, _ = strconv.Atoi(c.QueryParam("limit"))
    if limit < 1 || limit > 100 {
        limit = 10
    }
    return page, limit, (page - 1) * limit
}

func newPageMeta(page, limit, total int) pageMeta {
    pages := total / limit
    if total%limit != 0 {
        pages++
    }
    if pages == 0 {
        pages = 1
    }
    return pageMeta{Current: page, Total: total, TotalPages: pages}
}
