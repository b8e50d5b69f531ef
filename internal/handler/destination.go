package handler

import (
    "context"
    "database/sql"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/travel-tour-booking/internal/model"
    "github.com/iliyamo/travel-tour-booking/internal/repository"
)

// DestinationHandler serves the destination catalog. Reads are public;
// mutations sit behind the ADMIN role in the router.
type DestinationHandler struct {
    Repo *repository.DestinationRepo
}

func NewDestinationHandler(r *repository.DestinationRepo) *DestinationHandler {
    return &DestinationHandler{Repo: r}
}

type destinationReq struct {
    Name        string   `json:"name"`
    Country     string   `json:"country"`
    Description string   `json:"description"`
    Images      []string `json:"images"`
    Attractions []string `json:"attractions"`
}

type destinationResp struct {
    ID          uint64    `json:"id"`
    Name        string    `json:"name"`
    Country     string    `json:"country"`
    Description string    `json:"description"`
    Images      []string  `json:"images"`
    Attractions []string  `json:"attractions"`
    CreatedAt   time.Time `json:"createdAt"`
    UpdatedAt   time.Time `json:"updatedAt"`
}

func toDestinationResp(d *model.Destination) destinationResp {
    return destinationResp{
        ID:          d.ID,
        Name:        d.Name,
        Country:     d.Country,
        Description: d.Description,
        Images:      d.Images,
        Attractions: d.Attractions,
        CreatedAt:   d.CreatedAt,
        UpdatedAt:   d.UpdatedAt,
    }
}

// List returns destinations with optional ?search over name and country.
func (h *DestinationHandler) List(c echo.Context) error {
    page, limit, offset := pageParams(c)

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    items, total, err := h.Repo.List(ctx, c.QueryParam("search"), limit, offset)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]destinationResp, 0, len(items))
    for i := range items {
        out = append(out, toDestinationResp(&items[i]))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out, "meta": newPageMeta(page, limit, total)})
}

// Get returns one destination by id.
func (h *DestinationHandler) Get(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    d, err := h.Repo.GetByID(ctx, id)
    if err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "destination not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, toDestinationResp(d))
}

// Create adds a destination to the catalog (admin).
func (h *DestinationHandler) Create(c echo.Context) error {
    var req destinationReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Name = strings.TrimSpace(req.Name)
    req.Country = strings.TrimSpace(req.Country)
    if req.Name == "" || req.Country == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name/country required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    d := &model.Destination{
        Name:        req.Name,
        Country:     req.Country,
        Description: req.Description,
        Images:      req.Images,
        Attractions: req.Attractions,
    }
    if err := h.Repo.Create(ctx, d); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create destination failed"})
    }
    return c.JSON(http.StatusCreated, toDestinationResp(d))
}

// Update replaces a destination's attributes (admin).
func (h *DestinationHandler) Update(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var req destinationReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Name = strings.TrimSpace(req.Name)
    req.Country = strings.TrimSpace(req.Country)
    if req.Name == "" || req.Country == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name/country required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    d := &model.Destination{
        ID:          id,
        Name:        req.Name,
        Country:     req.Country,
        Description: req.Description,
        Images:      req.Images,
        Attractions: req.Attractions,
    }
    if err := h.Repo.Update(ctx, d); err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "destination not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update destination failed"})
    }
    out, err := h.Repo.GetByID(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, toDestinationResp(out))
}

// Delete removes a destination (admin). Destinations still referenced
// by tours are refused with 409.
func (h *DestinationHandler) Delete(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Repo.Delete(ctx, id); err != nil {
        switch err {
        case sql.ErrNoRows:
            return c.JSON(http.StatusNotFound, echo.Map{"error": "destination not found"})
        case repository.ErrConflict:
            return c.JSON(http.StatusConflict, echo.Map{"error": "destination still referenced by tours"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete destination failed"})
    }
    return c.NoContent(http.StatusNoContent)
}
