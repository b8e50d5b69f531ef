package handler

import (
    "context"
    "database/sql"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/travel-tour-booking/internal/model"
    "github.com/iliyamo/travel-tour-booking/internal/repository"
    "github.com/iliyamo/travel-tour-booking/internal/utils"
)

// TourHandler serves the tour catalog. Reads are public, lookups work by
// either numeric id or slug, and mutations sit behind the ADMIN role.
type TourHandler struct {
    Tours        *repository.TourRepo
    Destinations *repository.DestinationRepo
}

func NewTourHandler(t *repository.TourRepo, d *repository.DestinationRepo) *TourHandler {
    return &TourHandler{Tours: t, Destinations: d}
}

type tourReq struct {
    Title          string                `json:"title"`
    Slug           string                `json:"slug"`
    DestinationID  uint64                `json:"destinationId"`
    Description    string                `json:"description"`
    Itinerary      []model.ItineraryItem `json:"itinerary"`
    MaxParticipant int                   `json:"maxParticipant"`
    IsRecurring    bool                  `json:"isRecurring"`
    Duration       int                   `json:"duration"`
    Availability   model.Availability    `json:"availability"`
    PriceAdult     int64                 `json:"priceAdult"`
    PriceChild     int64                 `json:"priceChild"`
}

type tourResp struct {
    ID             uint64                `json:"id"`
    Title          string                `json:"title"`
    Slug           string                `json:"slug"`
    DestinationID  uint64                `json:"destinationId"`
    Description    string                `json:"description"`
    Itinerary      []model.ItineraryItem `json:"itinerary"`
    MaxParticipant int                   `json:"maxParticipant"`
    IsRecurring    bool                  `json:"isRecurring"`
    Duration       int                   `json:"duration"`
    Availability   model.Availability    `json:"availability"`
    Price          model.TourPrice       `json:"price"`
    CreatedAt      time.Time             `json:"createdAt"`
    UpdatedAt      time.Time             `json:"updatedAt"`
}

func toTourResp(t *model.Tour) tourResp {
    return tourResp{
        ID:             t.ID,
        Title:          t.Title,
        Slug:           t.Slug,
        DestinationID:  t.DestinationID,
        Description:    t.Description,
        Itinerary:      t.Itinerary,
        MaxParticipant: t.MaxParticipant,
        IsRecurring:    t.IsRecurring,
        Duration:       t.Duration,
        Availability:   t.Availability,
        Price:          t.Price,
        CreatedAt:      t.CreatedAt,
        UpdatedAt:      t.UpdatedAt,
    }
}

func (h *TourHandler) tourFromReq(req *tourReq) (*model.Tour, string) {
    req.Title = strings.TrimSpace(req.Title)
    if req.Title == "" {
        return nil, "title required"
    }
    if req.DestinationID == 0 {
        return nil, "destinationId required"
    }
    if req.MaxParticipant < 1 {
        return nil, "maxParticipant must be at least 1"
    }
    if req.Duration < 1 {
        return nil, "duration must be at least 1"
    }
    if req.PriceAdult < 0 || req.PriceChild < 0 {
        return nil, "prices must not be negative"
    }
    slug := strings.TrimSpace(req.Slug)
    if slug == "" {
        slug = utils.Slugify(req.Title)
    }
    return &model.Tour{
        Title:          req.Title,
        Slug:           slug,
        DestinationID:  req.DestinationID,
        Description:    req.Description,
        Itinerary:      req.Itinerary,
        MaxParticipant: req.MaxParticipant,
        IsRecurring:    req.IsRecurring,
        Duration:       req.Duration,
        Availability:   req.Availability,
        Price:          model.TourPrice{AdultCents: req.PriceAdult, ChildCents: req.PriceChild},
    }, ""
}

// List returns tours with optional ?search over the title and
// ?destination filtering by destination id.
func (h *TourHandler) List(c echo.Context) error {
    page, limit, offset := pageParams(c)
    var destinationID uint64
    if v := c.QueryParam("destination"); v != "" {
        id, err := strconv.ParseUint(v, 10, 64)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid destination"})
        }
        destinationID = id
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    items, total, err := h.Tours.List(ctx, c.QueryParam("search"), destinationID, limit, offset)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]tourResp, 0, len(items))
    for i := range items {
        out = append(out, toTourResp(&items[i]))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out, "meta": newPageMeta(page, limit, total)})
}

// Get returns one tour. The path parameter is tried as a numeric id
// first and falls back to a slug lookup.
func (h *TourHandler) Get(c echo.Context) error {
    key := c.Param("id")

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    var (
        t   *model.Tour
        err error
    )
    if id, perr := strconv.ParseUint(key, 10, 64); perr == nil {
        t, err = h.Tours.GetByID(ctx, id)
    } else {
        t, err = h.Tours.GetBySlug(ctx, key)
    }
    if err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "tour not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, toTourResp(t))
}

// Create adds a tour (admin). The destination must exist and the slug,
// derived from the title when absent, must be unique.
func (h *TourHandler) Create(c echo.Context) error {
    var req tourReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    t, msg := h.tourFromReq(&req)
    if msg != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if _, err := h.Destinations.GetByID(ctx, t.DestinationID); err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "destination not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    if err := h.Tours.Create(ctx, t); err != nil {
        if err == repository.ErrSlugExists {
            return c.JSON(http.StatusConflict, echo.Map{"error": "slug already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create tour failed"})
    }
    return c.JSON(http.StatusCreated, toTourResp(t))
}

// Update replaces a tour's attributes (admin).
func (h *TourHandler) Update(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var req tourReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    t, msg := h.tourFromReq(&req)
    if msg != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
    }
    t.ID = id

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if _, err := h.Destinations.GetByID(ctx, t.DestinationID); err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "destination not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    if err := h.Tours.Update(ctx, t); err != nil {
        switch err {
        case sql.ErrNoRows:
            return c.JSON(http.StatusNotFound, echo.Map{"error": "tour not found"})
        case repository.ErrSlugExists:
            return c.JSON(http.StatusConflict, echo.Map{"error": "slug already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update tour failed"})
    }
    out, err := h.Tours.GetByID(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, toTourResp(out))
}

// Delete removes a tour (admin). Tours referenced by participants or
// orders are refused with 409.
func (h *TourHandler) Delete(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Tours.Delete(ctx, id); err != nil {
        switch err {
        case sql.ErrNoRows:
            return c.JSON(http.StatusNotFound, echo.Map{"error": "tour not found"})
        case repository.ErrConflict:
            return c.JSON(http.StatusConflict, echo.Map{"error": "tour still referenced by participants or orders"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete tour failed"})
    }
    return c.NoContent(http.StatusNoContent)
}
