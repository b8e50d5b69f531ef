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
)

// BannerHandler serves storefront banners. The public listing only
// returns visible banners; admins see and manage all of them.
type BannerHandler struct {
    Repo *repository.BannerRepo
}

func NewBannerHandler(r *repository.BannerRepo) *BannerHandler {
    return &BannerHandler{Repo: r}
}

type bannerReq struct {
    Title  string `json:"title"`
    Image  string `json:"image"`
    IsShow *bool  `json:"isShow"`
}

type bannerResp struct {
    ID        uint64    `json:"id"`
    Title     string    `json:"title"`
    Image     string    `json:"image"`
    IsShow    bool      `json:"isShow"`
    CreatedAt time.Time `json:"createdAt"`
    UpdatedAt time.Time `json:"updatedAt"`
}

func toBannerResp(b *model.Banner) bannerResp {
    return bannerResp{ID: b.ID, Title: b.Title, Image: b.Image, IsShow: b.IsShow, CreatedAt: b.CreatedAt, UpdatedAt: b.UpdatedAt}
}

// List returns banners. Unauthenticated callers only get visible ones;
// admins may pass ?show=true|false to filter, or nothing to see all.
func (h *BannerHandler) List(c echo.Context) error {
    page, limit, offset := pageParams(c)

    var isShow *bool
    if isAdmin(c) {
        if v := c.QueryParam("show"); v != "" {
            b, err := strconv.ParseBool(v)
            if err != nil {
                return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show"})
            }
            isShow = &b
        }
    } else {
        visible := true
        isShow = &visible
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    items, total, err := h.Repo.List(ctx, c.QueryParam("search"), isShow, limit, offset)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]bannerResp, 0, len(items))
    for i := range items {
        out = append(out, toBannerResp(&items[i]))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out, "meta": newPageMeta(page, limit, total)})
}

// Get returns one banner by id.
func (h *BannerHandler) Get(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    b, err := h.Repo.GetByID(ctx, id)
    if err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "banner not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if !b.IsShow && !isAdmin(c) {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "banner not found"})
    }
    return c.JSON(http.StatusOK, toBannerResp(b))
}

// Create adds a banner (admin). Banners default to hidden unless isShow
// is set.
func (h *BannerHandler) Create(c echo.Context) error {
    var req bannerReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Title = strings.TrimSpace(req.Title)
    if req.Title == "" || strings.TrimSpace(req.Image) == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "title/image required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    b := &model.Banner{Title: req.Title, Image: strings.TrimSpace(req.Image)}
    if req.IsShow != nil {
        b.IsShow = *req.IsShow
    }
    if err := h.Repo.Create(ctx, b); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create banner failed"})
    }
    return c.JSON(http.StatusCreated, toBannerResp(b))
}

// Update replaces a banner's attributes (admin).
func (h *BannerHandler) Update(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var req bannerReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Title = strings.TrimSpace(req.Title)
    if req.Title == "" || strings.TrimSpace(req.Image) == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "title/image required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    b := &model.Banner{ID: id, Title: req.Title, Image: strings.TrimSpace(req.Image)}
    if req.IsShow != nil {
        b.IsShow = *req.IsShow
    }
    if err := h.Repo.Update(ctx, b); err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "banner not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update banner failed"})
    }
    out, err := h.Repo.GetByID(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, toBannerResp(out))
}

// Delete removes a banner (admin).
func (h *BannerHandler) Delete(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Repo.Delete(ctx, id); err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "banner not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete banner failed"})
    }
    return c.NoContent(http.StatusNoContent)
}
