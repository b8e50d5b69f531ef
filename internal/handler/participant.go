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

// ParticipantHandler manages traveller groups. Every route is scoped to
// the authenticated user; a group can only be read or changed by the
// account that registered it.
type ParticipantHandler struct {
    Participants *repository.ParticipantRepo
    Tours        *repository.TourRepo
}

func NewParticipantHandler(p *repository.ParticipantRepo, t *repository.TourRepo) *ParticipantHandler {
    return &ParticipantHandler{Participants: p, Tours: t}
}

type participantReq struct {
    TourID      uint64         `json:"tourId"`
    Persons     []model.Person `json:"persons"`
    TotalPerson int            `json:"totalPerson"`
}

type participantResp struct {
    ID          uint64         `json:"id"`
    TourID      uint64         `json:"tourId"`
    Persons     []model.Person `json:"persons"`
    TotalPerson int            `json:"totalPerson"`
    CreatedAt   time.Time      `json:"createdAt"`
    UpdatedAt   time.Time      `json:"updatedAt"`
}

func toParticipantResp(p *model.Participant) participantResp {
    return participantResp{
        ID:          p.ID,
        TourID:      p.TourID,
        Persons:     p.Persons,
        TotalPerson: p.TotalPerson,
        CreatedAt:   p.CreatedAt,
        UpdatedAt:   p.UpdatedAt,
    }
}

// validateGroup checks the declared size against the person list and
// that every person has a name and a known category.
func validateGroup(req *participantReq) string {
    if req.TourID == 0 {
        return "tourId required"
    }
    if len(req.Persons) == 0 {
        return "persons required"
    }
    if req.TotalPerson != len(req.Persons) {
        return "totalPerson must equal the number of persons"
    }
    for i := range req.Persons {
        req.Persons[i].Name = strings.TrimSpace(req.Persons[i].Name)
        if req.Persons[i].Name == "" {
            return "person name required"
        }
        switch req.Persons[i].Category {
        case model.PersonAdult, model.PersonChild:
        default:
            return "person category must be adult or child"
        }
    }
    return ""
}

// Create registers a traveller group against a tour.
func (h *ParticipantHandler) Create(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req participantReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if msg := validateGroup(&req); msg != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    t, err := h.Tours.GetByID(ctx, req.TourID)
    if err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "tour not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if req.TotalPerson > t.MaxParticipant {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "group exceeds tour capacity"})
    }

    p := &model.Participant{
        CreatedBy:   uid,
        TourID:      req.TourID,
        Persons:     req.Persons,
        TotalPerson: req.TotalPerson,
    }
    if err := h.Participants.Create(ctx, p); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create participant failed"})
    }
    return c.JSON(http.StatusCreated, toParticipantResp(p))
}

// List returns the caller's groups with optional ?search over names.
func (h *ParticipantHandler) List(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    page, limit, offset := pageParams(c)

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    items, total, err := h.Participants.ListByUser(ctx, uid, c.QueryParam("search"), limit, offset)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]participantResp, 0, len(items))
    for i := range items {
        out = append(out, toParticipantResp(&items[i]))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out, "meta": newPageMeta(page, limit, total)})
}

// Get returns one of the caller's groups.
func (h *ParticipantHandler) Get(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    p, err := h.Participants.GetByIDForUser(ctx, id, uid)
    if err != nil {
        switch err {
        case sql.ErrNoRows:
            return c.JSON(http.StatusNotFound, echo.Map{"error": "participant not found"})
        case repository.ErrForbidden:
            return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, toParticipantResp(p))
}

// Update replaces one of the caller's groups. Groups already referenced
// by an order keep their original contents and are refused with 409.
func (h *ParticipantHandler) Update(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    var req participantReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if msg := validateGroup(&req); msg != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    t, err := h.Tours.GetByID(ctx, req.TourID)
    if err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "tour not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if req.TotalPerson > t.MaxParticipant {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "group exceeds tour capacity"})
    }

    p := &model.Participant{
        ID:          id,
        TourID:      req.TourID,
        Persons:     req.Persons,
        TotalPerson: req.TotalPerson,
    }
    if err := h.Participants.Update(ctx, p, uid); err != nil {
        switch err {
        case sql.ErrNoRows:
            return c.JSON(http.StatusNotFound, echo.Map{"error": "participant not found"})
        case repository.ErrForbidden:
            return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
        case repository.ErrConflict:
            return c.JSON(http.StatusConflict, echo.Map{"error": "participant already referenced by an order"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update participant failed"})
    }
    out, err := h.Participants.GetByIDForUser(ctx, id, uid)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, toParticipantResp(out))
}

// Delete removes one of the caller's groups unless an order references it.
func (h *ParticipantHandler) Delete(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Participants.Delete(ctx, id, uid); err != nil {
        switch err {
        case sql.ErrNoRows:
            return c.JSON(http.StatusNotFound, echo.Map{"error": "participant not found"})
        case repository.ErrForbidden:
            return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
        case repository.ErrConflict:
            return c.JSON(http.StatusConflict, echo.Map{"error": "participant already referenced by an order"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete participant failed"})
    }
    return c.NoContent(http.StatusNoContent)
}
