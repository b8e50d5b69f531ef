package handler

import (
    "context"
    "database/sql"
    "errors"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/travel-tour-booking/internal/model"
    "github.com/iliyamo/travel-tour-booking/internal/repository"
    "github.com/iliyamo/travel-tour-booking/internal/service"
)

// OrderHandler is a thin HTTP layer over the order service. Creation
// and the status lifecycle live in the service; listing goes straight
// to the repository. Users only ever see their own orders, admins see
// everything.
type OrderHandler struct {
    Svc    *service.OrderService
    Orders *repository.OrderRepo
}

func NewOrderHandler(svc *service.OrderService, orders *repository.OrderRepo) *OrderHandler {
    return &OrderHandler{Svc: svc, Orders: orders}
}

type createOrderReq struct {
    ParticipantID uint64 `json:"participantId"`
}

type orderResp struct {
    OrderCode     string    `json:"orderId"`
    TourID        uint64    `json:"tourId"`
    ParticipantID uint64    `json:"participantId"`
    Total         int64     `json:"total"`
    Status        string    `json:"status"`
    Payment       payResp   `json:"payment"`
    CreatedAt     time.Time `json:"createdAt"`
    UpdatedAt     time.Time `json:"updatedAt"`
}

type payResp struct {
    Token       string `json:"token"`
    RedirectURL string `json:"redirect_url"`
}

func toOrderResp(o *model.Order) orderResp {
    return orderResp{
        OrderCode:     o.OrderCode,
        TourID:        o.TourID,
        ParticipantID: o.ParticipantID,
        Total:         o.TotalCents,
        Status:        o.Status,
        Payment:       payResp{Token: o.Payment.Token, RedirectURL: o.Payment.RedirectURL},
        CreatedAt:     o.CreatedAt,
        UpdatedAt:     o.UpdatedAt,
    }
}

// scopeFor returns the owner id the repository queries are scoped to:
// the caller's id for users, 0 (unscoped) for admins.
func scopeFor(c echo.Context, uid uint64) uint64 {
    if isAdmin(c) {
        return 0
    }
    return uid
}

// Create places an order for one of the caller's participant groups.
func (h *OrderHandler) Create(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req createOrderReq
    if err := c.Bind(&req); err != nil || req.ParticipantID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "participantId required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
    defer cancel()

    o, err := h.Svc.Create(ctx, uid, req.ParticipantID)
    if err != nil {
        switch {
        case errors.Is(err, service.ErrEmptyGroup):
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "participant group has no persons"})
        case errors.Is(err, sql.ErrNoRows):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "participant or tour not found"})
        case errors.Is(err, repository.ErrForbidden):
            return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
        case errors.Is(err, service.ErrPaymentProvider):
            return c.JSON(http.StatusBadGateway, echo.Map{"error": "payment provider unavailable"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create order failed"})
    }
    return c.JSON(http.StatusCreated, toOrderResp(o))
}

// List returns orders. Users get their own; admins get everything and
// may additionally filter by ?user, ?tour and ?participant.
func (h *OrderHandler) List(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    page, limit, offset := pageParams(c)

    f := repository.OrderFilter{
        Search:    c.QueryParam("search"),
        CreatedBy: scopeFor(c, uid),
    }
    if s := c.QueryParam("status"); s != "" {
        if !model.ValidOrderStatus(s) {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
        }
        f.Status = s
    }
    if isAdmin(c) {
        if v := c.QueryParam("user"); v != "" {
            id, err := strconv.ParseUint(v, 10, 64)
            if err != nil {
                return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user"})
            }
            f.CreatedBy = id
        }
        if v := c.QueryParam("tour"); v != "" {
            id, err := strconv.ParseUint(v, 10, 64)
            if err != nil {
                return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid tour"})
            }
            f.TourID = id
        }
        if v := c.QueryParam("participant"); v != "" {
            id, err := strconv.ParseUint(v, 10, 64)
            if err != nil {
                return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid participant"})
            }
            f.ParticipantID = id
        }
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    items, total, err := h.Orders.List(ctx, f, limit, offset)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]orderResp, 0, len(items))
    for i := range items {
        out = append(out, toOrderResp(&items[i]))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out, "meta": newPageMeta(page, limit, total)})
}

// Get returns one order by code.
func (h *OrderHandler) Get(c echo.Context) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    code := c.Param("code")
    if code == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid code"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    o, err := h.Orders.GetByCode(ctx, code, scopeFor(c, uid))
    if err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, toOrderResp(o))
}

// Complete marks a pending order completed.
func (h *OrderHandler) Complete(c echo.Context) error {
    return h.updateStatus(c, model.OrderCompleted)
}

// Cancel marks a pending order cancelled.
func (h *OrderHandler) Cancel(c echo.Context) error {
    return h.updateStatus(c, model.OrderCancelled)
}

// Pending attempts to mark an order pending again. No transition leads
// back to pending, so this always answers 404 or 409.
func (h *OrderHandler) Pending(c echo.Context) error {
    return h.updateStatus(c, model.OrderPending)
}

func (h *OrderHandler) updateStatus(c echo.Context, to string) error {
    uid, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    code := c.Param("code")
    if code == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid code"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    var o *model.Order
    switch to {
    case model.OrderCompleted:
        o, err = h.Svc.Complete(ctx, code, scopeFor(c, uid))
    case model.OrderCancelled:
        o, err = h.Svc.Cancel(ctx, code, scopeFor(c, uid))
    default:
        o, err = h.Svc.MarkPending(ctx, code, scopeFor(c, uid))
    }
    if err != nil {
        switch {
        case errors.Is(err, sql.ErrNoRows):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
        case errors.Is(err, repository.ErrConflict):
            return c.JSON(http.StatusConflict, echo.Map{"error": "status transition not allowed"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update order failed"})
    }
    return c.JSON(http.StatusOK, toOrderResp(o))
}

// Delete removes an order (admin).
func (h *OrderHandler) Delete(c echo.Context) error {
    code := c.Param("code")
    if code == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid code"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Orders.Delete(ctx, code); err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete order failed"})
    }
    return c.NoContent(http.StatusNoContent)
}
