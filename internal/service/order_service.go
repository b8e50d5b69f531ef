package service

import (
    "context"
    "errors"
    "fmt"
    "time"

    "github.com/iliyamo/travel-tour-booking/internal/model"
    "github.com/iliyamo/travel-tour-booking/internal/payment"
    "github.com/iliyamo/travel-tour-booking/internal/pricing"
    q "github.com/iliyamo/travel-tour-booking/internal/queue"
    "github.com/iliyamo/travel-tour-booking/internal/repository"
    "github.com/iliyamo/travel-tour-booking/internal/utils"
)

// ErrEmptyGroup is returned when an order is placed against a
// participant group with no persons in it.
var ErrEmptyGroup = errors.New("participant group has no persons")

// ErrPaymentProvider is returned when the payment provider fails to
// issue a payment link. It is distinct from validation and not-found
// failures so handlers can map it to an upstream-dependency response.
var ErrPaymentProvider = errors.New("payment provider unavailable")

// OrderStore is the subset of the order repository the service needs.
type OrderStore interface {
    Create(ctx context.Context, o *model.Order) error
    GetByCode(ctx context.Context, code string, ownerID uint64) (*model.Order, error)
    UpdateStatusFrom(ctx context.Context, code, from, to string, ownerID uint64) (bool, error)
}

// ParticipantStore loads participant groups scoped to their owner.
type ParticipantStore interface {
    GetByIDForUser(ctx context.Context, id, userID uint64) (*model.Participant, error)
}

// TourStore loads tours by id.
type TourStore interface {
    GetByID(ctx context.Context, id uint64) (*model.Tour, error)
}

// EventPublisher emits order lifecycle events. Publish failures must
// not fail the request; the service logs and moves on.
type EventPublisher interface {
    PublishOrderCreated(ctx context.Context, event q.OrderCreatedEvent) error
    PublishOrderStatusChanged(ctx context.Context, event q.OrderStatusChangedEvent) error
}

// OrderService owns order creation and the status lifecycle. All
// collaborators are injected so the payment provider and the broker can
// be replaced in tests.
type OrderService struct {
    orders       OrderStore
    participants ParticipantStore
    tours        TourStore
    payments     payment.Linker
    events       EventPublisher
}

func NewOrderService(orders OrderStore, participants ParticipantStore, tours TourStore, payments payment.Linker, events EventPublisher) *OrderService {
    return &OrderService{
        orders:       orders,
        participants: participants,
        tours:        tours,
        payments:     payments,
        events:       events,
    }
}

// Create places a new order for the given participant group owned by
// userID. It prices the group from the tour's price card, requests a
// payment link, and only then persists the order in pending status.
// Nothing is stored when the payment provider fails.
func (s *OrderService) Create(ctx context.Context, userID, participantID uint64) (*model.Order, error) {
    p, err := s.participants.GetByIDForUser(ctx, participantID, userID)
    if err != nil {
        return nil, err
    }
    if len(p.Persons) == 0 {
        return nil, ErrEmptyGroup
    }

    t, err := s.tours.GetByID(ctx, p.TourID)
    if err != nil {
        return nil, err
    }

    total := pricing.TotalForGroup(p.Persons, t.Price)

    code, err := utils.NewCode("ORDER", 8)
    if err != nil {
        return nil, err
    }

    // The payment link is requested before anything is written so a
    // provider outage leaves no half-created order behind.
    link, err := s.payments.CreateLink(ctx, total, code)
    if err != nil {
        return nil, fmt.Errorf("%w: %v", ErrPaymentProvider, err)
    }

    o := &model.Order{
        OrderCode:     code,
        CreatedBy:     userID,
        TourID:        t.ID,
        ParticipantID: p.ID,
        TotalCents:    total,
        Status:        model.OrderPending,
        Payment: model.OrderPayment{
            Token:       link.Token,
            RedirectURL: link.RedirectURL,
        },
    }
    if err := s.orders.Create(ctx, o); err != nil {
        return nil, err
    }

    _ = s.events.PublishOrderCreated(ctx, q.OrderCreatedEvent{
        OrderCode:     o.OrderCode,
        UserID:        userID,
        TourID:        t.ID,
        TourTitle:     t.Title,
        ParticipantID: p.ID,
        TotalPerson:   p.TotalPerson,
        TotalCents:    total,
        PaymentURL:    link.RedirectURL,
        CreatedAt:     time.Now().UTC(),
    })

    return o, nil
}

// Complete moves an order from pending to completed.
func (s *OrderService) Complete(ctx context.Context, code string, ownerID uint64) (*model.Order, error) {
    return s.transition(ctx, code, model.OrderCompleted, ownerID)
}

// Cancel moves an order from pending to cancelled.
func (s *OrderService) Cancel(ctx context.Context, code string, ownerID uint64) (*model.Order, error) {
    return s.transition(ctx, code, model.OrderCancelled, ownerID)
}

// MarkPending attempts to move an order back to pending. No status may
// re-enter pending, so this resolves to not-found or conflict; the
// endpoint exists for API symmetry with the other status updates.
func (s *OrderService) MarkPending(ctx context.Context, code string, ownerID uint64) (*model.Order, error) {
    return s.transition(ctx, code, model.OrderPending, ownerID)
}

// transition applies a status change with a compare-and-set on the
// current status. ownerID scopes the change to the order's creator; 0
// skips the ownership check. A lost race or an illegal edge comes back
// as ErrConflict, a missing or foreign order as sql.ErrNoRows.
func (s *OrderService) transition(ctx context.Context, code, to string, ownerID uint64) (*model.Order, error) {
    o, err := s.orders.GetByCode(ctx, code, ownerID)
    if err != nil {
        return nil, err
    }
    if !model.CanTransition(o.Status, to) {
        return nil, repository.ErrConflict
    }

    ok, err := s.orders.UpdateStatusFrom(ctx, code, o.Status, to, ownerID)
    if err != nil {
        return nil, err
    }
    if !ok {
        // Someone else changed the status between the read and the
        // update, or the row vanished. Re-read to tell the two apart.
        if _, err := s.orders.GetByCode(ctx, code, ownerID); err != nil {
            return nil, err
        }
        return nil, repository.ErrConflict
    }

    from := o.Status
    o.Status = to
    o.UpdatedAt = time.Now().UTC()

    _ = s.events.PublishOrderStatusChanged(ctx, q.OrderStatusChangedEvent{
        OrderCode:  o.OrderCode,
        UserID:     o.CreatedBy,
        FromStatus: from,
        ToStatus:   to,
        ChangedAt:  o.UpdatedAt,
    })

    return o, nil
}
