package service

import (
    "context"
    "database/sql"
    "errors"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/travel-tour-booking/internal/model"
    "github.com/iliyamo/travel-tour-booking/internal/payment"
    q "github.com/iliyamo/travel-tour-booking/internal/queue"
    "github.com/iliyamo/travel-tour-booking/internal/repository"
)

type fakeOrderStore struct {
    orders  map[string]*model.Order
    created []*model.Order
}

func newFakeOrderStore() *fakeOrderStore {
    return &fakeOrderStore{orders: map[string]*model.Order{}}
}

func (f *fakeOrderStore) Create(_ context.Context, o *model.Order) error {
    cp := *o
    f.orders[o.OrderCode] = &cp
    f.created = append(f.created, &cp)
    return nil
}

func (f *fakeOrderStore) GetByCode(_ context.Context, code string, ownerID uint64) (*model.Order, error) {
    o, ok := f.orders[code]
    if !ok || (ownerID != 0 && o.CreatedBy != ownerID) {
        return nil, sql.ErrNoRows
    }
    cp := *o
    return &cp, nil
}

func (f *fakeOrderStore) UpdateStatusFrom(_ context.Context, code, from, to string, ownerID uint64) (bool, error) {
    o, ok := f.orders[code]
    if !ok || o.Status != from || (ownerID != 0 && o.CreatedBy != ownerID) {
        return false, nil
    }
    o.Status = to
    return true, nil
}

type fakeParticipantStore struct {
    groups map[uint64]*model.Participant
}

func (f *fakeParticipantStore) GetByIDForUser(_ context.Context, id, userID uint64) (*model.Participant, error) {
    p, ok := f.groups[id]
    if !ok {
        return nil, sql.ErrNoRows
    }
    if p.CreatedBy != userID {
        return nil, repository.ErrForbidden
    }
    cp := *p
    return &cp, nil
}

type fakeTourStore struct {
    tours map[uint64]*model.Tour
}

func (f *fakeTourStore) GetByID(_ context.Context, id uint64) (*model.Tour, error) {
    t, ok := f.tours[id]
    if !ok {
        return nil, sql.ErrNoRows
    }
    cp := *t
    return &cp, nil
}

type fakeLinker struct {
    calls int
    fail  bool
}

func (f *fakeLinker) CreateLink(_ context.Context, _ int64, _ string) (payment.Link, error) {
    f.calls++
    if f.fail {
        return payment.Link{}, errors.New("snap: 500")
    }
    return payment.Link{Token: "tok-1", RedirectURL: "https://pay.example/tok-1"}, nil
}

type fakePublisher struct {
    created []q.OrderCreatedEvent
    changed []q.OrderStatusChangedEvent
}

func (f *fakePublisher) PublishOrderCreated(_ context.Context, e q.OrderCreatedEvent) error {
    f.created = append(f.created, e)
    return nil
}

func (f *fakePublisher) PublishOrderStatusChanged(_ context.Context, e q.OrderStatusChangedEvent) error {
    f.changed = append(f.changed, e)
    return nil
}

type fixture struct {
    svc          *OrderService
    orders       *fakeOrderStore
    participants *fakeParticipantStore
    tours        *fakeTourStore
    linker       *fakeLinker
    events       *fakePublisher
}

func newFixture() *fixture {
    orders := newFakeOrderStore()
    participants := &fakeParticipantStore{groups: map[uint64]*model.Participant{
        10: {
            ID:        10,
            CreatedBy: 7,
            TourID:    3,
            Persons: []model.Person{
                {Name: "Ana", Category: model.PersonAdult},
                {Name: "Ben", Category: model.PersonAdult},
                {Name: "Cleo", Category: model.PersonChild},
            },
            TotalPerson: 3,
        },
        11: {ID: 11, CreatedBy: 7, TourID: 3, Persons: nil, TotalPerson: 0},
    }}
    tours := &fakeTourStore{tours: map[uint64]*model.Tour{
        3: {
            ID:    3,
            Title: "Bromo Sunrise",
            Price: model.TourPrice{AdultCents: 2_000_000, ChildCents: 1_500_000},
        },
    }}
    linker := &fakeLinker{}
    events := &fakePublisher{}
    return &fixture{
        svc:          NewOrderService(orders, participants, tours, linker, events),
        orders:       orders,
        participants: participants,
        tours:        tours,
        linker:       linker,
        events:       events,
    }
}

func TestOrderServiceCreate(t *testing.T) {
    ctx := context.Background()

    t.Run("prices the group and stores a pending order", func(t *testing.T) {
        fx := newFixture()
        o, err := fx.svc.Create(ctx, 7, 10)
        require.NoError(t, err)
        assert.Equal(t, int64(5_500_000), o.TotalCents)
        assert.Equal(t, model.OrderPending, o.Status)
        assert.Equal(t, uint64(7), o.CreatedBy)
        assert.Equal(t, "tok-1", o.Payment.Token)
        assert.Equal(t, "https://pay.example/tok-1", o.Payment.RedirectURL)
        assert.Regexp(t, `^ORDER-[A-Z0-9]{8}$`, o.OrderCode)
        require.Len(t, fx.events.created, 1)
        assert.Equal(t, o.OrderCode, fx.events.created[0].OrderCode)
        assert.Equal(t, "Bromo Sunrise", fx.events.created[0].TourTitle)
    })

    t.Run("empty group stores nothing and never calls the provider", func(t *testing.T) {
        fx := newFixture()
        _, err := fx.svc.Create(ctx, 7, 11)
        assert.ErrorIs(t, err, ErrEmptyGroup)
        assert.Zero(t, fx.linker.calls)
        assert.Empty(t, fx.orders.created)
        assert.Empty(t, fx.events.created)
    })

    t.Run("unknown participant is not found", func(t *testing.T) {
        fx := newFixture()
        _, err := fx.svc.Create(ctx, 7, 99)
        assert.ErrorIs(t, err, sql.ErrNoRows)
    })

    t.Run("another user's participant is forbidden", func(t *testing.T) {
        fx := newFixture()
        _, err := fx.svc.Create(ctx, 8, 10)
        assert.ErrorIs(t, err, repository.ErrForbidden)
        assert.Zero(t, fx.linker.calls)
    })

    t.Run("payment failure persists nothing", func(t *testing.T) {
        fx := newFixture()
        fx.linker.fail = true
        _, err := fx.svc.Create(ctx, 7, 10)
        assert.ErrorIs(t, err, ErrPaymentProvider)
        assert.Empty(t, fx.orders.created)
        assert.Empty(t, fx.events.created)
    })
}

func TestOrderServiceTransitions(t *testing.T) {
    ctx := context.Background()

    create := func(t *testing.T, fx *fixture) *model.Order {
        t.Helper()
        o, err := fx.svc.Create(ctx, 7, 10)
        require.NoError(t, err)
        return o
    }

    t.Run("pending completes once", func(t *testing.T) {
        fx := newFixture()
        o := create(t, fx)
        got, err := fx.svc.Complete(ctx, o.OrderCode, 0)
        require.NoError(t, err)
        assert.Equal(t, model.OrderCompleted, got.Status)
        require.Len(t, fx.events.changed, 1)
        assert.Equal(t, model.OrderPending, fx.events.changed[0].FromStatus)
        assert.Equal(t, model.OrderCompleted, fx.events.changed[0].ToStatus)
    })

    t.Run("double complete conflicts", func(t *testing.T) {
        fx := newFixture()
        o := create(t, fx)
        _, err := fx.svc.Complete(ctx, o.OrderCode, 0)
        require.NoError(t, err)
        _, err = fx.svc.Complete(ctx, o.OrderCode, 0)
        assert.ErrorIs(t, err, repository.ErrConflict)
    })

    t.Run("cancel after complete conflicts", func(t *testing.T) {
        fx := newFixture()
        o := create(t, fx)
        _, err := fx.svc.Complete(ctx, o.OrderCode, 0)
        require.NoError(t, err)
        _, err = fx.svc.Cancel(ctx, o.OrderCode, 0)
        assert.ErrorIs(t, err, repository.ErrConflict)
    })

    t.Run("complete after cancel conflicts", func(t *testing.T) {
        fx := newFixture()
        o := create(t, fx)
        _, err := fx.svc.Cancel(ctx, o.OrderCode, 0)
        require.NoError(t, err)
        _, err = fx.svc.Complete(ctx, o.OrderCode, 0)
        assert.ErrorIs(t, err, repository.ErrConflict)
    })

    t.Run("double cancel conflicts", func(t *testing.T) {
        fx := newFixture()
        o := create(t, fx)
        _, err := fx.svc.Cancel(ctx, o.OrderCode, 0)
        require.NoError(t, err)
        _, err = fx.svc.Cancel(ctx, o.OrderCode, 0)
        assert.ErrorIs(t, err, repository.ErrConflict)
    })

    t.Run("no status re-enters pending", func(t *testing.T) {
        fx := newFixture()
        o := create(t, fx)
        _, err := fx.svc.MarkPending(ctx, o.OrderCode, 0)
        assert.ErrorIs(t, err, repository.ErrConflict)

        _, err = fx.svc.Cancel(ctx, o.OrderCode, 0)
        require.NoError(t, err)
        _, err = fx.svc.MarkPending(ctx, o.OrderCode, 0)
        assert.ErrorIs(t, err, repository.ErrConflict)
    })

    t.Run("owner scoping hides foreign orders", func(t *testing.T) {
        fx := newFixture()
        o := create(t, fx)
        _, err := fx.svc.Complete(ctx, o.OrderCode, 8)
        assert.ErrorIs(t, err, sql.ErrNoRows)

        got, err := fx.svc.Complete(ctx, o.OrderCode, 7)
        require.NoError(t, err)
        assert.Equal(t, model.OrderCompleted, got.Status)
    })

    t.Run("lost race reports a conflict", func(t *testing.T) {
        fx := newFixture()
        o := create(t, fx)
        // another writer wins between the read and the update
        fx.orders.orders[o.OrderCode].Status = model.OrderCancelled
        _, err := fx.svc.Complete(ctx, o.OrderCode, 0)
        assert.ErrorIs(t, err, repository.ErrConflict)
    })

    t.Run("unknown order is not found", func(t *testing.T) {
        fx := newFixture()
        _, err := fx.svc.Complete(ctx, "ORDER-MISSING1", 0)
        assert.ErrorIs(t, err, sql.ErrNoRows)
    })
}
