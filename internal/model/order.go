package model

import "time"

// Order statuses.  An order starts out pending; completed and cancelled
// are both terminal.
const (
    OrderPending   = "pending"
    OrderCompleted = "completed"
    OrderCancelled = "cancelled"
)

// OrderTransitions defines the valid status transitions.  The key is the
// current status, and the value is the set of statuses it may move to.
// Terminal statuses map to an empty slice.
var OrderTransitions = map[string][]string{
    OrderPending:   {OrderCompleted, OrderCancelled},
    OrderCompleted: {}, // terminal
    OrderCancelled: {}, // terminal
}

// CanTransition reports whether an order may move from one status to
// another.  Unknown statuses never transition.
func CanTransition(from, to string) bool {
    allowed, ok := OrderTransitions[from]
    if !ok {
        return false
    }
    for _, s := range allowed {
        if s == to {
            return true
        }
    }
    return false
}

// ValidOrderStatus reports whether s is one of the known order statuses.
func ValidOrderStatus(s string) bool {
    _, ok := OrderTransitions[s]
    return ok
}

// OrderPayment is the opaque payment-link reference attached to an order
// at creation.  It is stored verbatim and never re-fetched.
type OrderPayment struct {
    Token       string `json:"token"`        // orders.payment_token
    RedirectURL string `json:"redirect_url"` // orders.payment_redirect_url
}

// Order represents a single booking transaction.  OrderCode is the
// externally visible identifier used for all client-facing lookups and
// for correlating with the payment provider; the numeric ID stays
// internal.  TotalCents, Payment and OrderCode are fixed at creation;
// Status is the only field that changes afterwards.
//
// Fields:
//  ID            – primary key identifier.
//  OrderCode     – unique external code (ORDER-XXXXXXXX).
//  CreatedBy     – account that placed the order.
//  TourID        – tour being booked.
//  ParticipantID – participant group the order was priced from.
//  TotalCents    – computed total charge in cents.
//  Status        – pending, completed or cancelled.
//  Payment       – provider token and redirect URL.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Order struct {
    ID            uint64       // orders.id
    OrderCode     string       // orders.order_code
    CreatedBy     uint64       // orders.created_by
    TourID        uint64       // orders.tour_id
    ParticipantID uint64       // orders.participant_id
    TotalCents    int64        // orders.total_cents
    Status        string       // orders.status
    Payment       OrderPayment // orders.payment_token / payment_redirect_url
    CreatedAt     time.Time    // orders.created_at
    UpdatedAt     time.Time    // orders.updated_at
}
