package queue

import "time"

// OrderCreatedEvent is published when an order is successfully created.
// It carries enough information for downstream consumers to log, notify,
// or feed analytics without querying the primary database.
type OrderCreatedEvent struct {
    OrderCode     string    `json:"order_code"`
    UserID        uint64    `json:"user_id"`
    TourID        uint64    `json:"tour_id"`
    TourTitle     string    `json:"tour_title"`
    ParticipantID uint64    `json:"participant_id"`
    TotalPerson   int       `json:"total_person"`
    TotalCents    int64     `json:"total_cents"`
    PaymentURL    string    `json:"payment_url"`
    CreatedAt     time.Time `json:"created_at"`
}

// OrderStatusChangedEvent is published when an order moves between
// lifecycle statuses (pending -> completed / cancelled).
type OrderStatusChangedEvent struct {
    OrderCode  string    `json:"order_code"`
    UserID     uint64    `json:"user_id"`
    FromStatus string    `json:"from_status"`
    ToStatus   string    `json:"to_status"`
    ChangedAt  time.Time `json:"changed_at"`
}
