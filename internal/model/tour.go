package model

import "time"

// ItineraryItem describes a single day of a tour programme.  Items are
// stored inside the tours.itinerary JSON column.
type ItineraryItem struct {
    Day    int    `json:"day"`    // 1-based day number
    Detail string `json:"detail"` // description of the day's programme
    Image  string `json:"image"`  // illustration image URL
}

// Availability records when a tour can be booked.  Recurring tours list
// weekday names; one-off tours list fixed departure dates.  Exactly one
// of the two slices is populated depending on Tour.IsRecurring.
type Availability struct {
    AvailableDays []string    `json:"available_days,omitempty"` // weekday names for recurring tours
    FixedDates    []time.Time `json:"fixed_dates,omitempty"`    // departure dates for non-recurring tours
}

// TourPrice is the per-category unit price table of a tour.  Amounts are
// integer cents.  It is read-only input to the order pricing calculator.
type TourPrice struct {
    AdultCents int64 `json:"adult"` // tours.price_adult_cents
    ChildCents int64 `json:"child"` // tours.price_child_cents
}

// Tour represents a bookable tour package tied to a destination.  The
// itinerary and availability attributes live in JSON columns; the price
// table is flattened into two cents columns so that pricing never needs
// to parse JSON.
//
// Fields:
//  ID             – primary key identifier.
//  Title          – tour title.
//  Slug           – unique URL slug, derived from the title when absent.
//  DestinationID  – destination the tour visits.
//  Description    – marketing description.
//  Itinerary      – day-by-day programme (tours.itinerary, JSON).
//  MaxParticipant – booking capacity, at least 1.
//  IsRecurring    – whether the tour runs on recurring weekdays.
//  Duration       – length in days, at least 1.
//  Availability   – available weekdays or fixed dates (JSON).
//  Price          – per-category unit prices in cents.
//  CreatedAt      – creation timestamp.
//  UpdatedAt      – last update timestamp.
type Tour struct {
    ID             uint64          // tours.id
    Title          string          // tours.title
    Slug           string          // tours.slug
    DestinationID  uint64          // tours.destination_id
    Description    string          // tours.description
    Itinerary      []ItineraryItem // tours.itinerary (JSON array)
    MaxParticipant int             // tours.max_participant
    IsRecurring    bool            // tours.is_recurring
    Duration       int             // tours.duration
    Availability   Availability    // tours.availability (JSON object)
    Price          TourPrice       // tours.price_adult_cents / price_child_cents
    CreatedAt      time.Time       // tours.created_at
    UpdatedAt      time.Time       // tours.updated_at
}
