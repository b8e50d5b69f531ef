package model

import "time"

// Person categories accepted in Participant.Persons.  The category set is
// fixed; pricing multiplies per-category head counts by the tour's unit
// prices.
const (
    PersonAdult = "adult"
    PersonChild = "child"
)

// Person is a single named traveller inside a participant group, tagged
// with a pricing category.  Persons are stored inside the
// participants.person JSON column.
type Person struct {
    Name     string `json:"name"`     // traveller name
    Category string `json:"category"` // "adult" or "child"
}

// Participant represents a registered group of travellers for a tour.
// TotalPerson must equal len(Persons) and be at least 1; the handler
// enforces this before the record is written.  A group is owned by the
// account that created it and referenced by orders created against it.
//
// Fields:
//  ID          – primary key identifier.
//  CreatedBy   – account that registered the group.
//  TourID      – tour the group intends to book.
//  Persons     – ordered travellers with category tags (JSON).
//  TotalPerson – declared group size, equals len(Persons).
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Participant struct {
    ID          uint64    // participants.id
    CreatedBy   uint64    // participants.created_by
    TourID      uint64    // participants.tour_id
    Persons     []Person  // participants.person (JSON array)
    TotalPerson int       // participants.total_person
    CreatedAt   time.Time // participants.created_at
    UpdatedAt   time.Time // participants.updated_at
}
