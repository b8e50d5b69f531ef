package model

import "time"

// Destination represents a travel destination in the catalog.  Array
// valued attributes (gallery images, attraction names) are stored as
// JSON columns and (un)marshalled by the repository layer.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – destination name.
//  Country     – country the destination belongs to.
//  Description – marketing description.
//  Images      – gallery image URLs (destinations.images, JSON).
//  Attractions – attraction names (destinations.attractions, JSON).
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Destination struct {
    ID          uint64    // destinations.id
    Name        string    // destinations.name
    Country     string    // destinations.country
    Description string    // destinations.description
    Images      []string  // destinations.images (JSON array)
    Attractions []string  // destinations.attractions (JSON array)
    CreatedAt   time.Time // destinations.created_at
    UpdatedAt   time.Time // destinations.updated_at
}
