package model

import "time"

// Banner represents a promotional banner shown on the storefront.
//
// Fields:
//  ID        – primary key identifier.
//  Title     – banner title.
//  Image     – banner image URL.
//  IsShow    – whether the banner is currently displayed.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Banner struct {
    ID        uint64    // banners.id
    Title     string    // banners.title
    Image     string    // banners.image
    IsShow    bool      // banners.is_show
    CreatedAt time.Time // banners.created_at
    UpdatedAt time.Time // banners.updated_at
}
