// Package pricing computes order totals from a participant group's
// composition and a tour's per-category price table.  The functions are
// pure: all precondition checks (missing tour, empty group) belong to
// the caller.
package pricing

import "github.com/iliyamo/travel-tour-booking/internal/model"

// CountByCategory returns how many persons carry the given category tag.
// An empty or nil slice yields 0 for every category.
func CountByCategory(persons []model.Person, category string) int {
    n := 0
    for _, p := range persons {
        if p.Category == category {
            n++
        }
    }
    return n
}

// ComputeTotal returns the total charge in cents for the given head
// counts against a tour price table:
//
//	adults*price.AdultCents + children*price.ChildCents
//
// Counts must be non-negative; negative counts are a caller contract
// violation.  No rounding or currency conversion is applied.
func ComputeTotal(adults, children int, price model.TourPrice) int64 {
    return int64(adults)*price.AdultCents + int64(children)*price.ChildCents
}

// TotalForGroup prices a whole participant group in one call.
func TotalForGroup(persons []model.Person, price model.TourPrice) int64 {
    adults := CountByCategory(persons, model.PersonAdult)
    children := CountByCategory(persons, model.PersonChild)
    return ComputeTotal(adults, children, price)
}
