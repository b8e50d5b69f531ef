package repository

import "encoding/json"

// Array-valued document attributes (images, attractions, itinerary,
// persons, availability) are persisted as JSON columns.  These helpers
// keep the marshalling uniform across repositories: a nil slice is
// stored as "[]" and a NULL or empty column scans back to the zero
// value.

func marshalJSON(v any) ([]byte, error) {
    if v == nil {
        return []byte("[]"), nil
    }
    return json.Marshal(v)
}

func unmarshalJSON(raw []byte, dst any) error {
    if len(raw) == 0 {
        return nil
    }
    return json.Unmarshal(raw, dst)
}
