package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/travel-tour-booking/internal/model"
)

// TourRepo provides CRUD operations for tour packages.  Itinerary and
// availability live in JSON columns; the per-category price table is
// flattened into two cents columns so order pricing reads plain
// integers.
type TourRepo struct{ db *sql.DB }

func NewTourRepo(db *sql.DB) *TourRepo { return &TourRepo{db: db} }

const tourColumns = `id, title, slug, destination_id, description, itinerary,
	max_participant, is_recurring, duration, availability,
	price_adult_cents, price_child_cents, created_at, updated_at`

// Create inserts a tour and populates the generated ID and timestamps.
// A duplicate slug yields ErrSlugExists.
func (r *TourRepo) Create(ctx context.Context, t *model.Tour) error {
	itinerary, err := marshalJSON(t.Itinerary)
	if err != nil {
		return err
	}
	availability, err := marshalJSON(&t.Availability)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO tours (title, slug, destination_id, description, itinerary,
		  max_participant, is_recurring, duration, availability,
		  price_adult_cents, price_child_cents)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		t.Title, t.Slug, t.DestinationID, t.Description, itinerary,
		t.MaxParticipant, t.IsRecurring, t.Duration, availability,
		t.Price.AdultCents, t.Price.ChildCents)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrSlugExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return r.db.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM tours WHERE id=?", t.ID).
		Scan(&t.CreatedAt, &t.UpdatedAt)
}

func scanTour(row interface{ Scan(...any) error }) (*model.Tour, error) {
	var (
		t            model.Tour
		itinerary    []byte
		availability []byte
	)
	err := row.Scan(&t.ID, &t.Title, &t.Slug, &t.DestinationID, &t.Description, &itinerary,
		&t.MaxParticipant, &t.IsRecurring, &t.Duration, &availability,
		&t.Price.AdultCents, &t.Price.ChildCents, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := unmarshalJSON(itinerary, &t.Itinerary); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(availability, &t.Availability); err != nil {
		return nil, err
	}
	return &t, nil
}

// GetByID returns a single tour or sql.ErrNoRows.
func (r *TourRepo) GetByID(ctx context.Context, id uint64) (*model.Tour, error) {
	return scanTour(r.db.QueryRowContext(ctx,
		"SELECT "+tourColumns+" FROM tours WHERE id=?", id))
}

// GetBySlug returns a single tour by its URL slug or sql.ErrNoRows.
func (r *TourRepo) GetBySlug(ctx context.Context, slug string) (*model.Tour, error) {
	return scanTour(r.db.QueryRowContext(ctx,
		"SELECT "+tourColumns+" FROM tours WHERE slug=?", slug))
}

// List returns a page of tours newest-first.  search matches the title;
// destinationID filters when non-zero.
func (r *TourRepo) List(ctx context.Context, search string, destinationID uint64, limit, offset int) ([]model.Tour, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	if search != "" {
		where += " AND title LIKE ?"
		args = append(args, "%"+search+"%")
	}
	if destinationID != 0 {
		where += " AND destination_id=?"
		args = append(args, destinationID)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM tours"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+tourColumns+" FROM tours"+where+" ORDER BY created_at DESC LIMIT ? OFFSET ?",
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Tour, 0)
	for rows.Next() {
		t, err := scanTour(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *t)
	}
	return out, total, rows.Err()
}

// Update rewrites all mutable columns of a tour.  sql.ErrNoRows is
// returned when the id does not exist; a slug collision yields
// ErrSlugExists.
func (r *TourRepo) Update(ctx context.Context, t *model.Tour) error {
	itinerary, err := marshalJSON(t.Itinerary)
	if err != nil {
		return err
	}
	availability, err := marshalJSON(&t.Availability)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE tours SET title=?, slug=?, destination_id=?, description=?, itinerary=?,
		  max_participant=?, is_recurring=?, duration=?, availability=?,
		  price_adult_cents=?, price_child_cents=?
		 WHERE id=?`,
		t.Title, t.Slug, t.DestinationID, t.Description, itinerary,
		t.MaxParticipant, t.IsRecurring, t.Duration, availability,
		t.Price.AdultCents, t.Price.ChildCents, t.ID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrSlugExists
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a tour.  Tours referenced by orders or participant
// groups cannot be removed and yield ErrConflict.
func (r *TourRepo) Delete(ctx context.Context, id uint64) error {
	var refs int
	if err := r.db.QueryRowContext(ctx,
		`SELECT (SELECT COUNT(*) FROM orders WHERE tour_id=?) +
		        (SELECT COUNT(*) FROM participants WHERE tour_id=?)`,
		id, id).Scan(&refs); err != nil {
		return err
	}
	if refs > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, "DELETE FROM tours WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
