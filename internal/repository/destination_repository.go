package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/travel-tour-booking/internal/model"
)

// DestinationRepo provides CRUD operations for catalog destinations.
// Gallery images and attraction names live in JSON columns.
type DestinationRepo struct{ db *sql.DB }

func NewDestinationRepo(db *sql.DB) *DestinationRepo { return &DestinationRepo{db: db} }

// Create inserts a destination and populates the generated ID and
// timestamps on the provided record.
func (r *DestinationRepo) Create(ctx context.Context, d *model.Destination) error {
	images, err := marshalJSON(d.Images)
	if err != nil {
		return err
	}
	attractions, err := marshalJSON(d.Attractions)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO destinations (name, country, description, images, attractions) VALUES (?,?,?,?,?)",
		d.Name, d.Country, d.Description, images, attractions)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	d.ID = uint64(id)
	return r.db.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM destinations WHERE id=?", d.ID).
		Scan(&d.CreatedAt, &d.UpdatedAt)
}

// GetByID returns a single destination.  sql.ErrNoRows is returned when
// the id does not exist.
func (r *DestinationRepo) GetByID(ctx context.Context, id uint64) (*model.Destination, error) {
	var (
		d           model.Destination
		images      []byte
		attractions []byte
	)
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, country, description, images, attractions, created_at, updated_at FROM destinations WHERE id=?",
		id).Scan(&d.ID, &d.Name, &d.Country, &d.Description, &images, &attractions, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := unmarshalJSON(images, &d.Images); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(attractions, &d.Attractions); err != nil {
		return nil, err
	}
	return &d, nil
}

// List returns a page of destinations ordered by creation time
// descending, optionally filtered by a case-insensitive name/country
// search, along with the total row count for that filter.
func (r *DestinationRepo) List(ctx context.Context, search string, limit, offset int) ([]model.Destination, int, error) {
	where := ""
	args := []any{}
	if search != "" {
		where = " WHERE name LIKE ? OR country LIKE ?"
		like := "%" + search + "%"
		args = append(args, like, like)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM destinations"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, country, description, images, attractions, created_at, updated_at FROM destinations"+
			where+" ORDER BY created_at DESC LIMIT ? OFFSET ?",
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Destination, 0)
	for rows.Next() {
		var (
			d           model.Destination
			images      []byte
			attractions []byte
		)
		if err := rows.Scan(&d.ID, &d.Name, &d.Country, &d.Description, &images, &attractions, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, 0, err
		}
		if err := unmarshalJSON(images, &d.Images); err != nil {
			return nil, 0, err
		}
		if err := unmarshalJSON(attractions, &d.Attractions); err != nil {
			return nil, 0, err
		}
		out = append(out, d)
	}
	return out, total, rows.Err()
}

// Update rewrites all mutable columns of a destination.  sql.ErrNoRows
// is returned when the id does not exist.
func (r *DestinationRepo) Update(ctx context.Context, d *model.Destination) error {
	images, err := marshalJSON(d.Images)
	if err != nil {
		return err
	}
	attractions, err := marshalJSON(d.Attractions)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		"UPDATE destinations SET name=?, country=?, description=?, images=?, attractions=? WHERE id=?",
		d.Name, d.Country, d.Description, images, attractions, d.ID)
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

// Delete removes a destination.  Destinations referenced by tours cannot
// be removed and yield ErrConflict.
func (r *DestinationRepo) Delete(ctx context.Context, id uint64) error {
	var refs int
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM tours WHERE destination_id=?", id).Scan(&refs); err != nil {
		return err
	}
	if refs > 0 {
		return ErrConflict
	}
	res, err := r.db.ExecContext(ctx, "DELETE FROM destinations WHERE id=?", id)
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
