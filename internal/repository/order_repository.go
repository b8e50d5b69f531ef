package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/travel-tour-booking/internal/model"
)

// OrderRepo provides persistence for orders.  Status transitions go
// through UpdateStatusFrom, a single conditional UPDATE keyed on the
// expected current status, so two concurrent transition requests can
// never both win: the losing request sees zero affected rows and the
// caller reports a conflict.
type OrderRepo struct{ db *sql.DB }

func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

const orderColumns = `id, order_code, created_by, tour_id, participant_id,
	total_cents, status, payment_token, payment_redirect_url, created_at, updated_at`

// Create inserts an order with its payment reference and populates the
// generated ID and timestamps.  Total, payment fields and the order code
// are fixed here; only the status column is ever updated afterwards.
func (r *OrderRepo) Create(ctx context.Context, o *model.Order) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO orders (order_code, created_by, tour_id, participant_id,
		  total_cents, status, payment_token, payment_redirect_url)
		 VALUES (?,?,?,?,?,?,?,?)`,
		o.OrderCode, o.CreatedBy, o.TourID, o.ParticipantID,
		o.TotalCents, o.Status, o.Payment.Token, o.Payment.RedirectURL)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	o.ID = uint64(id)
	return r.db.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM orders WHERE id=?", o.ID).
		Scan(&o.CreatedAt, &o.UpdatedAt)
}

func scanOrder(row interface{ Scan(...any) error }) (*model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.OrderCode, &o.CreatedBy, &o.TourID, &o.ParticipantID,
		&o.TotalCents, &o.Status, &o.Payment.Token, &o.Payment.RedirectURL,
		&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// GetByCode returns an order by its external code.  When ownerID is
// non-zero the lookup is scoped to orders created by that account;
// an order owned by someone else reads as sql.ErrNoRows so the caller
// cannot probe for foreign order codes.
func (r *OrderRepo) GetByCode(ctx context.Context, code string, ownerID uint64) (*model.Order, error) {
	q := "SELECT " + orderColumns + " FROM orders WHERE order_code=?"
	args := []any{code}
	if ownerID != 0 {
		q += " AND created_by=?"
		args = append(args, ownerID)
	}
	return scanOrder(r.db.QueryRowContext(ctx, q, args...))
}

// OrderFilter narrows List results.  Zero values mean "no filter".
type OrderFilter struct {
	Status        string
	TourID        uint64
	ParticipantID uint64
	CreatedBy     uint64
	Search        string // matches order_code
}

// List returns a page of orders newest-first matching the filter, plus
// the total row count for that filter.
func (r *OrderRepo) List(ctx context.Context, f OrderFilter, limit, offset int) ([]model.Order, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	if f.Status != "" {
		where += " AND status=?"
		args = append(args, f.Status)
	}
	if f.TourID != 0 {
		where += " AND tour_id=?"
		args = append(args, f.TourID)
	}
	if f.ParticipantID != 0 {
		where += " AND participant_id=?"
		args = append(args, f.ParticipantID)
	}
	if f.CreatedBy != 0 {
		where += " AND created_by=?"
		args = append(args, f.CreatedBy)
	}
	if f.Search != "" {
		where += " AND order_code LIKE ?"
		args = append(args, "%"+f.Search+"%")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM orders"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+orderColumns+" FROM orders"+where+" ORDER BY created_at DESC LIMIT ? OFFSET ?",
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *o)
	}
	return out, total, rows.Err()
}

// UpdateStatusFrom performs a compare-and-swap status write: the row is
// updated only if its current status equals `from`.  When ownerID is
// non-zero the write is additionally scoped to the owning account.  It
// returns true when the transition was applied; false means the order
// does not exist, is not owned by ownerID, or its status changed under
// us — the caller re-reads to tell those apart.
func (r *OrderRepo) UpdateStatusFrom(ctx context.Context, code, from, to string, ownerID uint64) (bool, error) {
	q := "UPDATE orders SET status=?, updated_at=NOW() WHERE order_code=? AND status=?"
	args := []any{to, code, from}
	if ownerID != 0 {
		q += " AND created_by=?"
		args = append(args, ownerID)
	}
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Delete removes an order by its external code or returns sql.ErrNoRows.
func (r *OrderRepo) Delete(ctx context.Context, code string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM orders WHERE order_code=?", code)
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
