package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/travel-tour-booking/internal/model"
)

// ParticipantRepo provides CRUD operations for participant groups.  The
// travellers of a group are stored in the participants.person JSON
// column; total_person mirrors the slice length and is validated by the
// handler before any write.
type ParticipantRepo struct{ db *sql.DB }

func NewParticipantRepo(db *sql.DB) *ParticipantRepo { return &ParticipantRepo{db: db} }

const participantColumns = "id, created_by, tour_id, person, total_person, created_at, updated_at"

// Create inserts a participant group and populates the generated ID and
// timestamps.
func (r *ParticipantRepo) Create(ctx context.Context, p *model.Participant) error {
	persons, err := marshalJSON(p.Persons)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO participants (created_by, tour_id, person, total_person) VALUES (?,?,?,?)",
		p.CreatedBy, p.TourID, persons, p.TotalPerson)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return r.db.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM participants WHERE id=?", p.ID).
		Scan(&p.CreatedAt, &p.UpdatedAt)
}

func scanParticipant(row interface{ Scan(...any) error }) (*model.Participant, error) {
	var (
		p       model.Participant
		persons []byte
	)
	err := row.Scan(&p.ID, &p.CreatedBy, &p.TourID, &persons, &p.TotalPerson, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := unmarshalJSON(persons, &p.Persons); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByID returns a single participant group or sql.ErrNoRows.
func (r *ParticipantRepo) GetByID(ctx context.Context, id uint64) (*model.Participant, error) {
	return scanParticipant(r.db.QueryRowContext(ctx,
		"SELECT "+participantColumns+" FROM participants WHERE id=?", id))
}

// GetByIDForUser returns a participant group only when it is owned by
// userID.  A group owned by someone else yields ErrForbidden so handlers
// can distinguish it from a missing record.
func (r *ParticipantRepo) GetByIDForUser(ctx context.Context, id, userID uint64) (*model.Participant, error) {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.CreatedBy != userID {
		return nil, ErrForbidden
	}
	return p, nil
}

// ListByUser returns a page of the user's participant groups
// newest-first.  search matches traveller names inside the JSON column.
func (r *ParticipantRepo) ListByUser(ctx context.Context, userID uint64, search string, limit, offset int) ([]model.Participant, int, error) {
	where := " WHERE created_by=?"
	args := []any{userID}
	if search != "" {
		where += " AND person LIKE ?"
		args = append(args, "%"+search+"%")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM participants"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+participantColumns+" FROM participants"+where+" ORDER BY created_at DESC LIMIT ? OFFSET ?",
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Participant, 0)
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *p)
	}
	return out, total, rows.Err()
}

// Update rewrites a group's travellers and declared size, enforcing
// ownership.  Groups referenced by an order can no longer change and
// yield ErrConflict.
func (r *ParticipantRepo) Update(ctx context.Context, p *model.Participant, userID uint64) error {
	if _, err := r.GetByIDForUser(ctx, p.ID, userID); err != nil {
		return err
	}
	var refs int
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM orders WHERE participant_id=?", p.ID).Scan(&refs); err != nil {
		return err
	}
	if refs > 0 {
		return ErrConflict
	}
	persons, err := marshalJSON(p.Persons)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		"UPDATE participants SET tour_id=?, person=?, total_person=? WHERE id=? AND created_by=?",
		p.TourID, persons, p.TotalPerson, p.ID, userID)
	return err
}

// Delete removes a group, enforcing ownership.  Groups referenced by an
// order yield ErrConflict.
func (r *ParticipantRepo) Delete(ctx context.Context, id, userID uint64) error {
	if _, err := r.GetByIDForUser(ctx, id, userID); err != nil {
		return err
	}
	var refs int
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM orders WHERE participant_id=?", id).Scan(&refs); err != nil {
		return err
	}
	if refs > 0 {
		return ErrConflict
	}
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM participants WHERE id=? AND created_by=?", id, userID)
	return err
}
