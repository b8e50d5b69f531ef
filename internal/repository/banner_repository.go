package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/travel-tour-booking/internal/model"
)

// BannerRepo provides CRUD operations for storefront banners.
type BannerRepo struct{ db *sql.DB }

func NewBannerRepo(db *sql.DB) *BannerRepo { return &BannerRepo{db: db} }

const bannerColumns = "id, title, image, is_show, created_at, updated_at"

// Create inserts a banner and populates the generated ID and timestamps.
func (r *BannerRepo) Create(ctx context.Context, b *model.Banner) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO banners (title, image, is_show) VALUES (?,?,?)",
		b.Title, b.Image, b.IsShow)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return r.db.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM banners WHERE id=?", b.ID).
		Scan(&b.CreatedAt, &b.UpdatedAt)
}

// GetByID returns a single banner or sql.ErrNoRows.
func (r *BannerRepo) GetByID(ctx context.Context, id uint64) (*model.Banner, error) {
	var b model.Banner
	err := r.db.QueryRowContext(ctx,
		"SELECT "+bannerColumns+" FROM banners WHERE id=?", id).
		Scan(&b.ID, &b.Title, &b.Image, &b.IsShow, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// List returns a page of banners newest-first.  isShow filters on the
// display flag when non-nil; search matches the title.
func (r *BannerRepo) List(ctx context.Context, search string, isShow *bool, limit, offset int) ([]model.Banner, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	if search != "" {
		where += " AND title LIKE ?"
		args = append(args, "%"+search+"%")
	}
	if isShow != nil {
		where += " AND is_show=?"
		args = append(args, *isShow)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM banners"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+bannerColumns+" FROM banners"+where+" ORDER BY created_at DESC LIMIT ? OFFSET ?",
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Banner, 0)
	for rows.Next() {
		var b model.Banner
		if err := rows.Scan(&b.ID, &b.Title, &b.Image, &b.IsShow, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, b)
	}
	return out, total, rows.Err()
}

// Update rewrites a banner's mutable columns or returns sql.ErrNoRows.
func (r *BannerRepo) Update(ctx context.Context, b *model.Banner) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE banners SET title=?, image=?, is_show=? WHERE id=?",
		b.Title, b.Image, b.IsShow, b.ID)
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

// Delete removes a banner or returns sql.ErrNoRows.
func (r *BannerRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM banners WHERE id=?", id)
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
