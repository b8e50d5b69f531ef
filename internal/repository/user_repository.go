package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/travel-tour-booking/internal/model"
	"github.com/iliyamo/travel-tour-booking/internal/utils"
)

// UserRepo provides persistence for accounts.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,fullname,username,email,password_hash,role,profile_picture,is_active,created_at,updated_at"

// Create inserts a locally registered user and returns its ID.  The
// password is hashed with bcrypt before the insert.  Duplicate email or
// username rows are mapped to the matching sentinel error.
func (r *UserRepo) Create(ctx context.Context, fullname, username, email, password, role string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.TrimSpace(username)
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (fullname, username, email, password_hash, role) VALUES (?,?,?,?,?)",
		fullname, username, email, hash, role)
	if err != nil {
		return 0, classifyDuplicate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// CreateFromGoogle inserts an account sourced from a Google sign-in.
// Such accounts have no password hash; the username is derived from the
// email local part.
func (r *UserRepo) CreateFromGoogle(ctx context.Context, fullname, email, picture string) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	username := email
	if at := strings.IndexByte(email, '@'); at > 0 {
		username = email[:at]
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (fullname, username, email, password_hash, role, profile_picture) VALUES (?,?,?,'',?,?)",
		fullname, username, email, model.RoleUser, picture)
	if err != nil {
		return 0, classifyDuplicate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByIdentifier fetches a user by username or normalized email.
func (r *UserRepo) GetByIdentifier(ctx context.Context, identifier string) (model.User, error) {
	identifier = strings.TrimSpace(identifier)
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username=? OR email=? LIMIT 1",
		identifier, strings.ToLower(identifier)).
		Scan(&u.ID, &u.Fullname, &u.Username, &u.Email, &u.PasswordHash, &u.Role,
			&u.ProfilePicture, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1",
		strings.ToLower(strings.TrimSpace(email))).
		Scan(&u.ID, &u.Fullname, &u.Username, &u.Email, &u.PasswordHash, &u.Role,
			&u.ProfilePicture, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1",
		id).
		Scan(&u.ID, &u.Fullname, &u.Username, &u.Email, &u.PasswordHash, &u.Role,
			&u.ProfilePicture, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// classifyDuplicate maps MySQL duplicate-key errors (1062) to the
// sentinel matching the violated unique index.
func classifyDuplicate(err error) error {
	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "1062") {
		return err
	}
	if strings.Contains(msg, "username") {
		return ErrUsernameExists
	}
	return ErrEmailExists
}
