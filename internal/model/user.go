package model

import "time"

// Role names stored in the users.role column.  USER is the default for
// self-registered accounts and Google sign-ins; ADMIN manages the catalog
// and the order administration endpoints.
const (
    RoleUser  = "USER"
    RoleAdmin = "ADMIN"
)

// User represents an account record as stored in the `users` table.
// Accounts created through Google OAuth carry an empty PasswordHash and
// can only sign in through the OAuth callback.
//
// Fields:
//  ID             – primary key identifier of the account.
//  Fullname       – display name of the person.
//  Username       – unique login name.
//  Email          – unique email address.
//  PasswordHash   – bcrypt hashed password (empty for OAuth accounts).
//  Role           – role name (USER or ADMIN).
//  ProfilePicture – URL of the avatar image.
//  IsActive       – whether the account is active.
//  CreatedAt      – timestamp of creation.
//  UpdatedAt      – timestamp of last update.
type User struct {
    ID             uint64    // users.id
    Fullname       string    // users.fullname
    Username       string    // users.username
    Email          string    // users.email
    PasswordHash   string    // users.password_hash
    Role           string    // users.role
    ProfilePicture string    // users.profile_picture
    IsActive       bool      // users.is_active
    CreatedAt      time.Time // users.created_at
    UpdatedAt      time.Time // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Each
// refresh token belongs to a user and carries expiry and revocation
// metadata.  The plain token is never stored; only its SHA-256 hash.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
    ID        uint64     // refresh_tokens.id
    UserID    uint64     // refresh_tokens.user_id
    TokenHash string     // refresh_tokens.token_hash
    ExpiresAt time.Time  // refresh_tokens.expires_at
    RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
    CreatedAt time.Time  // refresh_tokens.created_at
}
