package model

import "time"

// Role names form a closed set.  They are validated at the registration
// boundary and carried verbatim in the JWT "role" claim; free-text roles
// are never accepted.
const (
    RoleAdmin = "Admin"
    RoleUser  = "User"
)

// ValidRole reports whether s is one of the known role names.
func ValidRole(s string) bool {
    return s == RoleAdmin || s == RoleUser
}

// User represents an application user record as stored in the `users`
// table.  Each field corresponds to a column.  The json tags shape the
// public representation; the password hash is never serialized.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Email        – unique email address (stored lower-cased).
//  PasswordHash – bcrypt hashed password.
//  Role         – role name ("Admin" or "User").
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
    ID           uint64    `json:"id"`         // users.id
    Email        string    `json:"email"`      // users.email
    PasswordHash string    `json:"-"`          // users.password_hash
    Role         string    `json:"role"`       // users.role
    CreatedAt    time.Time `json:"created_at"` // users.created_at
    UpdatedAt    time.Time `json:"updated_at"` // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Each
// refresh token belongs to a user and contains metadata for expiry
// and revocation.  The plain token is not stored; only its
// SHA‑256 hash.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA‑256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (nil if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
    ID        uint64     // refresh_tokens.id
    UserID    uint64     // refresh_tokens.user_id
    TokenHash string     // refresh_tokens.token_hash
    ExpiresAt time.Time  // refresh_tokens.expires_at
    RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
    CreatedAt time.Time  // refresh_tokens.created_at
}
