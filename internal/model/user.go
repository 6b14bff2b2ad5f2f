package model

import "time"

// User roles.
const (
    RoleAdmin    = "ADMIN"
    RoleCustomer = "CUSTOMER"
)

// User represents an application user record as stored in the `users`
// table.  Admins manage grounds and pricing; customers book slots and
// collect loyalty points.
//
// Fields:
//  ID            – primary key identifier of the user.
//  Username      – unique login name.
//  Email         – unique email address.
//  Name          – display name.
//  PasswordHash  – bcrypt hashed password.
//  Role          – ADMIN or CUSTOMER.
//  LoyaltyPoints – redeemable balance.
//  CreatedAt     – timestamp of creation.
//  UpdatedAt     – timestamp of last update.
type User struct {
    ID            uint64    // users.id
    Username      string    // users.username
    Email         string    // users.email
    Name          string    // users.name
    PasswordHash  string    // users.password_hash
    Role          string    // users.role
    LoyaltyPoints int       // users.loyalty_points
    CreatedAt     time.Time // users.created_at
    UpdatedAt     time.Time // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  The plain
// token is never stored, only its SHA-256 hash.
type RefreshToken struct {
    ID        uint64     // refresh_tokens.id
    UserID    uint64     // refresh_tokens.user_id
    TokenHash string     // refresh_tokens.token_hash
    ExpiresAt time.Time  // refresh_tokens.expires_at
    RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
    CreatedAt time.Time  // refresh_tokens.created_at
}
