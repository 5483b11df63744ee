package model

import "time"

// User roles. Registration defaults to admin; every write route in the API
// is gated on the admin role, so an editor account can only read.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// User represents an application user record as stored in the `users`
// table. Each field corresponds to a column in the database. The password
// hash is never serialized; handlers build separate response types.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  DisplayName  – name shown in the admin UI.
//  Role         – role name ("admin" or "editor").
//  LastLoginAt  – when the user last authenticated (nullable).
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64     `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	DisplayName  string     `json:"displayName"`
	Role         string     `json:"role"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}
