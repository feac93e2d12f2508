package model

import "time"

// Role names stored in the users.role column.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents an application account as stored in the `users`
// table. Accounts are created at seed time or through the admin
// console and are never hard-deleted; the IsActive flag gates login.
//
// Fields:
//  ID           – primary key identifier.
//  Username     – unique login name.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password (never serialized).
//  FullName     – display name of the employee.
//  Role         – "admin" or "user".
//  IsActive     – whether the account may log in.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    `json:"id"`        // users.id
	Username     string    `json:"username"`  // users.username
	Email        string    `json:"email"`     // users.email
	PasswordHash string    `json:"-"`         // users.password_hash
	FullName     string    `json:"fullName"`  // users.full_name
	Role         string    `json:"role"`      // users.role
	IsActive     bool      `json:"isActive"`  // users.is_active
	CreatedAt    time.Time `json:"createdAt"` // users.created_at
	UpdatedAt    time.Time `json:"updatedAt"` // users.updated_at
}
