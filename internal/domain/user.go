package domain

import "time"

const RoleAdmin = "admin"

// User is a dashboard operator account. Only admins exist today; the role
// field keeps the auth middleware generic.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
