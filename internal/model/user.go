package model

import "time"

// User roles. The role is read for display and routing only; there is no
// per-role permission enforcement.
const (
	RoleAdmin    = "admin"
	RolePodologo = "podologo"
)

// User is a staff member: an administrator or a podologist. Podologists
// double as the professionals appointments are booked with.
type User struct {
	Base
	Name         string     `json:"name" db:"name"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Role         string     `json:"role" db:"role"`
	Sede         *Sede      `json:"sede,omitempty" db:"sede"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty" db:"last_login_at"`
}

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=admin podologo"`
	Sede     *Sede  `json:"sede" binding:"omitempty,oneof=norte sur"`
}
