package model

// Admin is a provisioned back-office identity. Admins are never
// self-registered; they are seeded idempotently at startup.
type Admin struct {
	Base
	Email        string   `json:"email" db:"email"`
	PasswordHash string   `json:"-" db:"password_hash"`
	Role         UserRole `json:"role" db:"role"`
	IsActive     bool     `json:"is_active" db:"is_active"`
}
