package models

import "time"

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleScorer UserRole = "scorer"
)

// User is an operator account: tournament admins and the volunteer scorers
// who enter hole results. Spectator pages need no account.
type User struct {
	ID           int       `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	Name         string    `json:"name" db:"name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         UserRole  `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
