package domain

import "time"

// User is the domain entity for a user account.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Roles        []string
	Active       bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
