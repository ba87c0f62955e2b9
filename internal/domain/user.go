package domain

import "time"

// UserRole enumerates account privilege levels.
type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

// User is the stored account record, independent of any issued token.
type User struct {
	ID           int64
	Nickname     string
	Email        string
	PasswordHash string
	Role         UserRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
