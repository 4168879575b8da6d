package domain

import "time"

type UserRole string

const (
	RoleUser     UserRole = "user"
	RoleProvider UserRole = "provider"
	RoleAdmin    UserRole = "admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleUser, RoleProvider, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Actor is the verified identity behind a request.
type Actor struct {
	UserID int64
	Email  string
	Name   string
	Role   UserRole
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }
