package auth

import "servic/internal/domain"

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserPublic struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Email string          `json:"email"`
	Role  domain.UserRole `json:"role"`
}

func toUserPublic(u *domain.User) *UserPublic {
	return &UserPublic{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// AuthResult is a user together with the session token issued for them.
type AuthResult struct {
	User  *UserPublic `json:"user"`
	Token string      `json:"token"`
}
