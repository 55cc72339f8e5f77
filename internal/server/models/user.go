package models

import (
	"time"

	"github.com/R3gret/ITPM-Backend/internal/server/auth"
)

// User is a stored identity. PasswordHash never leaves the server.
type User struct {
	ID           int64
	UserName     string
	Email        string
	PasswordHash string
	Role         auth.Role
	CreatedAt    time.Time
}

// UserView is the public representation of a User.
type UserView struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email,omitempty"`
	Role      auth.Role  `json:"role"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// View strips the password hash.
func (u *User) View() UserView {
	v := UserView{ID: u.ID, Username: u.UserName, Email: u.Email, Role: u.Role}
	if !u.CreatedAt.IsZero() {
		created := u.CreatedAt
		v.CreatedAt = &created
	}
	return v
}

// Identity returns the token subject for u.
func (u *User) Identity() auth.Identity {
	return auth.Identity{UserID: u.ID, Username: u.UserName, Role: u.Role}
}
