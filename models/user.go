package models

import "time"

const (
	RoleJudge = "judge"
	RoleAdmin = "admin"
)

// User is a judge or administrator account. Spectators need no account.
type User struct {
	ID           int       `json:"id"`
	FullName     string    `json:"full_name"`
	Role         string    `json:"role"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
