package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/civicdesk/complaint-server/internal/workflow"
)

// User is an account record. PasswordHash never leaves the server.
type User struct {
	ID           uuid.UUID     `json:"id" db:"id"`
	Email        string        `json:"email" db:"email"`
	FullName     string        `json:"fullName" db:"full_name"`
	Role         workflow.Role `json:"role" db:"role"`
	PasswordHash string        `json:"-" db:"password_hash"`
	CreatedAt    time.Time     `json:"createdAt" db:"created_at"`
}

// RegisterRequest is the request body for account creation.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"fullName" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest is the request body for authentication.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries the minted token plus the public user view.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
