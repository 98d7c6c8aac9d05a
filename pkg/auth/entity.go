package auth

import (
	"time"

	"github.com/google/uuid"
)

// User: учётная запись владельца CV.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	IsAdmin      bool      `json:"is_superuser"`
	CreatedAt    time.Time `json:"created_at"`
}
