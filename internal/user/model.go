package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailAlreadyUsed   = errors.New("email already used")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordTooShort   = errors.New("password is too short")
)

// ID identifies a user. A distinct type keeps user ids from being mixed up
// with car or booking ids.
type ID int64

// User represents an account that can own cars and rent them.
type User struct {
	ID           ID
	Email        string
	PasswordHash string
	DisplayName  *string
	CreatedAt    time.Time
}
