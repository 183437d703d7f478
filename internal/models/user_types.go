package models

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Roles understood by the admin middleware.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User is a backend account as listed on the admin dashboard.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

var ErrEmptyPassword = errors.New("models: empty password")

// Password is a bcrypt hash, as configured in ADMIN_PASSWORD_HASH.
type Password struct {
	Hash string
}

// HashPassword hashes plaintext at bcrypt's default cost.
func HashPassword(plaintext string) (Password, error) {
	if plaintext == "" {
		return Password{}, ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return Password{}, err
	}
	return Password{Hash: string(hash)}, nil
}

// Matches reports whether plaintext hashes to p.Hash. A wrong password is
// not an error; a malformed hash is.
func (p Password) Matches(plaintext string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(p.Hash), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, err
	}
}
