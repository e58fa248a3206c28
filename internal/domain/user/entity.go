package user

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is a minimal directory entry.  Authentication lives outside this
// backend; the directory exists so inbound tribunal notifications can be
// routed to the owner of the destination mailbox.
type User struct {
	ID        string    `json:"id"`
	Nome      string    `json:"nome"`
	Email     string    `json:"email"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUser creates an active user.  Email is normalised to lower case since
// mail routing is case-insensitive.
func NewUser(nome, email string) (*User, error) {
	email = NormalizeEmail(email)
	if nome == "" {
		return nil, errors.New("nome cannot be empty")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, errors.New("email is not valid")
	}

	now := time.Now().UTC()
	return &User{
		ID:        uuid.New().String(),
		Nome:      nome,
		Email:     email,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// NormalizeEmail lowercases and trims an address for comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

//Personal.AI order the ending
