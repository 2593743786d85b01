package domain

import (
	"strings"
	"time"
)

type User struct {
	ID           int32     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	CreatedOn    time.Time `json:"created_on"`
}

// NormalizeEmail is the single normalization applied everywhere an email is
// compared or stored: issuance, acceptance, signup, and lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
