// Package auth verifies administrator credentials.
package auth

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// AdminVerifier checks a login against the single configured admin
// account. Only a bcrypt hash of the password is kept in memory.
type AdminVerifier struct {
	email        string
	passwordHash []byte
}

// NewAdminVerifier hashes password with cost. A zero cost uses
// bcrypt.DefaultCost.
func NewAdminVerifier(email, password string, cost int) (*AdminVerifier, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("admin email and password are required")
	}
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}

	return &AdminVerifier{email: email, passwordHash: hash}, nil
}

// Verify reports whether email and password match the configured admin.
// The password is always compared so a wrong email takes as long as a
// wrong password.
func (v *AdminVerifier) Verify(email, password string) bool {
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(v.email)) == 1
	passwordOK := bcrypt.CompareHashAndPassword(v.passwordHash, []byte(password)) == nil
	return emailOK && passwordOK
}
