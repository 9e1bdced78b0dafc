package services

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares a plaintext password with a bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// ValidateNewUser checks the create-user payload; empty string means valid.
func ValidateNewUser(username, password string) string {
	if username == "" {
		return "Username and password required."
	}
	if password == "" {
		return "Username and password required."
	}
	if len(password) < 6 {
		return "Password must be at least 6 characters long"
	}
	return ""
}
