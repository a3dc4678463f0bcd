package service

import (
	"golang.org/x/crypto/bcrypt"
)

// hashPassword hashes a password with the given bcrypt cost.
func hashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(hash), err
}

// checkPassword compares a plaintext password against a bcrypt hash.
func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
