package services

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// ComparePasswords reports whether the plain password matches the hash.
func ComparePasswords(storedHash, plainPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(plainPassword)) == nil
}
