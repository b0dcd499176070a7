package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the minimum accepted password length at
// registration.
const MinPasswordLength = 8

// bcrypt operates on at most 72 bytes of input.
const maxPasswordLength = 72

var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

// HashPassword derives a bcrypt hash from a plain text password.
func HashPassword(password string) (string, error) {
	if len(password) > maxPasswordLength {
		return "", ErrPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether the plain text password matches the
// stored bcrypt hash. A nil error means the password is correct.
func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
