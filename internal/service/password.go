package service

import (
	"errors"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

func HashPassword(password string, cost int) (string, error) {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return "", withDetail(ErrInvalidInput, "Password too short")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", withDetail(ErrInvalidInput, "Password too long")
		}
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword never errors; a mismatch or a corrupt hash is just false.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
