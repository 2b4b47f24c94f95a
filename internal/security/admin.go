package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidAdminKey = errors.New("invalid admin API key")

// CheckAdminKey compares a presented admin API key against its stored
// bcrypt hash. The hash lives in configuration; the plaintext key is
// never persisted.
func CheckAdminKey(hash, presented string) error {
	if hash == "" || presented == "" {
		return ErrInvalidAdminKey
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(presented)); err != nil {
		return ErrInvalidAdminKey
	}
	return nil
}

// HashAdminKey produces the bcrypt hash to store in configuration.
func HashAdminKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
