package utils

import (
	"fmt"

	"github.com/matthewhartstonge/argon2"
)

// HashPassword returns an encoded argon2id hash carrying its own salt and
// parameters.
func HashPassword(password string) (string, error) {
	cfg := argon2.DefaultConfig()
	encoded, err := cfg.HashEncoded([]byte(password))
	if err != nil {
		return "", fmt.Errorf("argon2 hash: %w", err)
	}
	return string(encoded), nil
}

// VerifyPassword reports whether password matches encodedHash. An account
// without a stored hash never matches.
func VerifyPassword(encodedHash, password string) (bool, error) {
	if encodedHash == "" {
		return false, nil
	}
	ok, err := argon2.VerifyEncoded([]byte(password), []byte(encodedHash))
	if err != nil {
		return false, fmt.Errorf("argon2 verify: %w", err)
	}
	return ok, nil
}
