package auth

import (
	"errors"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

const defaultBcryptCost = bcrypt.DefaultCost

// dummyHash is compared against when a login names an unknown account so the
// response takes as long as a real password check.
var (
	dummyHash     []byte
	dummyHashOnce sync.Once
)

// HashPassword returns a salted bcrypt digest of the plaintext password.
func HashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password must not be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), defaultBcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword reports whether candidate matches the stored hash. A blank or
// malformed hash never matches.
func VerifyPassword(hash, candidate string) bool {
	if strings.TrimSpace(hash) == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)) == nil
}

// SimulatePasswordCheck burns one bcrypt comparison and always fails.
func SimulatePasswordCheck(candidate string) bool {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("church-dummy-password"), defaultBcryptCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(candidate))
	return false
}
