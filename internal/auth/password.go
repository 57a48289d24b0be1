package auth

import (
	"github.com/juju/errors"
	"golang.org/x/crypto/bcrypt"
)

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Annotate(err, "hashing password")
	}
	return string(hash), nil
}

// CheckPassword reports a mismatch as Unauthorized.
func CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return errors.Unauthorizedf("invalid username or password")
	}
	return nil
}
