package auth

import (
	"crypto/rand"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost of 10 = ~100ms per hash, fine for an internal back office
// with a handful of logins per day
const bcryptCost = 10

// HashPassword generates a bcrypt hash of the password
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks if the provided password matches the hash
func VerifyPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

// accessCodeAlphabet avoids ambiguous characters (0/O, 1/I/L)
const accessCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// GenerateAccessCode produces an 8-character portal access code.
// Codes are handed to clients by the office, so readability matters.
func GenerateAccessCode() (string, error) {
	code := make([]byte, 8)
	max := big.NewInt(int64(len(accessCodeAlphabet)))
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		code[i] = accessCodeAlphabet[n.Int64()]
	}
	return string(code), nil
}
