package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

const (
	saltSize = 16
	keyLen   = 64

	// scrypt cost parameters.
	costN = 16384
	costR = 8
	costP = 1

	separator = "."
)

// Hash derives a salted scrypt key from the password.
// The result has the form <hexKey>.<hexSalt>.
func Hash(password string) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	hexSalt := hex.EncodeToString(salt)

	key, err := derive(password, hexSalt)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(key) + separator + hexSalt, nil
}

// Verify reports whether the supplied password matches the stored hash.
// Malformed stored values never match.
func Verify(supplied, stored string) bool {
	hexKey, hexSalt, ok := strings.Cut(stored, separator)
	if !ok || hexKey == "" || hexSalt == "" {
		return false
	}

	want, err := hex.DecodeString(hexKey)
	if err != nil || len(want) != keyLen {
		return false
	}

	got, err := derive(supplied, hexSalt)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(want, got) == 1
}

// the hex encoded salt string itself is the scrypt salt.
func derive(password, hexSalt string) ([]byte, error) {
	key, err := scrypt.Key([]byte(password), []byte(hexSalt), costN, costR, costP, keyLen)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	return key, nil
}
