package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
)

// refreshTokenBytes is the entropy of a refresh token before hex encoding.
const refreshTokenBytes = 32

// RandomHex returns n random bytes from crypto/rand, hex encoded.
func RandomHex(n int) (string, error) {
	if n <= 0 {
		return "", errors.New("random length must be positive")
	}
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// NewRefreshToken returns a random refresh token and the hash to store for it.
func NewRefreshToken() (token string, hash string, err error) {
	token, err = RandomHex(refreshTokenBytes)
	if err != nil {
		return "", "", err
	}
	return token, HashRefreshToken(token), nil
}

// HashRefreshToken is the hex SHA-256 of token; only the hash is persisted.
func HashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// CompareRefreshTokenHash reports whether token hashes to storedHash.
func CompareRefreshTokenHash(token string, storedHash string) bool {
	if storedHash == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(HashRefreshToken(token)), []byte(storedHash)) == 1
}
