package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

const resetSecretBytes = 32

// NewResetSecret — криптостойкий секрет для ссылки сброса пароля (hex, 64 символа).
// В базу он не попадает, только HashToken от него.
func NewResetSecret() (string, error) {
	raw := make([]byte, resetSecretBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}

// HashToken возвращает SHA-256 в hex.
func HashToken(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}
